package persistence

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"shop/src/shared/domain/port"

	"github.com/stretchr/testify/require"
)

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()

	t.Run("ReadAbsentPath", func(t *testing.T) {
		store := NewMemoryStore()

		_, _, err := store.Read(ctx, "products/missing")
		require.ErrorIs(t, err, port.ErrAbsent)
	})

	t.Run("WriteMergesFields", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"name": "Yerba", "quantity": 10}))
		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"quantity": 7}))

		data, _, err := store.Read(ctx, "products/p1")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, "Yerba", got["name"])
		require.Equal(t, float64(7), got["quantity"])
	})

	t.Run("WriteBumpsVersion", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"quantity": 1}))
		_, v1, err := store.Read(ctx, "products/p1")
		require.NoError(t, err)

		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"quantity": 2}))
		_, v2, err := store.Read(ctx, "products/p1")
		require.NoError(t, err)
		require.NotEqual(t, v1, v2)
	})

	t.Run("WriteIfVersionCreateIfAbsent", func(t *testing.T) {
		store := NewMemoryStore()

		ok, err := store.WriteIfVersion(ctx, "sales/s1", map[string]any{"total": "10"}, "")
		require.NoError(t, err)
		require.True(t, ok)

		// La ruta ya existe: crear de nuevo con versión vacía no pisa nada
		ok, err = store.WriteIfVersion(ctx, "sales/s1", map[string]any{"total": "99"}, "")
		require.NoError(t, err)
		require.False(t, ok)

		data, _, err := store.Read(ctx, "sales/s1")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, "10", got["total"])
	})

	t.Run("WriteIfVersionCAS", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"quantity": 5}))
		_, version, err := store.Read(ctx, "products/p1")
		require.NoError(t, err)

		ok, err := store.WriteIfVersion(ctx, "products/p1", map[string]any{"quantity": 4}, version)
		require.NoError(t, err)
		require.True(t, ok)

		// La versión quedó vieja después de la escritura anterior
		ok, err = store.WriteIfVersion(ctx, "products/p1", map[string]any{"quantity": 3}, version)
		require.NoError(t, err)
		require.False(t, ok)

		data, _, err := store.Read(ctx, "products/p1")
		require.NoError(t, err)

		var got map[string]any
		require.NoError(t, json.Unmarshal(data, &got))
		require.Equal(t, float64(4), got["quantity"])
	})

	t.Run("DeleteAbsentIsNoop", func(t *testing.T) {
		store := NewMemoryStore()
		require.NoError(t, store.Delete(ctx, "products/missing"))
	})

	t.Run("AppendAndList", func(t *testing.T) {
		store := NewMemoryStore()

		id1, err := store.Append(ctx, "sales", map[string]any{"total": "1"})
		require.NoError(t, err)
		id2, err := store.Append(ctx, "sales", map[string]any{"total": "2"})
		require.NoError(t, err)
		require.NotEqual(t, id1, id2)

		// Los ids llevan prefijo de timestamp para ordenar por creación
		require.Len(t, strings.SplitN(id1, "-", 2)[0], 14)

		listed, err := store.List(ctx, "sales")
		require.NoError(t, err)
		require.Len(t, listed, 2)
		require.Contains(t, listed, id1)
		require.Contains(t, listed, id2)
	})

	t.Run("ListIgnoresNestedPaths", func(t *testing.T) {
		store := NewMemoryStore()

		require.NoError(t, store.Write(ctx, "sales/s1", map[string]any{"total": "1"}))
		require.NoError(t, store.Write(ctx, "sales/s1/items", map[string]any{"x": 1}))
		require.NoError(t, store.Write(ctx, "products/p1", map[string]any{"quantity": 1}))

		listed, err := store.List(ctx, "sales")
		require.NoError(t, err)
		require.Len(t, listed, 1)
		require.Contains(t, listed, "s1")
	})
}
