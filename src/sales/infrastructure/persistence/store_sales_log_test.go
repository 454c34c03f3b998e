package persistence

import (
	"context"
	"testing"
	"time"

	"shop/src/sales/domain/entity"
	sharedpersistence "shop/src/shared/infrastructure/persistence"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func saleAt(t *testing.T, ts time.Time, total string) *entity.SaleRecord {
	t.Helper()

	record, err := entity.NewSaleRecord(
		ts,
		map[string]int{"p1": 1},
		decimal.RequireFromString(total),
		"cash",
		"In-store",
		nil,
	)
	require.NoError(t, err)
	return record
}

func TestStoreSalesLog(t *testing.T) {
	ctx := context.Background()

	t.Run("AppendAssignsIDAndGetReturnsRecord", func(t *testing.T) {
		log := NewStoreSalesLog(sharedpersistence.NewMemoryStore())

		record := saleAt(t, time.Date(2025, 9, 8, 13, 5, 0, 0, time.UTC), "10.00")
		id, err := log.Append(ctx, record)
		require.NoError(t, err)
		require.NotEmpty(t, id)

		got, err := log.Get(ctx, id)
		require.NoError(t, err)
		require.Equal(t, id, got.ID)
		require.True(t, got.Total.Equal(record.Total))
	})

	t.Run("GetUnknownSale", func(t *testing.T) {
		log := NewStoreSalesLog(sharedpersistence.NewMemoryStore())

		_, err := log.Get(ctx, "missing")
		require.ErrorIs(t, err, entity.ErrSaleNotFound)
	})

	t.Run("AppendWithIDIsIdempotent", func(t *testing.T) {
		log := NewStoreSalesLog(sharedpersistence.NewMemoryStore())
		id := log.NextID()

		first := saleAt(t, time.Date(2025, 9, 8, 13, 5, 0, 0, time.UTC), "10.00")
		require.NoError(t, log.AppendWithID(ctx, id, first))

		// Un reintento con el mismo id no pisa lo escrito
		second := saleAt(t, time.Date(2025, 9, 8, 13, 5, 0, 0, time.UTC), "99.00")
		require.NoError(t, log.AppendWithID(ctx, id, second))

		got, err := log.Get(ctx, id)
		require.NoError(t, err)
		require.True(t, got.Total.Equal(decimal.RequireFromString("10.00")))

		entries, err := log.Range(ctx, time.Time{}, time.Now().Add(time.Hour), true)
		require.NoError(t, err)
		require.Len(t, entries, 1)
	})

	t.Run("RangeFiltersAndOrdersByTimestamp", func(t *testing.T) {
		log := NewStoreSalesLog(sharedpersistence.NewMemoryStore())

		day1 := time.Date(2025, 9, 8, 10, 0, 0, 0, time.UTC)
		day2 := time.Date(2025, 9, 9, 15, 30, 0, 0, time.UTC)
		day3 := time.Date(2025, 9, 10, 9, 0, 0, 0, time.UTC)

		// Insertadas fuera de orden cronológico
		require.NoError(t, log.AppendWithID(ctx, log.NextID(), saleAt(t, day2, "2.00")))
		require.NoError(t, log.AppendWithID(ctx, log.NextID(), saleAt(t, day1, "1.00")))
		require.NoError(t, log.AppendWithID(ctx, log.NextID(), saleAt(t, day3, "3.00")))

		entries, err := log.Range(ctx, day1, day3, false)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		require.True(t, entries[0].Record.Total.Equal(decimal.RequireFromString("1.00")))
		require.True(t, entries[1].Record.Total.Equal(decimal.RequireFromString("2.00")))

		entries, err = log.Range(ctx, day1, day3, true)
		require.NoError(t, err)
		require.Len(t, entries, 3)
	})

	t.Run("RangeBeforeWindowExcluded", func(t *testing.T) {
		log := NewStoreSalesLog(sharedpersistence.NewMemoryStore())

		early := time.Date(2025, 9, 7, 23, 59, 0, 0, time.UTC)
		require.NoError(t, log.AppendWithID(ctx, log.NextID(), saleAt(t, early, "1.00")))

		from := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
		entries, err := log.Range(ctx, from, from.Add(24*time.Hour), false)
		require.NoError(t, err)
		require.Empty(t, entries)
	})
}
