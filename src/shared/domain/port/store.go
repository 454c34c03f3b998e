package port

import (
	"context"
	"encoding/json"
	"errors"
)

var (
	// ErrAbsent indica que la ruta no existe en el store
	ErrAbsent = errors.New("path is absent")

	// ErrStoreFailure indica que el store no respondió o devolvió una forma inesperada.
	// Nunca debe interpretarse como éxito.
	ErrStoreFailure = errors.New("store failure")
)

// Store define el contrato con la base de datos clave-valor hosteada.
// Todas las entidades viven bajo rutas tipo "products/<id>" o "sales/<id>".
// Se inyecta siempre como dependencia explícita, nunca como singleton.
type Store interface {
	// Read obtiene el valor JSON de una ruta junto con su versión.
	// Retorna ErrAbsent si la ruta no existe.
	Read(ctx context.Context, path string) (json.RawMessage, string, error)

	// Write aplica una actualización parcial (merge de campos) sobre una ruta.
	// Crea la ruta si no existe.
	Write(ctx context.Context, path string, fields map[string]any) error

	// WriteIfVersion reemplaza el valor completo de una ruta solo si la versión
	// coincide (compare-and-set por clave). Retorna (false, nil) en conflicto.
	// Con version == "" crea la ruta solo si está ausente.
	WriteIfVersion(ctx context.Context, path string, value any, version string) (bool, error)

	// Delete elimina una ruta. Eliminar una ruta ausente no es error.
	Delete(ctx context.Context, path string) error

	// Append agrega un registro bajo una colección y retorna el id generado.
	// Los ids generados ordenan aproximadamente por tiempo de creación.
	Append(ctx context.Context, collection string, record any) (string, error)

	// List retorna todos los registros de una colección, indexados por id.
	// Una colección ausente retorna un mapa vacío.
	List(ctx context.Context, collection string) (map[string]json.RawMessage, error)
}
