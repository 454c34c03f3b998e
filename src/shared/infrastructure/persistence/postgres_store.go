package persistence

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"shop/src/shared/domain/port"
)

// PostgresStore implementa Store sobre PostgreSQL.
// Una sola tabla clave-valor con columna de versión para el CAS por ruta:
//
//	CREATE TABLE store_entries (
//	    path    TEXT PRIMARY KEY,
//	    value   JSONB NOT NULL,
//	    version BIGINT NOT NULL DEFAULT 1
//	)
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore crea una nueva instancia del store sobre Postgres
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{
		db: db,
	}
}

// Init crea la tabla si no existe
func (s *PostgresStore) Init(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS store_entries (
			path    TEXT PRIMARY KEY,
			value   JSONB NOT NULL,
			version BIGINT NOT NULL DEFAULT 1
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("%w: creating store_entries: %v", port.ErrStoreFailure, err)
	}
	return nil
}

// Read obtiene el valor y la versión de una ruta
func (s *PostgresStore) Read(ctx context.Context, path string) (json.RawMessage, string, error) {
	query := `
		SELECT value, version
		FROM store_entries
		WHERE path = $1
	`

	var value []byte
	var version int64
	err := s.db.QueryRowContext(ctx, query, path).Scan(&value, &version)
	if err == sql.ErrNoRows {
		return nil, "", port.ErrAbsent
	}
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading %s: %v", port.ErrStoreFailure, path, err)
	}

	return value, strconv.FormatInt(version, 10), nil
}

// Write aplica un merge de campos sobre una ruta (upsert con || de jsonb)
func (s *PostgresStore) Write(ctx context.Context, path string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	query := `
		INSERT INTO store_entries (path, value, version)
		VALUES ($1, $2::jsonb, 1)
		ON CONFLICT (path) DO UPDATE
		SET value = store_entries.value || EXCLUDED.value,
		    version = store_entries.version + 1
	`

	if _, err := s.db.ExecContext(ctx, query, path, data); err != nil {
		return fmt.Errorf("%w: writing %s: %v", port.ErrStoreFailure, path, err)
	}
	return nil
}

// WriteIfVersion reemplaza el valor completo solo si la versión coincide
func (s *PostgresStore) WriteIfVersion(ctx context.Context, path string, value any, version string) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	// Con version vacía se crea la ruta solo si está ausente
	if version == "" {
		query := `
			INSERT INTO store_entries (path, value, version)
			VALUES ($1, $2::jsonb, 1)
			ON CONFLICT (path) DO NOTHING
		`
		result, err := s.db.ExecContext(ctx, query, path, data)
		if err != nil {
			return false, fmt.Errorf("%w: creating %s: %v", port.ErrStoreFailure, path, err)
		}
		rows, _ := result.RowsAffected()
		return rows > 0, nil
	}

	expected, err := strconv.ParseInt(version, 10, 64)
	if err != nil {
		return false, fmt.Errorf("%w: invalid version %q for %s", port.ErrStoreFailure, version, path)
	}

	query := `
		UPDATE store_entries
		SET value = $2::jsonb, version = version + 1
		WHERE path = $1 AND version = $3
	`

	result, err := s.db.ExecContext(ctx, query, path, data, expected)
	if err != nil {
		return false, fmt.Errorf("%w: writing %s: %v", port.ErrStoreFailure, path, err)
	}

	rows, _ := result.RowsAffected()
	return rows > 0, nil
}

// Delete elimina una ruta; eliminar una ruta ausente no es error
func (s *PostgresStore) Delete(ctx context.Context, path string) error {
	query := `
		DELETE FROM store_entries
		WHERE path = $1
	`
	if _, err := s.db.ExecContext(ctx, query, path); err != nil {
		return fmt.Errorf("%w: deleting %s: %v", port.ErrStoreFailure, path, err)
	}
	return nil
}

// Append agrega un registro bajo una colección con un id generado
func (s *PostgresStore) Append(ctx context.Context, collection string, record any) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%w: marshalling record for %s: %v", port.ErrStoreFailure, collection, err)
	}

	id := GenerateID()

	query := `
		INSERT INTO store_entries (path, value, version)
		VALUES ($1, $2::jsonb, 1)
	`

	if _, err := s.db.ExecContext(ctx, query, collection+"/"+id, data); err != nil {
		return "", fmt.Errorf("%w: appending to %s: %v", port.ErrStoreFailure, collection, err)
	}
	return id, nil
}

// List retorna los hijos directos de una colección indexados por id
func (s *PostgresStore) List(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	// Solo hijos directos, no rutas anidadas
	query := `
		SELECT path, value
		FROM store_entries
		WHERE path LIKE $1 || '/%' AND path NOT LIKE $1 || '/%/%'
	`

	rows, err := s.db.QueryContext(ctx, query, collection)
	if err != nil {
		return nil, fmt.Errorf("%w: listing %s: %v", port.ErrStoreFailure, collection, err)
	}
	defer rows.Close()

	prefix := len(collection) + 1
	out := make(map[string]json.RawMessage)
	for rows.Next() {
		var path string
		var value []byte
		if err := rows.Scan(&path, &value); err != nil {
			return nil, fmt.Errorf("%w: scanning entry of %s: %v", port.ErrStoreFailure, collection, err)
		}
		out[path[prefix:]] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating %s: %v", port.ErrStoreFailure, collection, err)
	}

	return out, nil
}

var _ port.Store = (*PostgresStore)(nil)
