package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"shop/src/shared/domain/port"

	"github.com/google/uuid"
)

// entry guarda el valor crudo de una ruta junto con su versión para CAS
type entry struct {
	data    json.RawMessage
	version uint64
}

// MemoryStore implementa Store en memoria, protegido por mutex.
// Se usa en tests y cuando no hay base de datos configurada
// (el servicio arranca igual, solo que sin persistencia real).
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
}

// NewMemoryStore crea una nueva instancia del store en memoria
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]entry),
	}
}

// Read obtiene el valor y la versión de una ruta
func (s *MemoryStore) Read(ctx context.Context, path string) (json.RawMessage, string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.entries[path]
	if !ok {
		return nil, "", port.ErrAbsent
	}
	return e.data, strconv.FormatUint(e.version, 10), nil
}

// Write aplica un merge de campos sobre una ruta, creándola si no existe
func (s *MemoryStore) Write(ctx context.Context, path string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make(map[string]any)
	if e, ok := s.entries[path]; ok {
		if err := json.Unmarshal(e.data, &merged); err != nil {
			return fmt.Errorf("%w: corrupt value at %s: %v", port.ErrStoreFailure, path, err)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}

	data, err := json.Marshal(merged)
	if err != nil {
		return fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	prev := s.entries[path]
	s.entries[path] = entry{data: data, version: prev.version + 1}
	return nil
}

// WriteIfVersion reemplaza el valor completo solo si la versión coincide
func (s *MemoryStore) WriteIfVersion(ctx context.Context, path string, value any, version string) (bool, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[path]
	if !ok {
		// Con version vacía se permite crear la ruta
		if version != "" {
			return false, nil
		}
		s.entries[path] = entry{data: data, version: 1}
		return true, nil
	}

	if strconv.FormatUint(e.version, 10) != version {
		return false, nil
	}

	s.entries[path] = entry{data: data, version: e.version + 1}
	return true, nil
}

// Delete elimina una ruta; eliminar una ruta ausente no es error
func (s *MemoryStore) Delete(ctx context.Context, path string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, path)
	return nil
}

// Append agrega un registro bajo una colección con un id generado
func (s *MemoryStore) Append(ctx context.Context, collection string, record any) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%w: marshalling record for %s: %v", port.ErrStoreFailure, collection, err)
	}

	id := GenerateID()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[collection+"/"+id] = entry{data: data, version: 1}
	return id, nil
}

// List retorna los hijos directos de una colección indexados por id
func (s *MemoryStore) List(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	prefix := collection + "/"
	out := make(map[string]json.RawMessage)
	for path, e := range s.entries {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		id := strings.TrimPrefix(path, prefix)
		if strings.Contains(id, "/") {
			continue
		}
		out[id] = e.data
	}
	return out, nil
}

// GenerateID genera un id único con prefijo de timestamp, de forma que
// los ids ordenen aproximadamente por momento de creación.
// Ejemplo: 20250908130500-8b7f...-...
func GenerateID() string {
	return time.Now().UTC().Format("20060102150405") + "-" + uuid.NewString()
}

var _ port.Store = (*MemoryStore)(nil)
