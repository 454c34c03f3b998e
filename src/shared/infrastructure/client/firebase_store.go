package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"shop/src/shared/domain/port"
)

// FirebaseStore implementa Store contra una Realtime Database hosteada,
// usando su API REST. El compare-and-set por ruta se apoya en los ETags
// condicionales del backend (header if-match).
type FirebaseStore struct {
	httpClient *http.Client
	baseURL    string
	authToken  string
}

// NewFirebaseStore crea una nueva instancia del cliente
func NewFirebaseStore() *FirebaseStore {
	baseURL := os.Getenv("FIREBASE_DB_URL")
	authToken := os.Getenv("FIREBASE_DB_AUTH")

	return &FirebaseStore{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		authToken: authToken,
	}
}

// url arma la URL REST de una ruta, con el token de auth si existe
func (s *FirebaseStore) url(path string) string {
	u := fmt.Sprintf("%s/%s.json", s.baseURL, path)
	if s.authToken != "" {
		u += "?auth=" + s.authToken
	}
	return u
}

func (s *FirebaseStore) do(req *http.Request) (*http.Response, []byte, error) {
	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: calling database: %v", port.ErrStoreFailure, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: reading response: %v", port.ErrStoreFailure, err)
	}
	return resp, body, nil
}

// Read obtiene el valor de una ruta junto con su ETag como versión
func (s *FirebaseStore) Read(ctx context.Context, path string) (json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(path), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}
	req.Header.Set("X-Firebase-ETag", "true")

	resp, body, err := s.do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}

	if string(body) == "null" {
		return nil, "", port.ErrAbsent
	}
	return body, resp.Header.Get("ETag"), nil
}

// Write aplica una actualización parcial de campos (PATCH)
func (s *FirebaseStore) Write(ctx context.Context, path string, fields map[string]any) error {
	data, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, s.url(path), bytes.NewBuffer(data))
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, body, err := s.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}
	return nil
}

// WriteIfVersion reemplaza el valor completo solo si el ETag coincide.
// Para una ruta ausente (version vacía) se resuelve primero el ETag del null.
func (s *FirebaseStore) WriteIfVersion(ctx context.Context, path string, value any, version string) (bool, error) {
	if version == "" {
		_, etag, err := s.readETag(ctx, path)
		if err != nil {
			return false, err
		}
		// Alguien creó la ruta entre medio
		if etag == "" {
			return false, nil
		}
		version = etag
	}

	data, err := json.Marshal(value)
	if err != nil {
		return false, fmt.Errorf("%w: marshalling value for %s: %v", port.ErrStoreFailure, path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, s.url(path), bytes.NewBuffer(data))
	if err != nil {
		return false, fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("if-match", version)

	resp, body, err := s.do(req)
	if err != nil {
		return false, err
	}
	if resp.StatusCode == http.StatusPreconditionFailed {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}
	return true, nil
}

// readETag obtiene el ETag actual de una ruta. Para rutas con valor
// retorna etag vacío como señal de que la ruta ya existe.
func (s *FirebaseStore) readETag(ctx context.Context, path string) (json.RawMessage, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(path), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}
	req.Header.Set("X-Firebase-ETag", "true")

	resp, body, err := s.do(req)
	if err != nil {
		return nil, "", err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}
	if string(body) != "null" {
		return body, "", nil
	}
	return nil, resp.Header.Get("ETag"), nil
}

// Delete elimina una ruta
func (s *FirebaseStore) Delete(ctx context.Context, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, s.url(path), nil)
	if err != nil {
		return fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}

	resp, body, err := s.do(req)
	if err != nil {
		return err
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}
	return nil
}

// Append agrega un registro bajo una colección (POST) y retorna el id push generado
func (s *FirebaseStore) Append(ctx context.Context, collection string, record any) (string, error) {
	data, err := json.Marshal(record)
	if err != nil {
		return "", fmt.Errorf("%w: marshalling record for %s: %v", port.ErrStoreFailure, collection, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.url(collection), bytes.NewBuffer(data))
	if err != nil {
		return "", fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, body, err := s.do(req)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}

	var pushed struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(body, &pushed); err != nil || pushed.Name == "" {
		return "", fmt.Errorf("%w: unexpected push response: %s", port.ErrStoreFailure, string(body))
	}
	return pushed.Name, nil
}

// List retorna todos los registros de una colección indexados por id
func (s *FirebaseStore) List(ctx context.Context, collection string) (map[string]json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url(collection), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: creating request: %v", port.ErrStoreFailure, err)
	}

	resp, body, err := s.do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: database returned status %d: %s", port.ErrStoreFailure, resp.StatusCode, string(body))
	}

	if string(body) == "null" {
		return map[string]json.RawMessage{}, nil
	}

	var out map[string]json.RawMessage
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("%w: unexpected collection shape at %s: %v", port.ErrStoreFailure, collection, err)
	}
	return out, nil
}

var _ port.Store = (*FirebaseStore)(nil)
