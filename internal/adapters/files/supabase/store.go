// Package supabase implementa el ObjectStore contra la API REST de
// Supabase Storage.
package supabase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Store sube objetos vía POST /storage/v1/object/{bucket}/{path} y resuelve
// URLs públicas por convención de paths (sin red).
type Store struct {
	http       *http.Client
	projectURL string
	anonKey    string
}

func NewStore(projectURL, anonKey string) (*Store, error) {
	projectURL = strings.TrimRight(strings.TrimSpace(projectURL), "/")
	if projectURL == "" {
		return nil, errors.New("supabase storage: project URL is required")
	}
	if strings.TrimSpace(anonKey) == "" {
		return nil, errors.New("supabase storage: anon key is required")
	}
	return &Store{
		http:       &http.Client{Timeout: 30 * time.Second},
		projectURL: projectURL,
		anonKey:    anonKey,
	}, nil
}

// Put sube el objeto. No pasa por el helper JSON: el body es binario.
// x-upsert permite re-subir el avatar sin borrar el anterior a mano.
func (s *Store) Put(ctx context.Context, bucket, path, contentType string, r io.Reader) error {
	if strings.TrimSpace(bucket) == "" || strings.TrimSpace(path) == "" {
		return errors.New("supabase storage: bucket and path are required")
	}

	url := fmt.Sprintf("%s/storage/v1/object/%s/%s", s.projectURL, bucket, path)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, r)
	if err != nil {
		return fmt.Errorf("supabase storage: new request: %w", err)
	}
	req.Header.Set("apikey", s.anonKey)
	req.Header.Set("Authorization", "Bearer "+s.anonKey)
	req.Header.Set("x-upsert", "true")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := s.http.Do(req)
	if err != nil {
		return fmt.Errorf("supabase storage: upload: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("supabase storage: upload failed: status=%d body=%s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	return nil
}

func (s *Store) PublicURL(bucket, path string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.projectURL, bucket, path)
}
