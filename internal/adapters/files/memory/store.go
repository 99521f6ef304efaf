// Package memory implementa un ObjectStore en memoria para desarrollo
// local y tests.
package memory

import (
	"context"
	"fmt"
	"io"
	"sync"
)

type object struct {
	contentType string
	data        []byte
}

type Store struct {
	mu      sync.RWMutex
	objects map[string]object // clave: bucket + "/" + path
}

func NewStore() *Store {
	return &Store{objects: make(map[string]object)}
}

func (s *Store) Put(_ context.Context, bucket, path, contentType string, r io.Reader) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[bucket+"/"+path] = object{contentType: contentType, data: data}
	return nil
}

func (s *Store) PublicURL(bucket, path string) string {
	return fmt.Sprintf("memory://%s/%s", bucket, path)
}

// Len es un helper de tests: cantidad de objetos guardados.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

// Get es un helper de tests.
func (s *Store) Get(bucket, path string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	o, ok := s.objects[bucket+"/"+path]
	if !ok {
		return nil, false
	}
	out := make([]byte, len(o.data))
	copy(out, o.data)
	return out, true
}
