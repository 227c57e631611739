package memstore

import (
	"context"
	"fmt"
	"sync"
)

// Store guarda los blobs en memoria y devuelve URLs sintéticas. Es el
// equivalente dev/test de Cloudinary, igual que los repos in-memory.
type Store struct {
	mu    sync.Mutex
	seq   int
	blobs map[string][]byte
}

func New() *Store {
	return &Store{blobs: map[string][]byte{}}
}

func (s *Store) Upload(ctx context.Context, data []byte) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	url := fmt.Sprintf("memory://images/%d", s.seq)

	cp := make([]byte, len(data))
	copy(cp, data)
	s.blobs[url] = cp

	return url, nil
}

// Get devuelve el blob subido (solo para asserts en tests).
func (s *Store) Get(url string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.blobs[url]
	return b, ok
}

// Len es la cantidad de blobs subidos.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.blobs)
}
