package memstore

import (
	"context"
	"sync"

	"github.com/MrJamesThe3rd/homa/internal/snapshot"
)

type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

func New() *Store {
	return &Store{data: map[string][]byte{}}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	b, ok := s.data[key]
	if !ok {
		return nil, snapshot.ErrNotFound
	}

	return append([]byte(nil), b...), nil
}

func (s *Store) Put(_ context.Context, key string, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = append([]byte(nil), payload...)

	return nil
}
