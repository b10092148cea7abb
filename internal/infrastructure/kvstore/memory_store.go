package kvstore

import (
	"context"
	"fmt"
	"sync"

	"oumybeauty/internal/domain/repository"
)

// MemoryStore is a process-local KeyValueStore, used in tests and when no
// data file is wanted.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
	quota  int64
}

func NewMemoryStore(quotaBytes int64) *MemoryStore {
	return &MemoryStore{
		values: make(map[string][]byte),
		quota:  quotaBytes,
	}
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	v, ok := s.values[key]
	if !ok {
		return nil, repository.ErrKeyNotFound
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	return s.Update(ctx, key, func([]byte, bool) ([]byte, error) {
		return value, nil
	})
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.values, key)
	return nil
}

func (s *MemoryStore) Update(ctx context.Context, key string, fn func(current []byte, exists bool) ([]byte, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, exists := s.values[key]
	next, err := fn(append([]byte(nil), cur...), exists)
	if err != nil {
		return err
	}

	if s.quota > 0 {
		used := int64(len(key) + len(next))
		for k, v := range s.values {
			if k != key {
				used += int64(len(k) + len(v))
			}
		}
		if used > s.quota {
			return fmt.Errorf("%w: %d of %d bytes", repository.ErrQuotaExceeded, used, s.quota)
		}
	}

	s.values[key] = append([]byte(nil), next...)
	return nil
}
