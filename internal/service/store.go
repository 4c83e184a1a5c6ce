package service

import (
	"context"
	"fmt"
	"sync"

	"jsonblog/internal/models"
	"jsonblog/internal/storage"
)

// SnapshotStore runs every mutation as load -> mutate -> save against the gateway.
//
// Without a mutex two concurrent mutations can both load the same snapshot and
// the later save drops the earlier one's change. Setting serialize holds one
// process-wide lock across the whole sequence. Reads never take it.
type SnapshotStore struct {
	gateway storage.Gateway
	mu      *sync.Mutex
}

func NewSnapshotStore(gateway storage.Gateway, serialize bool) *SnapshotStore {
	s := &SnapshotStore{gateway: gateway}
	if serialize {
		s.mu = &sync.Mutex{}
	}
	return s
}

func (s *SnapshotStore) Read(ctx context.Context) (models.Store, error) {
	store, err := s.gateway.Load(ctx)
	if err != nil {
		return models.Store{}, fmt.Errorf("load store: %w", err)
	}
	return store, nil
}

// Mutate saves what fn returns. When fn fails nothing is written.
func (s *SnapshotStore) Mutate(ctx context.Context, fn func(models.Store) (models.Store, error)) error {
	if s.mu != nil {
		s.mu.Lock()
		defer s.mu.Unlock()
	}

	store, err := s.Read(ctx)
	if err != nil {
		return err
	}

	next, err := fn(store)
	if err != nil {
		return err
	}

	if err := s.gateway.Save(ctx, next); err != nil {
		return fmt.Errorf("save store: %w", err)
	}

	return nil
}
