package memory

import (
	"context"
	"fmt"
	"sync"

	"staff_portal/internal/models"
	"staff_portal/internal/storage"
)

// Store keeps the snapshot in process memory for the lifetime of the value.
// Load and Save exchange deep copies, so callers never share slices.
type Store struct {
	mu   sync.Mutex
	snap *models.Snapshot
}

func New() *Store {
	return &Store{snap: storage.Empty()}
}

// NewWith seeds the store with a copy of snap.
func NewWith(snap *models.Snapshot) (*Store, error) {
	c, err := storage.Clone(snap)
	if err != nil {
		return nil, fmt.Errorf("storage.memory.NewWith: %w", err)
	}

	return &Store{snap: c}, nil
}

func (s *Store) Load(_ context.Context) (*models.Snapshot, error) {
	const op = "storage.memory.Load"

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := storage.Clone(s.snap)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return c, nil
}

func (s *Store) Save(_ context.Context, snap *models.Snapshot) error {
	const op = "storage.memory.Save"

	c, err := storage.Clone(snap)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.snap = c
	s.mu.Unlock()

	return nil
}
