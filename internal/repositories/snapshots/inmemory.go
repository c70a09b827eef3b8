package snapshots

import (
	"context"
	"slices"
	"sync"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/clock"
)

// InMemoryRepository keeps snapshots for the lifetime of the process
type InMemoryRepository struct {
	mu     sync.RWMutex
	clock  clock.Clock
	latest *Snapshot
	runIDs []string
}

// NewInMemoryRepository creates a new in-memory snapshot repository
func NewInMemoryRepository(c clock.Clock) *InMemoryRepository {
	if c == nil {
		c = clock.New()
	}
	return &InMemoryRepository{clock: c}
}

// Ensure InMemoryRepository implements Repository
var _ Repository = (*InMemoryRepository)(nil)

// Save stores a snapshot
func (r *InMemoryRepository) Save(_ context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSaveInput(input); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	snapshot := &Snapshot{
		RunID:     input.RunID,
		CreatedAt: r.clock.Now(),
		IDs:       input.IDs,
	}
	r.latest = snapshot
	r.runIDs = append(r.runIDs, input.RunID)

	return &SaveOutput{Snapshot: snapshot}, nil
}

// Latest returns the most recently saved snapshot
func (r *InMemoryRepository) Latest(_ context.Context) (*LatestOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.latest == nil {
		return nil, errors.NotFound(errNoSnapshot)
	}
	return &LatestOutput{Snapshot: r.latest}, nil
}

// List returns the run IDs in save order
func (r *InMemoryRepository) List(_ context.Context) (*ListOutput, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return &ListOutput{RunIDs: slices.Clone(r.runIDs)}, nil
}
