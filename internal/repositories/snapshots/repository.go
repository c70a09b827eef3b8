// Package snapshots stores the identifier map of previous import runs so
// that a new run can report identifier churn
package snapshots

//go:generate mockgen -destination=mock/mock_repository.go -package=snapshotsmock github.com/KirkDiggler/ironsworn-content/internal/repositories/snapshots Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

// Snapshot is the identifier map produced by one import run
type Snapshot struct {
	RunID     string       `json:"run_id"`
	CreatedAt time.Time    `json:"created_at"`
	IDs       *idmap.IDMap `json:"ids"`
}

// Repository defines the storage interface for identifier map snapshots
type Repository interface {
	// Save stores a snapshot and makes it the latest
	Save(ctx context.Context, input SaveInput) (*SaveOutput, error)

	// Latest returns the most recently saved snapshot.
	// Returns NotFound if nothing has been saved yet.
	Latest(ctx context.Context) (*LatestOutput, error)

	// List returns the run IDs of saved snapshots, oldest first
	List(ctx context.Context) (*ListOutput, error)
}

// SaveInput defines the request for saving a snapshot
type SaveInput struct {
	RunID string
	IDs   *idmap.IDMap
}

// SaveOutput defines the response for saving a snapshot
type SaveOutput struct {
	Snapshot *Snapshot
}

// LatestOutput defines the response for loading the latest snapshot
type LatestOutput struct {
	Snapshot *Snapshot
}

// ListOutput defines the response for listing snapshots
type ListOutput struct {
	RunIDs []string
}

const errNoSnapshot = "no snapshot has been saved"

func validateSaveInput(input SaveInput) error {
	vb := errors.NewValidationBuilder()
	if input.RunID == "" {
		vb.RequiredField("RunID")
	}
	if input.IDs == nil {
		vb.RequiredField("IDs")
	}
	return vb.Build()
}
