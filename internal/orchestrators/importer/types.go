package importer

import (
	entities "github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

// RunInput defines the request for an import run
type RunInput struct {
	// RunID names the run in snapshots; generated when empty
	RunID string
}

// RunOutput defines the response of an import run
type RunOutput struct {
	RunID   string
	IDs     *idmap.IDMap
	Written []entities.OutputName
	// Churn is nil when no previous snapshot was available
	Churn *idmap.Churn
}
