// Package systemassets persists processed documents under the system
// assets directory
package systemassets

//go:generate mockgen -destination=mock/mock_repository.go -package=systemassetsmock github.com/KirkDiggler/ironsworn-content/internal/repositories/systemassets Repository

import (
	"context"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
)

// DefaultDir is where the Foundry system loads its bundled content from
const DefaultDir = "system/assets"

// Repository defines storage operations for written content files
type Repository interface {
	// Write stores v as indented JSON under the output name
	Write(ctx context.Context, name dataforged.OutputName, v any) error

	// Read returns the raw bytes of a previously written file
	Read(ctx context.Context, name dataforged.OutputName) ([]byte, error)
}
