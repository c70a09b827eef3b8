package systemassets

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/KirkDiggler/ironsworn-content/internal/entities/dataforged"
	"github.com/KirkDiggler/ironsworn-content/internal/errors"
)

// Config holds the configuration for the filesystem repository
type Config struct {
	Dir string
}

// Validate ensures all required settings are provided
func (c *Config) Validate() error {
	if c.Dir == "" {
		c.Dir = DefaultDir
	}
	return nil
}

type filesystemRepository struct {
	dir string
}

// NewFilesystem creates a repository writing into cfg.Dir
func NewFilesystem(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &filesystemRepository{dir: cfg.Dir}, nil
}

// Ensure filesystemRepository implements Repository
var _ Repository = (*filesystemRepository)(nil)

func (r *filesystemRepository) Write(ctx context.Context, name dataforged.OutputName, v any) error {
	if err := ctx.Err(); err != nil {
		return errors.WrapWithCode(err, errors.CodeCanceled, "write canceled")
	}

	slog.Info(fmt.Sprintf("  Writing %s", name.FileName()))

	data, err := dataforged.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to encode %s", name.FileName())
	}

	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return errors.Wrapf(err, "failed to create %s", r.dir)
	}

	path := filepath.Join(r.dir, name.FileName())
	// nolint:gosec // content files are meant to be world readable
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrapf(err, "failed to write %s", path)
	}
	return nil
}

func (r *filesystemRepository) Read(_ context.Context, name dataforged.OutputName) ([]byte, error) {
	path := filepath.Join(r.dir, name.FileName())
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NotFoundf("%s does not exist", path)
		}
		return nil, errors.Wrapf(err, "failed to read %s", path)
	}
	return data, nil
}
