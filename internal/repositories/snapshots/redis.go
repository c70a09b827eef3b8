package snapshots

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	"github.com/KirkDiggler/ironsworn-content/internal/pkg/clock"
	redisclient "github.com/KirkDiggler/ironsworn-content/internal/redis"
	"github.com/KirkDiggler/ironsworn-content/internal/services/idmap"
)

// NewRedisVerifier returns the Redis repository as a Verifier
func NewRedisVerifier(cfg *Config) (Verifier, error) {
	repo, err := NewRedisRepository(cfg)
	if err != nil {
		return nil, err
	}
	return repo.(*redisRepository), nil
}

const (
	// Key pattern: idmap_snapshot:{run_id}
	snapshotKeyPrefix = "idmap_snapshot:"
	// Points at the key of the most recent snapshot
	latestKey = "idmap_snapshot:latest"
	// Run IDs ordered by save time
	historyKey = "idmap_snapshot:history"
)

// Config holds the configuration for the Redis repository
type Config struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	if c.Client == nil {
		return errors.InvalidArgument("redis client is required")
	}
	if c.Clock == nil {
		c.Clock = clock.New()
	}
	return nil
}

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// NewRedisRepository creates a new Redis repository for snapshots
func NewRedisRepository(cfg *Config) (Repository, error) {
	if cfg == nil {
		return nil, errors.InvalidArgument("config cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  cfg.Clock,
	}, nil
}

// Ensure redisRepository implements Repository
var _ Repository = (*redisRepository)(nil)

// Save stores the snapshot under its run ID and moves the latest pointer
func (r *redisRepository) Save(ctx context.Context, input SaveInput) (*SaveOutput, error) {
	if err := validateSaveInput(input); err != nil {
		return nil, err
	}

	snapshot := &Snapshot{
		RunID:     input.RunID,
		CreatedAt: r.clock.Now(),
		IDs:       input.IDs,
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal snapshot")
	}

	key := snapshotKeyPrefix + input.RunID

	// Store the snapshot and pointer atomically
	pipe := r.client.TxPipeline()
	pipe.Set(ctx, key, data, 0)
	pipe.Set(ctx, latestKey, input.RunID, 0)
	pipe.RPush(ctx, historyKey, input.RunID)
	if _, err := pipe.Exec(ctx); err != nil {
		return nil, errors.Wrapf(err, "failed to store snapshot in Redis")
	}

	slog.DebugContext(ctx, "saved identifier snapshot",
		"run_id", input.RunID,
		"ids", input.IDs.Len())

	return &SaveOutput{Snapshot: snapshot}, nil
}

// Latest loads the snapshot the latest pointer refers to
func (r *redisRepository) Latest(ctx context.Context) (*LatestOutput, error) {
	runID, err := r.client.Get(ctx, latestKey).Result()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFound(errNoSnapshot)
		}
		return nil, errors.Wrapf(err, "failed to get latest snapshot pointer from Redis")
	}

	data, err := r.client.Get(ctx, snapshotKeyPrefix+runID).Bytes()
	if err != nil {
		if err == redisclient.Nil {
			return nil, errors.NotFoundf("snapshot %s not found", runID)
		}
		return nil, errors.Wrapf(err, "failed to get snapshot from Redis")
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, errors.WrapWithCodef(err, errors.CodeDataLoss, "failed to unmarshal snapshot %s", runID)
	}
	if snapshot.IDs == nil {
		snapshot.IDs = idmap.New()
	}

	return &LatestOutput{Snapshot: &snapshot}, nil
}

// List returns the run history
func (r *redisRepository) List(ctx context.Context) (*ListOutput, error) {
	runIDs, err := r.client.LRange(ctx, historyKey, 0, -1).Result()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to list snapshots from Redis")
	}
	return &ListOutput{RunIDs: runIDs}, nil
}
