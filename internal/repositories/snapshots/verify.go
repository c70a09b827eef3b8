package snapshots

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/KirkDiggler/ironsworn-content/internal/errors"
	redisclient "github.com/KirkDiggler/ironsworn-content/internal/redis"
)

// Verifier checks stored snapshots for entries that no longer decode
type Verifier interface {
	Verify(ctx context.Context, input VerifyInput) (*VerifyOutput, error)
}

// VerifyInput defines the request for verifying snapshots
type VerifyInput struct {
	// Fix deletes corrupted snapshots and repairs the history and latest pointer
	Fix bool
}

// VerifyOutput defines the response for verifying snapshots
type VerifyOutput struct {
	Checked   int
	Corrupted []string
	Deleted   []string
}

// Ensure redisRepository implements Verifier
var _ Verifier = (*redisRepository)(nil)

// Verify scans every snapshot key. A snapshot is corrupted when it is not
// valid JSON, has no identifier map, or names a different run than its key.
func (r *redisRepository) Verify(ctx context.Context, input VerifyInput) (*VerifyOutput, error) {
	out := &VerifyOutput{}

	iter := r.client.Scan(ctx, 0, snapshotKeyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		if key == latestKey || key == historyKey {
			continue
		}
		out.Checked++

		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if err == redisclient.Nil {
				continue
			}
			return nil, errors.Wrapf(err, "failed to read %s", key)
		}

		if reason := checkSnapshot(key, data); reason != "" {
			slog.WarnContext(ctx, "Corrupted identifier snapshot", "key", key, "reason", reason)
			out.Corrupted = append(out.Corrupted, key)
		}
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed to scan snapshots")
	}

	if !input.Fix || len(out.Corrupted) == 0 {
		return out, nil
	}

	for _, key := range out.Corrupted {
		runID := strings.TrimPrefix(key, snapshotKeyPrefix)

		pipe := r.client.TxPipeline()
		pipe.Del(ctx, key)
		pipe.LRem(ctx, historyKey, 0, runID)
		if _, err := pipe.Exec(ctx); err != nil {
			return nil, errors.Wrapf(err, "failed to delete %s", key)
		}
		out.Deleted = append(out.Deleted, key)
	}

	if err := r.repairLatest(ctx); err != nil {
		return nil, err
	}
	return out, nil
}

// repairLatest points latest at the newest remaining run, or removes it
func (r *redisRepository) repairLatest(ctx context.Context) error {
	runID, err := r.client.Get(ctx, latestKey).Result()
	if err != nil && err != redisclient.Nil {
		return errors.Wrapf(err, "failed to get latest snapshot pointer from Redis")
	}

	if runID != "" {
		exists, err := r.client.Exists(ctx, snapshotKeyPrefix+runID).Result()
		if err != nil {
			return errors.Wrapf(err, "failed to check latest snapshot")
		}
		if exists == 1 {
			return nil
		}
	}

	newest, err := r.client.LIndex(ctx, historyKey, -1).Result()
	if err == redisclient.Nil {
		if err := r.client.Del(ctx, latestKey).Err(); err != nil {
			return errors.Wrapf(err, "failed to clear latest snapshot pointer")
		}
		return nil
	}
	if err != nil {
		return errors.Wrapf(err, "failed to read snapshot history")
	}

	if err := r.client.Set(ctx, latestKey, newest, 0).Err(); err != nil {
		return errors.Wrapf(err, "failed to repair latest snapshot pointer")
	}
	return nil
}

func checkSnapshot(key string, data []byte) string {
	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return "invalid JSON"
	}
	if snapshot.IDs == nil {
		return "missing identifier map"
	}
	if snapshotKeyPrefix+snapshot.RunID != key {
		return "run ID does not match key"
	}
	return ""
}
