package registrations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/aura-webinar/portal/internal/models"
)

// DefaultSnapshotTTL bounds how stale a cached registration list may get.
const DefaultSnapshotTTL = 5 * time.Minute

const snapshotKeyPrefix = "registrations:user:"

// Snapshots caches each user's last fetched registration list.
type Snapshots interface {
	Get(ctx context.Context, userID int64) ([]models.Registration, bool, error)
	Put(ctx context.Context, userID int64, regs []models.Registration) error
	Add(ctx context.Context, userID int64, reg models.Registration) error
	Drop(ctx context.Context, userID int64) error
}

// RedisSnapshots stores snapshots as JSON strings with a TTL.
type RedisSnapshots struct {
	rdb redis.Cmdable
	ttl time.Duration
}

// NewRedisSnapshots creates a Redis snapshot cache. A non-positive ttl uses DefaultSnapshotTTL.
func NewRedisSnapshots(rdb redis.Cmdable, ttl time.Duration) *RedisSnapshots {
	if ttl <= 0 {
		ttl = DefaultSnapshotTTL
	}
	return &RedisSnapshots{rdb: rdb, ttl: ttl}
}

// SnapshotKey returns the Redis key holding a user's snapshot.
func SnapshotKey(userID int64) string {
	return snapshotKeyPrefix + strconv.FormatInt(userID, 10)
}

// Get returns the cached snapshot. ok is false on a miss.
func (s *RedisSnapshots) Get(ctx context.Context, userID int64) ([]models.Registration, bool, error) {
	raw, err := s.rdb.Get(ctx, SnapshotKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get snapshot: %w", err)
	}
	var regs []models.Registration
	if err := json.Unmarshal(raw, &regs); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return regs, true, nil
}

// Put replaces the snapshot.
func (s *RedisSnapshots) Put(ctx context.Context, userID int64, regs []models.Registration) error {
	if regs == nil {
		regs = []models.Registration{}
	}
	raw, err := json.Marshal(regs)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if err := s.rdb.Set(ctx, SnapshotKey(userID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("set snapshot: %w", err)
	}
	return nil
}

// Add records a new registration in an existing snapshot. Without a snapshot it does nothing;
// the next read fetches a fresh list.
func (s *RedisSnapshots) Add(ctx context.Context, userID int64, reg models.Registration) error {
	regs, ok, err := s.Get(ctx, userID)
	if err != nil || !ok {
		return err
	}
	return s.Put(ctx, userID, Merge(regs, reg))
}

// Drop removes the snapshot.
func (s *RedisSnapshots) Drop(ctx context.Context, userID int64) error {
	if err := s.rdb.Del(ctx, SnapshotKey(userID)).Err(); err != nil {
		return fmt.Errorf("drop snapshot: %w", err)
	}
	return nil
}

// Merge returns regs with reg replacing any entry for the same webinar, or appended.
func Merge(regs []models.Registration, reg models.Registration) []models.Registration {
	out := make([]models.Registration, 0, len(regs)+1)
	replaced := false
	for _, r := range regs {
		if r.WebinarID == reg.WebinarID && !replaced {
			out = append(out, reg)
			replaced = true
			continue
		}
		out = append(out, r)
	}
	if !replaced {
		out = append(out, reg)
	}
	return out
}
