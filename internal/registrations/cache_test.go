package registrations

import (
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aura-webinar/portal/internal/models"
)

// memoryRedis implements the string commands RedisSnapshots uses.
type memoryRedis struct {
	redis.Cmdable
	values map[string]string
	ttls   map[string]time.Duration
}

func newMemoryRedis() *memoryRedis {
	return &memoryRedis{values: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (m *memoryRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	v, ok := m.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(v, nil)
}

func (m *memoryRedis) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	switch v := value.(type) {
	case []byte:
		m.values[key] = string(v)
	case string:
		m.values[key] = v
	}
	m.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (m *memoryRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	var n int64
	for _, k := range keys {
		if _, ok := m.values[k]; ok {
			delete(m.values, k)
			n++
		}
	}
	return redis.NewIntResult(n, nil)
}

func TestRedisSnapshotsRoundTrip(t *testing.T) {
	ctx := context.Background()
	rdb := newMemoryRedis()
	snaps := NewRedisSnapshots(rdb, 0)

	regs, ok, err := snaps.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, regs)

	require.NoError(t, snaps.Put(ctx, 7, nil))
	regs, ok, err = snaps.Get(ctx, 7)
	require.NoError(t, err)
	assert.True(t, ok, "an empty list is still a hit")
	assert.Empty(t, regs)
	assert.Equal(t, DefaultSnapshotTTL, rdb.ttls[SnapshotKey(7)])

	require.NoError(t, snaps.Add(ctx, 7, models.Registration{WebinarID: 3, Status: models.RegistrationStatusPending}))
	regs, ok, err = snaps.Get(ctx, 7)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []models.Registration{{WebinarID: 3, Status: models.RegistrationStatusPending}}, regs)

	require.NoError(t, snaps.Drop(ctx, 7))
	_, ok, err = snaps.Get(ctx, 7)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotsAddWithoutSnapshot(t *testing.T) {
	ctx := context.Background()
	rdb := newMemoryRedis()
	snaps := NewRedisSnapshots(rdb, time.Minute)

	require.NoError(t, snaps.Add(ctx, 9, models.Registration{WebinarID: 1}))
	assert.NotContains(t, rdb.values, SnapshotKey(9))
}

func TestRedisSnapshotsCorruptValue(t *testing.T) {
	rdb := newMemoryRedis()
	rdb.values[SnapshotKey(5)] = "not json"

	_, ok, err := NewRedisSnapshots(rdb, time.Minute).Get(context.Background(), 5)
	assert.Error(t, err)
	assert.False(t, ok)
}
