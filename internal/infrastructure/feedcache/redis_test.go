package feedcache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/volleyball-feed/internal/domain/match"
	"github.com/riskibarqy/volleyball-feed/internal/domain/team"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRedis struct {
	mu      sync.Mutex
	values  map[string][]byte
	ttls    map[string]time.Duration
	failGet error
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Get(_ context.Context, key string) *redis.StringCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failGet != nil {
		return redis.NewStringResult("", f.failGet)
	}
	value, ok := f.values[key]
	if !ok {
		return redis.NewStringResult("", redis.Nil)
	}
	return redis.NewStringResult(string(value), nil)
}

func (f *fakeRedis) Set(_ context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.values[key] = value.([]byte)
	f.ttls[key] = expiration
	return redis.NewStatusResult("OK", nil)
}

func (f *fakeRedis) Ping(context.Context) *redis.StatusCmd {
	return redis.NewStatusResult("PONG", nil)
}

func (f *fakeRedis) Close() error { return nil }

func TestRedisSnapshotStore_RoundTripMatches(t *testing.T) {
	ctx := context.Background()
	client := newFakeRedis()
	store := NewWithClient(client, "", 45*time.Second)
	fetchedAt := time.Date(2026, 9, 12, 19, 30, 0, 0, time.UTC)

	m := match.Match{ID: "m1", Team1: match.Side{ID: "neb", Division: "D-I"}}
	m.Sets[0] = match.SetScore{Team1: match.Points(25), Team2: match.Points(21)}
	m.Sets[1] = match.SetScore{Team1: match.RawScore("x"), Team2: match.Points(25)}

	require.NoError(t, store.Save(ctx, "live", []match.Match{m}, fetchedAt))
	assert.Equal(t, 45*time.Second, client.ttls["vbfeed:live"])

	var got []match.Match
	at, ok, err := store.Load(ctx, "live", &got)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, fetchedAt, at)
	require.Len(t, got, 1)
	assert.Equal(t, "neb", got[0].Team1.ID)

	n, valid := got[0].Sets[0].Team2.Int()
	assert.True(t, valid)
	assert.Equal(t, 21, n)
	assert.Equal(t, "x", got[0].Sets[1].Team1.Raw(), "malformed scores survive the round trip")
	assert.False(t, got[0].Sets[2].Played())
}

func TestRedisSnapshotStore_Miss(t *testing.T) {
	store := NewWithClient(newFakeRedis(), "test:", time.Minute)

	var got []team.Team
	_, ok, err := store.Load(context.Background(), "teams:D-I", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRedisSnapshotStore_LoadError(t *testing.T) {
	client := newFakeRedis()
	client.failGet = errors.New("connection refused")
	store := NewWithClient(client, "", time.Minute)

	var got []team.Team
	_, ok, err := store.Load(context.Background(), "teams:D-I", &got)
	require.Error(t, err)
	assert.False(t, ok)
	assert.Contains(t, err.Error(), "teams:D-I")
}

func TestRedisSnapshotStore_CorruptPayload(t *testing.T) {
	client := newFakeRedis()
	client.values["vbfeed:news"] = []byte("not json")
	store := NewWithClient(client, "", time.Minute)

	var got []team.Team
	_, _, err := store.Load(context.Background(), "news", &got)
	require.Error(t, err)
}

func TestNew_RejectsBadURL(t *testing.T) {
	_, err := New(Config{URL: "http://localhost:6379"})
	require.Error(t, err)
}
