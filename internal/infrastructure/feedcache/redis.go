package feedcache

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/volleyball-feed/internal/usecase"
)

const defaultKeyPrefix = "vbfeed:"

// redisClient is the subset of *redis.Client the store needs.
type redisClient interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Ping(ctx context.Context) *redis.StatusCmd
	Close() error
}

type envelope struct {
	FetchedAt time.Time       `json:"fetched_at"`
	Items     json.RawMessage `json:"items"`
}

// RedisSnapshotStore shares feed snapshots between instances.
type RedisSnapshotStore struct {
	client redisClient
	prefix string
	ttl    time.Duration
}

var _ usecase.SnapshotStore = (*RedisSnapshotStore)(nil)

type Config struct {
	URL       string
	KeyPrefix string
	TTL       time.Duration
	Timeout   time.Duration
}

// New connects to Redis from a redis:// URL.
func New(cfg Config) (*RedisSnapshotStore, error) {
	opts, err := redis.ParseURL(strings.TrimSpace(cfg.URL))
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}
	if cfg.Timeout > 0 {
		opts.DialTimeout = cfg.Timeout
		opts.ReadTimeout = cfg.Timeout
		opts.WriteTimeout = cfg.Timeout
	}

	return NewWithClient(redis.NewClient(opts), cfg.KeyPrefix, cfg.TTL), nil
}

func NewWithClient(client redisClient, prefix string, ttl time.Duration) *RedisSnapshotStore {
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	return &RedisSnapshotStore{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

func (s *RedisSnapshotStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return crerr.Wrap(err, "ping redis")
	}
	return nil
}

func (s *RedisSnapshotStore) Close() error {
	return s.client.Close()
}

func (s *RedisSnapshotStore) Load(ctx context.Context, key string, target any) (time.Time, bool, error) {
	data, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if crerr.Is(err, redis.Nil) {
			return time.Time{}, false, nil
		}
		return time.Time{}, false, crerr.Wrapf(err, "get snapshot %s", key)
	}

	var env envelope
	if err := sonic.Unmarshal(data, &env); err != nil {
		return time.Time{}, false, crerr.Wrapf(err, "decode snapshot envelope %s", key)
	}
	if err := sonic.Unmarshal(env.Items, target); err != nil {
		return time.Time{}, false, crerr.Wrapf(err, "decode snapshot items %s", key)
	}
	return env.FetchedAt, true, nil
}

func (s *RedisSnapshotStore) Save(ctx context.Context, key string, value any, fetchedAt time.Time) error {
	items, err := sonic.Marshal(value)
	if err != nil {
		return crerr.Wrapf(err, "encode snapshot items %s", key)
	}
	data, err := sonic.Marshal(envelope{FetchedAt: fetchedAt.UTC(), Items: items})
	if err != nil {
		return crerr.Wrapf(err, "encode snapshot envelope %s", key)
	}

	if err := s.client.Set(ctx, s.prefix+key, data, s.ttl).Err(); err != nil {
		return crerr.Wrapf(err, "set snapshot %s", key)
	}
	return nil
}
