package cache

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/volleyball-feed/internal/platform/resilience"
)

type entry struct {
	value     any
	storedAt  time.Time
	expiresAt time.Time
}

// Stats is a point-in-time view of store usage.
type Stats struct {
	Entries int
	Hits    int64
	Misses  int64
	Loads   int64
}

// Store is an in-process TTL cache keyed by feed resource and query.
// Each entry remembers when it was stored so callers can report freshness.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time

	loadTimeout time.Duration

	hits   atomic.Int64
	misses atomic.Int64
	loads  atomic.Int64
}

type Option func(*Store)

// WithLoadTimeout bounds a shared load, which no longer follows any caller's cancellation.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(s *Store) {
		s.loadTimeout = timeout
	}
}

func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// NewStore builds a store whose entries expire ttl after they were stored.
// Zero keeps entries until deleted. A negative ttl retains nothing, so only concurrent loads are shared.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Key joins a resource name and its query parts, e.g. Key("results", "D-I") = "results:D-I".
func Key(resource string, parts ...string) string {
	if len(parts) == 0 {
		return resource
	}
	return resource + ":" + strings.Join(parts, ":")
}

func (s *Store) Get(ctx context.Context, key string) (any, bool) {
	value, _, ok := s.GetWithFreshness(ctx, key)
	return value, ok
}

// GetWithFreshness returns the cached value and the time it was stored.
func (s *Store) GetWithFreshness(_ context.Context, key string) (any, time.Time, bool) {
	if key == "" {
		return nil, time.Time{}, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		s.misses.Add(1)
		return nil, time.Time{}, false
	}
	if s.ttl > 0 && !e.expiresAt.After(now) {
		s.mu.Lock()
		if current, exists := s.entries[key]; exists && current.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		s.misses.Add(1)
		return nil, time.Time{}, false
	}

	s.hits.Add(1)
	return e.value, e.storedAt, true
}

func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetAt(ctx, key, value, s.now())
}

// SetAt stores value as if it had been fetched at storedAt. Expiry counts from storedAt.
func (s *Store) SetAt(_ context.Context, key string, value any, storedAt time.Time) {
	if key == "" || s.ttl < 0 {
		return
	}

	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = storedAt.Add(s.ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		storedAt:  storedAt,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.mu.Unlock()
}

// PurgeExpired drops every expired entry and returns how many were removed.
func (s *Store) PurgeExpired() int {
	if s.ttl <= 0 {
		return 0
	}

	now := s.now()
	removed := 0
	s.mu.Lock()
	for key, e := range s.entries {
		if !e.expiresAt.After(now) {
			delete(s.entries, key)
			removed++
		}
	}
	s.mu.Unlock()
	return removed
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	n := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Entries: n,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Loads:   s.loads.Load(),
	}
}

// GetOrLoad returns the cached value or runs loader once across concurrent callers for key.
// Failed loads are not cached.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	return s.GetOrLoadAt(ctx, key, func(ctx context.Context) (any, time.Time, error) {
		value, err := loader(ctx)
		return value, time.Time{}, err
	})
}

// GetOrLoadAt is GetOrLoad for loaders that know when their value was fetched.
// Expiry counts from the returned time; a zero time means now.
// The loader runs detached from the caller's cancellation, bounded by the load timeout.
func (s *Store) GetOrLoadAt(ctx context.Context, key string, loader func(context.Context) (any, time.Time, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		s.loads.Add(1)
		value, _, err := loader(ctx)
		return value, err
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	out, err, _ := s.flight.Do(key, func() (any, error) {
		if cached, ok := s.Get(ctx, key); ok {
			return cached, nil
		}

		loadCtx, cancel := s.loadContext(ctx)
		defer cancel()

		s.loads.Add(1)
		loaded, storedAt, loadErr := loader(loadCtx)
		if loadErr != nil {
			return nil, loadErr
		}
		if storedAt.IsZero() {
			storedAt = s.now()
		}
		s.SetAt(ctx, key, loaded, storedAt)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return out, nil
}

func (s *Store) loadContext(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx = context.WithoutCancel(ctx)
	if s.loadTimeout > 0 {
		return context.WithTimeout(ctx, s.loadTimeout)
	}
	return ctx, func() {}
}
