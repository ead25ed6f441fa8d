package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestStore_GetOrLoad_UsesSingleFlight(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "value", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "live", loader)
			if err != nil {
				errCh <- err
				return
			}
			if got, _ := v.(string); got != "value" {
				errCh <- errUnexpectedValue
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_GetOrLoad_UsesCachedValueAfterFirstLoad(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "cached", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("first GetOrLoad error: %v", err)
	}
	if _, err := store.GetOrLoad(context.Background(), "k", loader); err != nil {
		t.Fatalf("second GetOrLoad error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
	stats := store.Stats()
	if stats.Loads != 1 || stats.Hits == 0 || stats.Entries != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}
}

func TestStore_GetOrLoad_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	var calls atomic.Int32
	errUpstream := errors.New("upstream down")

	loader := func(context.Context) (any, error) {
		if calls.Add(1) == 1 {
			return nil, errUpstream
		}
		return "recovered", nil
	}

	if _, err := store.GetOrLoad(context.Background(), "results:D-I", loader); !errors.Is(err, errUpstream) {
		t.Fatalf("expected upstream error, got %v", err)
	}
	v, err := store.GetOrLoad(context.Background(), "results:D-I", loader)
	if err != nil {
		t.Fatalf("second load error: %v", err)
	}
	if v != "recovered" {
		t.Fatalf("unexpected value %v", v)
	}
}

func TestStore_FreshnessAndExpiry(t *testing.T) {
	t.Parallel()

	store := NewStore(30 * time.Second)
	now := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	if _, err := store.GetOrLoad(context.Background(), "schedule", func(context.Context) (any, error) {
		return []string{"a"}, nil
	}); err != nil {
		t.Fatalf("load: %v", err)
	}
	fetchedAt := now

	now = now.Add(10 * time.Second)
	if _, storedAt, ok := store.GetWithFreshness(context.Background(), "schedule"); !ok || !storedAt.Equal(fetchedAt) {
		t.Fatalf("expected cached entry stored at %s, got ok=%v storedAt=%s", fetchedAt, ok, storedAt)
	}

	now = now.Add(30 * time.Second)
	if _, ok := store.Get(context.Background(), "schedule"); ok {
		t.Fatalf("expected entry to expire")
	}
}

func TestStore_DeletePrefixAndPurge(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute)
	now := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	ctx := context.Background()
	store.Set(ctx, Key("results", "D-I"), 1)
	store.Set(ctx, Key("results", "D-II"), 2)
	store.SetAt(ctx, Key("teams", "D-I"), 3, now.Add(-2*time.Minute))
	store.Set(ctx, "live", 4)

	store.DeletePrefix(ctx, "results:")
	if _, ok := store.Get(ctx, "results:D-I"); ok {
		t.Fatalf("expected results entries to be removed")
	}
	if removed := store.PurgeExpired(); removed != 1 {
		t.Fatalf("expected one expired entry purged, got %d", removed)
	}
	if _, ok := store.Get(ctx, "live"); !ok {
		t.Fatalf("expected live entry to survive")
	}
}

func TestKey(t *testing.T) {
	if got := Key("live"); got != "live" {
		t.Fatalf("unexpected key %q", got)
	}
	if got := Key("teams", "NJCAA D-1"); got != "teams:NJCAA D-1" {
		t.Fatalf("unexpected key %q", got)
	}
}

var errUnexpectedValue = errors.New("unexpected loaded value")

func TestStore_NegativeTTLRetainsNothing(t *testing.T) {
	t.Parallel()

	store := NewStore(-1)
	var calls atomic.Int32
	loader := func(context.Context) (any, error) {
		calls.Add(1)
		return "fresh", nil
	}

	for i := 0; i < 2; i++ {
		if _, err := store.GetOrLoad(context.Background(), "live", loader); err != nil {
			t.Fatalf("GetOrLoad error: %v", err)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("loader called %d times, want 2", got)
	}
	if stats := store.Stats(); stats.Entries != 0 {
		t.Fatalf("expected no retained entries, got %d", stats.Entries)
	}
}

func TestStore_GetOrLoadAt_ExpiresFromStoredAt(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 9, 12, 19, 0, 0, 0, time.UTC)
	store := NewStore(60*time.Second, WithClock(func() time.Time { return now }))
	fetchedAt := now.Add(-59 * time.Second)

	v, err := store.GetOrLoadAt(context.Background(), "live", func(context.Context) (any, time.Time, error) {
		return "shared", fetchedAt, nil
	})
	if err != nil || v != "shared" {
		t.Fatalf("unexpected load result v=%v err=%v", v, err)
	}

	now = now.Add(500 * time.Millisecond)
	if _, storedAt, ok := store.GetWithFreshness(context.Background(), "live"); !ok || !storedAt.Equal(fetchedAt) {
		t.Fatalf("expected entry stored at %s, got ok=%v storedAt=%s", fetchedAt, ok, storedAt)
	}

	now = now.Add(time.Second)
	if _, ok := store.Get(context.Background(), "live"); ok {
		t.Fatalf("expected entry to expire one TTL after it was fetched")
	}
}

func TestStore_GetOrLoad_LoaderOutlivesCallerCancel(t *testing.T) {
	t.Parallel()

	store := NewStore(time.Minute, WithLoadTimeout(time.Second))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	v, err := store.GetOrLoad(ctx, "schedule", func(loadCtx context.Context) (any, error) {
		if err := loadCtx.Err(); err != nil {
			return nil, err
		}
		if _, ok := loadCtx.Deadline(); !ok {
			return nil, errors.New("expected a bounded load context")
		}
		return "loaded", nil
	})
	if err != nil {
		t.Fatalf("GetOrLoad error: %v", err)
	}
	if v != "loaded" {
		t.Fatalf("unexpected value %v", v)
	}
}
