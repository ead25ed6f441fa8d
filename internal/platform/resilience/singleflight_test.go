package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			_, err, _ := g.Do("live", func() (any, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return "ok", nil
			})
			if err != nil {
				t.Errorf("singleflight call failed: %v", err)
			}
		}()
	}

	close(start)
	wg.Wait()

	if got := atomic.LoadInt32(&counter); got != 1 {
		t.Fatalf("expected function to run once, got %d", got)
	}
	if got := g.InFlight(); got != 0 {
		t.Fatalf("expected no in-flight keys after completion, got %d", got)
	}
}

func TestSingleFlight_PanicBecomesError(t *testing.T) {
	var g SingleFlight

	_, err, _ := g.Do("results", func() (any, error) {
		panic("decoder exploded")
	})
	if err == nil {
		t.Fatalf("expected error from panicking call")
	}

	v, err, shared := g.Do("results", func() (any, error) { return 3, nil })
	if err != nil || v != 3 || shared {
		t.Fatalf("expected fresh call after panic, got v=%v err=%v shared=%v", v, err, shared)
	}
}
