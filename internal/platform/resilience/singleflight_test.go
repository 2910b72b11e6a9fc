package resilience

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestSingleFlight_SharesInFlightCall(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32
	release := make(chan struct{})

	var wg sync.WaitGroup
	var shared atomic.Int32
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			val, err, wasShared := flight.Do("recompute", func() (any, error) {
				executions.Add(1)
				<-release
				return "done", nil
			})
			if err != nil || val != "done" {
				t.Errorf("unexpected result: val=%v err=%v", val, err)
			}
			if wasShared {
				shared.Add(1)
			}
		}()
	}

	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	if got := executions.Load(); got != 1 {
		t.Fatalf("function executed %d times, want 1", got)
	}
	if got := shared.Load(); got != 4 {
		t.Fatalf("%d callers shared, want 4", got)
	}
}

func TestSingleFlight_DistinctKeysRunIndependently(t *testing.T) {
	t.Parallel()

	var flight SingleFlight
	var executions atomic.Int32

	var wg sync.WaitGroup
	for _, key := range []string{"a", "b"} {
		key := key
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _, _ = flight.Do(key, func() (any, error) {
				executions.Add(1)
				return nil, nil
			})
		}()
	}
	wg.Wait()

	if got := executions.Load(); got != 2 {
		t.Fatalf("function executed %d times, want 2", got)
	}
}
