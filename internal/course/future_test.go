package course

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestLoadDeliversToEarlyAndLateListeners(t *testing.T) {
	g := NewGenerator(GenParams{MinWidth: 300, MaxWidth: 300, Seed: 9})

	var mu sync.Mutex
	var got []*Map
	record := func(m *Map) {
		mu.Lock()
		got = append(got, m)
		mu.Unlock()
	}

	f := Load(context.Background(), g)
	f.OnFinished(record)
	f.OnFinished(record)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	m, err := f.Wait(ctx)
	if err != nil {
		t.Fatalf("Wait() failed: %v", err)
	}

	// Registered after resolution: fires immediately
	f.OnFinished(record)

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 3 {
		t.Fatalf("listeners fired %d times, expected 3", len(got))
	}
	for i, lm := range got {
		if lm != m {
			t.Errorf("listener %d received a different map", i)
		}
	}
}

func TestFutureResolvesOnce(t *testing.T) {
	m := NewBuilder(60).Build()
	f := Resolved(m)

	var calls atomic.Int32
	f.OnFinished(func(*Map) { calls.Add(1) })

	// A second resolution is ignored
	f.resolve(NewBuilder(60).Build(), nil)

	if calls.Load() != 1 {
		t.Errorf("listener called %d times, expected 1", calls.Load())
	}
	got, ok := f.Result()
	if !ok || got != m {
		t.Error("Result() should return the first map")
	}
}

func TestFuturePending(t *testing.T) {
	f := newFuture()

	if _, ok := f.Result(); ok {
		t.Error("Result() should report pending")
	}
	if f.Err() != nil {
		t.Error("Err() should be nil while pending")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := f.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, expected context.Canceled", err)
	}

	select {
	case <-f.Done():
		t.Error("Done() should not be closed while pending")
	default:
	}
}

func TestLoadCancelledBeforeStart(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fired := false
	f := Load(ctx, NewGenerator(DefaultGenParams()))
	f.OnFinished(func(*Map) { fired = true })

	<-f.Done()
	if !errors.Is(f.Err(), context.Canceled) {
		t.Errorf("Err() = %v, expected context.Canceled", f.Err())
	}
	if _, ok := f.Result(); ok {
		t.Error("cancelled future should not report a map")
	}

	f.OnFinished(func(*Map) { fired = true })
	if fired {
		t.Error("listeners must not fire for a cancelled generation")
	}
}
