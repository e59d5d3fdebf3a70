package course

import (
	"context"
	"sync"
)

// Future delivers the result of one generation run. It resolves exactly
// once; every listener is called exactly once with the same Map, including
// listeners registered after resolution.
type Future struct {
	mu        sync.Mutex
	done      chan struct{}
	m         *Map
	err       error
	listeners []func(*Map)
}

func newFuture() *Future {
	return &Future{done: make(chan struct{})}
}

// Load starts g on its own goroutine and returns the pending Future.
// Cancelling ctx before the worker runs resolves the Future with ctx.Err()
// and no listener fires.
func Load(ctx context.Context, g *Generator) *Future {
	f := newFuture()
	go func() {
		if err := ctx.Err(); err != nil {
			f.resolve(nil, err)
			return
		}
		m := g.Generate()
		if err := ctx.Err(); err != nil {
			f.resolve(nil, err)
			return
		}
		f.resolve(m, nil)
	}()
	return f
}

// Resolved returns an already completed Future for m.
func Resolved(m *Map) *Future {
	f := newFuture()
	f.resolve(m, nil)
	return f
}

func (f *Future) resolve(m *Map, err error) {
	f.mu.Lock()
	select {
	case <-f.done:
		f.mu.Unlock()
		return
	default:
	}
	f.m, f.err = m, err
	listeners := f.listeners
	f.listeners = nil
	close(f.done)
	f.mu.Unlock()

	if err != nil {
		return
	}
	for _, fn := range listeners {
		fn(m)
	}
}

// OnFinished registers fn to receive the finished Map. If the Future has
// already resolved successfully fn runs immediately on the caller's
// goroutine; otherwise it runs on the generation goroutine.
func (f *Future) OnFinished(fn func(*Map)) {
	f.mu.Lock()
	select {
	case <-f.done:
		m, err := f.m, f.err
		f.mu.Unlock()
		if err == nil {
			fn(m)
		}
		return
	default:
	}
	f.listeners = append(f.listeners, fn)
	f.mu.Unlock()
}

// Done is closed once the Future has resolved.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Result returns the Map if generation has finished successfully.
func (f *Future) Result() (*Map, bool) {
	select {
	case <-f.done:
		return f.m, f.err == nil
	default:
		return nil, false
	}
}

// Err returns the resolution error, nil while pending or on success.
func (f *Future) Err() error {
	select {
	case <-f.done:
		return f.err
	default:
		return nil
	}
}

// Wait blocks until the Future resolves or ctx is done.
func (f *Future) Wait(ctx context.Context) (*Map, error) {
	select {
	case <-f.done:
		return f.m, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
