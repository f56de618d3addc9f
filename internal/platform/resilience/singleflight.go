package resilience

import (
	"fmt"
	"sync"

	"github.com/sourcegraph/conc/panics"
)

// SingleFlight collapses concurrent loads of the same key into one call of
// fn. Waiters share the leader's result. A panic in fn is returned to every
// waiter as an error and the key is released.
type SingleFlight[V any] struct {
	mu    sync.Mutex
	calls map[string]*flight[V]
}

type flight[V any] struct {
	done    chan struct{}
	val     V
	err     error
	waiters int
}

// Do runs fn for key unless a call is already in flight, in which case it
// waits for that call. shared reports whether the result came from another
// caller's fn.
func (g *SingleFlight[V]) Do(key string, fn func() (V, error)) (val V, shared bool, err error) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*flight[V])
	}
	if f, ok := g.calls[key]; ok {
		f.waiters++
		g.mu.Unlock()
		<-f.done
		return f.val, true, f.err
	}

	f := &flight[V]{done: make(chan struct{})}
	g.calls[key] = f
	g.mu.Unlock()

	if recovered := panics.Try(func() { f.val, f.err = fn() }); recovered != nil {
		var zero V
		f.val, f.err = zero, fmt.Errorf("singleflight %s: %w", key, recovered.AsError())
	}

	g.mu.Lock()
	delete(g.calls, key)
	g.mu.Unlock()
	close(f.done)

	return f.val, false, f.err
}

// InFlight reports how many keys currently have a running call.
func (g *SingleFlight[V]) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}
