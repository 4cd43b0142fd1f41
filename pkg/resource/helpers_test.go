package resource

import (
	"sync"

	"github.com/VoidedClouds/solid-alien-signals/pkg/signals"
)

// fakeGraph behaves like the signals-backed graph except that deferred
// tasks queue until flush is called, so tests control exactly when the
// refetch dedup window closes.
type fakeGraph struct {
	mu     sync.Mutex
	defers []func()
}

func newFakeGraph() *fakeGraph {
	return &fakeGraph{}
}

func (g *fakeGraph) Memo(fn func() any) func() any {
	m := signals.NewMemo(fn)
	return m.Get
}

func (g *fakeGraph) Effect(fn func()) {
	signals.NewEffect(func() signals.Cleanup {
		fn()
		return nil
	})
}

func (g *fakeGraph) Batch(fn func()) {
	signals.Batch(fn)
}

func (g *fakeGraph) Untracked(fn func() any) any {
	return signals.UntrackedValue(fn)
}

func (g *fakeGraph) Defer(fn func()) {
	g.mu.Lock()
	g.defers = append(g.defers, fn)
	g.mu.Unlock()
}

// flush runs all queued deferred tasks, simulating a microtask boundary.
func (g *fakeGraph) flush() {
	g.mu.Lock()
	tasks := g.defers
	g.defers = nil
	g.mu.Unlock()

	for _, fn := range tasks {
		fn()
	}
}
