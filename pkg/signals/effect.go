package signals

import (
	"sync"
	"sync/atomic"
)

// Effect is a reactive side-effect subscription. The effect body runs once
// immediately when the effect is created and re-runs whenever any signal
// or memo it read during its last run changes. The body may return a
// Cleanup that runs before the next re-run and on disposal.
type Effect struct {
	id uint64

	fn      func() Cleanup
	cleanup Cleanup

	sources   []*signalBase
	sourcesMu sync.Mutex

	// runMu serializes runs; a dependency may change on a different
	// goroutine than the one that created the effect.
	runMu sync.Mutex

	disposed atomic.Bool
}

// NewEffect creates the effect and runs fn once immediately. If a Scope is
// current on this goroutine, the effect is registered with it and disposed
// with it.
func NewEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id: nextID(),
		fn: fn,
	}

	if scope := getCurrentScope(); scope != nil {
		scope.register(e)
	}

	e.run()
	return e
}

// MarkDirty re-runs the effect body. Implements Listener.
func (e *Effect) MarkDirty() {
	e.run()
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// addSource records a dependency read during the current run. Implements
// sourceTracker.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose runs the pending cleanup and unsubscribes from all sources. The
// effect never re-runs afterwards.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// run executes the effect body with dependency tracking, replacing the
// previous run's subscriptions with the ones recorded this run.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	e.runMu.Lock()
	defer e.runMu.Unlock()

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	old := setCurrentListener(e)
	e.cleanup = e.fn()
	setCurrentListener(old)
}

var _ sourceTracker = (*Effect)(nil)
