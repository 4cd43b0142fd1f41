package resource

import "github.com/VoidedClouds/solid-alien-signals/pkg/signals"

// Graph is the capability surface the engine needs from a reactive
// dependency graph. The default implementation wires pkg/signals; tests
// substitute a fake with a manually pumped Defer queue.
type Graph interface {
	// Memo wraps fn in a derived computation and returns its tracked
	// reader.
	Memo(fn func() any) func() any

	// Effect runs fn once immediately and re-runs it whenever any cell
	// read during its last run changes.
	Effect(fn func())

	// Batch coalesces all cell writes inside fn into a single
	// notification pass.
	Batch(fn func())

	// Untracked runs fn with dependency recording suppressed and returns
	// its result.
	Untracked(fn func() any) any

	// Defer schedules fn to run after the current synchronous turn,
	// before the next external event. The engine uses it to close the
	// same-turn refetch dedup window.
	Defer(fn func())
}

// Cell is the backing get/set pair for a resource's reactive cells. Get is
// a tracked read, Peek an untracked one.
type Cell[T any] interface {
	Get() T
	Peek() T
	Set(T)
}

// Storage produces the backing cell for a resource's data. Custom
// storages plug in deep-reactive stores or persistence; the default is a
// plain signal cell.
type Storage[T any] func(initial T) Cell[T]

// SignalStorage is the default Storage, backed by a signals.Signal.
func SignalStorage[T any](initial T) Cell[T] {
	return signals.New(initial)
}

// signalsGraph adapts pkg/signals to the Graph interface.
type signalsGraph struct{}

// DefaultGraph returns the Graph backed by pkg/signals.
func DefaultGraph() Graph {
	return signalsGraph{}
}

func (signalsGraph) Memo(fn func() any) func() any {
	m := signals.NewMemo(fn)
	return m.Get
}

func (signalsGraph) Effect(fn func()) {
	signals.NewEffect(func() signals.Cleanup {
		fn()
		return nil
	})
}

func (signalsGraph) Batch(fn func()) {
	signals.Batch(fn)
}

func (signalsGraph) Untracked(fn func() any) any {
	return signals.UntrackedValue(fn)
}

func (signalsGraph) Defer(fn func()) {
	signals.Defer(fn)
}
