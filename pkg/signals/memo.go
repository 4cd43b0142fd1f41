package signals

import (
	"sync"
	"sync/atomic"
)

// Memo is a cached derived computation that tracks its own dependencies.
// While unobserved it is lazy: invalidations are cheap and the value
// recomputes on the next read, once, no matter how many dependencies
// changed. Once subscribers exist it recomputes on invalidation so it can
// suppress notifications when the derived value did not change. Memos are
// observable like signals, so chains of derived values compose.
type Memo[T any] struct {
	base signalBase

	compute func() T

	value   T
	valueMu sync.RWMutex

	// valid reports whether the cached value is current.
	valid atomic.Bool

	sources   []*signalBase
	sourcesMu sync.Mutex

	equal func(T, T) bool

	// computing breaks infinite recursion on circular dependencies.
	computing atomic.Bool
}

// NewMemo creates a memo. The computation does not run until the first
// read.
func NewMemo[T any](compute func() T) *Memo[T] {
	return &Memo[T]{
		base:    signalBase{id: nextID()},
		compute: compute,
	}
}

// Get returns the memo's value, recomputing if invalid, and subscribes the
// current listener.
func (m *Memo[T]) Get() T {
	m.base.track()

	if !m.valid.Load() {
		m.recompute()
	}

	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// Peek returns the value without subscribing. Still recomputes when the
// cached value is stale.
func (m *Memo[T]) Peek() T {
	if !m.valid.Load() {
		m.recompute()
	}
	m.valueMu.RLock()
	value := m.value
	m.valueMu.RUnlock()
	return value
}

// MarkDirty invalidates the cached value. An unobserved memo stays lazy
// and recomputes on the next read; an observed one recomputes now so that
// subscribers are only notified when the value actually changed (equality
// cut-off).
func (m *Memo[T]) MarkDirty() {
	if !m.valid.CompareAndSwap(true, false) {
		return
	}
	if !m.base.hasSubscribers() {
		return
	}

	m.valueMu.RLock()
	old := m.value
	m.valueMu.RUnlock()

	m.recompute()

	m.valueMu.RLock()
	changed := !m.equals(old, m.value)
	m.valueMu.RUnlock()

	if changed {
		m.base.notifySubscribers()
	}
}

// ID returns the unique identifier for this memo. Implements Listener.
func (m *Memo[T]) ID() uint64 {
	return m.base.id
}

// addSource records a dependency so it can be unsubscribed before the next
// recomputation. Implements sourceTracker.
func (m *Memo[T]) addSource(source *signalBase) {
	m.sourcesMu.Lock()
	defer m.sourcesMu.Unlock()

	for _, s := range m.sources {
		if s == source {
			return
		}
	}
	m.sources = append(m.sources, source)
}

// WithEquals configures a custom equality function.
func (m *Memo[T]) WithEquals(fn func(T, T) bool) *Memo[T] {
	m.equal = fn
	return m
}

func (m *Memo[T]) recompute() {
	if m.computing.Swap(true) {
		// Circular dependency; keep the stale value.
		return
	}
	defer m.computing.Store(false)

	// Drop subscriptions from the previous run; the new run re-records
	// exactly the sources it reads.
	m.sourcesMu.Lock()
	for _, source := range m.sources {
		source.unsubscribe(m)
	}
	m.sources = m.sources[:0]
	m.sourcesMu.Unlock()

	old := setCurrentListener(m)
	newValue := m.compute()
	setCurrentListener(old)

	m.valueMu.Lock()
	m.value = newValue
	m.valueMu.Unlock()

	m.valid.Store(true)
}

func (m *Memo[T]) equals(a, b T) bool {
	if m.equal != nil {
		return m.equal(a, b)
	}
	return defaultEquals(a, b)
}

var _ sourceTracker = (*Memo[int])(nil)
