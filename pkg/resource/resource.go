package resource

import (
	"sync"

	"github.com/VoidedClouds/solid-alien-signals/pkg/signals"
)

// Info is the record passed to a fetcher alongside the source key.
type Info[T any] struct {
	// Value is the resource's current data, read without registering a
	// dependency.
	Value T

	// Refetching is false for source-driven loads, true for a plain
	// Refetch call, or the payload passed to Refetch.
	Refetching any
}

// Fetcher produces the value for a source key. Return a settled task
// (Done/Fail) for a synchronous result or a pending one (Go/NewTask) for
// an asynchronous fetch.
type Fetcher[K, T any] func(key K, info Info[T]) *Task[T]

// Source resolves the current fetch key. ok=false means "do not fetch":
// the pipeline finalizes without invoking the fetcher and an outstanding
// fetch's eventual result is silently discarded.
type Source[K any] func() (K, bool)

// Resource is the externally visible async-data handle. It owns three
// reactive cells (data, error, state) plus engine-private state: the
// in-flight fetch handle, the ever-resolved flag, and the refetch-dedup
// flag. Resources are independent; nothing is shared across instances.
type Resource[T any] struct {
	graph Graph

	data    Cell[T]
	errCell Cell[error]
	state   Cell[State]

	// source is nil for always-fetch resources; otherwise it reads the
	// memoized key.
	source func() (any, bool)
	fetch  func(key any, info Info[T]) *Task[T]

	mu sync.Mutex
	// inflight is the currently tracked fetch. A completion applies its
	// result only while it still refers to this handle.
	inflight *Task[T]
	// resolved becomes true permanently once any load with a usable key
	// completes, success or failure.
	resolved bool
	// scheduled suppresses back-to-back refetch calls within the same
	// synchronous turn; a deferred task clears it at the next microtask
	// boundary.
	scheduled bool

	name      string
	onSuccess func(T)
	onError   func(error)
	metrics   *Metrics
	tracer    loadTracer
}

// New creates an always-fetch resource: the fetcher has no source key and
// runs exactly once, synchronously, at construction. Use Refetch to run it
// again.
func New[T any](fetcher func(info Info[T]) *Task[T], opts ...Option[T]) *Resource[T] {
	r := newResource(opts...)
	r.fetch = func(_ any, info Info[T]) *Task[T] {
		return fetcher(info)
	}
	r.load(false)
	return r
}

// NewKeyed creates a resource driven by a reactive source. The source is
// wrapped in a derived computation and the load pipeline runs inside an
// effect, so any change to the values the source reads re-triggers the
// pipeline. A key with ok=false disables fetching.
func NewKeyed[K, T any](source Source[K], fetcher Fetcher[K, T], opts ...Option[T]) *Resource[T] {
	r := newResource(opts...)
	r.fetch = func(key any, info Info[T]) *Task[T] {
		return fetcher(key.(K), info)
	}

	read := r.graph.Memo(func() any {
		k, ok := source()
		return resolvedKey{key: k, ok: ok}
	})
	r.source = func() (any, bool) {
		rk := read().(resolvedKey)
		return rk.key, rk.ok
	}

	r.graph.Effect(func() {
		r.load(false)
	})
	return r
}

// resolvedKey boxes a source key with its usability flag so the memo has a
// single comparable value.
type resolvedKey struct {
	key any
	ok  bool
}

func newResource[T any](opts ...Option[T]) *Resource[T] {
	cfg := config[T]{
		storage: SignalStorage[T],
		graph:   DefaultGraph(),
		name:    "resource",
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	var initial T
	seeded := cfg.initial != nil
	if seeded {
		initial = *cfg.initial
	}

	state := Unresolved
	if seeded {
		state = Ready
	}

	return &Resource[T]{
		graph:     cfg.graph,
		data:      cfg.storage(initial),
		errCell:   signals.New[error](nil),
		state:     signals.New(state),
		resolved:  seeded,
		name:      cfg.name,
		onSuccess: cfg.onSuccess,
		onError:   cfg.onError,
		metrics:   cfg.metrics,
		tracer:    cfg.tracer,
	}
}

// Read returns the current data value. The error is non-nil only while
// the state is exactly Errored; an error value still present in another
// state (for example just after a refresh started) is not surfaced here.
func (r *Resource[T]) Read() (T, error) {
	if r.state.Get() == Errored {
		return r.data.Get(), r.errCell.Get()
	}
	return r.data.Get(), nil
}

// Latest behaves like Read until the resource has resolved at least once.
// Afterwards it surfaces an error only when the failure is final (no fetch
// in flight); otherwise it keeps returning the previous data value even
// while a refresh is in progress.
func (r *Resource[T]) Latest() (T, error) {
	r.mu.Lock()
	resolved := r.resolved
	fetching := r.inflight != nil
	r.mu.Unlock()

	if !resolved {
		return r.Read()
	}
	if err := r.errCell.Get(); err != nil && !fetching {
		return r.data.Get(), err
	}
	return r.data.Get(), nil
}

// Loading reports whether a fetch is in flight (state Pending or
// Refreshing).
func (r *Resource[T]) Loading() bool {
	s := r.state.Get()
	return s == Pending || s == Refreshing
}

// State returns the current lifecycle state.
func (r *Resource[T]) State() State {
	return r.state.Get()
}

// Err returns the last captured failure, or nil. Never blocks, never
// fails.
func (r *Resource[T]) Err() error {
	return r.errCell.Get()
}

// Mutate overwrites the data cell directly, bypassing the fetch pipeline.
// State, error, the resolved flag and any in-flight fetch are untouched.
func (r *Resource[T]) Mutate(v T) {
	r.data.Set(v)
}

// Refetch re-invokes the load pipeline, forwarding info to the fetcher as
// Info.Refetching (true when omitted). Returns nil when the call was
// deduplicated or the source resolved unusable, a settled task for a
// synchronous fetcher, and the pending task otherwise.
func (r *Resource[T]) Refetch(info ...any) *Task[T] {
	var ri any = true
	if len(info) > 0 && info[0] != nil {
		ri = info[0]
	}
	return r.load(ri)
}

// load drives every state transition. refetching is the literal false for
// source-driven invocations (initial load, effect re-run) and anything
// else for refetch-style calls.
func (r *Resource[T]) load(refetching any) *Task[T] {
	refetch := isRefetch(refetching)

	r.mu.Lock()
	if refetch && r.scheduled {
		r.mu.Unlock()
		if r.metrics != nil {
			r.metrics.dedups.WithLabelValues(r.name).Inc()
		}
		return nil
	}
	r.scheduled = false
	started := r.inflight
	r.mu.Unlock()

	// Source resolution. Tracked when running inside the keyed effect, so
	// the effect re-runs on source change.
	key, ok := r.lookup()
	if !ok {
		// Disabling the source finalizes without a fetcher call: the
		// outstanding fetch (if still the one this call started with) is
		// dropped and state recomputes over the untouched previous data.
		r.finalize(started, r.data.Peek(), nil, false)
		return nil
	}

	finish := r.beginLoad(refetching)

	// Fetcher invocation, untracked: the pipeline itself must not become
	// a dependent of reads the fetcher performs. A synchronous panic is
	// captured as a failed task rather than propagating.
	var task *Task[T]
	func() {
		defer func() {
			if v := recover(); v != nil {
				task = Fail[T](errorOf(v))
			}
		}()
		info := Info[T]{Value: r.data.Peek(), Refetching: refetching}
		result := r.graph.Untracked(func() any {
			return r.fetch(key, info)
		})
		task, _ = result.(*Task[T])
	}()
	if task == nil {
		var zero T
		task = Done(zero)
	}

	if task.Settled() {
		// Synchronous result: finalize immediately, so callers never
		// observe an intermediate pending state.
		v, err := task.Result()
		finish(err, r.finalize(started, v, err, true))
		return task
	}

	r.mu.Lock()
	r.inflight = task
	r.scheduled = true
	resolved := r.resolved
	r.mu.Unlock()

	// The dedup window closes at the next microtask boundary: refetch
	// calls in the same synchronous turn are no-ops, later ones are not.
	r.graph.Defer(func() {
		r.mu.Lock()
		r.scheduled = false
		r.mu.Unlock()
	})

	r.graph.Batch(func() {
		if resolved {
			r.state.Set(Refreshing)
		} else {
			r.state.Set(Pending)
		}
		r.errCell.Set(nil)
	})

	task.onSettle(func(v T, err error) {
		finish(err, r.finalize(task, v, err, true))
	})
	return task
}

// finalize is the completion step shared by all paths. It applies the
// result only while handle still equals the tracked in-flight fetch;
// completions from superseded fetches report false and change nothing.
// hasKey marks completions whose source key was usable; those make the
// resource permanently resolved.
func (r *Resource[T]) finalize(handle *Task[T], v T, err error, hasKey bool) bool {
	r.mu.Lock()
	if r.inflight != handle {
		r.mu.Unlock()
		return false
	}
	r.inflight = nil
	if hasKey {
		r.resolved = true
	}
	resolved := r.resolved
	r.mu.Unlock()

	if err != nil {
		err = errorOf(err)
	}

	// One batched update per finalization: dependents observe a single
	// consistent snapshot, never a torn one.
	r.graph.Batch(func() {
		if err != nil {
			r.errCell.Set(err)
			r.state.Set(Errored)
			return
		}
		r.data.Set(v)
		r.errCell.Set(nil)
		if resolved {
			r.state.Set(Ready)
		} else {
			r.state.Set(Unresolved)
		}
	})

	if hasKey {
		if err != nil {
			if r.onError != nil {
				r.onError(err)
			}
		} else if r.onSuccess != nil {
			r.onSuccess(v)
		}
	}
	return true
}

// lookup resolves the source: the constant usable key for sourceless
// resources, the memoized source otherwise.
func (r *Resource[T]) lookup() (any, bool) {
	if r.source == nil {
		return true, true
	}
	return r.source()
}

// isRefetch reports whether a load invocation is refetch-style. Only the
// literal false marks a source-driven load; any payload, including nil,
// counts as a refetch.
func isRefetch(v any) bool {
	b, ok := v.(bool)
	return !ok || b
}
