package resource

import (
	"context"
	"sync"
)

// Task is the awaitable a fetcher returns. A task is either settled (it
// already carries its value or error, the synchronous result path) or
// pending, in which case the engine attaches a continuation and finalizes
// when the task settles.
//
// Each started asynchronous fetch has its own Task identity; the engine
// compares task pointers to discard completions from superseded fetches,
// so two structurally equal results are still told apart by which
// invocation produced them.
type Task[T any] struct {
	mu      sync.Mutex
	settled bool
	value   T
	err     error
	conts   []func(T, error)

	done chan struct{}
}

// NewTask creates a pending task and its settle function. Settling twice
// is a no-op.
func NewTask[T any]() (*Task[T], func(T, error)) {
	t := &Task[T]{done: make(chan struct{})}
	return t, t.settle
}

// Done returns a task already settled with v. Fetchers that complete
// synchronously return one of these; the resource never shows a pending
// state for them.
func Done[T any](v T) *Task[T] {
	t := &Task[T]{settled: true, value: v, done: closedChan}
	return t
}

// Fail returns a task already settled with err.
func Fail[T any](err error) *Task[T] {
	t := &Task[T]{settled: true, err: err, done: closedChan}
	return t
}

// FailValue returns a task rejected with an arbitrary value. Non-error
// values are normalized into a *ValueError carrying the value as cause.
func FailValue[T any](v any) *Task[T] {
	return Fail[T](errorOf(v))
}

// Go runs fn on a new goroutine and returns the pending task for its
// result. A panic inside fn rejects the task with the normalized panic
// value instead of crashing the process.
func Go[T any](fn func() (T, error)) *Task[T] {
	t := &Task[T]{done: make(chan struct{})}
	go func() {
		defer func() {
			if v := recover(); v != nil {
				var zero T
				t.settle(zero, errorOf(v))
			}
		}()
		t.settle(fn())
	}()
	return t
}

// Settled reports whether the task already carries its result.
func (t *Task[T]) Settled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.settled
}

// Result returns the settled value and error. Before settlement both are
// zero; check Settled or use Wait when in doubt.
func (t *Task[T]) Result() (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.value, t.err
}

// Wait blocks until the task settles or ctx is done.
func (t *Task[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-t.done:
		return t.Result()
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// settle records the result and fires the continuations. Only the first
// settle wins.
func (t *Task[T]) settle(v T, err error) {
	t.mu.Lock()
	if t.settled {
		t.mu.Unlock()
		return
	}
	t.settled = true
	t.value = v
	t.err = err
	conts := t.conts
	t.conts = nil
	t.mu.Unlock()

	close(t.done)
	for _, fn := range conts {
		fn(v, err)
	}
}

// onSettle attaches a continuation, running it immediately if the task has
// already settled.
func (t *Task[T]) onSettle(fn func(T, error)) {
	t.mu.Lock()
	if !t.settled {
		t.conts = append(t.conts, fn)
		t.mu.Unlock()
		return
	}
	v, err := t.value, t.err
	t.mu.Unlock()
	fn(v, err)
}

// closedChan is shared by all pre-settled tasks.
var closedChan = func() chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}()
