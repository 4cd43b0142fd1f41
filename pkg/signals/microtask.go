package signals

import "sync"

// microtaskQueue is a FIFO of deferred tasks drained by a single
// goroutine, so tasks queued from one synchronous turn run after that turn
// completes and in the order they were queued.
type microtaskQueue struct {
	mu    sync.Mutex
	tasks []func()
	wake  chan struct{}
	once  sync.Once
}

var microtasks = &microtaskQueue{wake: make(chan struct{}, 1)}

// Defer schedules fn to run after the current synchronous turn, on the
// shared drainer goroutine. Tasks run in FIFO order; a panic in one task
// does not stop later tasks.
func Defer(fn func()) {
	if fn == nil {
		return
	}
	microtasks.enqueue(fn)
}

func (q *microtaskQueue) enqueue(fn func()) {
	q.once.Do(func() {
		go q.drain()
	})

	q.mu.Lock()
	q.tasks = append(q.tasks, fn)
	q.mu.Unlock()

	select {
	case q.wake <- struct{}{}:
	default:
	}
}

func (q *microtaskQueue) drain() {
	for range q.wake {
		for {
			q.mu.Lock()
			if len(q.tasks) == 0 {
				q.mu.Unlock()
				break
			}
			fn := q.tasks[0]
			q.tasks = q.tasks[1:]
			q.mu.Unlock()

			runTask(fn)
		}
	}
}

func runTask(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}
