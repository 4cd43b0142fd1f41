package signals

import (
	"testing"
	"time"
)

func TestDeferRunsTask(t *testing.T) {
	done := make(chan struct{})
	Defer(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for deferred task")
	}
}

func TestDeferFIFOOrder(t *testing.T) {
	results := make(chan int, 3)
	done := make(chan struct{})

	Defer(func() { results <- 1 })
	Defer(func() { results <- 2 })
	Defer(func() {
		results <- 3
		close(done)
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for deferred tasks")
	}

	for want := 1; want <= 3; want++ {
		if got := <-results; got != want {
			t.Fatalf("task order: got %d, want %d", got, want)
		}
	}
}

func TestDeferPanicDoesNotStopQueue(t *testing.T) {
	done := make(chan struct{})

	Defer(func() { panic("boom") })
	Defer(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("panicking task stopped the microtask queue")
	}
}

func TestDeferNilIsNoOp(t *testing.T) {
	Defer(nil)

	done := make(chan struct{})
	Defer(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("queue stalled after nil task")
	}
}
