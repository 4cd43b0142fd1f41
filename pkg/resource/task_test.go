package resource

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestTaskDoneIsSettled(t *testing.T) {
	task := Done(5)
	if !task.Settled() {
		t.Fatal("Done task not settled")
	}
	v, err := task.Result()
	if err != nil || v != 5 {
		t.Errorf("Result() = %d, %v; want 5, nil", v, err)
	}
}

func TestTaskFail(t *testing.T) {
	boom := errors.New("boom")
	task := Fail[int](boom)
	if !task.Settled() {
		t.Fatal("Fail task not settled")
	}
	if _, err := task.Result(); !errors.Is(err, boom) {
		t.Errorf("Result() error = %v, want %v", err, boom)
	}
}

func TestTaskSettleOnce(t *testing.T) {
	task, settle := NewTask[int]()
	settle(1, nil)
	settle(2, nil)

	if v, _ := task.Result(); v != 1 {
		t.Errorf("second settle applied: got %d, want 1", v)
	}
}

func TestTaskContinuationAfterSettle(t *testing.T) {
	task := Done("x")
	ran := false
	task.onSettle(func(v string, err error) {
		ran = true
		if v != "x" {
			t.Errorf("continuation value = %q, want %q", v, "x")
		}
	})
	if !ran {
		t.Error("continuation on a settled task must run immediately")
	}
}

func TestTaskContinuationOrder(t *testing.T) {
	task, settle := NewTask[int]()
	var order []int
	task.onSettle(func(int, error) { order = append(order, 1) })
	task.onSettle(func(int, error) { order = append(order, 2) })

	settle(0, nil)

	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Errorf("continuation order = %v, want [1 2]", order)
	}
}

func TestTaskGo(t *testing.T) {
	task := Go(func() (int, error) {
		return 9, nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	v, err := task.Wait(ctx)
	if err != nil || v != 9 {
		t.Errorf("Wait() = %d, %v; want 9, nil", v, err)
	}
}

func TestTaskGoRecoversPanic(t *testing.T) {
	task := Go(func() (int, error) {
		panic("worker exploded")
	})

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	_, err := task.Wait(ctx)
	if err == nil {
		t.Fatal("expected error from panicking fetcher")
	}
	if err.Error() != "worker exploded" {
		t.Errorf("error = %q, want %q", err.Error(), "worker exploded")
	}
}

func TestTaskWaitContextCancel(t *testing.T) {
	task, _ := NewTask[int]()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := task.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Wait() error = %v, want %v", err, context.Canceled)
	}
}
