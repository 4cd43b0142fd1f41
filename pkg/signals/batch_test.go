package signals

import "testing"

func TestBatchCoalescesNotifications(t *testing.T) {
	first := New(0)
	second := New(0)
	runs := 0

	NewEffect(func() Cleanup {
		runs++
		_ = first.Get()
		_ = second.Get()
		return nil
	})

	Batch(func() {
		first.Set(1)
		second.Set(2)
	})

	if runs != 2 {
		t.Errorf("expected 1 initial run + 1 batched re-run, got %d", runs)
	}
}

func TestBatchNested(t *testing.T) {
	s := New(0)
	listener := newTestListener()
	WithListener(listener, func() {
		_ = s.Get()
	})

	Batch(func() {
		s.Set(1)
		Batch(func() {
			s.Set(2)
		})
		// Inner batch end must not flush while the outer batch is open.
		if listener.getDirtyCount() != 0 {
			t.Errorf("nested batch flushed early, got %d notifications", listener.getDirtyCount())
		}
	})

	if listener.getDirtyCount() != 1 {
		t.Errorf("expected 1 deduplicated notification, got %d", listener.getDirtyCount())
	}
}

func TestBatchObservesConsistentSnapshot(t *testing.T) {
	a := New(0)
	b := New(0)
	var torn bool

	NewEffect(func() Cleanup {
		if a.Get() != b.Get() {
			torn = true
		}
		return nil
	})

	for i := 1; i <= 3; i++ {
		Batch(func() {
			a.Set(i)
			b.Set(i)
		})
	}

	if torn {
		t.Error("effect observed a torn state across a batched update")
	}
}

func TestUntrackedValue(t *testing.T) {
	s := New(7)
	listener := newTestListener()

	var got int
	WithListener(listener, func() {
		got = UntrackedValue(func() int { return s.Get() })
	})

	if got != 7 {
		t.Errorf("expected 7, got %d", got)
	}

	s.Set(8)
	if listener.getDirtyCount() != 0 {
		t.Errorf("UntrackedValue read subscribed the listener, got %d notifications", listener.getDirtyCount())
	}
}
