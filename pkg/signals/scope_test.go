package signals

import "testing"

func TestScopeDisposesEffects(t *testing.T) {
	count := New(0)
	runs := 0

	scope := NewScope(nil)
	scope.Run(func() {
		NewEffect(func() Cleanup {
			_ = count.Get()
			runs++
			return nil
		})
	})

	count.Set(1)
	if runs != 2 {
		t.Fatalf("expected 2 runs before dispose, got %d", runs)
	}

	scope.Dispose()
	count.Set(2)
	if runs != 2 {
		t.Errorf("effect re-ran after scope dispose, got %d runs", runs)
	}
}

func TestScopeDisposesChildren(t *testing.T) {
	count := New(0)
	runs := 0

	parent := NewScope(nil)
	child := NewScope(parent)
	child.Run(func() {
		NewEffect(func() Cleanup {
			_ = count.Get()
			runs++
			return nil
		})
	})

	parent.Dispose()
	count.Set(1)
	if runs != 1 {
		t.Errorf("child scope effect survived parent dispose, got %d runs", runs)
	}
}

func TestScopeOnDispose(t *testing.T) {
	scope := NewScope(nil)
	called := 0
	scope.OnDispose(func() { called++ })

	scope.Dispose()
	scope.Dispose() // idempotent

	if called != 1 {
		t.Errorf("expected dispose cleanup to run once, got %d", called)
	}
}

func TestScopeEffectOutsideScopeSurvives(t *testing.T) {
	count := New(0)
	runs := 0

	NewEffect(func() Cleanup {
		_ = count.Get()
		runs++
		return nil
	})

	scope := NewScope(nil)
	scope.Dispose()

	count.Set(1)
	if runs != 2 {
		t.Errorf("unscoped effect should keep running, got %d runs", runs)
	}
}
