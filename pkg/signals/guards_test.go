package signals

import "testing"

func TestTypeGuards(t *testing.T) {
	sig := New(0)
	memo := NewMemo(func() int { return 0 })
	eff := NewEffect(func() Cleanup { return nil })

	if !IsSignal(sig) {
		t.Error("IsSignal(*Signal) = false, want true")
	}
	if IsSignal(memo) || IsSignal(eff) || IsSignal(42) || IsSignal(nil) {
		t.Error("IsSignal matched a non-signal value")
	}

	if !IsMemo(memo) {
		t.Error("IsMemo(*Memo) = false, want true")
	}
	if IsMemo(sig) || IsMemo(eff) || IsMemo("x") || IsMemo(nil) {
		t.Error("IsMemo matched a non-memo value")
	}

	if !IsEffect(eff) {
		t.Error("IsEffect(*Effect) = false, want true")
	}
	if IsEffect(sig) || IsEffect(memo) || IsEffect(0) || IsEffect(nil) {
		t.Error("IsEffect matched a non-effect value")
	}
}
