package signals

// observable is the untyped view shared by Signal[T] and Memo[T].
type observable interface {
	ID() uint64
	sigBase() *signalBase
}

func (s *Signal[T]) sigBase() *signalBase { return &s.base }
func (m *Memo[T]) sigBase() *signalBase   { return &m.base }

// IsSignal reports whether v is a *Signal of any element type.
func IsSignal(v any) bool {
	if v == nil {
		return false
	}
	if _, ok := v.(observable); ok {
		_, isMemo := v.(Listener)
		return !isMemo
	}
	return false
}

// IsMemo reports whether v is a *Memo of any element type.
func IsMemo(v any) bool {
	if v == nil {
		return false
	}
	_, isObservable := v.(observable)
	_, isListener := v.(Listener)
	return isObservable && isListener
}

// IsEffect reports whether v is an *Effect.
func IsEffect(v any) bool {
	_, ok := v.(*Effect)
	return ok
}
