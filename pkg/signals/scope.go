package signals

import (
	"sync"
	"sync/atomic"
)

// Scope collects the effects created while it is current so they can be
// torn down together. Scopes nest: disposing a scope disposes its child
// scopes as well.
type Scope struct {
	id uint64

	parent *Scope

	children   []*Scope
	childrenMu sync.Mutex

	effects   []*Effect
	effectsMu sync.Mutex

	cleanups   []func()
	cleanupsMu sync.Mutex

	disposed atomic.Bool
}

// NewScope creates a scope. A nil parent makes a root scope.
func NewScope(parent *Scope) *Scope {
	s := &Scope{
		id:     nextID(),
		parent: parent,
	}
	if parent != nil {
		parent.childrenMu.Lock()
		parent.children = append(parent.children, s)
		parent.childrenMu.Unlock()
	}
	return s
}

// Run executes fn with this scope current on the calling goroutine.
// Effects created inside fn are registered with the scope.
func (s *Scope) Run(fn func()) {
	old := setCurrentScope(s)
	defer setCurrentScope(old)
	fn()
}

// OnDispose registers fn to run when the scope is disposed.
func (s *Scope) OnDispose(fn func()) {
	if fn == nil {
		return
	}
	s.cleanupsMu.Lock()
	s.cleanups = append(s.cleanups, fn)
	s.cleanupsMu.Unlock()
}

// Dispose tears down all owned effects and child scopes, then runs the
// registered cleanups. Idempotent.
func (s *Scope) Dispose() {
	if s.disposed.Swap(true) {
		return
	}

	s.childrenMu.Lock()
	children := append([]*Scope(nil), s.children...)
	s.children = nil
	s.childrenMu.Unlock()
	for _, child := range children {
		child.Dispose()
	}

	s.effectsMu.Lock()
	effects := append([]*Effect(nil), s.effects...)
	s.effects = nil
	s.effectsMu.Unlock()
	for _, e := range effects {
		e.Dispose()
	}

	s.cleanupsMu.Lock()
	cleanups := append([]func(){}, s.cleanups...)
	s.cleanups = nil
	s.cleanupsMu.Unlock()
	for _, fn := range cleanups {
		fn()
	}
}

// register adds an effect to this scope.
func (s *Scope) register(e *Effect) {
	if s.disposed.Load() {
		return
	}
	s.effectsMu.Lock()
	s.effects = append(s.effects, e)
	s.effectsMu.Unlock()
}
