// Package screen ties API calls to the lifetime of the screen that issued them.
package screen

import (
	"context"
	"sync"
)

// Scope is the cancellation token of one screen. Disposing it cancels every
// in-flight request started with its context and stops results from being
// applied afterwards.
type Scope struct {
	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	disposed    bool
	generations map[string]uint64
}

// Token identifies one request for a keyed piece of state.
type Token struct {
	key string
	gen uint64
}

// New creates a scope whose context derives from parent.
func New(parent context.Context) *Scope {
	ctx, cancel := context.WithCancel(parent)
	return &Scope{ctx: ctx, cancel: cancel, generations: make(map[string]uint64)}
}

// Context is cancelled when the screen is disposed.
func (s *Scope) Context() context.Context {
	return s.ctx
}

// Dispose tears the scope down. It is safe to call more than once.
func (s *Scope) Dispose() {
	s.mu.Lock()
	s.disposed = true
	s.mu.Unlock()
	s.cancel()
}

// Mounted reports whether the screen is still alive.
func (s *Scope) Mounted() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return !s.disposed
}

// Apply runs fn only while mounted and reports whether it ran. fn runs with
// the scope locked, so it must not call back into the scope.
func (s *Scope) Apply(fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed {
		return false
	}
	fn()
	return true
}

// Begin starts a request for key, superseding any earlier one.
func (s *Scope) Begin(key string) Token {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generations[key]++
	return Token{key: key, gen: s.generations[key]}
}

// ApplyLatest runs fn only while mounted and only if tok is the newest
// request for its key. Stale responses are dropped.
func (s *Scope) ApplyLatest(tok Token, fn func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.disposed || s.generations[tok.key] != tok.gen {
		return false
	}
	fn()
	return true
}

// Go runs call in the background under key and hands its result to apply if
// it is still current when it completes. The returned channel is closed once
// the call has finished, whether or not apply ran.
func Go[T any](s *Scope, key string, call func(ctx context.Context) (T, error), apply func(T, error)) <-chan struct{} {
	tok := s.Begin(key)
	done := make(chan struct{})
	go func() {
		defer close(done)
		v, err := call(s.ctx)
		s.ApplyLatest(tok, func() { apply(v, err) })
	}()
	return done
}
