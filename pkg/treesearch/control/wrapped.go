package control

import (
	"sync"

	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
)

// Wrapped is a per-lookahead control used by PILOT-style algorithms: it
// delegates should-stop and node accounting to the outer control (so the
// lookahead shares the outer's limits), and uses the outer's incumbent for
// bound pruning, but tracks its own best quality/state so a lookahead's
// result does not pollute the outer incumbent — the caller reads only
// Wrapped.Best to decide between branches.
type Wrapped[T Node[T, Q], Q quality.Quality[Q]] struct {
	outer *Control[T, Q]

	mu        sync.Mutex
	hasBest   bool
	bestQ     Q
	bestState T
}

// Wrap creates a wrapped control delegating to c.
func (c *Control[T, Q]) Wrap() *Wrapped[T, Q] {
	return &Wrapped[T, Q]{outer: c}
}

// Runtime is the minimal surface an algorithm needs from a control: either
// a *Control or a *Wrapped satisfies it, which is what lets lookaheads run
// against whichever one the caller (PILOT, rake, a plain top-level search)
// supplies.
type Runtime[T Node[T, Q], Q quality.Quality[Q]] interface {
	ShouldStop() bool
	VisitNode(s T) VisitResult
}

var (
	_ Runtime[exampleNode, quality.Minimize] = (*Control[exampleNode, quality.Minimize])(nil)
	_ Runtime[exampleNode, quality.Minimize] = (*Wrapped[exampleNode, quality.Minimize])(nil)
)

// exampleNode is a minimal compile-time witness type used only to assert,
// above, that Control and Wrapped both satisfy Runtime.
type exampleNode struct{}

func (exampleNode) IsTerminal() bool                { return true }
func (exampleNode) Bound() quality.Minimize          { return 0 }
func (exampleNode) Quality() (quality.Minimize, bool) { return 0, true }
func (exampleNode) Clone() exampleNode              { return exampleNode{} }

// ShouldStop delegates to the outer control.
func (w *Wrapped[T, Q]) ShouldStop() bool { return w.outer.ShouldStop() }

// VisitNode increments the outer control's visited count, prunes using the
// outer's incumbent, and records improvements only in this wrapped control.
func (w *Wrapped[T, Q]) VisitNode(s T) VisitResult {
	w.outer.visited.Add(1)

	if _, outerQ, ok := w.outer.Best(); ok && !s.Bound().Better(outerQ) {
		return Discard
	}

	if q, ok := s.Quality(); ok {
		w.mu.Lock()
		if !w.hasBest || q.Better(w.bestQ) {
			w.hasBest = true
			w.bestQ = q
			w.bestState = s.Clone()
		}
		w.mu.Unlock()
	}
	return Ok
}

// Best returns this wrapped control's own best state/quality, independent
// of the outer incumbent.
func (w *Wrapped[T, Q]) Best() (T, Q, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bestState, w.bestQ, w.hasBest
}

// BestQuality returns this wrapped control's own best quality as an Option.
func (w *Wrapped[T, Q]) BestQuality() quality.Option[Q] {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.hasBest {
		return quality.None[Q]()
	}
	return quality.Some(w.bestQ)
}

// Outer returns the control this wrapped control delegates to.
func (w *Wrapped[T, Q]) Outer() *Control[T, Q] { return w.outer }
