// Package heuristic implements the Heuristic Algorithm Engine: beam search
// (layered and monotonic), rake, PILOT, and limited-discrepancy search,
// each exposed as a top-level entry point that starts a fresh control or
// extends a caller-supplied one, plus an *Async twin.
package heuristic

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// BeamOptions configures layered beam search; see lookahead.BeamOptions.
type BeamOptions[T any] = lookahead.BeamOptions[T]

// Beam runs layered beam search rooted at c.Initial(), using c as the
// runtime control. The incumbent is read back from c after the call.
func Beam[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts BeamOptions[T]) error {
	return lookahead.RunBeam[T, Q](c, c.Initial(), opts)
}

// BeamAsync schedules Beam and returns immediately with a handle.
func BeamAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts BeamOptions[T]) *Handle[T, Q] {
	return run(c, func() error { return Beam[T, Q](c, opts) })
}

// MutableBeamOptions configures layered beam search over mutable states.
type MutableBeamOptions[T any] = lookahead.MutableBeamOptions[T]

// BeamMutable is the mutable-state counterpart of Beam.
func BeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableBeamOptions[T]) error {
	return lookahead.RunBeamMutable[T, C, Q](c, c.Initial(), opts)
}

// BeamMutableAsync schedules BeamMutable and returns immediately with a
// handle.
func BeamMutableAsync[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableBeamOptions[T]) *Handle[T, Q] {
	return run(c, func() error { return BeamMutable[T, C, Q](c, opts) })
}
