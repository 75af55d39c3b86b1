package heuristic

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// MonoBeamOptions configures monotonic beam search; see
// lookahead.MonoBeamOptions.
type MonoBeamOptions[T any] = lookahead.MonoBeamOptions[T]

// MonoBeam runs monotonic beam search rooted at c.Initial(). Widening
// BeamWidth for the same problem and Rank can only add solutions, never
// worsen the one a narrower beam already found.
func MonoBeam[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts MonoBeamOptions[T]) error {
	return lookahead.RunMonoBeam[T, Q](c, c.Initial(), opts)
}

// MonoBeamAsync schedules MonoBeam and returns immediately with a handle.
func MonoBeamAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts MonoBeamOptions[T]) *Handle[T, Q] {
	return run(c, func() error { return MonoBeam[T, Q](c, opts) })
}

// MutableMonoBeamOptions configures monotonic beam search over mutable
// states.
type MutableMonoBeamOptions[T any] = lookahead.MutableMonoBeamOptions[T]

// MonoBeamMutable is the mutable-state counterpart of MonoBeam.
func MonoBeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableMonoBeamOptions[T]) error {
	return lookahead.RunMonoBeamMutable[T, C, Q](c, c.Initial(), opts)
}

// MonoBeamMutableAsync schedules MonoBeamMutable and returns immediately
// with a handle.
func MonoBeamMutableAsync[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableMonoBeamOptions[T]) *Handle[T, Q] {
	return run(c, func() error { return MonoBeamMutable[T, C, Q](c, opts) })
}
