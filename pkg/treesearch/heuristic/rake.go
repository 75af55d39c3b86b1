package heuristic

import (
	"math"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// RakeOptions configures rake search. A nil Lookahead defaults to greedy
// DFS (filter_width = 1).
type RakeOptions[T state.State[T, Q], Q quality.Quality[Q]] struct {
	RakeWidth int
	Lookahead lookahead.Lookahead[T, Q]
}

func defaultLookahead[T state.State[T, Q], Q quality.Quality[Q]]() lookahead.Lookahead[T, Q] {
	return lookahead.DFS[T, Q](1, math.MaxInt32, 0)
}

// Rake runs BFS from c.Initial() to a frontier of RakeWidth states, then
// runs the lookahead from each frontier node, accumulating into c.
func Rake[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts RakeOptions[T, Q]) error {
	inner := opts.Lookahead
	if inner == nil {
		inner = defaultLookahead[T, Q]()
	}
	return lookahead.Rake[T, Q](opts.RakeWidth, inner)(c, c.Initial())
}

// RakeAsync schedules Rake and returns immediately with a handle.
func RakeAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts RakeOptions[T, Q]) *Handle[T, Q] {
	return run(c, func() error { return Rake[T, Q](c, opts) })
}

// MutableRakeOptions configures rake search over mutable states.
type MutableRakeOptions[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]] struct {
	RakeWidth int
	Lookahead lookahead.MutableLookahead[T, C, Q]
}

func defaultMutableLookahead[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]]() lookahead.MutableLookahead[T, C, Q] {
	return lookahead.DFSMutable[T, C, Q](1, math.MaxInt32, 0)
}

// RakeMutable is the mutable-state counterpart of Rake.
func RakeMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableRakeOptions[T, C, Q]) error {
	inner := opts.Lookahead
	if inner == nil {
		inner = defaultMutableLookahead[T, C, Q]()
	}
	return lookahead.RakeMutable[T, C, Q](opts.RakeWidth, inner)(c, c.Initial())
}

// RakeMutableAsync schedules RakeMutable and returns immediately with a
// handle.
func RakeMutableAsync[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], opts MutableRakeOptions[T, C, Q]) *Handle[T, Q] {
	return run(c, func() error { return RakeMutable[T, C, Q](c, opts) })
}
