// Package lookahead provides the first-class lookahead abstraction — a
// callable that runs a sub-search rooted at a candidate state, updating a
// shared control — along with the prebuilt factories rake and PILOT are
// built from. Every factory here also backs the corresponding top-level
// heuristic.* entry point, so the beam/monotonic-beam/LDS algorithm bodies
// exist exactly once.
package lookahead

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/exhaustive"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// Lookahead is a sub-search over immutable states rooted at seed, reporting
// its progress through c (ordinarily a control.Wrapped so the lookahead's
// own incumbent does not pollute the caller's).
type Lookahead[T state.State[T, Q], Q quality.Quality[Q]] func(c control.Runtime[T, Q], seed T) error

// MutableLookahead is the mutable-state counterpart of Lookahead.
type MutableLookahead[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]] func(c control.Runtime[T, Q], seed T) error

// DFS returns a lookahead that runs bounded depth-first exhaustive search
// from the seed. This is the default rake/PILOT lookahead with
// filter_width = 1 (greedy, following only the first branch).
func DFS[T state.State[T, Q], Q quality.Quality[Q]](filterWidth, depthLimit, backtrackLimit int) Lookahead[T, Q] {
	opts := exhaustive.DFSOptions{FilterWidth: filterWidth, DepthLimit: depthLimit, BacktrackLimit: backtrackLimit}
	return func(c control.Runtime[T, Q], seed T) error {
		return exhaustive.DFS[T, Q](c, seed, opts)
	}
}

// DFSMutable is the mutable-state counterpart of DFS.
func DFSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](filterWidth, depthLimit, backtrackLimit int) MutableLookahead[T, C, Q] {
	opts := exhaustive.DFSOptions{FilterWidth: filterWidth, DepthLimit: depthLimit, BacktrackLimit: backtrackLimit}
	return func(c control.Runtime[T, Q], seed T) error {
		return exhaustive.DFSMutable[T, C, Q](c, seed, opts)
	}
}
