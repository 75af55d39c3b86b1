package lookahead

import (
	"math"

	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/exhaustive"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// Rake returns a lookahead that runs breadth-first search from the seed
// until the frontier reaches rakeWidth states (or the tree is exhausted),
// then runs inner from each frontier node. Depth and per-node branching are
// left unbounded for the BFS phase; rakeWidth and the outer control's own
// limits are what actually bound the work.
func Rake[T state.State[T, Q], Q quality.Quality[Q]](rakeWidth int, inner Lookahead[T, Q]) Lookahead[T, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		if rakeWidth < 1 {
			return treesearch.NewArgumentError("rake_width", rakeWidth, "must be >= 1")
		}
		frontier, err := exhaustive.BFS[T, Q](c, seed, exhaustive.BFSOptions{
			FilterWidth: math.MaxInt32,
			DepthLimit:  math.MaxInt32,
			NodeLimit:   rakeWidth,
		})
		if err != nil {
			return err
		}
		var innerErr error
		frontier.Each(func(n T) bool {
			if c.ShouldStop() {
				return false
			}
			if err := inner(c, n); err != nil {
				innerErr = err
				return false
			}
			return true
		})
		return innerErr
	}
}

// RakeMutable is the mutable-state counterpart of Rake.
func RakeMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](rakeWidth int, inner MutableLookahead[T, C, Q]) MutableLookahead[T, C, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		if rakeWidth < 1 {
			return treesearch.NewArgumentError("rake_width", rakeWidth, "must be >= 1")
		}
		frontier, err := exhaustive.BFSMutable[T, C, Q](c, seed, exhaustive.BFSOptions{
			FilterWidth: math.MaxInt32,
			DepthLimit:  math.MaxInt32,
			NodeLimit:   rakeWidth,
		})
		if err != nil {
			return err
		}
		var innerErr error
		frontier.Each(func(n T) bool {
			if c.ShouldStop() {
				return false
			}
			if err := inner(c, n); err != nil {
				innerErr = err
				return false
			}
			return true
		})
		return innerErr
	}
}
