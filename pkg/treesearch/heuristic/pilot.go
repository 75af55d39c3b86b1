package heuristic

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// PILOTOptions configures the PILOT method. A nil Lookahead defaults to
// greedy DFS (filter_width = 1).
type PILOTOptions[T state.State[T, Q], Q quality.Quality[Q]] struct {
	FilterWidth int
	DepthLimit  int
	Lookahead   lookahead.Lookahead[T, Q]
}

func (o PILOTOptions[T, Q]) validate() error {
	if o.FilterWidth < 1 {
		return treesearch.NewArgumentError("filter_width", o.FilterWidth, "must be >= 1")
	}
	if o.DepthLimit < 1 {
		return treesearch.NewArgumentError("depth_limit", o.DepthLimit, "must be >= 1")
	}
	return nil
}

// PILOT walks from c.Initial(), at each step enumerating the first
// FilterWidth branches, estimating each non-terminal branch's promise with
// a wrapped lookahead (so the estimate never pollutes the outer
// incumbent), and advancing to the best-estimated branch. If no branch has
// a defined estimate, it falls back to the first enumerated branch so the
// walk can still make progress. Terminates when the chosen branch is
// terminal, no branches remain, DepthLimit is reached, or the outer
// control says stop.
func PILOT[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts PILOTOptions[T, Q]) error {
	if err := opts.validate(); err != nil {
		return err
	}
	inner := opts.Lookahead
	if inner == nil {
		inner = defaultLookahead[T, Q]()
	}

	current := c.Initial()
	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(current) == control.Discard {
		return nil
	}

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() || current.IsTerminal() {
			return nil
		}

		branches := sequtil.Take(current.Branches(), opts.FilterWidth)
		if len(branches) == 0 {
			return nil
		}

		var (
			chosen  = branches[0]
			bestQ   Q
			hasBest bool
		)
		for _, b := range branches {
			if c.ShouldStop() {
				return nil
			}
			var (
				q   Q
				has bool
			)
			if b.IsTerminal() {
				q, has = b.Quality()
			} else {
				w := c.Wrap()
				if err := inner(w, b); err != nil {
					return err
				}
				q, has = w.BestQuality().Get()
			}
			if has && (!hasBest || q.Better(bestQ)) {
				hasBest = true
				bestQ = q
				chosen = b
			}
		}

		if c.ShouldStop() {
			return nil
		}
		if c.VisitNode(chosen) == control.Discard {
			return nil
		}
		current = chosen
	}
	return nil
}

// PILOTAsync schedules PILOT and returns immediately with a handle.
func PILOTAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts PILOTOptions[T, Q]) *Handle[T, Q] {
	return run(c, func() error { return PILOT[T, Q](c, opts) })
}
