package parallel

import (
	"time"

	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/treesearch/internal/workpool"
)

// PILOTOptions configures parallel PILOT. A nil Lookahead defaults to
// greedy DFS (filter_width = 1).
type PILOTOptions[T state.State[T, Q], Q quality.Quality[Q]] struct {
	FilterWidth int
	DepthLimit  int
	Lookahead   lookahead.Lookahead[T, Q]
}

// PILOT evaluates, at each step, the FilterWidth candidate branches in
// parallel: each worker forks a control and estimates its branch's promise
// (directly, if terminal; via the lookahead under a wrapped fork,
// otherwise), merging the fork back into c so its visited count lands on
// the outer budget without polluting the outer incumbent. Estimates land
// in a per-branch slot, then the main goroutine reduces them in
// enumeration order once every worker has joined, so ties always resolve
// to the lowest index — the same order the sequential version uses —
// before committing the winner and proceeding to the next depth
// sequentially.
func PILOT[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts PILOTOptions[T, Q], popts Options) error {
	if opts.FilterWidth < 1 {
		return treesearch.NewArgumentError("filter_width", opts.FilterWidth, "must be >= 1")
	}
	if opts.DepthLimit < 1 {
		return treesearch.NewArgumentError("depth_limit", opts.DepthLimit, "must be >= 1")
	}
	inner := opts.Lookahead
	if inner == nil {
		inner = lookahead.DFS[T, Q](1, 1<<30, 0)
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

		stats := workpool.NewStats()
		g, _ := errgroup.WithContext(c.Context())
		g.SetLimit(popts.limit())

		// Each worker writes only to its own index, so no mutex is needed
		// here; the winner is reduced afterwards, single-threaded, in
		// enumeration order, so ties always resolve to the lowest index
		// regardless of worker completion order.
		estimates := make([]quality.Option[Q], len(branches))

		for idx, b := range branches {
			idx, b := idx, b
			stats.RecordSubmitted()
			g.Go(func() error {
				started := time.Now()
				if b.IsTerminal() {
					if q, has := b.Quality(); has {
						estimates[idx] = quality.Some(q)
					}
				} else {
					local := c.Fork(b, true, nil).Wrap()
					if err := inner(local, b); err != nil {
						stats.RecordFailed()
						return err
					}
					estimates[idx] = local.BestQuality()
					// Wrapped.VisitNode keeps improvements off the fork's own
					// incumbent, so this only adds the fork's visited count to
					// c and re-offers the unchanged inherited best.
					c.Merge(local.Outer())
				}
				stats.RecordCompleted(time.Since(started))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		stats.Finalize()
		logRegion(popts.Logger, "parallel_pilot_step", stats)

		var (
			chosen  = branches[0]
			bestQ   Q
			hasBest bool
		)
		for idx, b := range branches {
			q, has := estimates[idx].Get()
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
