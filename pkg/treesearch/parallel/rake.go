package parallel

import (
	"time"

	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/collection"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/exhaustive"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/treesearch/internal/workpool"
)

// RakeOptions configures parallel rake search. A nil Lookahead defaults to
// greedy DFS (filter_width = 1).
type RakeOptions[T state.State[T, Q], Q quality.Quality[Q]] struct {
	RakeWidth int
	Lookahead lookahead.Lookahead[T, Q]
}

// Rake runs a sequential BFS to a frontier of RakeWidth states, then runs
// the lookahead over the frontier in parallel: the frontier is loaded into
// a lock-free ring, and each worker loops popping a node, forking, and
// running the lookahead, merging its fork back under the control's single
// mutex before taking the next node.
func Rake[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts RakeOptions[T, Q], popts Options) error {
	if opts.RakeWidth < 1 {
		return treesearch.NewArgumentError("rake_width", opts.RakeWidth, "must be >= 1")
	}
	inner := opts.Lookahead
	if inner == nil {
		inner = lookahead.DFS[T, Q](1, 1<<30, 0)
	}

	if c.ShouldStop() {
		return nil
	}
	root := c.Initial()
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	frontier, err := exhaustive.BFS[T, Q](c, root, exhaustive.BFSOptions{
		FilterWidth: 1 << 30,
		DepthLimit:  1 << 30,
		NodeLimit:   opts.RakeWidth,
	})
	if err != nil {
		return err
	}

	frontierLen := frontier.Len()
	if frontierLen == 0 {
		return nil
	}

	ringCap := frontierLen
	if ringCap < 2 {
		ringCap = 2
	}
	ring := collection.NewRing[T](ringCap)
	ring.FillFrom(frontier.Pop)

	stats := workpool.NewStats()
	g, _ := errgroup.WithContext(c.Context())
	workers := popts.limit()
	if workers <= 0 || workers > frontierLen {
		workers = frontierLen
	}

	for w := 0; w < workers; w++ {
		g.Go(func() error {
			for {
				n, ok := ring.TryPop()
				if !ok {
					return nil
				}
				if c.ShouldStop() {
					return nil
				}
				stats.RecordSubmitted()
				started := time.Now()
				local := c.Fork(n, true, nil)
				err := inner(local, n)
				c.Merge(local)
				if err != nil {
					stats.RecordFailed()
					return err
				}
				stats.RecordCompleted(time.Since(started))
			}
		})
	}
	err = g.Wait()
	stats.Finalize()
	logRegion(popts.Logger, "parallel_rake", stats)
	return err
}
