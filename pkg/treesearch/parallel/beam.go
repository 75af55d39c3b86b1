package parallel

import (
	"sort"
	"sync"
	"time"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
	"github.com/gitrdm/treesearch/pkg/treesearch/tslog"
	"golang.org/x/sync/errgroup"

	"github.com/gitrdm/treesearch/internal/workpool"
)

type rankedItem[T any] struct {
	item T
	rank float32
}

// Beam runs layered beam search, partitioning each layer's states across
// workers. Each worker forks a control (inheriting the remaining budget and
// current incumbent, so it can prune immediately), expands its slice of the
// layer into a local candidate list, then merges under a single mutex: the
// local candidates join the unified next layer and the local control's
// visited count and incumbent are absorbed into c. Once every worker has
// joined, the local lists are joined in partition order and the unified
// next layer is stably sorted by rank and truncated to BeamWidth, so rank
// ties resolve in the same order as in the sequential Beam whichever worker
// finished first. A worker prunes only against the incumbent it inherited
// at fork time and its own finds, so a child the sequential Beam would
// discard against an incumbent found earlier in the same layer can still
// enter the next layer.
func Beam[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], opts lookahead.BeamOptions[T], popts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}

	if c.ShouldStop() {
		return nil
	}
	root := c.Initial()
	if c.VisitNode(root) == control.Discard {
		return nil
	}
	current := []T{root}

	for depth := 0; depth < opts.DepthLimit && len(current) > 0; depth++ {
		if c.ShouldStop() {
			return nil
		}

		parts := chunk(len(current), popts.MaxParallelism)
		var (
			mu     sync.Mutex
			locals = make([][]rankedItem[T], len(parts))
		)
		stats := workpool.NewStats()

		g, _ := errgroup.WithContext(c.Context())
		g.SetLimit(popts.limit())

		for pi, part := range parts {
			pi, part := pi, part
			stats.RecordSubmitted()
			g.Go(func() error {
				started := time.Now()
				local := c.Fork(current[part[0]], true, nil)
				var localNext []rankedItem[T]
				for i := part[0]; i < part[1]; i++ {
					s := current[i]
					if local.ShouldStop() {
						break
					}
					if s.IsTerminal() {
						continue
					}
					for _, child := range sequtil.Take(s.Branches(), opts.FilterWidth) {
						if local.ShouldStop() {
							break
						}
						if local.VisitNode(child) == control.Discard {
							continue
						}
						localNext = append(localNext, rankedItem[T]{item: child, rank: opts.Rank(child)})
					}
				}
				mu.Lock()
				locals[pi] = localNext
				c.Merge(local)
				mu.Unlock()
				stats.RecordCompleted(time.Since(started))
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		stats.Finalize()
		logRegion(popts.Logger, "parallel_beam_layer", stats)

		var next []rankedItem[T]
		for _, l := range locals {
			next = append(next, l...)
		}
		sort.SliceStable(next, func(i, j int) bool { return next[i].rank < next[j].rank })
		k := opts.BeamWidth
		if k > len(next) {
			k = len(next)
		}
		current = make([]T, k)
		for i := 0; i < k; i++ {
			current[i] = next[i].item
		}
	}
	return nil
}

// logRegion emits one debug event summarizing a finished parallel region.
// A nil logger is the package default (tslog's no-op contract) and is
// never dereferenced here because Debug() on a nil *logiface.Logger
// already returns a no-op builder.
func logRegion(logger tslog.Logger, region string, stats *workpool.Stats) {
	snap := stats.Snapshot()
	logger.Debug().
		Field("region", region).
		Field("stats", snap.String()).
		Log("parallel region merged")
}
