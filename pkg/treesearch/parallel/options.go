// Package parallel implements the Parallel Execution Layer: beam, rake, and
// PILOT variants that fan a layer/frontier/branch set out across workers
// under one fork-join region per layer/step, merging results back under a
// single mutex per region.
package parallel

import (
	"runtime"

	"github.com/gitrdm/treesearch/pkg/treesearch/tslog"
)

// Options configures a parallel region.
type Options struct {
	// MaxParallelism caps the number of concurrent workers; -1 means
	// unbounded (errgroup.SetLimit(-1), up to hardware availability).
	MaxParallelism int
	// Logger receives per-region telemetry (worker counts, timing) at
	// Debug level when set.
	Logger tslog.Logger
}

// limit resolves the errgroup.SetLimit argument: MaxParallelism verbatim
// when set (including -1 for unbounded), or the host's CPU count as the
// sensible default for a zero-value Options.
func (o Options) limit() int {
	if o.MaxParallelism == 0 {
		return runtime.NumCPU()
	}
	return o.MaxParallelism
}

// chunk splits n items into at most workers contiguous, near-equal
// partitions, returning [start, end) bounds. workers <= 0 means unbounded
// (one partition per item, capped at n).
func chunk(n, workers int) [][2]int {
	if n == 0 {
		return nil
	}
	if workers <= 0 || workers > n {
		workers = n
	}
	base := n / workers
	rem := n % workers
	parts := make([][2]int, 0, workers)
	start := 0
	for i := 0; i < workers; i++ {
		size := base
		if i < rem {
			size++
		}
		if size == 0 {
			continue
		}
		parts = append(parts, [2]int{start, start + size})
		start += size
	}
	return parts
}
