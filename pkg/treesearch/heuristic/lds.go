package heuristic

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

func validateDiscrepancy(maxDiscrepancy int) error {
	if maxDiscrepancy < 0 {
		return treesearch.NewArgumentError("max_discrepancy", maxDiscrepancy, "must be >= 0")
	}
	return nil
}

// NaiveLDS runs naive limited-discrepancy search rooted at c.Initial().
func NaiveLDS[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) error {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return err
	}
	return lookahead.RunNaiveLDS[T, Q](c, c.Initial(), maxDiscrepancy)
}

// NaiveLDSAsync schedules NaiveLDS and returns immediately with a handle.
func NaiveLDSAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) *Handle[T, Q] {
	return run(c, func() error { return NaiveLDS[T, Q](c, maxDiscrepancy) })
}

// NaiveLDSMutable is the mutable-state counterpart of NaiveLDS.
func NaiveLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) error {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return err
	}
	return lookahead.RunNaiveLDSMutable[T, C, Q](c, c.Initial(), maxDiscrepancy)
}

// NaiveLDSMutableAsync schedules NaiveLDSMutable and returns immediately
// with a handle.
func NaiveLDSMutableAsync[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) *Handle[T, Q] {
	return run(c, func() error { return NaiveLDSMutable[T, C, Q](c, maxDiscrepancy) })
}

// AnytimeLDS runs anytime limited-discrepancy search rooted at c.Initial().
// All discrepancy-K nodes are visited before any discrepancy-(K+1) node.
func AnytimeLDS[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) error {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return err
	}
	return lookahead.RunAnytimeLDS[T, Q](c, c.Initial(), maxDiscrepancy)
}

// AnytimeLDSAsync schedules AnytimeLDS and returns immediately with a
// handle.
func AnytimeLDSAsync[T state.State[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) *Handle[T, Q] {
	return run(c, func() error { return AnytimeLDS[T, Q](c, maxDiscrepancy) })
}

// AnytimeLDSMutable is the mutable-state counterpart of AnytimeLDS.
func AnytimeLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) error {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return err
	}
	return lookahead.RunAnytimeLDSMutable[T, C, Q](c, c.Initial(), maxDiscrepancy)
}

// AnytimeLDSMutableAsync schedules AnytimeLDSMutable and returns
// immediately with a handle.
func AnytimeLDSMutableAsync[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c *control.Control[T, Q], maxDiscrepancy int) *Handle[T, Q] {
	return run(c, func() error { return AnytimeLDSMutable[T, C, Q](c, maxDiscrepancy) })
}
