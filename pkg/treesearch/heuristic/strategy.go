package heuristic

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// Strategy is a named, parameter-validated, reusable heuristic algorithm.
// Construct one with the matching New*Strategy function; the constructor
// validates options once so Run never fails on bad configuration.
type Strategy[T state.State[T, Q], Q quality.Quality[Q]] interface {
	// Run executes the strategy against c, rooted at c.Initial().
	Run(c *control.Control[T, Q]) error
	// Name returns a short identifier for the strategy (e.g. "beam").
	Name() string
	// Description summarizes the strategy's behavior and parameters.
	Description() string
}

type beamStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ opts BeamOptions[T] }

// NewBeamStrategy validates opts and returns a reusable beam-search strategy.
func NewBeamStrategy[T state.State[T, Q], Q quality.Quality[Q]](opts BeamOptions[T]) (Strategy[T, Q], error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return beamStrategy[T, Q]{opts: opts}, nil
}

func (s beamStrategy[T, Q]) Run(c *control.Control[T, Q]) error { return Beam[T, Q](c, s.opts) }
func (s beamStrategy[T, Q]) Name() string                       { return "beam" }
func (s beamStrategy[T, Q]) Description() string {
	return "layered beam search: retains the top BeamWidth candidates per layer, ranked by Rank"
}

type monoBeamStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ opts MonoBeamOptions[T] }

// NewMonoBeamStrategy validates opts and returns a reusable monotonic beam
// search strategy.
func NewMonoBeamStrategy[T state.State[T, Q], Q quality.Quality[Q]](opts MonoBeamOptions[T]) (Strategy[T, Q], error) {
	if err := BeamOptions[T](opts).Validate(); err != nil {
		return nil, err
	}
	return monoBeamStrategy[T, Q]{opts: opts}, nil
}

func (s monoBeamStrategy[T, Q]) Run(c *control.Control[T, Q]) error { return MonoBeam[T, Q](c, s.opts) }
func (s monoBeamStrategy[T, Q]) Name() string                       { return "mono-beam" }
func (s monoBeamStrategy[T, Q]) Description() string {
	return "monotonic beam search: per-iteration slots claim candidates left to right, widening the beam never worsens an earlier slot"
}

type rakeStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ opts RakeOptions[T, Q] }

// NewRakeStrategy validates opts and returns a reusable rake-search
// strategy.
func NewRakeStrategy[T state.State[T, Q], Q quality.Quality[Q]](opts RakeOptions[T, Q]) (Strategy[T, Q], error) {
	if opts.RakeWidth < 1 {
		return nil, treesearch.NewArgumentError("rake_width", opts.RakeWidth, "must be >= 1")
	}
	return rakeStrategy[T, Q]{opts: opts}, nil
}

func (s rakeStrategy[T, Q]) Run(c *control.Control[T, Q]) error { return Rake[T, Q](c, s.opts) }
func (s rakeStrategy[T, Q]) Name() string                       { return "rake" }
func (s rakeStrategy[T, Q]) Description() string {
	return "sequential BFS to a rake of frontier nodes, then a lookahead launched from each"
}

type pilotStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ opts PILOTOptions[T, Q] }

// NewPILOTStrategy validates opts and returns a reusable PILOT strategy.
func NewPILOTStrategy[T state.State[T, Q], Q quality.Quality[Q]](opts PILOTOptions[T, Q]) (Strategy[T, Q], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	return pilotStrategy[T, Q]{opts: opts}, nil
}

func (s pilotStrategy[T, Q]) Run(c *control.Control[T, Q]) error { return PILOT[T, Q](c, s.opts) }
func (s pilotStrategy[T, Q]) Name() string                       { return "pilot" }
func (s pilotStrategy[T, Q]) Description() string {
	return "at each depth, runs a lookahead from every candidate branch and commits to the most promising one"
}

type naiveLDSStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ maxDiscrepancy int }

// NewNaiveLDSStrategy validates maxDiscrepancy and returns a reusable naive
// limited discrepancy search strategy.
func NewNaiveLDSStrategy[T state.State[T, Q], Q quality.Quality[Q]](maxDiscrepancy int) (Strategy[T, Q], error) {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return nil, err
	}
	return naiveLDSStrategy[T, Q]{maxDiscrepancy: maxDiscrepancy}, nil
}

func (s naiveLDSStrategy[T, Q]) Run(c *control.Control[T, Q]) error {
	return NaiveLDS[T, Q](c, s.maxDiscrepancy)
}
func (s naiveLDSStrategy[T, Q]) Name() string { return "naive-lds" }
func (s naiveLDSStrategy[T, Q]) Description() string {
	return "single-stack limited discrepancy search, pruning any path whose discrepancy exceeds the budget"
}

type anytimeLDSStrategy[T state.State[T, Q], Q quality.Quality[Q]] struct{ maxDiscrepancy int }

// NewAnytimeLDSStrategy validates maxDiscrepancy and returns a reusable
// anytime limited discrepancy search strategy.
func NewAnytimeLDSStrategy[T state.State[T, Q], Q quality.Quality[Q]](maxDiscrepancy int) (Strategy[T, Q], error) {
	if err := validateDiscrepancy(maxDiscrepancy); err != nil {
		return nil, err
	}
	return anytimeLDSStrategy[T, Q]{maxDiscrepancy: maxDiscrepancy}, nil
}

func (s anytimeLDSStrategy[T, Q]) Run(c *control.Control[T, Q]) error {
	return AnytimeLDS[T, Q](c, s.maxDiscrepancy)
}
func (s anytimeLDSStrategy[T, Q]) Name() string { return "anytime-lds" }
func (s anytimeLDSStrategy[T, Q]) Description() string {
	return "K+1-stack limited discrepancy search, visiting every discrepancy-K leaf before any discrepancy-(K+1) leaf"
}
