package lookahead

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/collection"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// BeamOptions configures layered beam search. Rank ranks a candidate state;
// lower is better, and must be stable across calls for equal states.
type BeamOptions[T any] struct {
	BeamWidth   int
	FilterWidth int
	DepthLimit  int
	Rank        func(T) float32
}

func (o BeamOptions[T]) validate() error {
	if o.BeamWidth < 1 {
		return treesearch.NewArgumentError("beam_width", o.BeamWidth, "must be >= 1")
	}
	if o.FilterWidth < 1 {
		return treesearch.NewArgumentError("filter_width", o.FilterWidth, "must be >= 1")
	}
	if o.DepthLimit < 1 {
		return treesearch.NewArgumentError("depth_limit", o.DepthLimit, "must be >= 1")
	}
	if o.FilterWidth == 1 && o.BeamWidth > 1 {
		return treesearch.NewArgumentError("beam_width", o.BeamWidth, "must be 1 when filter_width == 1")
	}
	if o.Rank == nil {
		return treesearch.NewArgumentError("rank", nil, "must not be nil")
	}
	return nil
}

// Validate reports whether opts is a legal parameter set, the same check
// RunBeam performs on entry. Exposed for callers (the Parallel Execution
// Layer) that need to validate before partitioning work across workers.
func (o BeamOptions[T]) Validate() error { return o.validate() }

// RunBeam runs layered beam search against c, rooted at root. Shared by the
// Beam lookahead factory and heuristic.Beam so the algorithm body exists
// once.
func RunBeam[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts BeamOptions[T]) error {
	if err := opts.validate(); err != nil {
		return err
	}

	layer := collection.NewPriorityBiLevelFIFO[T]()
	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}
	layer.PushCurrent(root)

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return nil
		}
		remaining := layer.LenCurrent()
		if remaining == 0 {
			break
		}
		expanded := false
		for i := 0; i < remaining; i++ {
			s, ok := layer.PopCurrent()
			if !ok {
				break
			}
			if s.IsTerminal() {
				continue
			}
			for _, child := range sequtil.Take(s.Branches(), opts.FilterWidth) {
				if c.ShouldStop() {
					return nil
				}
				if c.VisitNode(child) == control.Discard {
					continue
				}
				layer.PushNext(child, opts.Rank(child))
				expanded = true
			}
		}
		if !expanded {
			break
		}
		layer.AdvanceLayer(opts.BeamWidth)
	}
	return nil
}

// Beam returns a beam-search lookahead.
func Beam[T state.State[T, Q], Q quality.Quality[Q]](opts BeamOptions[T]) Lookahead[T, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunBeam[T, Q](c, seed, opts)
	}
}

// MutableBeamOptions configures layered beam search over mutable states.
// Branches are realized by cloning, same rationale as exhaustive.BFSMutable.
type MutableBeamOptions[T any] struct {
	BeamWidth   int
	FilterWidth int
	DepthLimit  int
	Rank        func(T) float32
}

func (o MutableBeamOptions[T]) validate() error {
	return BeamOptions[T](o).validate()
}

// RunBeamMutable is the mutable-state counterpart of RunBeam.
func RunBeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts MutableBeamOptions[T]) error {
	if err := opts.validate(); err != nil {
		return err
	}

	layer := collection.NewPriorityBiLevelFIFO[T]()
	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}
	layer.PushCurrent(root)

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return nil
		}
		remaining := layer.LenCurrent()
		if remaining == 0 {
			break
		}
		expanded := false
		for i := 0; i < remaining; i++ {
			s, ok := layer.PopCurrent()
			if !ok {
				break
			}
			if s.IsTerminal() {
				continue
			}
			for _, choice := range sequtil.Take(s.Choices(), opts.FilterWidth) {
				if c.ShouldStop() {
					return nil
				}
				child := s.Clone()
				if err := child.Apply(choice); err != nil {
					return err
				}
				if c.VisitNode(child) == control.Discard {
					continue
				}
				layer.PushNext(child, opts.Rank(child))
				expanded = true
			}
		}
		if !expanded {
			break
		}
		layer.AdvanceLayer(opts.BeamWidth)
	}
	return nil
}

// BeamMutable returns a beam-search lookahead over mutable states.
func BeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](opts MutableBeamOptions[T]) MutableLookahead[T, C, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunBeamMutable[T, C, Q](c, seed, opts)
	}
}
