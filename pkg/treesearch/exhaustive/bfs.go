package exhaustive

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/collection"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// BFSOptions configures a breadth-first traversal.
type BFSOptions struct {
	// FilterWidth caps the number of children expanded per node. Must be >= 1.
	FilterWidth int
	// DepthLimit caps the number of layers produced. Must be >= 1.
	DepthLimit int
	// NodeLimit caps the frontier size; 0 means unlimited. If hit mid-layer,
	// BFS returns early with the partial next layer plus any un-expanded
	// predecessors still queued in the current layer.
	NodeLimit int
}

func (o BFSOptions) validate() error {
	if o.FilterWidth < 1 {
		return treesearch.NewArgumentError("filter_width", o.FilterWidth, "must be >= 1")
	}
	if o.DepthLimit < 1 {
		return treesearch.NewArgumentError("depth_limit", o.DepthLimit, "must be >= 1")
	}
	return nil
}

// BFS runs breadth-first search over an immutable state tree rooted at
// root, returning the final layer reached as a FIFO, suitable for seeding
// rake/beam. If the node limit is hit mid-layer, the returned layer
// combines the partial next layer with any un-expanded predecessors so the
// result remains consistent for a resuming caller.
func BFS[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts BFSOptions) (*collection.FIFO[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	bl := collection.NewBiLevelFIFO[T]()
	if c.ShouldStop() {
		return bl.Current(), nil
	}
	if c.VisitNode(root) == control.Discard {
		return bl.Current(), nil
	}
	bl.PushCurrent(root)

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return bl.Current(), nil
		}
		expanded := false
		remaining := bl.LenCurrent()
		for i := 0; i < remaining; i++ {
			s, ok := bl.PopCurrent()
			if !ok {
				break
			}
			if c.ShouldStop() {
				bl.PushCurrent(s)
				return bl.Current(), nil
			}
			if s.IsTerminal() {
				continue
			}
			for _, child := range sequtil.Take(s.Branches(), opts.FilterWidth) {
				if c.ShouldStop() {
					return bl.Current(), nil
				}
				if c.VisitNode(child) == control.Discard {
					continue
				}
				bl.PushNext(child)
				expanded = true
				if opts.NodeLimit > 0 && bl.LenNext() >= opts.NodeLimit {
					bl.Swap()
					return bl.Current(), nil
				}
			}
		}
		if !expanded {
			break
		}
		bl.Swap()
	}
	return bl.Current(), nil
}

// BFSMutable runs breadth-first search over mutable states. Because the
// frontier holds many simultaneously-live states, each branch is realized
// by cloning the parent and applying the choice to the clone (undo/apply
// in place cannot coexist with a multi-state frontier).
func BFSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts BFSOptions) (*collection.FIFO[T], error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	bl := collection.NewBiLevelFIFO[T]()
	if c.ShouldStop() {
		return bl.Current(), nil
	}
	if c.VisitNode(root) == control.Discard {
		return bl.Current(), nil
	}
	bl.PushCurrent(root)

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return bl.Current(), nil
		}
		expanded := false
		remaining := bl.LenCurrent()
		for i := 0; i < remaining; i++ {
			s, ok := bl.PopCurrent()
			if !ok {
				break
			}
			if c.ShouldStop() {
				bl.PushCurrent(s)
				return bl.Current(), nil
			}
			if s.IsTerminal() {
				continue
			}
			for _, choice := range sequtil.Take(s.Choices(), opts.FilterWidth) {
				if c.ShouldStop() {
					return bl.Current(), nil
				}
				child := s.Clone()
				if err := child.Apply(choice); err != nil {
					return nil, err
				}
				if c.VisitNode(child) == control.Discard {
					continue
				}
				bl.PushNext(child)
				expanded = true
				if opts.NodeLimit > 0 && bl.LenNext() >= opts.NodeLimit {
					bl.Swap()
					return bl.Current(), nil
				}
			}
		}
		if !expanded {
			break
		}
		bl.Swap()
	}
	return bl.Current(), nil
}
