// Package exhaustive implements the shared depth-first and breadth-first
// primitives used standalone and as building blocks for the heuristic
// engine and lookahead factories.
package exhaustive

import (
	treesearch "github.com/gitrdm/treesearch/pkg/treesearch"
	"github.com/gitrdm/treesearch/pkg/treesearch/collection"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// DFSOptions configures a depth-first traversal.
type DFSOptions struct {
	// FilterWidth caps the number of children expanded per node. Must be >= 1.
	FilterWidth int
	// DepthLimit caps the depth at which nodes stop expanding. Must be >= 1.
	DepthLimit int
	// BacktrackLimit caps the number of completed backtracks; 0 means
	// unlimited.
	BacktrackLimit int
}

func (o DFSOptions) validate() error {
	if o.FilterWidth < 1 {
		return treesearch.NewArgumentError("filter_width", o.FilterWidth, "must be >= 1")
	}
	if o.DepthLimit < 1 {
		return treesearch.NewArgumentError("depth_limit", o.DepthLimit, "must be >= 1")
	}
	return nil
}

// DFS runs depth-first search over an immutable state tree rooted at root,
// visiting every node through c.VisitNode and honoring Discard.
func DFS[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts DFSOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	type frame struct {
		st       T
		depth    int
		children []T
		idx      int
	}

	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	stack := collection.NewLIFO[*frame]()
	stack.Push(&frame{st: root, depth: 0})
	backtracks := 0

	for stack.Len() > 0 {
		if c.ShouldStop() {
			return nil
		}
		f, _ := stack.Pop()

		if f.children == nil && f.idx == 0 {
			if f.depth >= opts.DepthLimit || f.st.IsTerminal() {
				backtracks++
				if opts.BacktrackLimit > 0 && backtracks >= opts.BacktrackLimit {
					return nil
				}
				continue
			}
			f.children = sequtil.Take(f.st.Branches(), opts.FilterWidth)
		}

		if f.idx >= len(f.children) {
			backtracks++
			if opts.BacktrackLimit > 0 && backtracks >= opts.BacktrackLimit {
				return nil
			}
			continue
		}

		child := f.children[f.idx]
		f.idx++
		stack.Push(f) // resume this frame at the next child later

		if c.ShouldStop() {
			return nil
		}
		if c.VisitNode(child) == control.Discard {
			continue
		}
		stack.Push(&frame{st: child, depth: f.depth + 1})
	}
	return nil
}

// DFSMutable runs depth-first search over a mutable state, applying and
// undoing choices in place. root is mutated during the search and restored
// to its original value (choices, bound, quality, terminal status
// indistinguishable from before) on return.
func DFSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts DFSOptions) error {
	if err := opts.validate(); err != nil {
		return err
	}

	type frame struct {
		depth   int
		choices []C
		idx     int
	}

	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	stack := collection.NewLIFO[*frame]()
	stack.Push(&frame{depth: 0})
	backtracks := 0

	pop := func() error {
		stack.Pop()
		backtracks++
		if stack.Len() > 0 {
			return root.UndoLast()
		}
		return nil
	}

	// unwind undoes every choice still applied along the current path, so
	// root is back at its original value when the search stops early.
	unwind := func() error {
		for stack.Len() > 1 {
			stack.Pop()
			if err := root.UndoLast(); err != nil {
				return err
			}
		}
		return nil
	}

	for stack.Len() > 0 {
		if c.ShouldStop() {
			return unwind()
		}
		f, _ := stack.Pop()
		stack.Push(f)

		if f.choices == nil && f.idx == 0 {
			if f.depth >= opts.DepthLimit || root.IsTerminal() {
				if err := pop(); err != nil {
					return err
				}
				if opts.BacktrackLimit > 0 && backtracks >= opts.BacktrackLimit {
					return unwind()
				}
				continue
			}
			f.choices = sequtil.Take(root.Choices(), opts.FilterWidth)
		}

		if f.idx >= len(f.choices) {
			if err := pop(); err != nil {
				return err
			}
			if opts.BacktrackLimit > 0 && backtracks >= opts.BacktrackLimit {
				return unwind()
			}
			continue
		}

		choice := f.choices[f.idx]
		f.idx++

		if err := root.Apply(choice); err != nil {
			return err
		}
		if c.ShouldStop() {
			if err := root.UndoLast(); err != nil {
				return err
			}
			return unwind()
		}
		if c.VisitNode(root) == control.Discard {
			if err := root.UndoLast(); err != nil {
				return err
			}
			continue
		}
		stack.Push(&frame{depth: f.depth + 1})
	}
	return nil
}
