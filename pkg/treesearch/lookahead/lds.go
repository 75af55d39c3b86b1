package lookahead

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/collection"
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

type ldsFrame[T any] struct {
	st   T
	disc int
}

// RunNaiveLDS explores a single LIFO in branch order, discarding a child
// the moment its accumulated discrepancy (the sum, over the path, of each
// node's zero-based index among its parent's branches) would exceed
// maxDiscrepancy. Visits nodes in DFS order intermixed by discrepancy.
func RunNaiveLDS[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, maxDiscrepancy int) error {
	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	stack := collection.NewLIFO[ldsFrame[T]]()
	stack.Push(ldsFrame[T]{st: root, disc: 0})

	for stack.Len() > 0 {
		if c.ShouldStop() {
			return nil
		}
		f, _ := stack.Pop()
		if f.st.IsTerminal() {
			continue
		}
		children := sequtil.DiscrepancyLimit(f.st.Branches(), maxDiscrepancy-f.disc)
		for i := len(children) - 1; i >= 0; i-- {
			if c.ShouldStop() {
				return nil
			}
			child := children[i]
			if c.VisitNode(child) == control.Discard {
				continue
			}
			stack.Push(ldsFrame[T]{st: child, disc: f.disc + i})
		}
	}
	return nil
}

// NaiveLDS returns a naive limited-discrepancy lookahead.
func NaiveLDS[T state.State[T, Q], Q quality.Quality[Q]](maxDiscrepancy int) Lookahead[T, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunNaiveLDS[T, Q](c, seed, maxDiscrepancy)
	}
}

// RunAnytimeLDS maintains maxDiscrepancy+1 stacks indexed by discrepancy;
// it always pops from the smallest non-empty stack, visiting each node as it
// is popped and pushing each child onto the stack matching its own
// discrepancy, and advances past a discrepancy level only once its stack is
// empty. Every discrepancy-K node is therefore fully visited before any
// discrepancy-(K+1) node begins.
func RunAnytimeLDS[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, maxDiscrepancy int) error {
	stacks := make([]*collection.LIFO[ldsFrame[T]], maxDiscrepancy+1)
	for i := range stacks {
		stacks[i] = collection.NewLIFO[ldsFrame[T]]()
	}
	stacks[0].Push(ldsFrame[T]{st: root, disc: 0})

	// A child's discrepancy is never less than its parent's, so children
	// only land on stack k or above and k never has to move backward.
	for k := 0; k <= maxDiscrepancy; {
		if c.ShouldStop() {
			return nil
		}
		if stacks[k].Len() == 0 {
			k++
			continue
		}
		f, _ := stacks[k].Pop()
		if c.VisitNode(f.st) == control.Discard {
			continue
		}
		if f.st.IsTerminal() {
			continue
		}
		children := sequtil.DiscrepancyLimit(f.st.Branches(), maxDiscrepancy-f.disc)
		for i, child := range children {
			newDisc := f.disc + i
			stacks[newDisc].Push(ldsFrame[T]{st: child, disc: newDisc})
		}
	}
	return nil
}

// AnytimeLDS returns an anytime limited-discrepancy lookahead.
func AnytimeLDS[T state.State[T, Q], Q quality.Quality[Q]](maxDiscrepancy int) Lookahead[T, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunAnytimeLDS[T, Q](c, seed, maxDiscrepancy)
	}
}

// LD is an alias for AnytimeLDS, matching the lookahead factory name used
// by rake and PILOT callers.
func LD[T state.State[T, Q], Q quality.Quality[Q]](maxDiscrepancy int) Lookahead[T, Q] {
	return AnytimeLDS[T, Q](maxDiscrepancy)
}

// RunNaiveLDSMutable is the mutable-state counterpart of RunNaiveLDS,
// applying and undoing choices in place along the single active path.
func RunNaiveLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, maxDiscrepancy int) error {
	type frame struct {
		disc    int
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
	stack.Push(&frame{disc: 0})

	pop := func() error {
		stack.Pop()
		if stack.Len() > 0 {
			return root.UndoLast()
		}
		return nil
	}

	for stack.Len() > 0 {
		if c.ShouldStop() {
			return nil
		}
		f, _ := stack.Pop()
		stack.Push(f)

		if f.choices == nil && f.idx == 0 {
			if root.IsTerminal() {
				if err := pop(); err != nil {
					return err
				}
				continue
			}
			f.choices = sequtil.DiscrepancyLimit(root.Choices(), maxDiscrepancy-f.disc)
		}

		if f.idx >= len(f.choices) {
			if err := pop(); err != nil {
				return err
			}
			continue
		}

		choice := f.choices[f.idx]
		childDisc := f.disc + f.idx
		f.idx++

		if err := root.Apply(choice); err != nil {
			return err
		}
		if c.ShouldStop() {
			return root.UndoLast()
		}
		if c.VisitNode(root) == control.Discard {
			if err := root.UndoLast(); err != nil {
				return err
			}
			continue
		}
		stack.Push(&frame{disc: childDisc})
	}
	return nil
}

// NaiveLDSMutable returns a naive limited-discrepancy lookahead over
// mutable states.
func NaiveLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](maxDiscrepancy int) MutableLookahead[T, C, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunNaiveLDSMutable[T, C, Q](c, seed, maxDiscrepancy)
	}
}

// RunAnytimeLDSMutable is the mutable-state counterpart of RunAnytimeLDS.
// Because several discrepancy stacks can be live at once, each stack entry
// carries a full state clone rather than sharing one mutable root.
func RunAnytimeLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, maxDiscrepancy int) error {
	stacks := make([]*collection.LIFO[ldsFrame[T]], maxDiscrepancy+1)
	for i := range stacks {
		stacks[i] = collection.NewLIFO[ldsFrame[T]]()
	}
	stacks[0].Push(ldsFrame[T]{st: root, disc: 0})

	// A child's discrepancy is never less than its parent's, so children
	// only land on stack k or above and k never has to move backward.
	for k := 0; k <= maxDiscrepancy; {
		if c.ShouldStop() {
			return nil
		}
		if stacks[k].Len() == 0 {
			k++
			continue
		}
		f, _ := stacks[k].Pop()
		if c.VisitNode(f.st) == control.Discard {
			continue
		}
		if f.st.IsTerminal() {
			continue
		}
		choices := sequtil.DiscrepancyLimit(f.st.Choices(), maxDiscrepancy-f.disc)
		for i, choice := range choices {
			child := f.st.Clone()
			if err := child.Apply(choice); err != nil {
				return err
			}
			newDisc := f.disc + i
			stacks[newDisc].Push(ldsFrame[T]{st: child, disc: newDisc})
		}
	}
	return nil
}

// AnytimeLDSMutable returns an anytime limited-discrepancy lookahead over
// mutable states.
func AnytimeLDSMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](maxDiscrepancy int) MutableLookahead[T, C, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunAnytimeLDSMutable[T, C, Q](c, seed, maxDiscrepancy)
	}
}

// LDMutable is an alias for AnytimeLDSMutable.
func LDMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](maxDiscrepancy int) MutableLookahead[T, C, Q] {
	return AnytimeLDSMutable[T, C, Q](maxDiscrepancy)
}
