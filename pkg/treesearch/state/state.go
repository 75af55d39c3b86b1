// Package state defines the model contract that every search algorithm in
// treesearch consumes: the capability set a partial solution must expose so
// the runtime and the algorithms can visit, bound, rank, and branch on it.
package state

import "iter"

// Qualifiable is the capability every state, terminal or not, must provide.
type Qualifiable[Q any] interface {
	// IsTerminal reports whether this state is a complete solution.
	IsTerminal() bool

	// Bound returns an admissible optimistic estimate of the best quality
	// reachable from this state. Must be monotone with depth in the
	// dominant direction (never claims more than the parent could).
	Bound() Q

	// Quality returns the state's quality and whether it is defined. It is
	// always defined when IsTerminal is true; non-terminal states may also
	// report a partial-solution quality.
	Quality() (Q, bool)
}

// State is an immutable partial solution: a node of the search tree whose
// successors are produced wholesale by Branches, in a deterministic,
// heuristic-preferred order (earlier is better by default).
type State[T any, Q any] interface {
	Qualifiable[Q]

	// Clone returns a deep, independent copy of the state, used by the
	// runtime control to snapshot an incumbent.
	Clone() T

	// Branches lazily yields this state's successors.
	Branches() iter.Seq[T]
}

// MutableState is a partial solution explored by applying and undoing
// choices in place, for models where cloning is expensive relative to
// apply/undo.
type MutableState[T any, C any, Q any] interface {
	Qualifiable[Q]

	// Clone returns a deep, independent copy of the state.
	Clone() T

	// Choices lazily yields the available branching decisions, in a
	// deterministic, heuristic-preferred order.
	Choices() iter.Seq[C]

	// Apply mutates the state by taking choice c. It must be reversible by
	// a matching UndoLast.
	Apply(c C) error

	// UndoLast reverses the most recently applied choice not yet undone.
	// Calling UndoLast with no outstanding Apply is a programmer error and
	// may panic.
	UndoLast() error
}
