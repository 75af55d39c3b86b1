package main

import (
	"iter"

	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
)

// binaryTree is a synthetic full binary tree: each node branches left
// (choice 0) then right (choice 1), so a path's discrepancy is just its
// count of right turns. target is the unique path (by choice sequence)
// that earns the top quality; every other leaf scores zero. This is
// exactly the shape scenario 3 of the testable-properties table needs: a
// 4-level tree whose optimal leaf sits at a known discrepancy.
type binaryTree struct {
	path   []int
	depth  int
	target []int
}

func newBinaryTree(target []int) binaryTree {
	return binaryTree{path: nil, depth: len(target), target: target}
}

func (s binaryTree) IsTerminal() bool { return len(s.path) >= s.depth }

func (s binaryTree) Bound() quality.Maximize { return quality.Maximize(100) }

func (s binaryTree) Quality() (quality.Maximize, bool) {
	if !s.IsTerminal() {
		return 0, false
	}
	for i, c := range s.path {
		if c != s.target[i] {
			return quality.Maximize(0), true
		}
	}
	return quality.Maximize(100), true
}

func (s binaryTree) Clone() binaryTree {
	path := make([]int, len(s.path))
	copy(path, s.path)
	return binaryTree{path: path, depth: s.depth, target: s.target}
}

func (s binaryTree) Branches() iter.Seq[binaryTree] {
	return func(yield func(binaryTree) bool) {
		if s.IsTerminal() {
			return
		}
		for choice := 0; choice < 2; choice++ {
			child := s.Clone()
			child.path = append(child.path, choice)
			if !yield(child) {
				return
			}
		}
	}
}

// deepBinaryTree is an unbounded (for practical purposes) full binary
// tree with no rewarding leaf at all, used to demonstrate that a runtime
// limit actually bounds wall-clock time: exhaustive search over it would
// otherwise run until the process is killed.
type deepBinaryTree struct {
	depth    int
	maxDepth int
}

func newDeepBinaryTree(maxDepth int) deepBinaryTree {
	return deepBinaryTree{depth: 0, maxDepth: maxDepth}
}

func (s deepBinaryTree) IsTerminal() bool { return s.depth >= s.maxDepth }

func (s deepBinaryTree) Bound() quality.Maximize { return quality.Maximize(1) }

func (s deepBinaryTree) Quality() (quality.Maximize, bool) {
	if !s.IsTerminal() {
		return 0, false
	}
	return quality.Maximize(0), true
}

func (s deepBinaryTree) Clone() deepBinaryTree { return s }

func (s deepBinaryTree) Branches() iter.Seq[deepBinaryTree] {
	return func(yield func(deepBinaryTree) bool) {
		if s.IsTerminal() {
			return
		}
		child := deepBinaryTree{depth: s.depth + 1, maxDepth: s.maxDepth}
		if !yield(child) {
			return
		}
		if !yield(child) {
			return
		}
	}
}
