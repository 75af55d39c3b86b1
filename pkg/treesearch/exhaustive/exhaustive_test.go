package exhaustive_test

import (
	"iter"
	"testing"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/exhaustive"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// path is a full binary tree of fixed depth: each node's path of 0/1
// choices is its identity, and a single target path scores 100, every
// other leaf scoring 0.
type path struct {
	choices []int
	depth   int
	target  []int
}

func root(depth int, target []int) path { return path{depth: depth, target: target} }

func (p path) IsTerminal() bool        { return len(p.choices) >= p.depth }
func (p path) Bound() quality.Maximize { return quality.Maximize(100) }
func (p path) Clone() path {
	c := make([]int, len(p.choices))
	copy(c, p.choices)
	return path{choices: c, depth: p.depth, target: p.target}
}
func (p path) Quality() (quality.Maximize, bool) {
	if !p.IsTerminal() {
		return 0, false
	}
	for i, c := range p.choices {
		if c != p.target[i] {
			return quality.Maximize(0), true
		}
	}
	return quality.Maximize(100), true
}
func (p path) Branches() iter.Seq[path] {
	return func(yield func(path) bool) {
		if p.IsTerminal() {
			return
		}
		for choice := 0; choice < 2; choice++ {
			child := p.Clone()
			child.choices = append(child.choices, choice)
			if !yield(child) {
				return
			}
		}
	}
}

func TestDFSFindsTerminalMatchingTarget(t *testing.T) {
	target := []int{1, 0, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := exhaustive.DFS[path, quality.Maximize](c, r, exhaustive.DFSOptions{FilterWidth: 2, DepthLimit: 3})
	require.NoError(t, err)

	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
	assert.Equal(t, int64(13), c.Visited(), "of the 15 nodes, the two leaves under 11 are never visited: leaf 101 sets the incumbent to the bound of 100, so 11 is discarded")
}

func TestDFSRespectsDepthLimit(t *testing.T) {
	target := []int{1, 0, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := exhaustive.DFS[path, quality.Maximize](c, r, exhaustive.DFSOptions{FilterWidth: 2, DepthLimit: 1})
	require.NoError(t, err)

	_, _, ok := c.Best()
	assert.False(t, ok, "depth limit 1 stops before any leaf is reached")
}

func TestDFSInvalidOptionsReturnArgumentError(t *testing.T) {
	r := root(2, []int{0, 0})
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := exhaustive.DFS[path, quality.Maximize](c, r, exhaustive.DFSOptions{FilterWidth: 0, DepthLimit: 1})
	assert.Error(t, err)
}

func TestBFSReturnsFullFrontierAtDepthLimit(t *testing.T) {
	// The target is the last leaf enumerated, so no leaf is discarded
	// against it before the layer is complete.
	target := []int{1, 1}
	r := root(2, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	frontier, err := exhaustive.BFS[path, quality.Maximize](c, r, exhaustive.BFSOptions{
		FilterWidth: 2, DepthLimit: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 4, frontier.Len(), "a full binary tree 2 layers deep has 4 leaves")
}

func TestBFSHonorsNodeLimitMidLayer(t *testing.T) {
	target := []int{1, 0, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	frontier, err := exhaustive.BFS[path, quality.Maximize](c, r, exhaustive.BFSOptions{
		FilterWidth: 2, DepthLimit: 3, NodeLimit: 3,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, frontier.Len(), 4, "frontier must stop expanding close to the node limit")
}

func TestDiscardedNodeAndItsSubtreeAreNeverVisited(t *testing.T) {
	target := []int{1, 0, 1}
	r := root(3, target)
	// Pre-seed an incumbent no node can beat: bound is always 100, so
	// seeding 100 makes VisitNode return Discard for every node, the root
	// included, and the search stops after the root's single counted visit.
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{
		UpperBound: quality.Some(quality.Maximize(100)),
	})

	err := exhaustive.DFS[path, quality.Maximize](c, r, exhaustive.DFSOptions{FilterWidth: 2, DepthLimit: 3})
	require.NoError(t, err)
	assert.Equal(t, int64(1), c.Visited(), "the root is counted and discarded, so nothing below it should be visited")
}
