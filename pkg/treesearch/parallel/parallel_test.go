package parallel_test

import (
	"iter"
	"testing"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/lookahead"
	"github.com/gitrdm/treesearch/pkg/treesearch/parallel"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// path is a full binary tree of fixed depth: a single target path scores
// 100, every other leaf 0, and Bound rewards partial agreement so far so
// beam/PILOT have something informative to rank or estimate on.
type path struct {
	choices []int
	depth   int
	target  []int
}

func root(depth int, target []int) path { return path{depth: depth, target: target} }

func (p path) IsTerminal() bool { return len(p.choices) >= p.depth }
func (p path) Bound() quality.Maximize {
	matched := 0
	for i, c := range p.choices {
		if i < len(p.target) && c == p.target[i] {
			matched++
		}
	}
	return quality.Maximize(matched*100/len(p.target) + 1)
}
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

func rankByBound(p path) float32 { return -float32(p.Bound()) }

func TestParallelBeamMatchesSequentialIncumbent(t *testing.T) {
	target := []int{1, 0, 1, 1}
	r := root(4, target)

	seq := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
	require.NoError(t, lookahead.RunBeam[path, quality.Maximize](seq, r, lookahead.BeamOptions[path]{
		BeamWidth: 3, FilterWidth: 2, DepthLimit: 4, Rank: rankByBound,
	}))
	_, seqQ, seqOk := seq.Best()

	par := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
	err := parallel.Beam[path, quality.Maximize](par, lookahead.BeamOptions[path]{
		BeamWidth: 3, FilterWidth: 2, DepthLimit: 4, Rank: rankByBound,
	}, parallel.Options{MaxParallelism: 4})
	require.NoError(t, err)
	_, parQ, parOk := par.Best()

	require.Equal(t, seqOk, parOk)
	assert.Equal(t, seqQ, parQ, "parallel beam must reach the same incumbent as the sequential run")
}

func TestParallelBeamDefaultsParallelismWhenUnset(t *testing.T) {
	target := []int{1, 0}
	r := root(2, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := parallel.Beam[path, quality.Maximize](c, lookahead.BeamOptions[path]{
		BeamWidth: 2, FilterWidth: 2, DepthLimit: 2, Rank: rankByBound,
	}, parallel.Options{})
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestParallelRakeFindsTarget(t *testing.T) {
	// A rake of 4 stops at the four depth-2 nodes, and the default greedy
	// lookahead follows only the first branch below each, so the target
	// ends in the first choice.
	target := []int{1, 0, 0}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := parallel.Rake[path, quality.Maximize](c, parallel.RakeOptions[path, quality.Maximize]{
		RakeWidth: 4,
	}, parallel.Options{MaxParallelism: 2})
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestParallelRakeRejectsZeroWidth(t *testing.T) {
	r := root(2, []int{0, 0})
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := parallel.Rake[path, quality.Maximize](c, parallel.RakeOptions[path, quality.Maximize]{
		RakeWidth: 0,
	}, parallel.Options{})
	assert.Error(t, err)
}

func TestParallelPILOTResultIsDeterministic(t *testing.T) {
	target := []int{1, 1, 0}
	r := root(3, target)

	var results []quality.Maximize
	for i := 0; i < 5; i++ {
		c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
		err := parallel.PILOT[path, quality.Maximize](c, parallel.PILOTOptions[path, quality.Maximize]{
			FilterWidth: 2, DepthLimit: 3,
		}, parallel.Options{MaxParallelism: 4})
		require.NoError(t, err)
		_, q, ok := c.Best()
		require.True(t, ok)
		results = append(results, q)
	}
	for _, q := range results {
		assert.Equal(t, results[0], q, "PILOT's per-index reduction must be deterministic across repeated runs")
	}
}

func TestParallelPILOTMergesForkedVisitsIntoOuterBudget(t *testing.T) {
	target := []int{1, 1, 1, 1}
	r := root(4, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := parallel.PILOT[path, quality.Maximize](c, parallel.PILOTOptions[path, quality.Maximize]{
		FilterWidth: 2,
		DepthLimit:  4,
		Lookahead:   lookahead.DFS[path, quality.Maximize](2, 2, 0),
	}, parallel.Options{MaxParallelism: 4})
	require.NoError(t, err)

	// Each step forks a lookahead (depth_limit=2, filter_width=2) over 2
	// branches, so every step's forked exploration alone visits more than
	// the single committed node that step contributes. If the forks were
	// never merged back, Visited would be stuck at roughly DepthLimit+1.
	assert.Greater(t, c.Visited(), int64(5), "forked lookahead visits must land on the outer control's budget")
}

func TestParallelPILOTRejectsInvalidOptions(t *testing.T) {
	r := root(2, []int{0, 0})
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := parallel.PILOT[path, quality.Maximize](c, parallel.PILOTOptions[path, quality.Maximize]{
		FilterWidth: 0, DepthLimit: 1,
	}, parallel.Options{})
	assert.Error(t, err)
}
