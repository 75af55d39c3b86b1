package heuristic_test

import (
	"iter"
	"testing"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/heuristic"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

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

func TestHeuristicBeamFindsTarget(t *testing.T) {
	target := []int{1, 0, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := heuristic.Beam[path, quality.Maximize](c, heuristic.BeamOptions[path]{
		BeamWidth: 4, FilterWidth: 2, DepthLimit: 3, Rank: rankByBound,
	})
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestHeuristicRakeFindsTarget(t *testing.T) {
	target := []int{1, 0}
	r := root(2, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := heuristic.Rake[path, quality.Maximize](c, heuristic.RakeOptions[path, quality.Maximize]{
		RakeWidth: 4,
	})
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestHeuristicPILOTMakesProgressAndTerminates(t *testing.T) {
	target := []int{1, 1, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := heuristic.PILOT[path, quality.Maximize](c, heuristic.PILOTOptions[path, quality.Maximize]{
		FilterWidth: 2, DepthLimit: 3,
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, c.Visited(), int64(1))
}

func TestHeuristicNaiveLDSFindsTargetWithBudget(t *testing.T) {
	target := []int{1, 1}
	r := root(2, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := heuristic.NaiveLDS[path, quality.Maximize](c, 2)
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestHeuristicAnytimeLDSFindsTargetWithBudget(t *testing.T) {
	target := []int{1, 1}
	r := root(2, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})

	err := heuristic.AnytimeLDS[path, quality.Maximize](c, 2)
	require.NoError(t, err)
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestMonoBeamWideningNeverWorsensNarrowerResult(t *testing.T) {
	target := []int{1, 0, 1, 1}
	r := root(4, target)

	narrow := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
	err := heuristic.MonoBeam[path, quality.Maximize](narrow, heuristic.MonoBeamOptions[path]{
		BeamWidth: 1, FilterWidth: 2, DepthLimit: 4, Rank: rankByBound,
	})
	require.NoError(t, err)
	_, narrowQ, narrowOk := narrow.Best()

	wide := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
	err = heuristic.MonoBeam[path, quality.Maximize](wide, heuristic.MonoBeamOptions[path]{
		BeamWidth: 3, FilterWidth: 2, DepthLimit: 4, Rank: rankByBound,
	})
	require.NoError(t, err)
	_, wideQ, wideOk := wide.Best()

	if narrowOk {
		require.True(t, wideOk, "a wider beam must find at least what a narrower one found")
		assert.GreaterOrEqual(t, int(wideQ), int(narrowQ))
	}
}

func TestStrategyWrappersValidateAtConstruction(t *testing.T) {
	_, err := heuristic.NewBeamStrategy[path, quality.Maximize](heuristic.BeamOptions[path]{
		BeamWidth: 0, FilterWidth: 1, DepthLimit: 1, Rank: rankByBound,
	})
	assert.Error(t, err, "beam_width 0 must be rejected at construction, not at Run")

	s, err := heuristic.NewBeamStrategy[path, quality.Maximize](heuristic.BeamOptions[path]{
		BeamWidth: 2, FilterWidth: 2, DepthLimit: 3, Rank: rankByBound,
	})
	require.NoError(t, err)
	assert.Equal(t, "beam", s.Name())
	assert.NotEmpty(t, s.Description())

	target := []int{1, 0, 1}
	r := root(3, target)
	c := control.New[path, quality.Maximize](r, control.Config[path, quality.Maximize]{})
	require.NoError(t, s.Run(c))
	_, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(100), q)
}

func TestNewRakeStrategyRejectsZeroWidth(t *testing.T) {
	_, err := heuristic.NewRakeStrategy[path, quality.Maximize](heuristic.RakeOptions[path, quality.Maximize]{RakeWidth: 0})
	assert.Error(t, err)
}

func TestNewNaiveLDSStrategyRejectsNegativeDiscrepancy(t *testing.T) {
	_, err := heuristic.NewNaiveLDSStrategy[path, quality.Maximize](-1)
	assert.Error(t, err)
}
