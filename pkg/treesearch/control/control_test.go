package control_test

import (
	"context"
	"testing"
	"time"

	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// counter is a trivial Node[counter, quality.Maximize]: a leaf that scores
// its value once it reaches target.
type counter struct {
	value  int
	target int
}

func (c counter) IsTerminal() bool         { return c.value >= c.target }
func (c counter) Bound() quality.Maximize  { return quality.Maximize(c.target) }
func (c counter) Clone() counter           { return c }
func (c counter) Quality() (quality.Maximize, bool) {
	if !c.IsTerminal() {
		return 0, false
	}
	return quality.Maximize(c.value), true
}

func TestVisitNodeRecordsFirstIncumbent(t *testing.T) {
	root := counter{value: 3, target: 3}
	c := control.New[counter, quality.Maximize](root, control.Config[counter, quality.Maximize]{})

	res := c.VisitNode(root)
	assert.Equal(t, control.Ok, res)

	best, q, ok := c.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(3), q)
	assert.Equal(t, 3, best.value)
}

func TestVisitNodeDiscardsWhenBoundCannotBeatIncumbent(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{
		UpperBound: quality.Some(quality.Maximize(10)),
	})

	res := c.VisitNode(counter{value: 5, target: 5})
	assert.Equal(t, control.Discard, res, "bound 5 cannot beat the pre-seeded incumbent of 10")
}

func TestVisitNodeOnlyKeepsStrictImprovements(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})

	c.VisitNode(counter{value: 5, target: 5})
	c.VisitNode(counter{value: 3, target: 3})
	_, q, _ := c.Best()
	assert.Equal(t, quality.Maximize(5), q, "a worse terminal must not replace the incumbent")

	c.VisitNode(counter{value: 7, target: 7})
	_, q, _ = c.Best()
	assert.Equal(t, quality.Maximize(7), q)
}

func TestShouldStopIsIdempotent(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{
		RuntimeLimit: time.Nanosecond,
	})
	time.Sleep(time.Millisecond)
	assert.True(t, c.ShouldStop())
	assert.True(t, c.ShouldStop(), "ShouldStop must be safely repeatable with no side effects")
}

func TestShouldStopHonorsNodeLimit(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{
		NodeLimit: 2,
	})
	assert.False(t, c.ShouldStop())
	c.VisitNode(counter{value: 1, target: 5})
	assert.False(t, c.ShouldStop())
	c.VisitNode(counter{value: 2, target: 5})
	assert.True(t, c.ShouldStop())
}

func TestShouldStopHonorsContextCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{
		Context: ctx,
	})
	assert.False(t, c.ShouldStop())
	cancel()
	assert.True(t, c.ShouldStop())
}

func TestFinishStopsFutureVisits(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	assert.False(t, c.ShouldStop())
	c.Finish()
	assert.True(t, c.ShouldStop())
}

func TestForkInheritsIncumbentWhenRequested(t *testing.T) {
	parent := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	parent.VisitNode(counter{value: 9, target: 9})

	child := parent.Fork(counter{value: 0, target: 9}, true, nil)
	_, q, ok := child.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(9), q)
}

func TestForkWithoutBestStartsEmpty(t *testing.T) {
	parent := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	parent.VisitNode(counter{value: 9, target: 9})

	child := parent.Fork(counter{value: 0, target: 9}, false, nil)
	_, _, ok := child.Best()
	assert.False(t, ok)
}

func TestForkCapsRemainingRuntimeByMaxTime(t *testing.T) {
	parent := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{
		RuntimeLimit: time.Hour,
	})
	cap := 5 * time.Millisecond
	child := parent.Fork(counter{}, false, &cap)
	time.Sleep(10 * time.Millisecond)
	assert.True(t, child.ShouldStop(), "the fork's runtime limit must be capped by maxTime, not inherit the parent's hour-long budget")
}

func TestMergeAddsVisitedCountsAndTakesBetterIncumbent(t *testing.T) {
	parent := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	parent.VisitNode(counter{value: 3, target: 3})

	child := parent.Fork(counter{}, false, nil)
	child.VisitNode(counter{value: 8, target: 8})
	child.VisitNode(counter{value: 2, target: 2})

	parent.Merge(child)

	assert.Equal(t, int64(3), parent.Visited(), "parent's own visit plus the child's two")
	_, q, ok := parent.Best()
	require.True(t, ok)
	assert.Equal(t, quality.Maximize(8), q, "merge must only take the child's incumbent if it strictly improves")
}

func TestMergeKeepsParentIncumbentWhenNotImproved(t *testing.T) {
	parent := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	parent.VisitNode(counter{value: 9, target: 9})

	child := parent.Fork(counter{}, false, nil)
	child.VisitNode(counter{value: 4, target: 4})

	parent.Merge(child)
	_, q, _ := parent.Best()
	assert.Equal(t, quality.Maximize(9), q)
}

func TestBestQualityOptionReflectsPresence(t *testing.T) {
	c := control.New[counter, quality.Maximize](counter{}, control.Config[counter, quality.Maximize]{})
	_, ok := c.BestQuality().Get()
	assert.False(t, ok)

	c.VisitNode(counter{value: 1, target: 1})
	v, ok := c.BestQuality().Get()
	assert.True(t, ok)
	assert.Equal(t, quality.Maximize(1), v)
}

func TestInitialReturnsRoot(t *testing.T) {
	root := counter{value: 0, target: 4}
	c := control.New[counter, quality.Maximize](root, control.Config[counter, quality.Maximize]{})
	assert.Equal(t, root, c.Initial())
}
