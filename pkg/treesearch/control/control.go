// Package control implements the Runtime Control: the shared object that
// enforces termination (time, nodes, cancellation), prunes by upper bound,
// tracks the incumbent, and supports fork/merge for concurrent sub-searches.
package control

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
	"github.com/gitrdm/treesearch/pkg/treesearch/tslog"
)

// Node is the capability a control needs from a search tree node: the
// Qualifiable contract plus the ability to clone itself into an incumbent.
// Both state.State[T,Q] and state.MutableState[T,C,Q] satisfy Node[T,Q].
type Node[T any, Q any] interface {
	state.Qualifiable[Q]
	Clone() T
}

// VisitResult classifies a node visited through Control.VisitNode.
type VisitResult int

const (
	// Ok means the caller should continue expanding the node's children.
	Ok VisitResult = iota
	// Discard means the node's bound is not strictly better than the
	// incumbent; the caller must prune this subtree.
	Discard
)

// ImprovementCallback is fired, from whichever goroutine observed the
// improvement, every time the incumbent strictly improves.
type ImprovementCallback[T any, Q any] func(c *Control[T, Q], best T, q Q)

// Control is the runtime control for one search or one fork of a search.
// The outer caller owns it; a fork produces an independent child that must
// be merged back into its parent (or discarded) when the sub-search ends.
type Control[T Node[T, Q], Q quality.Quality[Q]] struct {
	mu sync.Mutex

	initial T

	hasBest   bool
	bestQ     Q
	bestState T

	start        time.Time
	runtimeLimit time.Duration
	nodeLimit    int64
	visited      atomic.Int64

	ctx context.Context

	finished atomic.Bool

	onImprove ImprovementCallback[T, Q]

	logger tslog.Logger
}

// Config configures a new Control. Zero value means "no limit" for each
// field unless stated otherwise.
type Config[T Node[T, Q], Q quality.Quality[Q]] struct {
	RuntimeLimit time.Duration
	NodeLimit    int64
	Context      context.Context
	UpperBound   quality.Option[Q]
	OnImprove    ImprovementCallback[T, Q]
	Logger       tslog.Logger
}

// New creates a runtime control rooted at initial.
func New[T Node[T, Q], Q quality.Quality[Q]](initial T, cfg Config[T, Q]) *Control[T, Q] {
	ctx := cfg.Context
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Control[T, Q]{
		initial:      initial,
		start:        time.Now(),
		runtimeLimit: cfg.RuntimeLimit,
		nodeLimit:    cfg.NodeLimit,
		ctx:          ctx,
		onImprove:    cfg.OnImprove,
		logger:       cfg.Logger,
	}
	if v, ok := cfg.UpperBound.Get(); ok {
		c.hasBest = true
		c.bestQ = v
	}
	return c
}

// ShouldStop reports whether the search rooted at this control must stop:
// finished, cancelled, past the runtime limit, or past the node limit.
// Idempotent; has no side effects.
func (c *Control[T, Q]) ShouldStop() bool {
	if c.finished.Load() {
		return true
	}
	select {
	case <-c.ctx.Done():
		return true
	default:
	}
	if c.runtimeLimit > 0 && time.Since(c.start) > c.runtimeLimit {
		return true
	}
	if c.nodeLimit > 0 && c.visited.Load() >= c.nodeLimit {
		return true
	}
	return false
}

// VisitNode accounts for visiting s: increments the visited count, prunes
// via Discard when s's bound cannot beat the incumbent, and otherwise
// records s as the new incumbent if its quality strictly improves on it.
func (c *Control[T, Q]) VisitNode(s T) VisitResult {
	c.visited.Add(1)

	c.mu.Lock()
	hasBest := c.hasBest
	bestQ := c.bestQ
	c.mu.Unlock()

	if hasBest && !s.Bound().Better(bestQ) {
		return Discard
	}

	if q, ok := s.Quality(); ok {
		c.considerImprovement(s, q)
	}
	return Ok
}

func (c *Control[T, Q]) considerImprovement(s T, q Q) {
	c.mu.Lock()
	improved := !c.hasBest || q.Better(c.bestQ)
	var bestState T
	if improved {
		c.hasBest = true
		c.bestQ = q
		c.bestState = s.Clone()
		bestState = c.bestState
	}
	cb := c.onImprove
	c.mu.Unlock()

	if improved {
		if c.logger != nil {
			c.logger.Debug().Log("incumbent improved")
		}
		if cb != nil {
			cb(c, bestState, q)
		}
	}
}

// Fork produces an independent child control rooted at state, inheriting
// remaining node/time budget (optionally capped by maxTime) and the shared
// cancellation context. If withBest, the child starts with the current
// incumbent copied in, so it can prune immediately. The child's visited
// count starts at zero and is private until merged back.
func (c *Control[T, Q]) Fork(state T, withBest bool, maxTime *time.Duration) *Control[T, Q] {
	c.mu.Lock()
	remainingNodes := int64(0)
	if c.nodeLimit > 0 {
		remainingNodes = c.nodeLimit - c.visited.Load()
		if remainingNodes < 0 {
			remainingNodes = 0
		}
	}
	remainingRuntime := time.Duration(0)
	if c.runtimeLimit > 0 {
		remainingRuntime = c.runtimeLimit - time.Since(c.start)
		if remainingRuntime < 0 {
			remainingRuntime = 0
		}
	}
	// A limit of zero means "no limit", so a parent whose budget is used up
	// must mark the child finished rather than hand it a zero limit.
	exhausted := (c.nodeLimit > 0 && remainingNodes == 0) || (c.runtimeLimit > 0 && remainingRuntime == 0)
	if maxTime != nil && (remainingRuntime == 0 || *maxTime < remainingRuntime) {
		remainingRuntime = *maxTime
	}
	child := &Control[T, Q]{
		initial:      state,
		start:        time.Now(),
		runtimeLimit: remainingRuntime,
		nodeLimit:    remainingNodes,
		ctx:          c.ctx,
		onImprove:    c.onImprove,
		logger:       c.logger,
	}
	if exhausted {
		child.finished.Store(true)
	}
	if withBest && c.hasBest {
		child.hasBest = true
		child.bestQ = c.bestQ
		child.bestState = c.bestState
	}
	c.mu.Unlock()
	return child
}

// Merge absorbs a finished sub-search's control into this one: visited
// counts add, and other's incumbent replaces this one's if strictly
// better. Merge cannot fail.
func (c *Control[T, Q]) Merge(other *Control[T, Q]) {
	c.visited.Add(other.Visited())

	other.mu.Lock()
	otherHasBest := other.hasBest
	otherQ := other.bestQ
	otherState := other.bestState
	other.mu.Unlock()

	if !otherHasBest {
		return
	}

	c.mu.Lock()
	improved := !c.hasBest || otherQ.Better(c.bestQ)
	if improved {
		c.hasBest = true
		c.bestQ = otherQ
		c.bestState = otherState
	}
	cb := c.onImprove
	c.mu.Unlock()

	if improved {
		if c.logger != nil {
			c.logger.Debug().Log("merged improved incumbent")
		}
		if cb != nil {
			cb(c, otherState, otherQ)
		}
	}
}

// Visited returns the number of nodes visited through this control (not
// including forks not yet merged back).
func (c *Control[T, Q]) Visited() int64 { return c.visited.Load() }

// Best returns the current incumbent state and quality, or false if no
// solution has been found yet.
func (c *Control[T, Q]) Best() (T, Q, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.bestState, c.bestQ, c.hasBest
}

// BestQuality returns the incumbent quality as an Option, absent if no
// solution has been found yet.
func (c *Control[T, Q]) BestQuality() quality.Option[Q] {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.hasBest {
		return quality.None[Q]()
	}
	return quality.Some(c.bestQ)
}

// Finish sets the finished flag; subsequent ShouldStop calls return true.
func (c *Control[T, Q]) Finish() { c.finished.Store(true) }

// Context returns the cancellation context shared by this control and all
// of its forks.
func (c *Control[T, Q]) Context() context.Context { return c.ctx }

// Initial returns the state this control was rooted at.
func (c *Control[T, Q]) Initial() T { return c.initial }

// Logger returns the configured logger, or nil.
func (c *Control[T, Q]) Logger() tslog.Logger { return c.logger }
