package heuristic

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
)

// Handle is the completion handle returned by every *Async entry point: the
// algorithm runs on its own goroutine against the control it was given, and
// Wait blocks until it returns (or until c's own cancellation/timeout ends
// it early — the caller reads whatever incumbent c.Best reports either
// way).
type Handle[T control.Node[T, Q], Q quality.Quality[Q]] struct {
	c    *control.Control[T, Q]
	done chan struct{}
	err  error
}

// Wait blocks until the scheduled algorithm returns, then reports any error
// it raised (a model error; cancellation and budget exhaustion are not
// errors).
func (h *Handle[T, Q]) Wait() error {
	<-h.done
	return h.err
}

// Control returns the control the scheduled algorithm is running against,
// whose Best/BestQuality/Visited may be read at any time, including before
// Wait returns.
func (h *Handle[T, Q]) Control() *control.Control[T, Q] {
	return h.c
}

func run[T control.Node[T, Q], Q quality.Quality[Q]](c *control.Control[T, Q], body func() error) *Handle[T, Q] {
	h := &Handle[T, Q]{c: c, done: make(chan struct{})}
	go func() {
		defer close(h.done)
		h.err = body()
	}()
	return h
}
