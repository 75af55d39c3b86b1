package lookahead

import (
	"github.com/gitrdm/treesearch/pkg/treesearch/control"
	"github.com/gitrdm/treesearch/pkg/treesearch/internal/sequtil"
	"github.com/gitrdm/treesearch/pkg/treesearch/quality"
	"github.com/gitrdm/treesearch/pkg/treesearch/state"
)

// candidateQueue is a per-iteration stable priority queue of beam
// candidates: popBest always returns the lowest-rank item, breaking ties by
// insertion order.
type candidateQueue[T any] struct {
	items []struct {
		item T
		rank float32
		seq  int
	}
	seq int
}

func (q *candidateQueue[T]) push(item T, rank float32) {
	q.items = append(q.items, struct {
		item T
		rank float32
		seq  int
	}{item: item, rank: rank, seq: q.seq})
	q.seq++
}

func (q *candidateQueue[T]) popBest() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	best := 0
	for i := 1; i < len(q.items); i++ {
		if q.items[i].rank < q.items[best].rank ||
			(q.items[i].rank == q.items[best].rank && q.items[i].seq < q.items[best].seq) {
			best = i
		}
	}
	item := q.items[best].item
	q.items = append(q.items[:best], q.items[best+1:]...)
	return item, true
}

// MonoBeamOptions configures monotonic beam search.
type MonoBeamOptions[T any] struct {
	BeamWidth   int
	FilterWidth int
	DepthLimit  int
	Rank        func(T) float32
}

func (o MonoBeamOptions[T]) validate() error {
	return BeamOptions[T](o).validate()
}

// RunMonoBeam runs the monotonic beam search of Lemons et al. 2022: a
// left-to-right array of slots where each slot, in order, adds its
// children to a shared per-iteration candidate queue and then claims the
// single best candidate still unclaimed — including leftovers earlier
// slots generated but did not themselves claim. Because slot i never sees
// candidates slot i+1 has not yet produced, widening the beam can only add
// slots that pick up what narrower beams discarded; it never changes what
// slot 0 (and every slot before the new one) already claimed.
func RunMonoBeam[T state.State[T, Q], Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts MonoBeamOptions[T]) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	slots := []T{root}

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return nil
		}
		q := &candidateQueue[T]{}
		next := make([]T, 0, opts.BeamWidth)

		// Every one of the BeamWidth slots claims from the shared queue; slots
		// past the occupied ones add no children of their own.
		for i := 0; i < opts.BeamWidth; i++ {
			if i < len(slots) && !slots[i].IsTerminal() {
				s := slots[i]
				for _, child := range sequtil.Take(s.Branches(), opts.FilterWidth) {
					if c.ShouldStop() {
						return nil
					}
					if c.VisitNode(child) == control.Discard {
						continue
					}
					if child.IsTerminal() {
						continue
					}
					q.push(child, opts.Rank(child))
				}
			}
			best, ok := q.popBest()
			if !ok {
				if i == 0 {
					return nil
				}
				continue
			}
			next = append(next, best)
		}

		if len(next) == 0 {
			return nil
		}
		slots = next
	}
	return nil
}

// MonoBeam returns a monotonic-beam-search lookahead.
func MonoBeam[T state.State[T, Q], Q quality.Quality[Q]](opts MonoBeamOptions[T]) Lookahead[T, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunMonoBeam[T, Q](c, seed, opts)
	}
}

// MutableMonoBeamOptions configures monotonic beam search over mutable
// states.
type MutableMonoBeamOptions[T any] struct {
	BeamWidth   int
	FilterWidth int
	DepthLimit  int
	Rank        func(T) float32
}

func (o MutableMonoBeamOptions[T]) validate() error {
	return BeamOptions[T](o).validate()
}

// RunMonoBeamMutable is the mutable-state counterpart of RunMonoBeam.
// Branches are realized by cloning, same rationale as RunBeamMutable.
func RunMonoBeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](c control.Runtime[T, Q], root T, opts MutableMonoBeamOptions[T]) error {
	if err := opts.validate(); err != nil {
		return err
	}

	if c.ShouldStop() {
		return nil
	}
	if c.VisitNode(root) == control.Discard {
		return nil
	}

	slots := []T{root}

	for depth := 0; depth < opts.DepthLimit; depth++ {
		if c.ShouldStop() {
			return nil
		}
		q := &candidateQueue[T]{}
		next := make([]T, 0, opts.BeamWidth)

		// Every one of the BeamWidth slots claims from the shared queue; slots
		// past the occupied ones add no children of their own.
		for i := 0; i < opts.BeamWidth; i++ {
			if i < len(slots) && !slots[i].IsTerminal() {
				s := slots[i]
				for _, choice := range sequtil.Take(s.Choices(), opts.FilterWidth) {
					if c.ShouldStop() {
						return nil
					}
					child := s.Clone()
					if err := child.Apply(choice); err != nil {
						return err
					}
					if c.VisitNode(child) == control.Discard {
						continue
					}
					if child.IsTerminal() {
						continue
					}
					q.push(child, opts.Rank(child))
				}
			}
			best, ok := q.popBest()
			if !ok {
				if i == 0 {
					return nil
				}
				continue
			}
			next = append(next, best)
		}

		if len(next) == 0 {
			return nil
		}
		slots = next
	}
	return nil
}

// MonoBeamMutable returns a monotonic-beam-search lookahead over mutable
// states.
func MonoBeamMutable[T state.MutableState[T, C, Q], C any, Q quality.Quality[Q]](opts MutableMonoBeamOptions[T]) MutableLookahead[T, C, Q] {
	return func(c control.Runtime[T, Q], seed T) error {
		return RunMonoBeamMutable[T, C, Q](c, seed, opts)
	}
}
