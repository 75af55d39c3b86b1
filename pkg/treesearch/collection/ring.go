package collection

import (
	"errors"

	"code.hybscloud.com/lfq"
)

// Ring is a bounded, lock-free multi-producer multi-consumer queue used by
// the Parallel Execution Layer's rake to hand out its frontier nodes to
// workers without a mutex on the hot path; parallel beam and PILOT do not
// use it. It is not used by the sequential collections, which stay
// purely-owned per the single-owner model.
type Ring[T any] struct {
	q *lfq.MPMC[T]
}

// NewRing returns a Ring with room for capacity items. capacity is rounded
// up internally by the underlying queue implementation.
func NewRing[T any](capacity int) *Ring[T] {
	return &Ring[T]{q: lfq.NewMPMC[T](capacity)}
}

// FillFrom enqueues every item produced by next (false return stops the
// fill), in order. Returns the number of items enqueued; stops early,
// without error, if the ring fills up.
func (r *Ring[T]) FillFrom(next func() (T, bool)) int {
	n := 0
	for {
		item, ok := next()
		if !ok {
			return n
		}
		if err := r.q.Enqueue(&item); err != nil {
			return n
		}
		n++
	}
}

// TryPop removes one item, reporting false if the ring is currently empty.
func (r *Ring[T]) TryPop() (T, bool) {
	item, err := r.q.Dequeue()
	if err != nil {
		if errors.Is(err, lfq.ErrWouldBlock) {
			var zero T
			return zero, false
		}
		var zero T
		return zero, false
	}
	return item, true
}

// Cap returns the ring's usable capacity.
func (r *Ring[T]) Cap() int { return r.q.Cap() }
