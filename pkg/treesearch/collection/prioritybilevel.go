package collection

import "sort"

type rankedItem[T any] struct {
	item T
	rank float32
	seq  int
}

// PriorityBiLevelFIFO is the critical collection for beam search: the next
// layer is ranked by a float score, and AdvanceLayer admits only the top-K
// lowest-ranked states into the new current layer.
type PriorityBiLevelFIFO[T any] struct {
	current *FIFO[T]
	next    []rankedItem[T]
	seq     int
}

// NewPriorityBiLevelFIFO returns an empty priority bi-level FIFO.
func NewPriorityBiLevelFIFO[T any]() *PriorityBiLevelFIFO[T] {
	return &PriorityBiLevelFIFO[T]{current: NewFIFO[T]()}
}

// PushNext appends an item to the next layer with the given rank. Lower
// ranks are preferred by AdvanceLayer. Insertion order is preserved for
// stable tie-breaking.
func (p *PriorityBiLevelFIFO[T]) PushNext(item T, rank float32) {
	p.next = append(p.next, rankedItem[T]{item: item, rank: rank, seq: p.seq})
	p.seq++
}

// AdvanceLayer replaces the current layer with the K states of smallest
// rank among the next layer (stable: ties keep insertion order), then
// clears the next layer. If K >= len(next), all next-layer states are
// kept.
func (p *PriorityBiLevelFIFO[T]) AdvanceLayer(k int) {
	sort.SliceStable(p.next, func(i, j int) bool {
		return p.next[i].rank < p.next[j].rank
	})
	if k < 0 {
		k = 0
	}
	if k > len(p.next) {
		k = len(p.next)
	}
	current := NewFIFO[T]()
	for i := 0; i < k; i++ {
		current.Push(p.next[i].item)
	}
	p.current = current
	p.next = p.next[:0]
}

// PushCurrent appends an item directly to the current layer, bypassing
// ranking. Used to seed the first layer (the root) before any ranking has
// happened.
func (p *PriorityBiLevelFIFO[T]) PushCurrent(item T) {
	p.current.Push(item)
}

// PopCurrent dequeues from the current layer in insertion (post-ranking)
// order.
func (p *PriorityBiLevelFIFO[T]) PopCurrent() (T, bool) {
	return p.current.Pop()
}

// LenCurrent returns the number of items in the current layer.
func (p *PriorityBiLevelFIFO[T]) LenCurrent() int { return p.current.Len() }

// LenNext returns the number of items awaiting ranking in the next layer.
func (p *PriorityBiLevelFIFO[T]) LenNext() int { return len(p.next) }
