package collection

// BiLevelFIFO holds a "current" and a "next" layer of queued states.
// Swap concatenates any leftover current-layer items before the
// swapped-in next-layer items, so layer completeness is preserved even if
// the current layer was not fully drained before the swap.
type BiLevelFIFO[T any] struct {
	current *FIFO[T]
	next    *FIFO[T]
}

// NewBiLevelFIFO returns an empty bi-level FIFO.
func NewBiLevelFIFO[T any]() *BiLevelFIFO[T] {
	return &BiLevelFIFO[T]{current: NewFIFO[T](), next: NewFIFO[T]()}
}

// PushCurrent appends an item directly to the current layer.
func (b *BiLevelFIFO[T]) PushCurrent(item T) {
	b.current.Push(item)
}

// PushNext appends an item to the next layer.
func (b *BiLevelFIFO[T]) PushNext(item T) {
	b.next.Push(item)
}

// PopCurrent dequeues from the current layer in insertion order.
func (b *BiLevelFIFO[T]) PopCurrent() (T, bool) {
	return b.current.Pop()
}

// Swap moves the next layer into current, preserving any items still
// queued in current by keeping them ahead of the swapped-in items.
func (b *BiLevelFIFO[T]) Swap() {
	merged := NewFIFO[T]()
	b.current.Each(func(item T) bool {
		merged.Push(item)
		return true
	})
	b.next.Each(func(item T) bool {
		merged.Push(item)
		return true
	})
	b.current = merged
	b.next = NewFIFO[T]()
}

// LenCurrent returns the number of items queued in the current layer.
func (b *BiLevelFIFO[T]) LenCurrent() int { return b.current.Len() }

// LenNext returns the number of items queued in the next layer.
func (b *BiLevelFIFO[T]) LenNext() int { return b.next.Len() }

// Current exposes the current layer's backing FIFO, e.g. for callers that
// need to return it (BFS's final-layer result).
func (b *BiLevelFIFO[T]) Current() *FIFO[T] { return b.current }
