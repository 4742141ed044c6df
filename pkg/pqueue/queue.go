// Package pqueue implements a persistent FIFO queue over two pkg/plist
// stacks, with amortized O(1) enqueue and dequeue.
package pqueue

import (
	"errors"

	"github.com/Sumatoshi-tech/persist/pkg/plist"
)

// ErrEmpty is returned by Dequeue when called on an empty queue.
var ErrEmpty = errors.New("pqueue: queue is empty")

// Queue is a persistent FIFO queue. The zero value is the empty queue.
// Logical element order is front (oldest first) followed by back reversed
// (newest last). Constructing a queue whose front is empty but whose back
// is non-empty is permitted; Dequeue restores a non-empty front lazily the
// next time one is needed, which is what makes the amortized cost O(1).
type Queue[E any] struct {
	back, front plist.List[E]
	len         int
}

// Empty returns the empty queue.
func Empty[E any]() Queue[E] {
	return Queue[E]{}
}

// Len returns the number of elements in the queue.
func (q Queue[E]) Len() int {
	return q.len
}

// IsEmpty reports whether the queue has no elements.
func (q Queue[E]) IsEmpty() bool {
	return q.len == 0
}

// Enqueue returns a new queue with e pushed onto the back.
func (q Queue[E]) Enqueue(e E) Queue[E] {
	return Queue[E]{back: q.back.Push(e), front: q.front, len: q.len + 1}
}

// Dequeue returns the oldest element and the queue with it removed. It
// returns ErrEmpty if the queue is empty.
func (q Queue[E]) Dequeue() (E, Queue[E], error) {
	if q.len == 0 {
		var zero E

		return zero, Queue[E]{}, ErrEmpty
	}

	if !q.front.IsEmpty() {
		top, err := q.front.Top()
		if err != nil {
			// front was just checked non-empty; Top cannot fail.
			panic("pqueue: invariant violation: non-empty front reported empty")
		}

		rest, err := q.front.Pop()
		if err != nil {
			panic("pqueue: invariant violation: non-empty front reported empty")
		}

		return top, Queue[E]{back: q.back, front: rest, len: q.len - 1}, nil
	}

	reversed := q.back.Reverse()

	top, err := reversed.Top()
	if err != nil {
		panic("pqueue: invariant violation: non-empty back reversed to empty")
	}

	rest, err := reversed.Pop()
	if err != nil {
		panic("pqueue: invariant violation: non-empty back reversed to empty")
	}

	return top, Queue[E]{back: plist.Empty[E](), front: rest, len: q.len - 1}, nil
}

// ToSequence returns the elements in FIFO order (oldest first).
func (q Queue[E]) ToSequence() []E {
	seq := make([]E, 0, q.len)
	seq = append(seq, q.front.ToSequence()...)

	reversedBack := q.back.Reverse().ToSequence()
	seq = append(seq, reversedBack...)

	return seq
}

// All returns a range-over-func iterator yielding elements in FIFO order.
// It is built by repeated Dequeue and does not mutate the receiver.
func (q Queue[E]) All() func(yield func(E) bool) {
	return func(yield func(E) bool) {
		cur := q

		for !cur.IsEmpty() {
			var (
				e   E
				err error
			)

			e, cur, err = cur.Dequeue()
			if err != nil {
				return
			}

			if !yield(e) {
				return
			}
		}
	}
}
