// Package plist implements a persistent, singly-linked stack with a cached
// length. Every mutating operation returns a new logical list; a list a
// caller already holds is never changed by an operation performed on a
// value derived from it.
package plist

import (
	"errors"
	"log/slog"

	"github.com/Sumatoshi-tech/persist/internal/pcount"
)

// ErrEmpty is returned by Pop and Top when called on an empty list.
var ErrEmpty = errors.New("plist: list is empty")

// node is either Nil (represented by a nil *node) or Cons(len, elem, tail).
// len is cached and always equals 1 + tail.len. refs starts at 1 for the
// node's creator and grows by one each time another node adopts this one as
// its tail, so Reverse can log when it is asked to rebuild a spine that is
// not uniquely owned.
type node[E any] struct {
	elem E
	tail *node[E]
	len  int
	refs *pcount.Counter
}

// List is a persistent singly-linked stack of elements of type E. The zero
// value is the empty list.
type List[E any] struct {
	head *node[E]
}

// Empty returns the empty list.
func Empty[E any]() List[E] {
	return List[E]{}
}

// Len returns the number of elements in the list, in O(1).
func (l List[E]) Len() int {
	if l.head == nil {
		return 0
	}

	return l.head.len
}

// IsEmpty reports whether the list has no elements.
func (l List[E]) IsEmpty() bool {
	return l.head == nil
}

// Push returns a new list with e as its new top element. The receiver is
// unchanged and remains valid.
func (l List[E]) Push(e E) List[E] {
	if l.head != nil {
		l.head.refs.Share()
	}

	return List[E]{head: &node[E]{elem: e, tail: l.head, len: l.Len() + 1, refs: pcount.New()}}
}

// Pop returns the list with the top element removed. It returns ErrEmpty if
// the list is empty.
func (l List[E]) Pop() (List[E], error) {
	if l.head == nil {
		return List[E]{}, ErrEmpty
	}

	return List[E]{head: l.head.tail}, nil
}

// Top returns the top element of the list. It returns ErrEmpty if the list
// is empty.
func (l List[E]) Top() (E, error) {
	if l.head == nil {
		var zero E

		return zero, ErrEmpty
	}

	return l.head.elem, nil
}

// Reverse returns a new list with the elements in reverse order, built in a
// single pass with no recursion.
func (l List[E]) Reverse() List[E] {
	if l.head != nil && !l.head.refs.IsUnique() {
		slog.Default().Debug("plist: reversing a shared spine", "len", l.Len(), "refs", l.head.refs.Count())
	}

	out := Empty[E]()

	for n := l.head; n != nil; n = n.tail {
		out = out.Push(n.elem)
	}

	return out
}

// ToSequence returns the elements from top to bottom as a plain slice.
func (l List[E]) ToSequence() []E {
	seq := make([]E, 0, l.Len())

	for n := l.head; n != nil; n = n.tail {
		seq = append(seq, n.elem)
	}

	return seq
}

// All returns a range-over-func iterator yielding elements from top to
// bottom. It holds a shared handle to the current node and never mutates
// the list; iterating one version never blocks or is invalidated by
// operations that produce other versions.
func (l List[E]) All() func(yield func(E) bool) {
	return func(yield func(E) bool) {
		for n := l.head; n != nil; n = n.tail {
			if !yield(n.elem) {
				return
			}
		}
	}
}
