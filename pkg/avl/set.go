package avl

import "github.com/Sumatoshi-tech/persist/pkg/capability"

// Set is a persistent ordered set of elements of type T, backed by an AVL
// tree whose values carry no payload.
type Set[T any] struct {
	m Map[T, struct{}]
}

// NewSet returns an empty ordered set that orders elements with cmp.
func NewSet[T any](cmp capability.Ordered[T]) Set[T] {
	return Set[T]{m: NewMap[T, struct{}](cmp)}
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return s.m.Len()
}

// Height returns the cached height of the underlying AVL tree.
func (s Set[T]) Height() int {
	return s.m.Height()
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Insert returns a new set containing elem. Inserting an element already
// present leaves the elements and Len unchanged; the nodes on the path to
// it are still rebuilt.
func (s Set[T]) Insert(elem T) Set[T] {
	return Set[T]{m: s.m.Insert(elem, struct{}{})}
}

// InsertObserved behaves like Insert but also returns the rebalance depth
// reached, for callers reporting real per-operation AVL depth to telemetry.
func (s Set[T]) InsertObserved(elem T) (Set[T], int) {
	m, depth := s.m.InsertObserved(elem, struct{}{})

	return Set[T]{m: m}, depth
}

// Remove returns a new set without elem. Removing an absent element returns
// the receiver unchanged.
func (s Set[T]) Remove(elem T) Set[T] {
	return Set[T]{m: s.m.Remove(elem)}
}

// RemoveObserved behaves like Remove but also returns the depth elem was
// found at, 0 if it was absent.
func (s Set[T]) RemoveObserved(elem T) (Set[T], int) {
	m, depth := s.m.RemoveObserved(elem)

	return Set[T]{m: m}, depth
}

// Exists reports whether elem is a member of the set.
func (s Set[T]) Exists(elem T) bool {
	return s.m.Exists(elem)
}

// ToSequence returns all elements in ascending order.
func (s Set[T]) ToSequence() []T {
	pairs := s.m.ToSequence()
	seq := make([]T, len(pairs))

	for i, p := range pairs {
		seq[i] = p.Key
	}

	return seq
}

// All returns a range-over-func iterator yielding elements in ascending
// order.
func (s Set[T]) All() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for p := range s.m.All() {
			if !yield(p.Key) {
				return
			}
		}
	}
}
