package phamt

import "github.com/Sumatoshi-tech/persist/pkg/capability"

// Set is a persistent, unordered hash set of elements of type T, backed by
// a HAMT-style trie. Unlike Map, a duplicate Insert is a no-op: the set is
// returned structurally unchanged (same root, no new allocation), not an
// upsert.
type Set[T any] struct {
	m Map[T, struct{}]
}

// NewSet returns an empty hash set that hashes elements with hash and
// disambiguates hash collisions with eq.
func NewSet[T any](hash capability.Hasher[T], eq capability.Equaler[T]) Set[T] {
	return Set[T]{m: NewMap[T, struct{}](hash, eq)}
}

// Len returns the number of elements in the set.
func (s Set[T]) Len() int {
	return s.m.Len()
}

// IsEmpty reports whether the set has no elements.
func (s Set[T]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Insert returns a new set containing elem. Inserting an element already
// present is a no-op: the same underlying trie is returned.
func (s Set[T]) Insert(elem T) Set[T] {
	out, _ := s.InsertObserved(elem)

	return out
}

// InsertObserved behaves like Insert but also returns the trie depth this
// insert reached, for callers reporting real per-operation HAMT depth to
// telemetry.
func (s Set[T]) InsertObserved(elem T) (Set[T], int) {
	e := entry[T, struct{}]{key: elem, hash: s.m.hash(elem)}
	root, delta, depth := insertNode(s.m.root, 0, e, s.m.eq, false)

	return Set[T]{m: Map[T, struct{}]{root: root, hash: s.m.hash, eq: s.m.eq, size: s.m.size + delta}}, depth
}

// Remove returns a new set without elem. Removing an absent element returns
// the receiver unchanged.
func (s Set[T]) Remove(elem T) Set[T] {
	return Set[T]{m: s.m.Remove(elem)}
}

// RemoveObserved behaves like Remove but also returns the trie depth elem
// was found at, 0 if it was absent.
func (s Set[T]) RemoveObserved(elem T) (Set[T], int) {
	m, depth := s.m.RemoveObserved(elem)

	return Set[T]{m: m}, depth
}

// Exists reports whether elem is a member of the set.
func (s Set[T]) Exists(elem T) bool {
	return s.m.Exists(elem)
}

// ToSequence returns every element. Order is unspecified but deterministic
// for a fixed set version.
func (s Set[T]) ToSequence() []T {
	pairs := s.m.ToSequence()
	seq := make([]T, len(pairs))

	for i, p := range pairs {
		seq[i] = p.Key
	}

	return seq
}

// All returns a range-over-func iterator over every element.
func (s Set[T]) All() func(yield func(T) bool) {
	return func(yield func(T) bool) {
		for p := range s.m.All() {
			if !yield(p.Key) {
				return
			}
		}
	}
}
