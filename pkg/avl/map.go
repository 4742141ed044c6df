package avl

import "github.com/Sumatoshi-tech/persist/pkg/capability"

// Map is a persistent ordered map keyed by K with values V, backed by an
// AVL tree. The zero value is not usable; construct one with NewMap.
type Map[K, V any] struct {
	root *node[K, V]
	cmp  capability.Ordered[K]
	size int
}

// NewMap returns an empty ordered map that orders keys with cmp.
func NewMap[K, V any](cmp capability.Ordered[K]) Map[K, V] {
	return Map[K, V]{cmp: cmp}
}

// Len returns the number of entries in the map.
func (m Map[K, V]) Len() int {
	return m.size
}

// Height returns the cached height of the underlying AVL tree (0 for an
// empty map).
func (m Map[K, V]) Height() int {
	return height(m.root)
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Insert returns a new map with key bound to val. If key was already
// present its value is overwritten and Len is unchanged; otherwise Len
// grows by one.
func (m Map[K, V]) Insert(key K, val V) Map[K, V] {
	out, _ := m.InsertObserved(key, val)

	return out
}

// InsertObserved behaves like Insert but also returns the rebalance depth
// (the number of recursive frames walked from the root to the inserted
// key's position) reached by this insert, for callers that report real
// per-operation AVL depth to telemetry rather than Insert's plain result.
func (m Map[K, V]) InsertObserved(key K, val V) (Map[K, V], int) {
	root, grew, depth := insert(m.root, key, val, m.cmp)
	size := m.size

	if grew {
		size++
	}

	return Map[K, V]{root: root, cmp: m.cmp, size: size}, depth
}

// Remove returns a new map with key absent. If key was not present the
// receiver's tree is returned unchanged (same Len).
func (m Map[K, V]) Remove(key K) Map[K, V] {
	out, _ := m.RemoveObserved(key)

	return out
}

// RemoveObserved behaves like Remove but also returns the depth the removed
// key (or, when it has two children, its spliced in-order successor) was
// found at, 0 if key was absent.
func (m Map[K, V]) RemoveObserved(key K) (Map[K, V], int) {
	root, removed, depth := remove(m.root, key, m.cmp)
	if !removed {
		return m, 0
	}

	return Map[K, V]{root: root, cmp: m.cmp, size: m.size - 1}, depth
}

// Find returns the value bound to key and true, or the zero value and false
// if key is absent. Missing keys are not an error condition.
func (m Map[K, V]) Find(key K) (V, bool) {
	return find(m.root, key, m.cmp)
}

// Exists reports whether key is present in the map.
func (m Map[K, V]) Exists(key K) bool {
	_, ok := find(m.root, key, m.cmp)

	return ok
}

// Pair is a key/value entry as produced by ToSequence and All.
type Pair[K, V any] struct {
	Key K
	Val V
}

// ToSequence returns all entries in ascending key order.
func (m Map[K, V]) ToSequence() []Pair[K, V] {
	seq := make([]Pair[K, V], 0, m.size)
	inorder(m.root, func(k K, v V) bool {
		seq = append(seq, Pair[K, V]{Key: k, Val: v})

		return true
	})

	return seq
}

// All returns a range-over-func iterator yielding entries in ascending key
// order via an explicit pending-work stack (see iterseq for the shared
// stack-walk shape used by both avl and phamt).
func (m Map[K, V]) All() func(yield func(Pair[K, V]) bool) {
	return func(yield func(Pair[K, V]) bool) {
		inorder(m.root, func(k K, v V) bool {
			return yield(Pair[K, V]{Key: k, Val: v})
		})
	}
}
