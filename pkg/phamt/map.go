package phamt

import "github.com/Sumatoshi-tech/persist/pkg/capability"

// Map is a persistent, unordered hash map keyed by K with values V, backed
// by a HAMT-style trie. Map.Insert is an upsert: inserting an existing key
// replaces its value and leaves Len unchanged.
type Map[K, V any] struct {
	root *node[K, V]
	hash capability.Hasher[K]
	eq   capability.Equaler[K]
	size int
}

// NewMap returns an empty hash map that hashes keys with hash and
// disambiguates hash collisions with eq.
func NewMap[K, V any](hash capability.Hasher[K], eq capability.Equaler[K]) Map[K, V] {
	return Map[K, V]{hash: hash, eq: eq}
}

// Len returns the number of entries in the map.
func (m Map[K, V]) Len() int {
	return m.size
}

// IsEmpty reports whether the map has no entries.
func (m Map[K, V]) IsEmpty() bool {
	return m.size == 0
}

// Insert returns a new map with key bound to val (upsert semantics: a
// pre-existing key's value is replaced and Len is unchanged).
func (m Map[K, V]) Insert(key K, val V) Map[K, V] {
	out, _ := m.InsertObserved(key, val)

	return out
}

// InsertObserved behaves like Insert but also returns the trie depth (the
// number of Branch levels descended from the root) this insert reached,
// for callers that report real per-operation HAMT depth to telemetry
// rather than Insert's plain result.
func (m Map[K, V]) InsertObserved(key K, val V) (Map[K, V], int) {
	e := entry[K, V]{key: key, val: val, hash: m.hash(key)}
	root, delta, depth := insertNode(m.root, 0, e, m.eq, true)

	return Map[K, V]{root: root, hash: m.hash, eq: m.eq, size: m.size + delta}, depth
}

// Remove returns a new map without key. Removing an absent key returns the
// receiver unchanged.
func (m Map[K, V]) Remove(key K) Map[K, V] {
	out, _ := m.RemoveObserved(key)

	return out
}

// RemoveObserved behaves like Remove but also returns the trie depth key
// was found at, 0 if key was absent.
func (m Map[K, V]) RemoveObserved(key K) (Map[K, V], int) {
	root, removed, depth := removeNode(m.root, 0, m.hash(key), key, m.eq)
	if !removed {
		return m, 0
	}

	return Map[K, V]{root: root, hash: m.hash, eq: m.eq, size: m.size - 1}, depth
}

// Find returns the value bound to key and true, or the zero value and
// false if key is absent.
func (m Map[K, V]) Find(key K) (V, bool) {
	return findNode(m.root, 0, m.hash(key), key, m.eq)
}

// Exists reports whether key is present in the map.
func (m Map[K, V]) Exists(key K) bool {
	_, ok := findNode(m.root, 0, m.hash(key), key, m.eq)

	return ok
}

// Pair is a key/value entry as produced by ToSequence and All.
type Pair[K, V any] struct {
	Key K
	Val V
}

// ToSequence returns every entry. Order is unspecified (a function of trie
// slot layout) but deterministic for a fixed map version.
func (m Map[K, V]) ToSequence() []Pair[K, V] {
	seq := make([]Pair[K, V], 0, m.size)
	walk(m.root, func(e entry[K, V]) bool {
		seq = append(seq, Pair[K, V]{Key: e.key, Val: e.val})

		return true
	})

	return seq
}

// All returns a range-over-func iterator over every entry, in the same
// deterministic-but-unspecified order as ToSequence.
func (m Map[K, V]) All() func(yield func(Pair[K, V]) bool) {
	return func(yield func(Pair[K, V]) bool) {
		walk(m.root, func(e entry[K, V]) bool {
			return yield(Pair[K, V]{Key: e.key, Val: e.val})
		})
	}
}

// debugCount recomputes the entry count by walking the trie, for tests that
// cross-check the wrapper-level size bookkeeping and the trie's cached
// per-Branch counts against it.
func (m Map[K, V]) debugCount() int {
	count := 0

	walk(m.root, func(entry[K, V]) bool {
		count++

		return true
	})

	return count
}
