// Package phamt implements persistent, unordered hash maps and sets backed
// by a HAMT-style hash-prefix trie: a wide (32-way, by default) fan-out trie
// keyed by successive BITS-wide slices of a 64-bit hash. Mutations clone
// only the children array of the Branch nodes on the path to the change;
// every other subtree is shared by handle with the previous version.
package phamt

import (
	"errors"

	"github.com/Sumatoshi-tech/persist/pkg/capability"
	"github.com/Sumatoshi-tech/persist/pkg/iterseq"
	"github.com/Sumatoshi-tech/persist/pkg/safeconv"
)

// ErrEmpty is returned by operations that require a non-empty container.
var ErrEmpty = errors.New("phamt: container is empty")

// Bits is the number of hash bits consumed per trie level. Fan is the
// resulting fan-out of every Branch node.
const (
	Bits = 5
	Fan  = 1 << Bits
	mask = Fan - 1
)

// maxDepth is the first depth whose shift (maxDepth*Bits = 65) is past the
// width of the hash; Branch nodes only occur at depths below it. Two keys
// whose hashes still collide after being sliced all the way down to
// maxDepth share a collision node there instead of another Branch.
const maxDepth = (64 + Bits - 1) / Bits

func indexAt(hash uint64, depth int) int {
	return int((hash >> safeconv.MustIntToUint(depth*Bits)) & mask)
}

// entry is a single key/value pair together with its cached hash.
type entry[K, V any] struct {
	key  K
	val  V
	hash uint64
}

// node is one of Empty (nil), Singleton (single != nil), Branch (children !=
// nil), or a terminal-depth collision list (collision != nil, len >= 2). At
// most one of the three is set on any given node.
type node[K, V any] struct {
	single    *entry[K, V]
	children  []*node[K, V]
	collision []entry[K, V]
	count     int // Branch only: total Singleton/collision-entry descendants.
}

func newBranchSlots[K, V any]() []*node[K, V] {
	return make([]*node[K, V], Fan)
}

func cloneChildren[K, V any](children []*node[K, V]) []*node[K, V] {
	clone := make([]*node[K, V], Fan)
	copy(clone, children)

	return clone
}

// insertNode inserts e into n at depth, returning the resulting node, the
// size delta (0 or 1), and the trie depth (number of Branch levels
// descended) the insertion reached, for callers that report real
// per-operation trie depth. When upsert is true a key collision replaces
// the stored value (map semantics); when false a key collision is a no-op
// and the original node pointer is returned unchanged so that ancestors can
// detect "no structural change" and skip rebuilding (set semantics).
func insertNode[K, V any](
	n *node[K, V], depth int, e entry[K, V], eq capability.Equaler[K], upsert bool,
) (*node[K, V], int, int) {
	switch {
	case n == nil:
		return &node[K, V]{single: &e}, 1, depth

	case n.collision != nil:
		for i, ex := range n.collision {
			if ex.hash == e.hash && eq(ex.key, e.key) {
				if !upsert {
					return n, 0, depth
				}

				replaced := append([]entry[K, V](nil), n.collision...)
				replaced[i] = e

				return &node[K, V]{collision: replaced}, 0, depth
			}
		}

		grown := append(append([]entry[K, V](nil), n.collision...), e)

		return &node[K, V]{collision: grown}, 1, depth

	case n.single != nil:
		if n.single.hash == e.hash && eq(n.single.key, e.key) {
			if !upsert {
				return n, 0, depth
			}

			return &node[K, V]{single: &e}, 0, depth
		}

		idx1 := indexAt(n.single.hash, depth)
		idx2 := indexAt(e.hash, depth)
		children := newBranchSlots[K, V]()

		if idx1 != idx2 {
			children[idx1] = n
			children[idx2] = &node[K, V]{single: &e}

			return &node[K, V]{children: children, count: 2}, 1, depth
		}

		if depth >= maxDepth {
			// The full hash has been exhausted and both keys still collide:
			// fall back to a collision list rather than shift past 64 bits.
			return &node[K, V]{collision: []entry[K, V]{*n.single, e}}, 1, depth
		}

		child, _, childDepth := insertNode[K, V](&node[K, V]{single: &e}, depth+1, *n.single, eq, upsert)
		children[idx1] = child

		return &node[K, V]{children: children, count: 2}, 1, childDepth

	default: // Branch
		idx := indexAt(e.hash, depth)

		newChild, delta, reached := insertNode(n.children[idx], depth+1, e, eq, upsert)
		if delta == 0 && newChild == n.children[idx] {
			return n, 0, reached
		}

		newChildren := cloneChildren(n.children)
		newChildren[idx] = newChild

		return &node[K, V]{children: newChildren, count: n.count + delta}, delta, reached
	}
}

// removeNode removes the entry at hash/key from n at depth, returning the
// resulting node, whether the entry was present, and the trie depth it was
// found at.
func removeNode[K, V any](
	n *node[K, V], depth int, hash uint64, key K, eq capability.Equaler[K],
) (*node[K, V], bool, int) {
	switch {
	case n == nil:
		return nil, false, depth

	case n.collision != nil:
		for i, ex := range n.collision {
			if ex.hash == hash && eq(ex.key, key) {
				rest := make([]entry[K, V], 0, len(n.collision)-1)
				rest = append(rest, n.collision[:i]...)
				rest = append(rest, n.collision[i+1:]...)

				if len(rest) == 1 {
					return &node[K, V]{single: &rest[0]}, true, depth
				}

				return &node[K, V]{collision: rest}, true, depth
			}
		}

		return n, false, depth

	case n.single != nil:
		if n.single.hash == hash && eq(n.single.key, key) {
			return nil, true, depth
		}

		return n, false, depth

	default: // Branch
		idx := indexAt(hash, depth)

		newChild, removed, reached := removeNode(n.children[idx], depth+1, hash, key, eq)
		if !removed {
			return n, false, reached
		}

		if newChild == nil && n.count == 1 {
			return nil, true, reached
		}

		newChildren := cloneChildren(n.children)
		newChildren[idx] = newChild

		return &node[K, V]{children: newChildren, count: n.count - 1}, true, reached
	}
}

func findNode[K, V any](n *node[K, V], depth int, hash uint64, key K, eq capability.Equaler[K]) (V, bool) {
	for {
		switch {
		case n == nil:
			var zero V

			return zero, false

		case n.collision != nil:
			for _, ex := range n.collision {
				if ex.hash == hash && eq(ex.key, key) {
					return ex.val, true
				}
			}

			var zero V

			return zero, false

		case n.single != nil:
			if n.single.hash == hash && eq(n.single.key, key) {
				return n.single.val, true
			}

			var zero V

			return zero, false

		default:
			n = n.children[indexAt(hash, depth)]
			depth++
		}
	}
}

// frame is a pending-work stack entry for the depth-first, slot-order walk:
// a Branch node together with the next child slot to descend into.
type frame[K, V any] struct {
	n    *node[K, V]
	next int
}

// walk performs a depth-first, slot-order traversal of the trie using an
// explicit stack of frames (pkg/iterseq), invoking visit for every stored
// entry. It stops early if visit returns false.
func walk[K, V any](root *node[K, V], visit func(entry[K, V]) bool) {
	if root == nil {
		return
	}

	var stack iterseq.Stack[frame[K, V]]

	stack.Push(frame[K, V]{n: root})

	for !stack.IsEmpty() {
		top := stack.Peek()

		switch {
		case top.n.single != nil:
			e := *top.n.single
			stack.Pop()

			if !visit(e) {
				return
			}

		case top.n.collision != nil:
			entries := top.n.collision
			stack.Pop()

			for _, e := range entries {
				if !visit(e) {
					return
				}
			}

		case top.next >= len(top.n.children):
			stack.Pop()

		default:
			child := top.n.children[top.next]
			top.next++

			if child != nil {
				stack.Push(frame[K, V]{n: child})
			}
		}
	}
}

func countOf[K, V any](n *node[K, V]) int {
	switch {
	case n == nil:
		return 0
	case n.single != nil:
		return 1
	case n.collision != nil:
		return len(n.collision)
	default:
		return n.count
	}
}
