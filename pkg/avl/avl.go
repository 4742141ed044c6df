// Package avl implements persistent, height-balanced (AVL) ordered maps and
// sets. Every insert and remove rebalances on the way back up and returns a
// new tree; a tree a caller already holds observes its original contents
// forever.
package avl

import (
	"errors"

	"github.com/Sumatoshi-tech/persist/pkg/capability"
	"github.com/Sumatoshi-tech/persist/pkg/iterseq"
	"github.com/Sumatoshi-tech/persist/pkg/mathutil"
)

// ErrEmpty is returned by operations that require a non-empty tree.
var ErrEmpty = errors.New("avl: tree is empty")

// node is a tree node. A nil *node is the empty tree, so a single generic
// node type with nil children stands in for the leaf and empty cases too.
// height is cached and always equals 1 + max(left.height, right.height),
// with nil treated as height 0.
type node[K, V any] struct {
	left, right *node[K, V]
	key         K
	val         V
	height      int
}

func height[K, V any](n *node[K, V]) int {
	if n == nil {
		return 0
	}

	return n.height
}

// mk builds a well-formed node from a (possibly empty) left subtree, a
// key/value pair, and a (possibly empty) right subtree, recomputing height.
func mk[K, V any](left *node[K, V], key K, val V, right *node[K, V]) *node[K, V] {
	return &node[K, V]{
		left:   left,
		right:  right,
		key:    key,
		val:    val,
		height: 1 + mathutil.Max(height(left), height(right)),
	}
}

// rebalance restores the AVL invariant |left.height - right.height| <= 2 for
// the node that would be built from (left, key, val, right), applying a
// single or double rotation when the imbalance exceeds 2. It is the one
// primitive every structural mutation funnels through.
func rebalance[K, V any](left *node[K, V], key K, val V, right *node[K, V]) *node[K, V] {
	h1, h2 := height(left), height(right)

	switch {
	case h2 > h1+2:
		if height(right.left) > h1+1 {
			// Double rotation: left-heavy right child (LR case).
			rl := right.left

			return mk(
				mk(left, key, val, rl.left),
				rl.key, rl.val,
				mk(rl.right, right.key, right.val, right.right),
			)
		}
		// Single left rotation.
		return mk(mk(left, key, val, right.left), right.key, right.val, right.right)

	case h1 > h2+2:
		if height(left.right) > h2+1 {
			// Double rotation: right-heavy left child (RL case).
			lr := left.right

			return mk(
				mk(left.left, left.key, left.val, lr.left),
				lr.key, lr.val,
				mk(lr.right, key, val, right),
			)
		}
		// Single right rotation.
		return mk(left.left, left.key, left.val, mk(left.right, key, val, right))

	default:
		return mk(left, key, val, right)
	}
}

// insert descends to key's BST position and rebalances on the way back up,
// returning the new subtree, whether a genuine addition grew the tree, and
// the depth (number of recursive frames, 0 at a leaf position) the change
// was made at, for callers that report real per-operation rebalance depth.
func insert[K, V any](n *node[K, V], key K, val V, cmp capability.Ordered[K]) (*node[K, V], bool, int) {
	if n == nil {
		return mk[K, V](nil, key, val, nil), true, 0
	}

	switch c := cmp(key, n.key); {
	case c < 0:
		left, grew, depth := insert(n.left, key, val, cmp)

		return rebalance(left, n.key, n.val, n.right), grew, depth + 1
	case c > 0:
		right, grew, depth := insert(n.right, key, val, cmp)

		return rebalance(n.left, n.key, n.val, right), grew, depth + 1
	default:
		return mk(n.left, key, val, n.right), false, 0
	}
}

func find[K, V any](n *node[K, V], key K, cmp capability.Ordered[K]) (V, bool) {
	for n != nil {
		switch c := cmp(key, n.key); {
		case c < 0:
			n = n.left
		case c > 0:
			n = n.right
		default:
			return n.val, true
		}
	}

	var zero V

	return zero, false
}

// remove descends to key and splices it out, rebalancing on the way back
// up, returning the new subtree, whether key was present, and the depth the
// removed (or successor-spliced) node was found at.
func remove[K, V any](n *node[K, V], key K, cmp capability.Ordered[K]) (*node[K, V], bool, int) {
	if n == nil {
		return nil, false, 0
	}

	switch c := cmp(key, n.key); {
	case c < 0:
		left, removed, depth := remove(n.left, key, cmp)
		if !removed {
			return n, false, 0
		}

		return rebalance(left, n.key, n.val, n.right), true, depth + 1
	case c > 0:
		right, removed, depth := remove(n.right, key, cmp)
		if !removed {
			return n, false, 0
		}

		return rebalance(n.left, n.key, n.val, right), true, depth + 1
	default:
		switch {
		case n.left == nil:
			return n.right, true, 0
		case n.right == nil:
			return n.left, true, 0
		default:
			// In-order successor: leftmost descendant of the right subtree.
			rest, succKey, succVal, depth := spliceMin(n.right)

			return rebalance(n.left, succKey, succVal, rest), true, depth + 1
		}
	}
}

func spliceMin[K, V any](n *node[K, V]) (rest *node[K, V], key K, val V, depth int) {
	if n.left == nil {
		return n.right, n.key, n.val, 0
	}

	rest, key, val, depth = spliceMin(n.left)

	return rebalance(rest, n.key, n.val, n.right), key, val, depth + 1
}

func pushLeftSpine[K, V any](stack *iterseq.Stack[*node[K, V]], n *node[K, V]) {
	for n != nil {
		stack.Push(n)
		n = n.left
	}
}

// inorder walks the tree depth-first in sorted key order using an explicit
// pending-work stack (pkg/iterseq), calling visit for each key/value in
// turn. It stops early if visit returns false.
func inorder[K, V any](root *node[K, V], visit func(K, V) bool) {
	var stack iterseq.Stack[*node[K, V]]

	pushLeftSpine(&stack, root)

	for !stack.IsEmpty() {
		top := stack.Pop()

		if !visit(top.key, top.val) {
			return
		}

		pushLeftSpine(&stack, top.right)
	}
}
