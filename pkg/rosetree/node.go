// Package rosetree implements a persistent rose tree navigated and mutated
// through a zipper: a Path holds the root-to-focus spine as a slice of node
// handles, and every mutation rebuilds just that spine, sharing every
// subtree not on it with the version the caller already held.
//
// A node's children are an unordered set keyed by handle identity (pointer
// address), not by data, so two children with equal data are still distinct
// members, the way a tree of independent objects behaves.
package rosetree

import (
	"unsafe"

	"github.com/Sumatoshi-tech/persist/pkg/phamt"
)

// Node is one immutable tree node: a data value and the set of its
// children, identified by handle rather than by value.
type Node[D any] struct {
	data     D
	children phamt.Set[*Node[D]]
}

// TreeAcc is the push/pop hook pair threaded through the accumulating walks
// (ApplyAccumulating, IterAccumulating): Push fires on the way down to a
// child, Pop on the way back up.
type TreeAcc[D any] interface {
	Push(d D)
	Pop()
}

func nodeHash[D any](n *Node[D]) uint64 {
	return uint64(uintptr(unsafe.Pointer(n)))
}

func nodeEq[D any](a, b *Node[D]) bool {
	return a == b
}

func emptyChildren[D any]() phamt.Set[*Node[D]] {
	return phamt.NewSet[*Node[D]](nodeHash[D], nodeEq[D])
}

func newNode[D any](data D, children phamt.Set[*Node[D]]) *Node[D] {
	return &Node[D]{data: data, children: children}
}

// Data returns the node's own data value.
func (n *Node[D]) Data() D {
	return n.data
}

// NumChildren returns the number of direct children.
func (n *Node[D]) NumChildren() int {
	return n.children.Len()
}

func (n *Node[D]) apply(f func(D) (D, bool)) (*Node[D], bool) {
	newData, changed := f(n.data)
	if !changed {
		return n, false
	}

	return newNode(newData, n.children), true
}

// applyRecursive rebuilds n and every descendant whose data or subtree
// actually changed, reusing every unaffected child by handle. f is invoked
// on every node's data in a children-first (post-order) traversal.
func (n *Node[D]) applyRecursive(f func(D) (D, bool)) (*Node[D], bool) {
	childrenChanged := false
	children := n.children

	for c := range n.children.All() {
		newChild, changed := c.applyRecursive(f)
		if changed {
			childrenChanged = true
			children = children.Remove(c).Insert(newChild)
		}
	}

	newData, dataChanged := f(n.data)
	data := n.data

	if dataChanged {
		data = newData
	}

	if !childrenChanged && !dataChanged {
		return n, false
	}

	return newNode(data, children), true
}

// applyAccumulating behaves like applyRecursive but maintains acc across the
// walk: acc.Push(data) on entering a node, before its children and f are
// visited, acc.Pop() on the way back out, so f sees the data of the node it
// is about to transform and of that node's ancestors within the walk.
func (n *Node[D]) applyAccumulating(acc TreeAcc[D], f func(TreeAcc[D], D) (D, bool)) (*Node[D], bool) {
	acc.Push(n.data)
	defer acc.Pop()

	childrenChanged := false
	children := n.children

	for c := range n.children.All() {
		newChild, changed := c.applyAccumulating(acc, f)
		if changed {
			childrenChanged = true
			children = children.Remove(c).Insert(newChild)
		}
	}

	newData, dataChanged := f(acc, n.data)
	data := n.data

	if dataChanged {
		data = newData
	}

	if !childrenChanged && !dataChanged {
		return n, false
	}

	return newNode(data, children), true
}

// filterRecursive keeps n and its descendants that satisfy pred, dropping
// any subtree whose root fails it. It reports false if n itself fails pred,
// meaning there is no surviving node to return.
func (n *Node[D]) filterRecursive(pred func(D) bool) (*Node[D], bool) {
	if !pred(n.data) {
		return nil, false
	}

	children := emptyChildren[D]()

	for c := range n.children.All() {
		if kept, ok := c.filterRecursive(pred); ok {
			children = children.Insert(kept)
		}
	}

	return newNode(n.data, children), true
}

// mapData transforms every node's data in a children-first traversal,
// returning false only when f left every node in the subtree unchanged
// (in which case the whole subtree, including n, is returned untouched).
func (n *Node[D]) mapData(f func(D) (D, bool)) (*Node[D], bool) {
	childrenChanged := false
	newChildren := emptyChildren[D]()

	for c := range n.children.All() {
		newChild, changed := c.mapData(f)
		if changed {
			childrenChanged = true
		} else {
			newChild = c
		}

		newChildren = newChildren.Insert(newChild)
	}

	newData, dataChanged := f(n.data)

	switch {
	case dataChanged:
		children := n.children
		if childrenChanged {
			children = newChildren
		}

		return newNode(newData, children), true
	case childrenChanged:
		return newNode(n.data, newChildren), true
	default:
		return n, false
	}
}

func (n *Node[D]) flatten(out *[]*Node[D]) {
	*out = append(*out, n)

	for c := range n.children.All() {
		c.flatten(out)
	}
}

func (n *Node[D]) iterRecursive(f func(*Node[D])) {
	f(n)

	for c := range n.children.All() {
		c.iterRecursive(f)
	}
}

func (n *Node[D]) iterAccumulating(acc TreeAcc[D], f func(TreeAcc[D], *Node[D])) {
	acc.Push(n.data)
	defer acc.Pop()

	f(acc, n)

	for c := range n.children.All() {
		c.iterAccumulating(acc, f)
	}
}
