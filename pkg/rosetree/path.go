package rosetree

import "errors"

// ErrRootHasNoParent is returned by operations that require the focus to
// have a parent, such as removing it from the tree.
var ErrRootHasNoParent = errors.New("rosetree: root has no parent to remove it from")

// Path is a zipper: the root-to-focus spine of a tree, as a sequence of
// node handles from root (index 0) to the focused node (the last index).
// Every Path is non-empty; a freshly constructed tree is a Path of length 1
// holding only its root.
type Path[D any] struct {
	nodes []*Node[D]
}

// New returns a one-node tree (root only) focused on its root.
func New[D any](rootData D) Path[D] {
	return Path[D]{nodes: []*Node[D]{newNode(rootData, emptyChildren[D]())}}
}

// Data returns the focused node's data.
func (p Path[D]) Data() D {
	return p.focus().data
}

// Len returns the path length: 1 at the root, growing by one per level of
// descent.
func (p Path[D]) Len() int {
	return len(p.nodes)
}

func (p Path[D]) focus() *Node[D] {
	return p.nodes[len(p.nodes)-1]
}

func reverseNodes[D any](nodes []*Node[D]) {
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
}

// propagateChange rebuilds the spine above the focus with newFocus in its
// place, splicing the old focus handle out of and the new one into each
// ancestor's children set on the way up to the root.
func (p Path[D]) propagateChange(newFocus *Node[D]) Path[D] {
	n := len(p.nodes)
	built := make([]*Node[D], 0, n)
	built = append(built, newFocus)

	for i := 0; i < n-1; i++ {
		parent := p.nodes[n-i-2]
		children := parent.children.Remove(p.nodes[n-i-1]).Insert(built[i])
		built = append(built, newNode(parent.data, children))
	}

	reverseNodes(built)

	return Path[D]{nodes: built}
}

// AddChild returns a tree with a new child (holding data) added under the
// focus, focused on that new child. Every ancestor on the spine is
// rebuilt; every other subtree is shared with p.
func (p Path[D]) AddChild(data D) Path[D] {
	newChild := newNode(data, emptyChildren[D]())

	n := len(p.nodes)
	built := make([]*Node[D], 0, n+1)
	built = append(built, newChild)

	for i := 0; i < n; i++ {
		// orig is the node being rebuilt at this level: the old focus
		// itself when i == 0, an ancestor of it for i > 0.
		orig := p.nodes[n-1-i]
		children := orig.children.Insert(built[i])

		if i != 0 {
			children = children.Remove(p.nodes[n-i])
		}

		built = append(built, newNode(orig.data, children))
	}

	reverseNodes(built)

	return Path[D]{nodes: built}
}

// RemoveFocus returns a tree with the focused node (and everything beneath
// it) removed, focused on its former parent. It panics if the focus is the
// root: a tree always has a root, so the root cannot be removed from
// itself.
func (p Path[D]) RemoveFocus() Path[D] {
	if len(p.nodes) <= 1 {
		panic(ErrRootHasNoParent)
	}

	n := len(p.nodes)
	built := make([]*Node[D], 0, n-1)

	for i := 0; i < n-1; i++ {
		parent := p.nodes[n-i-2]
		children := parent.children.Remove(p.nodes[n-i-1])

		if i != 0 {
			children = children.Insert(built[i-1])
		}

		built = append(built, newNode(parent.data, children))
	}

	reverseNodes(built)

	return Path[D]{nodes: built}
}

// Parent returns the path focused one level up, without altering the tree.
// It panics if the focus is already the root.
func (p Path[D]) Parent() Path[D] {
	if len(p.nodes) <= 1 {
		panic(ErrRootHasNoParent)
	}

	nodes := make([]*Node[D], len(p.nodes)-1)
	copy(nodes, p.nodes[:len(p.nodes)-1])

	return Path[D]{nodes: nodes}
}

// Root returns the path focused on the tree's root.
func (p Path[D]) Root() Path[D] {
	return Path[D]{nodes: []*Node[D]{p.nodes[0]}}
}

// Children returns a Path for every direct child of the focus, each
// extending the current spine by one node.
func (p Path[D]) Children() []Path[D] {
	focus := p.focus()
	out := make([]Path[D], 0, focus.NumChildren())

	for c := range focus.children.All() {
		nodes := make([]*Node[D], len(p.nodes)+1)
		copy(nodes, p.nodes)
		nodes[len(p.nodes)] = c
		out = append(out, Path[D]{nodes: nodes})
	}

	return out
}

// SetData returns a tree with the focus's data replaced by d, keeping its
// children untouched.
func (p Path[D]) SetData(d D) Path[D] {
	focus := p.focus()

	return p.propagateChange(newNode(d, focus.children))
}

// Apply returns a tree with the focus's data replaced by f's result when f
// reports a change; otherwise it returns p unchanged (same handles
// throughout).
func (p Path[D]) Apply(f func(D) (D, bool)) Path[D] {
	newFocus, changed := p.focus().apply(f)
	if !changed {
		return p
	}

	return p.propagateChange(newFocus)
}

// ApplyRecursive walks the focus's subtree in post-order, replacing every
// node's data with f's result wherever f reports a change. A subtree with
// no changes anywhere is returned as the exact same handle it started as:
// calling ApplyRecursive with a function that never reports a change
// returns p itself and builds no nodes. The walk over each children set
// still allocates its own temporary iteration state.
func (p Path[D]) ApplyRecursive(f func(D) (D, bool)) Path[D] {
	newFocus, changed := p.focus().applyRecursive(f)
	if !changed {
		return p
	}

	return p.propagateChange(newFocus)
}

// ApplyAccumulating behaves like ApplyRecursive but threads acc through the
// walk, pushing each node's data on entering it and popping it on the way
// back out, so f can consult the path from the focus down to the node it is
// transforming, that node included. Ancestors above the focus are not
// pushed.
func (p Path[D]) ApplyAccumulating(acc TreeAcc[D], f func(TreeAcc[D], D) (D, bool)) Path[D] {
	newFocus, changed := p.focus().applyAccumulating(acc, f)
	if !changed {
		return p
	}

	return p.propagateChange(newFocus)
}

// FilterRecursive keeps only the nodes of the focus's subtree (and their
// descendants) that satisfy pred. It returns false if the focus itself
// fails pred, in which case there is no resulting subtree.
func (p Path[D]) FilterRecursive(pred func(D) bool) (Path[D], bool) {
	newFocus, ok := p.focus().filterRecursive(pred)
	if !ok {
		return Path[D]{}, false
	}

	return p.propagateChange(newFocus), true
}

// MapData transforms every node's data in the focus's subtree via f, in a
// children-first traversal. A subtree f leaves entirely unchanged is
// returned as the same handle it started as.
func (p Path[D]) MapData(f func(D) (D, bool)) Path[D] {
	newFocus, changed := p.focus().mapData(f)
	if !changed {
		return p
	}

	return p.propagateChange(newFocus)
}

// RemoveAllChildren returns a tree with every direct and indirect
// descendant of the focus removed, keeping only the focus's own data. It
// is a no-op (same handles) if the focus already has no children.
func (p Path[D]) RemoveAllChildren() Path[D] {
	focus := p.focus()
	if focus.NumChildren() == 0 {
		return p
	}

	return p.propagateChange(newNode(focus.data, emptyChildren[D]()))
}

// Flatten returns every node in the focus's subtree, focus first, in
// pre-order.
func (p Path[D]) Flatten() []D {
	var nodes []*Node[D]
	p.focus().flatten(&nodes)

	out := make([]D, len(nodes))
	for i, n := range nodes {
		out[i] = n.data
	}

	return out
}

// IterRecursive calls f with every node's data in the focus's subtree, in
// pre-order.
func (p Path[D]) IterRecursive(f func(D)) {
	p.focus().iterRecursive(func(n *Node[D]) { f(n.data) })
}

// IterAccumulating walks the focus's subtree in pre-order, pushing onto acc
// before visiting a node's children and popping on the way back out, and
// calling f with acc and the current node's data at every node.
func (p Path[D]) IterAccumulating(acc TreeAcc[D], f func(TreeAcc[D], D)) {
	p.focus().iterAccumulating(acc, func(a TreeAcc[D], n *Node[D]) { f(a, n.data) })
}
