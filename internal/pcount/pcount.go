// Package pcount provides a small shared-reference counter used internally
// to tell a uniquely-owned node from one aliased by more than one handle.
// Go's garbage collector already reclaims unreachable nodes, so nothing here
// performs unchecked in-place mutation of shared state: the counter only
// feeds debug logging about how much structural sharing a given operation
// is walking over.
package pcount

import "sync/atomic"

// Counter tracks how many handles currently reference the node it is
// attached to. A freshly created node starts at 1 (owned by its creator);
// Share is called whenever the same node is adopted as a substructure of
// another new node.
type Counter struct {
	n atomic.Int64
}

// New returns a Counter initialized to a single owner.
func New() *Counter {
	c := &Counter{}
	c.n.Store(1)

	return c
}

// Share records one more handle referencing the counted node and returns
// the updated count.
func (c *Counter) Share() int64 {
	if c == nil {
		return 0
	}

	return c.n.Add(1)
}

// IsUnique reports whether the counted node currently has exactly one
// referent. A nil Counter is treated as unique (nothing to share).
func (c *Counter) IsUnique() bool {
	if c == nil {
		return true
	}

	return c.n.Load() == 1
}

// Count returns the current reference count.
func (c *Counter) Count() int64 {
	if c == nil {
		return 1
	}

	return c.n.Load()
}
