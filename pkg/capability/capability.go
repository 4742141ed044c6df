// Package capability declares the small set of behaviors a host type must
// supply for it to be usable as an element or key in the persist containers:
// hashing, total ordering, and equality/cloning. None of hashing, ordering,
// or equality is invented by this library; the host type supplies it.
package capability

import "cmp"

// Hasher produces a 64-bit hash for values of type T. Containers that key on
// hash (pkg/phamt) slice this hash at different bit offsets as they descend;
// a weak hash only degrades performance (collisions cluster at deep trie
// levels), never correctness — see pkg/phamt's collision list.
type Hasher[T any] func(v T) uint64

// Ordered produces a total order over values of type T: negative when a < b,
// zero when a == b, positive when a > b. Used by pkg/avl.
type Ordered[T any] func(a, b T) int

// Equaler reports whether two values of type T are equal. Used by pkg/phamt
// to disambiguate values that hash identically.
type Equaler[T any] func(a, b T) bool

// Cloner produces a cheap or shared-by-handle copy of a value of type T.
// Most element types used with this library are already cheap to copy
// (ints, strings, small structs, pointers); Cloner exists for element types
// whose "clone" is actually a shared-handle duplication.
type Cloner[T any] func(v T) T

// IdentityCloner returns a Cloner that returns its argument unchanged. This
// is correct for any T that is already cheap to copy by value.
func IdentityCloner[T any]() Cloner[T] {
	return func(v T) T { return v }
}

// OrderedFromCmp returns the Ordered capability for any T whose natural
// ordering is the one the standard library's cmp package already knows how
// to compare (ints, floats, strings, ...), so callers keying pkg/avl on a
// built-in type never need to hand-write a wrapper around cmp.Compare.
func OrderedFromCmp[T cmp.Ordered]() Ordered[T] {
	return cmp.Compare[T]
}
