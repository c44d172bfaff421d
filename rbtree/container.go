package rbtree

import (
	"cmp"
	"iter"
)

// Equal reports whether a and b contain the same keys mapped to equal
// values, regardless of tree shape or insertion history. Two empty trees
// are equal.
//
// Equal is a free function rather than a method because it requires V to
// satisfy comparable, a constraint the Tree type itself does not impose.
//
// Time complexity: O(n).
func Equal[K comparable, V comparable](a, b *Tree[K, V]) bool {
	if a.Len() != b.Len() {
		return false
	}

	an, bn := a.minNode(a.Root), b.minNode(b.Root)
	for an != nil {
		if bn == nil || an.Key != bn.Key || an.Value != bn.Value {
			return false
		}

		an = an.successor()
		bn = bn.successor()
	}

	return bn == nil
}

// Extend inserts every pair produced by seq into t, in iteration order.
// Existing keys are overwritten, following Insert's replace semantics.
//
// Time complexity: O(m log n) for m pairs in seq.
func Extend[K comparable, V any](t *Tree[K, V], seq iter.Seq2[K, V]) {
	for k, v := range seq {
		t.Insert(k, v)
	}
}

// FromSeq builds a new tree, ordered by K's built-in comparison, from the
// pairs produced by seq, in iteration order. Later pairs for an
// already-seen key overwrite earlier ones.
//
// Use NewWith plus Extend directly when K does not satisfy cmp.Ordered.
//
// Time complexity: O(m log m) for m pairs in seq.
func FromSeq[K cmp.Ordered, V any](seq iter.Seq2[K, V]) *Tree[K, V] {
	t := New[K, V]()
	Extend(t, seq)

	return t
}
