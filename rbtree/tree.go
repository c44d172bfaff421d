package rbtree

import (
	"cmp"
	"fmt"
	"strings"

	godscmp "github.com/qntx/ordtree/cmp"
)

// Tree is a red-black tree mapping keys of type K to values of type V under
// a total order on K.
//
// The zero value is not usable; construct one with New or NewWith. K must
// be comparable and compatible with the tree's Comparator. Not thread-safe.
type Tree[K comparable, V any] struct {
	Root       *Node[K, V]            // Root node of the tree, nil if empty.
	len        int                    // Number of nodes in the tree.
	Comparator godscmp.Comparator[K]  // Total order on keys.
}

// New creates an empty red-black tree ordered by K's built-in comparison.
//
// K must satisfy cmp.Ordered (e.g., int, string, float64). Time complexity: O(1).
func New[K cmp.Ordered, V any]() *Tree[K, V] {
	return &Tree[K, V]{Comparator: cmp.Compare[K]}
}

// NewWith creates an empty red-black tree ordered by the given comparator.
//
// Use this when K does not satisfy cmp.Ordered (e.g., a struct key), or when
// a non-default ordering over an otherwise-ordered key is required. The
// comparator itself still defines a single total order for the tree's
// lifetime — Insert does not accept a per-call comparator.
//
// Time complexity: O(1).
func NewWith[K comparable, V any](comparator godscmp.Comparator[K]) *Tree[K, V] {
	return &Tree[K, V]{Comparator: comparator}
}

// Len returns the number of nodes in the tree.
//
// Time complexity: O(1).
func (t *Tree[K, V]) Len() int {
	return t.len
}

// IsEmpty reports whether the tree has no nodes.
//
// Time complexity: O(1).
func (t *Tree[K, V]) IsEmpty() bool {
	return t.len == 0
}

// Insert inserts (k, v) into the tree.
//
// If a node with key k already exists, its value is replaced and the
// previous value is returned with replaced=true; length is unchanged. If k
// is new, a node is inserted and the tree is rebalanced; replaced is false.
//
// Panics if k is incompatible with the tree's comparator.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Insert(k K, v V) (old V, replaced bool) {
	t.validateKey(k)

	if t.Root == nil {
		t.Root = &Node[K, V]{Key: k, Value: v, color: black}
		t.len++

		return old, false
	}

	node, parent := t.Root, (*Node[K, V])(nil)
	for node != nil {
		parent = node

		switch c := t.Comparator(k, node.Key); {
		case c == 0:
			old = node.Value
			node.Value = v

			return old, true
		case c < 0:
			node = node.Left
		default:
			node = node.Right
		}
	}

	n := &Node[K, V]{Key: k, Value: v, color: red, Parent: parent}
	if t.Comparator(k, parent.Key) < 0 {
		parent.Left = n
	} else {
		parent.Right = n
	}

	t.insertFixup(n)
	t.len++

	return old, false
}

// Get retrieves the value associated with k.
//
// Returns the value and true if found, the zero value and false otherwise.
// Panics if k is incompatible with the tree's comparator.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Get(k K) (v V, found bool) {
	if n := t.lookup(k); n != nil {
		return n.Value, true
	}

	return v, false
}

// GetMut retrieves a pointer to the value stored for k, allowing in-place
// mutation without a second lookup.
//
// The returned pointer is valid only until the next structural mutation of
// the tree (Insert, Remove, Clear, or a Drain); using it afterward is
// undefined behavior. Returns nil, false if k is not present.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) GetMut(k K) (*V, bool) {
	n := t.lookup(k)
	if n == nil {
		return nil, false
	}

	return &n.Value, true
}

// GetNode retrieves the node for key k, or nil if not found.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) GetNode(k K) *Node[K, V] {
	return t.lookup(k)
}

// Contains reports whether k is present in the tree.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Contains(k K) bool {
	return t.lookup(k) != nil
}

// Remove deletes the node with key k, returning its value and true if one
// existed, or the zero value and false otherwise.
//
// Panics if k is incompatible with the tree's comparator.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Remove(k K) (v V, removed bool) {
	n := t.lookup(k)
	if n == nil {
		return v, false
	}

	val := t.deleteNode(n)
	t.len--

	return val, true
}

// Index returns the value stored for k.
//
// Panics if k is absent, with a string message that includes ErrKeyNotFound's
// text and k — callers that cannot guarantee the key's presence should
// pre-check with Contains, or use Get.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Index(k K) V {
	v, ok := t.Get(k)
	if !ok {
		panic(fmt.Sprintf("ordtree/rbtree: %v: %v", ErrKeyNotFound, k))
	}

	return v
}

// First returns the node with the minimum key, or nil if the tree is empty.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) First() *Node[K, V] {
	return t.minNode(t.Root)
}

// Last returns the node with the maximum key, or nil if the tree is empty.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) Last() *Node[K, V] {
	return t.maxNode(t.Root)
}

// GetFirst returns the minimum (key, value) pair.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) GetFirst() (k K, v V, ok bool) {
	n := t.First()
	if n == nil {
		return k, v, false
	}

	return n.Key, n.Value, true
}

// GetLast returns the maximum (key, value) pair.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) GetLast() (k K, v V, ok bool) {
	n := t.Last()
	if n == nil {
		return k, v, false
	}

	return n.Key, n.Value, true
}

// PopFirst removes and returns the minimum (key, value) pair.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) PopFirst() (k K, v V, ok bool) {
	n := t.First()
	if n == nil {
		return k, v, false
	}

	k, v = n.Key, n.Value
	t.deleteNode(n)
	t.len--

	return k, v, true
}

// PopLast removes and returns the maximum (key, value) pair.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) PopLast() (k K, v V, ok bool) {
	n := t.Last()
	if n == nil {
		return k, v, false
	}

	k, v = n.Key, n.Value
	t.deleteNode(n)
	t.len--

	return k, v, true
}

// FindLessEqual finds the largest key less than or equal to k.
//
// If k itself is present, it returns (k's value, exact=true, ok=true). If
// not, it returns the entry for the largest key strictly less than k, with
// exact=false and ok=true. If no key in the tree is ≤ k, ok is false.
//
// Panics if k is incompatible with the tree's comparator.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) FindLessEqual(k K) (rk K, rv V, exact bool, ok bool) {
	t.validateKey(k)

	var best *Node[K, V]

	n := t.Root
	for n != nil {
		switch c := t.Comparator(k, n.Key); {
		case c == 0:
			return n.Key, n.Value, true, true
		case c > 0:
			best = n
			n = n.Right
		default:
			n = n.Left
		}
	}

	if best == nil {
		return rk, rv, false, false
	}

	return best.Key, best.Value, false, true
}

// Clear removes all nodes from the tree.
//
// The detached subtree is reclaimed by the garbage collector; there is no
// node-by-node walk. Time complexity: O(1).
func (t *Tree[K, V]) Clear() {
	t.Root = nil
	t.len = 0
}

// Clone returns an independent deep copy of the tree: disjoint nodes with
// identical keys, values, colors and shape. Mutating either tree afterward
// does not affect the other.
//
// Time complexity: O(n).
func (t *Tree[K, V]) Clone() *Tree[K, V] {
	return &Tree[K, V]{
		Root:       deepClone(t.Root, nil),
		len:        t.len,
		Comparator: t.Comparator,
	}
}

// String renders the tree as "{k1: v1, k2: v2, ...}" in ascending key order;
// the empty tree renders as "{}".
//
// Time complexity: O(n).
func (t *Tree[K, V]) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	first := true

	for n := t.minNode(t.Root); n != nil; n = n.successor() {
		if !first {
			sb.WriteString(", ")
		}

		first = false

		fmt.Fprintf(&sb, "%v: %v", n.Key, n.Value)
	}

	sb.WriteByte('}')

	return sb.String()
}

// --------------------------------------------------------------------------------
// Private search helpers

// validateKey panics if k is incompatible with the tree's comparator.
func (t *Tree[K, V]) validateKey(k K) {
	if _, err := safeCompare(t.Comparator, k, k); err != nil {
		panic(fmt.Sprintf("ordtree/rbtree: %v", err))
	}
}

// lookup finds the node with the given key, or nil if not found.
//
// Time complexity: O(log n).
func (t *Tree[K, V]) lookup(k K) *Node[K, V] {
	t.validateKey(k)

	n := t.Root
	for n != nil {
		switch c := t.Comparator(k, n.Key); {
		case c == 0:
			return n
		case c < 0:
			n = n.Left
		default:
			n = n.Right
		}
	}

	return nil
}

// minNode finds the leftmost node in the subtree rooted at n.
func (t *Tree[K, V]) minNode(n *Node[K, V]) *Node[K, V] {
	for n != nil && n.Left != nil {
		n = n.Left
	}

	return n
}

// maxNode finds the rightmost node in the subtree rooted at n.
func (t *Tree[K, V]) maxNode(n *Node[K, V]) *Node[K, V] {
	for n != nil && n.Right != nil {
		n = n.Right
	}

	return n
}

// safeCompare wraps a comparator call, converting a panic into an error so
// validateKey can attribute it to an incompatible comparator.
func safeCompare[K comparable](c godscmp.Comparator[K], a, b K) (result int, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrInvalidComparator, r)
		}
	}()

	return c(a, b), nil
}

// --------------------------------------------------------------------------------
// Rotations and fixups

// rotateLeft performs a left rotation around n, which must have a right child.
func (t *Tree[K, V]) rotateLeft(n *Node[K, V]) {
	r := n.Right
	t.replaceNode(n, r)

	n.Right = r.Left
	if r.Left != nil {
		r.Left.Parent = n
	}

	r.Left = n
	n.Parent = r
}

// rotateRight performs a right rotation around n, which must have a left child.
func (t *Tree[K, V]) rotateRight(n *Node[K, V]) {
	l := n.Left
	t.replaceNode(n, l)

	n.Left = l.Right
	if l.Right != nil {
		l.Right.Parent = n
	}

	l.Right = n
	n.Parent = l
}

// replaceNode substitutes newNode for oldNode in the tree's structure,
// updating the root link or the appropriate parent child slot.
func (t *Tree[K, V]) replaceNode(oldNode, newNode *Node[K, V]) {
	if oldNode.Parent == nil {
		t.Root = newNode
	} else if oldNode == oldNode.Parent.Left {
		oldNode.Parent.Left = newNode
	} else {
		oldNode.Parent.Right = newNode
	}

	if newNode != nil {
		newNode.Parent = oldNode.Parent
	}
}

// insertFixup restores the red-black invariants after inserting red node n.
func (t *Tree[K, V]) insertFixup(n *Node[K, V]) {
	for n != t.Root && nodeColor(n.Parent) == red {
		if u := n.uncle(); nodeColor(u) == red {
			n.Parent.color = black
			u.color = black

			gp := n.grandparent()
			gp.color = red
			n = gp

			continue
		}

		t.insertFixupRotate(n)

		break
	}

	t.Root.color = black
}

// insertFixupRotate handles the rotation cases of insertFixup once the
// uncle is known to be black (or absent).
func (t *Tree[K, V]) insertFixupRotate(n *Node[K, V]) {
	gp := n.grandparent()

	if n == n.Parent.Right && n.Parent == gp.Left {
		t.rotateLeft(n.Parent)
		n = n.Left
	} else if n == n.Parent.Left && n.Parent == gp.Right {
		t.rotateRight(n.Parent)
		n = n.Right
	}

	n.Parent.color = black
	gp.color = red

	if n == n.Parent.Left {
		t.rotateRight(gp)
	} else {
		t.rotateLeft(gp)
	}
}

// deleteNode splices n out of the tree via a value-swap when n has two
// children. A removed black node with a single (necessarily red) child only
// needs that child repainted black; a removed black leaf needs the full
// deleteFixup, since it leaves a genuine double-black hole in n's former
// slot. Returns n's original value.
func (t *Tree[K, V]) deleteNode(n *Node[K, V]) V {
	val := n.Value

	if n.Left != nil && n.Right != nil {
		s := n.successor()
		n.Key, n.Value = s.Key, s.Value
		n = s
	}

	child := n.Left
	if child == nil {
		child = n.Right
	}

	if n.color == black {
		if child != nil {
			child.color = black
		} else {
			t.deleteFixup(n)
		}
	}

	t.replaceNode(n, child)

	return val
}

// deleteFixup restores the red-black invariants after removing a black node,
// treating n as carrying a double-black token.
func (t *Tree[K, V]) deleteFixup(n *Node[K, V]) {
	if n.Parent == nil {
		return
	}

	s := n.sibling()
	if nodeColor(s) == red {
		n.Parent.color = red
		s.color = black

		if n == n.Parent.Left {
			t.rotateLeft(n.Parent)
		} else {
			t.rotateRight(n.Parent)
		}

		s = n.sibling()
	}

	t.deleteFixupCases(n, s)
}

// deleteFixupCases handles the black-sibling cases of deleteFixup.
func (t *Tree[K, V]) deleteFixupCases(n, s *Node[K, V]) {
	if nodeColor(s.Left) == black && nodeColor(s.Right) == black {
		if nodeColor(n.Parent) == red {
			s.color = red
			n.Parent.color = black

			return
		}

		s.color = red
		t.deleteFixup(n.Parent)

		return
	}

	t.deleteFixupRotate(n, s)
}

// deleteFixupRotate handles the cases of deleteFixup where at least one of
// the sibling's children is red.
func (t *Tree[K, V]) deleteFixupRotate(n, s *Node[K, V]) {
	isLeft := n == n.Parent.Left

	if isLeft && nodeColor(s.Right) == black {
		s.Left.color = black
		s.color = red
		t.rotateRight(s)
		s = n.sibling()
	} else if !isLeft && nodeColor(s.Left) == black {
		s.Right.color = black
		s.color = red
		t.rotateLeft(s)
		s = n.sibling()
	}

	s.color = nodeColor(n.Parent)
	n.Parent.color = black

	if isLeft {
		s.Right.color = black
		t.rotateLeft(n.Parent)
	} else {
		s.Left.color = black
		t.rotateRight(n.Parent)
	}
}
