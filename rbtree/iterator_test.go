package rbtree_test

import (
	"slices"
	"testing"

	"github.com/qntx/ordtree/rbtree"
)

func seedTree(t *testing.T) *rbtree.Tree[int, string] {
	t.Helper()

	tree := rbtree.New[int, string]()
	for _, k := range []int{5, 3, 8, 1, 4, 7, 9} {
		tree.Insert(k, "v")
	}

	return tree
}

func TestAllAscending(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	var keys []int
	for k := range tree.All() {
		keys = append(keys, k)
	}

	want := []int{1, 3, 4, 5, 7, 8, 9}
	if !slices.Equal(keys, want) {
		t.Errorf("All() order = %v, want %v", keys, want)
	}
}

func TestBackwardDescending(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	var keys []int
	for k := range tree.Backward() {
		keys = append(keys, k)
	}

	want := []int{9, 8, 7, 5, 4, 3, 1}
	if !slices.Equal(keys, want) {
		t.Errorf("Backward() order = %v, want %v", keys, want)
	}
}

func TestAllEarlyStop(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	var keys []int
	for k := range tree.All() {
		keys = append(keys, k)

		if k == 4 {
			break
		}
	}

	want := []int{1, 3, 4}
	if !slices.Equal(keys, want) {
		t.Errorf("All() with early break = %v, want %v", keys, want)
	}
}

func TestCursorBidirectional(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)
	c := tree.Cursor()

	if got := c.Len(); got != 7 {
		t.Errorf("Cursor().Len() = %d, want 7", got)
	}

	k, _, ok := c.Next()
	if !ok || k != 1 {
		t.Errorf("Next() = (%d, %v), want (1, true)", k, ok)
	}

	k, _, ok = c.NextBack()
	if !ok || k != 9 {
		t.Errorf("NextBack() = (%d, %v), want (9, true)", k, ok)
	}

	var forward []int
	for {
		k, _, ok := c.Next()
		if !ok {
			break
		}

		forward = append(forward, k)
	}

	want := []int{3, 4, 5, 7, 8}
	if !slices.Equal(forward, want) {
		t.Errorf("remaining forward walk = %v, want %v", forward, want)
	}

	if got := c.Len(); got != 0 {
		t.Errorf("Len() after exhausting cursor = %d, want 0", got)
	}

	if _, _, ok := c.Next(); ok {
		t.Error("Next() on exhausted cursor returned ok = true")
	}
}

func TestCursorSingleElementConvergence(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, string]()
	tree.Insert(1, "a")

	c := tree.Cursor()

	k, v, ok := c.Next()
	if !ok || k != 1 || v != "a" {
		t.Fatalf("Next() on single-element tree = (%d, %q, %v), want (1, a, true)", k, v, ok)
	}

	if _, _, ok := c.NextBack(); ok {
		t.Error("NextBack() after the sole element was already consumed from the front returned ok = true")
	}
}

func TestCursorMutMutatesInPlace(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	tree.Insert(1, 10)
	tree.Insert(2, 20)
	tree.Insert(3, 30)

	c := tree.CursorMut()
	for {
		_, v, ok := c.Next()
		if !ok {
			break
		}

		*v *= 2
	}

	want := []int{20, 40, 60}

	var got []int
	for _, v := range tree.All() {
		got = append(got, v)
	}

	if !slices.Equal(got, want) {
		t.Errorf("values after CursorMut doubling = %v, want %v", got, want)
	}
}

func TestKeysValuesCursors(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	var keys []int

	kc := tree.KeysCursor()
	for {
		k, ok := kc.Next()
		if !ok {
			break
		}

		keys = append(keys, k)
	}

	if len(keys) != 7 || keys[0] != 1 || keys[len(keys)-1] != 9 {
		t.Errorf("KeysCursor walk = %v, unexpected shape", keys)
	}

	vc := tree.ValuesCursor()

	count := 0
	for {
		v, ok := vc.Next()
		if !ok {
			break
		}

		if v != "v" {
			t.Errorf("ValuesCursor yielded %q, want v", v)
		}

		count++
	}

	if count != 7 {
		t.Errorf("ValuesCursor yielded %d values, want 7", count)
	}
}

func TestValuesMutCursor(t *testing.T) {
	t.Parallel()

	tree := rbtree.New[int, int]()
	tree.Insert(1, 1)
	tree.Insert(2, 2)

	vm := tree.ValuesMutCursor()
	for {
		v, ok := vm.Next()
		if !ok {
			break
		}

		*v += 100
	}

	v1, _ := tree.Get(1)
	v2, _ := tree.Get(2)

	if v1 != 101 || v2 != 102 {
		t.Errorf("values after ValuesMutCursor = (%d, %d), want (101, 102)", v1, v2)
	}
}

func TestDrainEmptiesTreeImmediately(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	d := tree.Drain()

	if !tree.IsEmpty() {
		t.Error("tree is not empty immediately after Drain(), want empty")
	}

	if got := tree.Len(); got != 0 {
		t.Errorf("tree.Len() after Drain() = %d, want 0", got)
	}

	var drained []int
	for {
		k, _, ok := d.Next()
		if !ok {
			break
		}

		drained = append(drained, k)
	}

	want := []int{1, 3, 4, 5, 7, 8, 9}
	if !slices.Equal(drained, want) {
		t.Errorf("Drain() order = %v, want %v", drained, want)
	}
}

func TestDrainPartialConsumption(t *testing.T) {
	t.Parallel()

	tree := seedTree(t)

	d := tree.Drain()

	d.Next()
	d.Next()

	if got := tree.Len(); got != 0 {
		t.Errorf("source tree.Len() after partial Drain consumption = %d, want 0", got)
	}

	if got := d.Len(); got != 5 {
		t.Errorf("Drain().Len() after consuming 2 of 7 = %d, want 5", got)
	}
}
