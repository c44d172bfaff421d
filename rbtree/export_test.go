package rbtree

// CheckInvariants validates t's red-black structure (black root, no red-red,
// equal black-height, BST ordering, length-vs-node-count, parent-link
// consistency), returning the first violation found or nil. Exported only to
// _test.go files outside this package, so scenario and property tests in
// package rbtree_test can assert the same invariants invariants_test.go
// checks internally, without duplicating the walk.
func CheckInvariants[K comparable, V any](t *Tree[K, V]) error {
	return checkInvariants(t)
}
