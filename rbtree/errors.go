package rbtree

import "errors"

// Sentinel errors surfaced by the tree's two panicking operations.
//
// Every other miss (a missing key from Get, Remove, FindLessEqual, ...) is
// reported as a boolean, never as an error.
var (
	// ErrKeyNotFound is wrapped into the panic message raised by Index when
	// the requested key is absent. Callers that cannot guarantee the key's
	// presence should use Get or Contains instead of Index.
	ErrKeyNotFound = errors.New("key not found")

	// ErrInvalidComparator is wrapped into the panic message raised when a
	// custom comparator supplied to NewWith panics while comparing a key to
	// itself.
	ErrInvalidComparator = errors.New("comparator panicked while validating key")
)
