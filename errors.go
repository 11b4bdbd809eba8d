package cskiplist

import (
	"errors"
	"fmt"
)

// ErrAllocation is wrapped with the requested size and returned by Insert
// when the configured Allocator fails to satisfy a node allocation. The
// list is left unchanged: allocation always precedes publication, so a
// failed Insert never leaves a partially-linked node behind.
var ErrAllocation = errors.New("cskiplist: node allocation failed")

func allocationError(size uintptr, cause error) error {
	return fmt.Errorf("%w: %d bytes: %v", ErrAllocation, size, cause)
}
