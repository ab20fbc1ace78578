package tree

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned by id lookups outside the loaded set.
	ErrNotFound = errors.New("node not found")

	// ErrInvalidTree matches every load-time validation failure.
	ErrInvalidTree = errors.New("invalid tree declaration")
)

// DuplicateIDError reports an id declared more than once.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("duplicate node id %q", e.ID)
}

func (e *DuplicateIDError) Is(target error) bool { return target == ErrInvalidTree }

// DanglingParentError reports a parent reference to an undeclared id.
// Parent is the missing id, ID the node that references it.
type DanglingParentError struct {
	ID     string
	Parent string
}

func (e *DanglingParentError) Error() string {
	return fmt.Sprintf("node %q: parent %q is not declared", e.ID, e.Parent)
}

func (e *DanglingParentError) Is(target error) bool { return target == ErrInvalidTree }

// RootCardinalityError reports zero or several parentless nodes.
type RootCardinalityError struct {
	Roots []string
}

func (e *RootCardinalityError) Error() string {
	if len(e.Roots) == 0 {
		return "no root node: every node declares a parent"
	}
	return fmt.Sprintf("%d root nodes, want exactly 1: %s", len(e.Roots), strings.Join(e.Roots, ", "))
}

func (e *RootCardinalityError) Is(target error) bool { return target == ErrInvalidTree }

// KindMismatchError reports a node whose kind disagrees with what it carries.
type KindMismatchError struct {
	ID     string
	Reason string
}

func (e *KindMismatchError) Error() string {
	return fmt.Sprintf("node %q: %s", e.ID, e.Reason)
}

func (e *KindMismatchError) Is(target error) bool { return target == ErrInvalidTree }

// CycleError reports nodes detached from the root by a parent cycle.
// ID is a member of the cycle.
type CycleError struct {
	ID string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("node %q is on a parent cycle unreachable from the root", e.ID)
}

func (e *CycleError) Is(target error) bool { return target == ErrInvalidTree }
