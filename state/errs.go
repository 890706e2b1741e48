package state

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidPointer = errors.New("invalid pointer")
	ErrUnsupportedOp  = errors.New("unsupported operation")
)

// PatchError reports the operation of a batch which could not be applied.
type PatchError struct {
	Index int
	Op    string
	Path  string
	Err   error
}

func (e *PatchError) Error() string {
	return fmt.Sprintf("operation %d (%s %q): %v", e.Index, e.Op, e.Path, e.Err)
}

func (e *PatchError) Unwrap() error {
	return e.Err
}
