package patchop

import "errors"

var (
	ErrDecode     = errors.New("invalid json patch")
	ErrApply      = errors.New("patch does not apply")
	ErrTestFailed = errors.New("test failed")
)
