package editor

import "errors"

var (
	ErrPatch   = errors.New("patch error")
	ErrNoValue = errors.New("no value")
)
