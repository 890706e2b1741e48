package ir

import "errors"

var (
	ErrParse      = errors.New("parse error")
	ErrBadPointer = errors.New("bad json pointer")
	ErrNotFound   = errors.New("path not found")
)
