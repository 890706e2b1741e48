package schema

import "errors"

var ErrSchema = errors.New("invalid json schema")
