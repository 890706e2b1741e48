package eval

import "errors"

var ErrPolicy = errors.New("invalid expansion policy")
