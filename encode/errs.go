package encode

import "errors"

var ErrEncoding = errors.New("encoding error")
