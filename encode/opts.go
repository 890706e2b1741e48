package encode

import "github.com/signadot/docstate/state"

type EncodeOption func(*EncState)

func EncodeColors(c *Colors) EncodeOption {
	return func(es *EncState) { es.Color = c.Color }
}

func EncodeIndent(n int) EncodeOption {
	return func(es *EncState) { es.indent = n }
}

// EncodeCarets marks the line holding the caret c. Every line gets a
// two column gutter.
func EncodeCarets(c state.CaretPosition) EncodeOption {
	return func(es *EncState) { es.caret = &c }
}
