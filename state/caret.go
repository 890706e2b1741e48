package state

import (
	"fmt"
	"iter"

	"github.com/signadot/docstate/ir"
)

type CaretType int

const (
	CaretKey CaretType = iota
	CaretValue
	CaretInside
	CaretAfter
)

func (c CaretType) String() string {
	switch c {
	case CaretKey:
		return "key"
	case CaretValue:
		return "value"
	case CaretInside:
		return "inside"
	case CaretAfter:
		return "after"
	default:
		return fmt.Sprintf("CaretType(%d)", int(c))
	}
}

func (c CaretType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// CaretPosition is a cursor stop for keyboard navigation.
type CaretPosition struct {
	Path ir.Path
	Type CaretType
}

func (c CaretPosition) String() string {
	return c.Path.String() + " " + c.Type.String()
}

// VisibleCaretPositions returns the cursor stops of the visible nodes of
// (doc, st). Per node, in order: a key stop for object entries, a value
// stop, an inside stop followed by the children's stops for expanded
// containers, and an after stop for every node but the root.
func VisibleCaretPositions(doc *ir.Node, st Node) iter.Seq[CaretPosition] {
	return func(yield func(CaretPosition) bool) {
		pre := func(v *Visit) bool {
			if v.IsKey() && !yield(CaretPosition{Path: v.Path, Type: CaretKey}) {
				return false
			}
			if !yield(CaretPosition{Path: v.Path, Type: CaretValue}) {
				return false
			}
			if v.Expanded {
				return yield(CaretPosition{Path: v.Path, Type: CaretInside})
			}
			return true
		}
		post := func(v *Visit) bool {
			if v.IsRoot() {
				return true
			}
			return yield(CaretPosition{Path: v.Path, Type: CaretAfter})
		}
		Walk(doc, st, pre, post)
	}
}
