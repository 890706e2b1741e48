package state

import (
	"iter"

	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
)

// VisiblePaths returns the paths of the visible nodes of (doc, st) in depth
// first pre-order, starting with the root.
func VisiblePaths(doc *ir.Node, st Node) iter.Seq[ir.Path] {
	return func(yield func(ir.Path) bool) {
		Walk(doc, st, func(v *Visit) bool {
			if debug.Visible() {
				debug.Logf("visible %s\n", v.Path)
			}
			return yield(v.Path)
		}, nil)
	}
}
