package state

import (
	"github.com/signadot/docstate/ir"
)

// Lookup returns the materialized state node at path.
func Lookup(st Node, path ir.Path) (Node, bool) {
	x := st
	for _, seg := range path {
		next, ok := childAt(x, seg)
		if !ok {
			return nil, false
		}
		x = next
	}
	return x, x != nil
}

func childAt(n Node, seg ir.Segment) (Node, bool) {
	switch x := n.(type) {
	case *Object:
		if seg.Field == nil {
			return nil, false
		}
		c, ok := x.Children[*seg.Field]
		return c, ok
	case *Array:
		if seg.Index == nil {
			return nil, false
		}
		c, ok := x.Items[*seg.Index]
		return c, ok
	}
	return nil, false
}

func withChild(n Node, seg ir.Segment, c Node) Node {
	switch x := n.(type) {
	case *Object:
		return x.withChild(*seg.Field, c)
	case *Array:
		return x.withItem(*seg.Index, c)
	}
	panic("withChild on a primitive")
}

// updateAt replaces the node at path with fn's result, copying the nodes on
// the way down and sharing everything else. When fn returns its argument,
// st is returned. ok is false when path is not materialized.
func updateAt(st Node, path ir.Path, fn func(Node) Node) (res Node, ok bool) {
	if len(path) == 0 {
		return fn(st), true
	}
	child, ok := childAt(st, path[0])
	if !ok {
		return st, false
	}
	nc, ok := updateAt(child, path[1:], fn)
	if !ok {
		return st, false
	}
	if nc == child {
		return st, true
	}
	return withChild(st, path[0], nc), true
}
