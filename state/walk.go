package state

import (
	"github.com/signadot/docstate/ir"
)

// Visit is a node reached by Walk.
type Visit struct {
	Path     ir.Path
	Value    *ir.Node
	State    Node
	Expanded bool
}

// IsKey reports whether the node is an object entry.
func (v *Visit) IsKey() bool {
	last, ok := v.Path.Last()
	return ok && !last.IsIndex()
}

func (v *Visit) IsRoot() bool {
	return len(v.Path) == 0
}

// Walk visits the visible part of (doc, st) depth first, in display order.
// pre is called before a node's visible children and post after them;
// either returning false ends the walk. post may be nil.
//
// The children of an expanded object are its keys present in doc, those of
// an expanded array the indices of its sections below the length of doc.
func Walk(doc *ir.Node, st Node, pre, post func(*Visit) bool) {
	walk(doc, st, ir.Path{}, pre, post)
}

func walk(doc *ir.Node, st Node, path ir.Path, pre, post func(*Visit) bool) bool {
	if doc == nil {
		doc = ir.Null()
	}
	v := &Visit{Path: path, Value: doc, State: st}
	switch x := st.(type) {
	case *Object:
		v.Expanded = x.Expanded && doc.Type == ir.ObjectType
	case *Array:
		v.Expanded = x.Expanded && doc.Type == ir.ArrayType
	}
	if !pre(v) {
		return false
	}
	if v.Expanded {
		switch x := st.(type) {
		case *Object:
			fields := ir.ToMap(doc)
			for _, k := range x.Keys {
				child, ok := fields[k]
				if !ok {
					continue
				}
				if !walk(child, x.Children[k], path.Field(k), pre, post) {
					return false
				}
			}
		case *Array:
			for _, sec := range x.Sections {
				for i := max(sec.Start, 0); i < min(sec.End, len(doc.Values)); i++ {
					if !walk(doc.Values[i], x.Items[i], path.Index(i), pre, post) {
						return false
					}
				}
			}
		}
	}
	if post == nil {
		return true
	}
	return post(v)
}
