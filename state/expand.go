package state

import (
	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
)

// ExpandSinglePath expands the node at path and materializes its immediate
// children. Primitives and paths which do not resolve in both doc and st
// leave st unchanged.
func ExpandSinglePath(doc *ir.Node, st Node, path ir.Path, opts ...Option) Node {
	value, err := doc.Lookup(path)
	if err != nil {
		return st
	}
	o := newOptions(opts)
	res, _ := updateAt(st, path, func(n Node) Node {
		return expandNode(value, n, o)
	})
	if debug.Expand() {
		debug.Logf("expand %s changed=%t\n", path, res != st)
	}
	return res
}

func expandNode(value *ir.Node, n Node, o *options) Node {
	switch x := n.(type) {
	case *Object:
		if value.Type != ir.ObjectType {
			return n
		}
		res := &Object{ID: x.ID, Expanded: true, Keys: SyncKeys(value, x.Keys)}
		if len(res.Keys) != 0 {
			res.Children = make(map[string]Node, len(res.Keys))
		}
		for i, k := range value.Fields {
			if c, ok := x.Children[k]; ok {
				res.Children[k] = c
				continue
			}
			res.Children[k] = newState(value.Values[i], o)
		}
		if sameObject(x, res) {
			return x
		}
		return res
	case *Array:
		if value.Type != ir.ArrayType {
			return n
		}
		res := &Array{
			ID:       x.ID,
			Expanded: true,
			Length:   len(value.Values),
			Sections: clipSections(x.Sections, len(value.Values)),
		}
		if len(res.Sections) == 0 {
			if sec, ok := DefaultSection(res.Length); ok {
				res.Sections = []Section{sec}
			}
		}
		res.Items = materialize(value, res.Sections, x.Items, o)
		if sameArray(x, res) {
			return x
		}
		return res
	}
	return n
}

// materialize returns the items for every index of secs, keeping those of
// prev.
func materialize(value *ir.Node, secs []Section, prev map[int]Node, o *options) map[int]Node {
	if len(secs) == 0 {
		return nil
	}
	res := make(map[int]Node)
	sectionIndices(secs, len(value.Values), func(i int) {
		if c, ok := prev[i]; ok {
			res[i] = c
			return
		}
		res[i] = newState(value.Values[i], o)
	})
	return res
}

// CollapseSinglePath collapses the node at path, discarding the state of its
// descendants. Objects keep their keys, arrays lose their sections.
func CollapseSinglePath(doc *ir.Node, st Node, path ir.Path) Node {
	if _, err := doc.Lookup(path); err != nil {
		return st
	}
	res, _ := updateAt(st, path, func(n Node) Node {
		switch x := n.(type) {
		case *Object:
			if !x.Expanded && x.Children == nil {
				return x
			}
			return &Object{ID: x.ID, Keys: x.Keys}
		case *Array:
			if !x.Expanded && x.Sections == nil && x.Items == nil {
				return x
			}
			return &Array{ID: x.ID, Length: x.Length}
		}
		return n
	})
	if debug.Expand() {
		debug.Logf("collapse %s changed=%t\n", path, res != st)
	}
	return res
}

// ExpandSection reveals sec of the array at path. sec is clipped to the
// array's length; an empty result leaves st unchanged. The array is marked
// expanded.
func ExpandSection(doc *ir.Node, st Node, path ir.Path, sec Section, opts ...Option) Node {
	value, err := doc.Lookup(path)
	if err != nil || value.Type != ir.ArrayType {
		return st
	}
	sec = sec.Clip(len(value.Values))
	if sec.Empty() {
		return st
	}
	o := newOptions(opts)
	res, _ := updateAt(st, path, func(n Node) Node {
		x, ok := n.(*Array)
		if !ok {
			return n
		}
		secs := MergeSections(clipSections(x.Sections, len(value.Values)), sec)
		res := &Array{
			ID:       x.ID,
			Expanded: true,
			Length:   len(value.Values),
			Sections: secs,
			Items:    materialize(value, secs, x.Items, o),
		}
		if sameArray(x, res) {
			return x
		}
		return res
	})
	if debug.Expand() {
		debug.Logf("expand section %s %s changed=%t\n", path, sec, res != st)
	}
	return res
}

// ExpandPath expands every container from the root down to and including
// the node at path, revealing the section holding each array index on the
// way.
func ExpandPath(doc *ir.Node, st Node, path ir.Path, opts ...Option) Node {
	res := st
	for i, seg := range path {
		prefix := path[:i]
		n, ok := Lookup(res, prefix)
		if !ok {
			return res
		}
		switch x := n.(type) {
		case *Object:
			if !x.Expanded {
				res = ExpandSinglePath(doc, res, prefix, opts...)
			}
		case *Array:
			if seg.Index == nil {
				return res
			}
			if !x.Expanded {
				res = ExpandSinglePath(doc, res, prefix, opts...)
			}
			if a, ok := lookupArray(res, prefix); ok && !inSections(a.Sections, *seg.Index) {
				res = ExpandSection(doc, res, prefix, SectionFor(*seg.Index), opts...)
			}
		default:
			return res
		}
	}
	return ExpandSinglePath(doc, res, path, opts...)
}

func lookupArray(st Node, path ir.Path) (*Array, bool) {
	n, ok := Lookup(st, path)
	if !ok {
		return nil, false
	}
	a, ok := n.(*Array)
	return a, ok
}
