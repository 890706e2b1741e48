package state

import (
	"maps"
	"slices"

	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
)

// ExpandFunc decides whether a container first seen at path starts out
// expanded.
type ExpandFunc func(ir.Path) bool

type options struct {
	eagerKeys bool
}

type Option func(*options)

// EagerKeys makes sync and expansion compute the key order of objects even
// when they are collapsed.
func EagerKeys() Option {
	return func(o *options) {
		o.eagerKeys = true
	}
}

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// CreateState returns the default state of value: a collapsed node with a
// fresh ID. Objects have their keys computed, arrays have no sections.
func CreateState(value *ir.Node) Node {
	return newState(value, &options{eagerKeys: true})
}

func newState(value *ir.Node, o *options) Node {
	if value == nil {
		return &Primitive{ID: NewID()}
	}
	switch value.Type {
	case ir.ObjectType:
		res := &Object{ID: NewID()}
		if o.eagerKeys {
			res.Keys = SyncKeys(value, nil)
		}
		return res
	case ir.ArrayType:
		return &Array{ID: NewID(), Length: len(value.Values)}
	default:
		return &Primitive{ID: NewID()}
	}
}

// SyncState rebuilds the state of doc, located at path in the whole
// document, reusing IDs and expansion flags from prev where the entries
// still exist. expand is called once for every container without previous
// state; a nil expand leaves them collapsed.
//
// When nothing changed prev itself is returned.
func SyncState(doc *ir.Node, prev Node, path ir.Path, expand ExpandFunc, opts ...Option) Node {
	s := &syncer{expand: expand, opts: newOptions(opts)}
	return s.sync(doc, prev, path)
}

type syncer struct {
	expand ExpandFunc
	opts   *options
}

func (s *syncer) shouldExpand(path ir.Path) bool {
	if s.expand == nil {
		return false
	}
	return s.expand(path)
}

func (s *syncer) sync(doc *ir.Node, prev Node, path ir.Path) Node {
	if doc == nil {
		doc = ir.Null()
	}
	switch doc.Type {
	case ir.ObjectType:
		return s.syncObject(doc, prev, path)
	case ir.ArrayType:
		return s.syncArray(doc, prev, path)
	}
	if p, ok := prev.(*Primitive); ok {
		return p
	}
	return &Primitive{ID: idOf(prev)}
}

func (s *syncer) syncObject(doc *ir.Node, prev Node, path ir.Path) Node {
	po, _ := prev.(*Object)
	res := &Object{ID: idOf(prev)}
	var prevKeys []string
	var prevChildren map[string]Node
	if po != nil {
		res.Expanded = po.Expanded
		prevKeys = po.Keys
		prevChildren = po.Children
	} else {
		res.Expanded = s.shouldExpand(path)
	}
	if res.Expanded || s.opts.eagerKeys || prevKeys != nil {
		res.Keys = SyncKeys(doc, prevKeys)
	}
	if debug.Sync() {
		debug.Logf("sync object %s expanded=%t keys=%v\n", path, res.Expanded, res.Keys)
	}
	if res.Expanded && len(res.Keys) != 0 {
		res.Children = make(map[string]Node, len(res.Keys))
		fields := ir.ToMap(doc)
		for _, k := range res.Keys {
			child := fields[k]
			res.Children[k] = s.sync(child, prevChildren[k], path.Field(k))
		}
	}
	if po != nil && sameObject(po, res) {
		return po
	}
	return res
}

func (s *syncer) syncArray(doc *ir.Node, prev Node, path ir.Path) Node {
	pa, _ := prev.(*Array)
	res := &Array{ID: idOf(prev), Length: len(doc.Values)}
	var prevItems map[int]Node
	if pa != nil {
		res.Expanded = pa.Expanded
		res.Sections = clipSections(pa.Sections, res.Length)
		prevItems = pa.Items
	} else {
		res.Expanded = s.shouldExpand(path)
	}
	if !res.Expanded {
		res.Sections = nil
	} else if len(res.Sections) == 0 {
		if sec, ok := DefaultSection(res.Length); ok {
			res.Sections = []Section{sec}
		}
	}
	if debug.Sync() {
		debug.Logf("sync array %s expanded=%t length=%d sections=%v\n", path, res.Expanded, res.Length, res.Sections)
	}
	if res.Expanded && len(res.Sections) != 0 {
		res.Items = make(map[int]Node)
		sectionIndices(res.Sections, res.Length, func(i int) {
			res.Items[i] = s.sync(doc.Values[i], prevItems[i], path.Index(i))
		})
	}
	if pa != nil && sameArray(pa, res) {
		return pa
	}
	return res
}

func sameObject(a, b *Object) bool {
	return a.ID == b.ID &&
		a.Expanded == b.Expanded &&
		slices.Equal(a.Keys, b.Keys) &&
		(a.Keys == nil) == (b.Keys == nil) &&
		maps.Equal(a.Children, b.Children)
}

func sameArray(a, b *Array) bool {
	return a.ID == b.ID &&
		a.Expanded == b.Expanded &&
		a.Length == b.Length &&
		slices.Equal(a.Sections, b.Sections) &&
		maps.Equal(a.Items, b.Items)
}
