package state

import (
	"fmt"

	"github.com/oklog/ulid/v2"
)

type Kind int

const (
	PrimitiveKind Kind = iota
	ObjectKind
	ArrayKind
)

func (k Kind) String() string {
	switch k {
	case PrimitiveKind:
		return "primitive"
	case ObjectKind:
		return "object"
	case ArrayKind:
		return "array"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Node is a node of a state tree.
type Node interface {
	Kind() Kind
	NodeID() string
	isNode()
}

// Primitive mirrors a null, boolean, number or string.
type Primitive struct {
	ID string
}

// Object mirrors a JSON object.
//
// Keys is nil until the key order has been computed. Children holds the
// state of materialized keys and is nil when the object is collapsed.
type Object struct {
	ID       string
	Expanded bool
	Keys     []string
	Children map[string]Node
}

// Array mirrors a JSON array of Length entries. Items holds the state of
// every index inside Sections.
type Array struct {
	ID       string
	Expanded bool
	Length   int
	Sections []Section
	Items    map[int]Node
}

func (p *Primitive) Kind() Kind     { return PrimitiveKind }
func (p *Primitive) NodeID() string { return p.ID }
func (p *Primitive) isNode()        {}

func (o *Object) Kind() Kind     { return ObjectKind }
func (o *Object) NodeID() string { return o.ID }
func (o *Object) isNode()        {}

func (a *Array) Kind() Kind     { return ArrayKind }
func (a *Array) NodeID() string { return a.ID }
func (a *Array) isNode()        {}

// NewID returns a fresh node identifier.
func NewID() string {
	return ulid.Make().String()
}

func idOf(n Node) string {
	if n == nil {
		return NewID()
	}
	return n.NodeID()
}

// IsExpanded reports whether n is an expanded container.
func IsExpanded(n Node) bool {
	switch x := n.(type) {
	case *Object:
		return x.Expanded
	case *Array:
		return x.Expanded
	}
	return false
}

func (o *Object) withChild(key string, c Node) *Object {
	res := *o
	res.Children = make(map[string]Node, len(o.Children)+1)
	for k, v := range o.Children {
		res.Children[k] = v
	}
	res.Children[key] = c
	return &res
}

func (a *Array) withItem(i int, c Node) *Array {
	res := *a
	res.Items = make(map[int]Node, len(a.Items)+1)
	for k, v := range a.Items {
		res.Items[k] = v
	}
	res.Items[i] = c
	return &res
}
