package ir

import (
	"maps"
	"slices"
)

// Node is a JSON compatible value. It is a tagged union: the Type field
// determines which of the other fields are meaningful.
//
// For ObjectType nodes, Fields[i] is the key for the value at Values[i] and
// the order of Fields is the enumeration order of the object.
type Node struct {
	Type   Type
	Fields []string
	Values []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

type KeyVal struct {
	Key string
	Val *Node
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{
		Type:  NumberType,
		Int64: &v,
	}
}

func FromFloat(f float64) *Node {
	return &Node{
		Type:    NumberType,
		Float64: &f,
	}
}

func FromBool(v bool) *Node {
	return &Node{
		Type: BoolType,
		Bool: v,
	}
}

func FromSlice(vs []*Node) *Node {
	return &Node{
		Type:   ArrayType,
		Values: vs,
	}
}

// FromKeyVals creates an object whose fields are in the order of kvs. Later
// duplicates of a key replace the earlier value in place.
func FromKeyVals(kvs []KeyVal) *Node {
	res := &Node{
		Type:   ObjectType,
		Fields: make([]string, 0, len(kvs)),
		Values: make([]*Node, 0, len(kvs)),
	}
	index := make(map[string]int, len(kvs))
	for _, kv := range kvs {
		if i, ok := index[kv.Key]; ok {
			res.Values[i] = kv.Val
			continue
		}
		index[kv.Key] = len(res.Fields)
		res.Fields = append(res.Fields, kv.Key)
		res.Values = append(res.Values, kv.Val)
	}
	return res
}

// FromMap creates an object from a map, with keys in sorted order.
func FromMap(m map[string]*Node) *Node {
	keys := slices.Sorted(maps.Keys(m))
	kvs := make([]KeyVal, len(keys))
	for i, k := range keys {
		kvs[i] = KeyVal{Key: k, Val: m[k]}
	}
	return FromKeyVals(kvs)
}

func (y *Node) IsContainer() bool {
	return y != nil && (y.Type == ObjectType || y.Type == ArrayType)
}

// Len returns the number of entries of an object or array, and 0 otherwise.
func (y *Node) Len() int {
	if !y.IsContainer() {
		return 0
	}
	return len(y.Values)
}

// Keys returns the object's keys in enumeration order.
func (y *Node) Keys() []string {
	if y == nil || y.Type != ObjectType {
		return nil
	}
	return y.Fields
}

// Get returns the value under field in an object.
func (y *Node) Get(field string) (*Node, bool) {
	if y == nil || y.Type != ObjectType {
		return nil, false
	}
	i := slices.Index(y.Fields, field)
	if i == -1 {
		return nil, false
	}
	return y.Values[i], true
}

// Index returns the i'th element of an array.
func (y *Node) Index(i int) (*Node, bool) {
	if y == nil || y.Type != ArrayType || i < 0 || i >= len(y.Values) {
		return nil, false
	}
	return y.Values[i], true
}

// ToMap returns a field to value index of an object, or nil for other types.
func ToMap(node *Node) map[string]*Node {
	if node == nil || node.Type != ObjectType {
		return nil
	}
	res := make(map[string]*Node, len(node.Fields))
	for i, f := range node.Fields {
		res[f] = node.Values[i]
	}
	return res
}

func (y *Node) Clone() *Node {
	if y == nil {
		return nil
	}
	res := &Node{
		Type:   y.Type,
		String: y.String,
		Bool:   y.Bool,
		Number: y.Number,
	}
	if y.Fields != nil {
		res.Fields = slices.Clone(y.Fields)
	}
	if y.Values != nil {
		res.Values = make([]*Node, len(y.Values))
		for i, v := range y.Values {
			res.Values[i] = v.Clone()
		}
	}
	if y.Float64 != nil {
		f := *y.Float64
		res.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		res.Int64 = &i
	}
	return res
}
