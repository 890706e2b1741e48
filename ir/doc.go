// Package ir provides the document representation consumed by the state
// engine.
//
// # Overview
//
// A document is a tree of *Node values. The IR works as a recursive tagged
// union: the Type field says which of the remaining fields carry the value.
//
//   - NullType: null value
//   - BoolType: boolean, in Bool
//   - NumberType: Int64 if integral, else Float64, else the literal in Number
//   - StringType: String
//   - ArrayType: ordered Values
//   - ObjectType: Fields[i] is the key of Values[i]
//
// Object fields keep the order in which the input presented them. Parse
// reads JSON and YAML with ordered maps so that this order is the host's
// enumeration order.
//
// # Paths
//
// A Path is a sequence of segments, each either a field or an index:
//
//	p := ir.NewPath("array", 2, "c")
//	p.String()  // "$.array[2].c"
//	p.Pointer() // "/array/2/c"
//
// JSON Pointers (RFC 6901) are converted to paths with PathFromPointer, which
// consults the document to decide which tokens are array indices.
//
// # Thread Safety
//
// Nodes are treated as immutable once built. Concurrent readers are safe so
// long as nobody mutates a node after sharing it.
package ir
