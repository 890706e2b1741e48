// Package eval compiles expansion policies written as expressions.
//
// A policy is an expr-lang boolean expression evaluated once for every
// container a sync discovers. The environment holds:
//
//	path     the path of the node, a list of keys and indices
//	depth    len(path)
//	pointer  the path as a JSON Pointer
//	key      the last element of path, nil at the root
//	kind     the type of the node: "object" or "array"
//	size     the number of entries of the node
//
// and the functions getpath(pointer), truthy(pointer) and getenv(name).
// For example
//
//	depth <= 1 || (kind == "array" && size < 10)
package eval
