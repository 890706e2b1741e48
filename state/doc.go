// Package state maintains a presentation state tree mirroring a JSON
// document.
//
// # Overview
//
// A state tree records, per document node, whether it is expanded, which
// object keys and array indices are materialized, and which sections of a
// large array are visible. The tree is kept in step with the document in two
// ways: by re-syncing against a new document ([SyncState]) and by replaying
// the JSON Patch operations that produced the new document
// ([DocumentStatePatch]).
//
// # Nodes
//
// A [Node] is one of [*Primitive], [*Object] or [*Array]. Every node carries
// an ID which stays the same across re-syncs as long as the node stays at the
// same key or index (or is moved by a move operation).
//
// Nodes are never modified after they are returned. Every operation in this
// package returns a new tree which shares untouched subtrees with its input,
// so callers may compare subtrees by reference to detect changes.
//
// # Arrays
//
// Arrays are virtualized: only indices inside the array's [Section] list are
// materialized. By default an expanded array shows its first [SectionSize]
// entries. [ExpandSection] reveals more.
//
// # Traversal
//
// [VisiblePaths] and [VisibleCaretPositions] linearize the visible part of a
// (document, state) pair for rendering and keyboard navigation.
package state
