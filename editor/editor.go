// Package editor keeps a document and its presentation state together,
// applying edits to both and resynchronizing after every change.
package editor

import (
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/patchop"
	"github.com/signadot/docstate/schema"
	"github.com/signadot/docstate/state"
)

// Editor holds a document and its state. It is safe for concurrent use.
type Editor struct {
	mu  sync.Mutex
	doc *ir.Node
	st  state.Node

	log       *slog.Logger
	expand    func(*ir.Node) state.ExpandFunc
	validator *schema.Validator
	syncOpts  []state.Option
}

// New creates an editor for doc whose initial state follows the expansion
// policy of opts.
func New(doc *ir.Node, opts ...Option) *Editor {
	e := &Editor{log: discardLogger()}
	for _, opt := range opts {
		opt(e)
	}
	if doc == nil {
		doc = ir.Null()
	}
	e.doc = doc
	e.st = state.SyncState(doc, nil, ir.Path{}, e.expandFor(doc), e.syncOpts...)
	return e
}

func (e *Editor) expandFor(doc *ir.Node) state.ExpandFunc {
	if e.expand == nil {
		return nil
	}
	return e.expand(doc)
}

func (e *Editor) Doc() *ir.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc
}

func (e *Editor) State() state.Node {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.st
}

// Path resolves a JSON Pointer against the current document.
func (e *Editor) Path(ptr string) (ir.Path, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return ir.PathFromPointer(e.doc, ptr)
}

// Patch applies ops to the document and the state. Either all operations
// apply or none do.
func (e *Editor) Patch(ops []patchop.Operation) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log.Debug("patch", "ops", len(ops))
	if debug.Patch() {
		debug.LogAny(ops)
	}
	doc, err := patchop.Apply(e.doc, ops)
	if err != nil {
		e.log.Debug("patch failed", "err", err)
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	st, err := state.DocumentStatePatch(e.st, ops)
	if err != nil {
		// the document accepted the batch, so sync recovers what it can.
		e.log.Debug("state patch failed, resyncing", "err", err)
		st = e.st
	}
	e.doc = doc
	e.st = state.SyncState(doc, st, ir.Path{}, e.expandFor(doc), e.syncOpts...)
	return nil
}

// PatchJSON decodes an RFC 6902 patch and applies it with Patch.
func (e *Editor) PatchJSON(d []byte) error {
	ops, err := patchop.Decode(d)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPatch, err)
	}
	return e.Patch(ops)
}

// Replace swaps in a new document, keeping the state of entries which
// still exist.
func (e *Editor) Replace(doc *ir.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if doc == nil {
		doc = ir.Null()
	}
	e.log.Debug("replace document")
	e.doc = doc
	e.st = state.SyncState(doc, e.st, ir.Path{}, e.expandFor(doc), e.syncOpts...)
}

// update runs fn on the state under the lock after checking that path
// exists in the document. It reports whether the state changed.
func (e *Editor) update(path ir.Path, fn func(doc *ir.Node, st state.Node) state.Node) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if _, err := e.doc.Lookup(path); err != nil {
		return false, fmt.Errorf("%w: %w", ErrNoValue, err)
	}
	st := fn(e.doc, e.st)
	if st == e.st {
		return false, nil
	}
	e.st = st
	return true, nil
}

func (e *Editor) Expand(path ir.Path) (bool, error) {
	return e.update(path, func(doc *ir.Node, st state.Node) state.Node {
		return state.ExpandSinglePath(doc, st, path, e.syncOpts...)
	})
}

func (e *Editor) Collapse(path ir.Path) (bool, error) {
	return e.update(path, func(doc *ir.Node, st state.Node) state.Node {
		return state.CollapseSinglePath(doc, st, path)
	})
}

// Toggle collapses path if it is expanded and expands it otherwise.
func (e *Editor) Toggle(path ir.Path) (bool, error) {
	return e.update(path, func(doc *ir.Node, st state.Node) state.Node {
		if n, ok := state.Lookup(st, path); ok && state.IsExpanded(n) {
			return state.CollapseSinglePath(doc, st, path)
		}
		return state.ExpandSinglePath(doc, st, path, e.syncOpts...)
	})
}

func (e *Editor) ExpandSection(path ir.Path, sec state.Section) (bool, error) {
	return e.update(path, func(doc *ir.Node, st state.Node) state.Node {
		return state.ExpandSection(doc, st, path, sec, e.syncOpts...)
	})
}

// ExpandPath expands path and everything above it.
func (e *Editor) ExpandPath(path ir.Path) (bool, error) {
	return e.update(path, func(doc *ir.Node, st state.Node) state.Node {
		return state.ExpandPath(doc, st, path, e.syncOpts...)
	})
}

func (e *Editor) VisiblePaths() []ir.Path {
	doc, st := e.snapshot()
	return slices.Collect(state.VisiblePaths(doc, st))
}

func (e *Editor) Carets() []state.CaretPosition {
	doc, st := e.snapshot()
	return slices.Collect(state.VisibleCaretPositions(doc, st))
}

// Validate checks the document with the configured validator. Without a
// validator there are no errors.
func (e *Editor) Validate() []schema.ValidationError {
	doc, _ := e.snapshot()
	if e.validator == nil {
		return nil
	}
	return e.validator.Validate(doc)
}

func (e *Editor) snapshot() (*ir.Node, state.Node) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.doc, e.st
}
