package state

import (
	"fmt"
	"slices"

	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/patchop"
)

// DocumentStatePatch mirrors the effect of ops on st, without access to the
// document. Paths are resolved against the keys, sections and lengths
// recorded in st; operations reaching into parts of the document which are
// not materialized succeed without changing st.
//
// Unaffected nodes keep their IDs, added and replaced values get fresh
// default state and moved nodes keep their IDs.
//
// On error, which is a *PatchError, st is returned unchanged: none of the
// operations apply.
func DocumentStatePatch(st Node, ops []patchop.Operation) (Node, error) {
	res := st
	for i, op := range ops {
		if debug.Patch() {
			debug.Logf("state patch %d %s\n", i, op)
		}
		next, err := patchOne(res, op)
		if err != nil {
			return st, &PatchError{Index: i, Op: op.Op, Path: op.Path, Err: err}
		}
		res = next
	}
	return res, nil
}

func parsePointer(ptr string) ([]string, error) {
	toks, err := ir.ParsePointer(ptr)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPointer, err)
	}
	return toks, nil
}

func patchOne(st Node, op patchop.Operation) (Node, error) {
	toks, err := parsePointer(op.Path)
	if err != nil {
		return nil, err
	}
	switch op.Op {
	case patchop.OpAdd, patchop.OpReplace:
		if len(toks) == 0 {
			return replaceRoot(st, op.Value), nil
		}
		if op.Op == patchop.OpAdd {
			return insertAt(st, toks, CreateState(op.Value))
		}
		return replaceAt(st, toks, CreateState(op.Value))
	case patchop.OpRemove:
		if len(toks) == 0 {
			return &Primitive{ID: idOf(st)}, nil
		}
		res, _, err := removeAt(st, toks)
		return res, err
	case patchop.OpCopy:
		fromToks, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		src, ok, err := lookupTokens(st, fromToks)
		if err != nil {
			return nil, err
		}
		var n Node
		if ok {
			n = cloneShape(src)
		} else {
			n = &Primitive{ID: NewID()}
		}
		if len(toks) == 0 {
			return withID(n, idOf(st)), nil
		}
		return insertAt(st, toks, n)
	case patchop.OpMove:
		fromToks, err := parsePointer(op.From)
		if err != nil {
			return nil, err
		}
		if slices.Equal(fromToks, toks) {
			_, _, err := lookupTokens(st, toks)
			return st, err
		}
		if len(fromToks) < len(toks) && slices.Equal(fromToks, toks[:len(fromToks)]) {
			return nil, fmt.Errorf("%w: cannot move %q into itself", ErrInvalidPointer, op.From)
		}
		res, src, err := removeAt(st, fromToks)
		if err != nil {
			return nil, err
		}
		if src == nil {
			src = &Primitive{ID: NewID()}
		}
		if len(toks) == 0 {
			return withID(src, idOf(st)), nil
		}
		return insertAt(res, toks, src)
	case patchop.OpTest:
		return st, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedOp, op.Op)
	}
}

// replaceRoot builds default state for value below the root of st. The
// root keeps its ID and expansion.
func replaceRoot(st Node, value *ir.Node) Node {
	if value == nil {
		value = ir.Null()
	}
	n := withID(CreateState(value), idOf(st))
	if IsExpanded(st) {
		n = expandNode(value, n, &options{})
	}
	return n
}

func withID(n Node, id string) Node {
	switch x := n.(type) {
	case *Object:
		res := *x
		res.ID = id
		return &res
	case *Array:
		res := *x
		res.ID = id
		return &res
	}
	return &Primitive{ID: id}
}

// cloneShape returns collapsed state with a fresh ID for a copy of the value
// mirrored by n.
func cloneShape(n Node) Node {
	switch x := n.(type) {
	case *Object:
		return &Object{ID: NewID(), Keys: x.Keys}
	case *Array:
		return &Array{ID: NewID(), Length: x.Length}
	}
	return &Primitive{ID: NewID()}
}

// descend returns the child of n under tok. ok is false when the child
// exists in the document but has no state.
func descend(n Node, tok string) (child Node, ok bool, err error) {
	switch x := n.(type) {
	case *Object:
		if x.Keys == nil {
			return nil, false, nil
		}
		if !slices.Contains(x.Keys, tok) {
			return nil, false, fmt.Errorf("%w: missing key %q", ErrInvalidPointer, tok)
		}
		child, ok = x.Children[tok]
		return child, ok, nil
	case *Array:
		i, err := arrayIndex(x, tok)
		if err != nil {
			return nil, false, err
		}
		child, ok = x.Items[i]
		return child, ok, nil
	default:
		return nil, false, fmt.Errorf("%w: cannot index a primitive with %q", ErrInvalidPointer, tok)
	}
}

func arrayIndex(a *Array, tok string) (int, error) {
	i, ok := ir.ParseIndex(tok)
	if !ok {
		return 0, fmt.Errorf("%w: %q is not an array index", ErrInvalidPointer, tok)
	}
	if i >= a.Length {
		return 0, fmt.Errorf("%w: index %d out of range [0,%d)", ErrInvalidPointer, i, a.Length)
	}
	return i, nil
}

func lookupTokens(st Node, toks []string) (Node, bool, error) {
	x := st
	for _, tok := range toks {
		next, ok, err := descend(x, tok)
		if err != nil || !ok {
			return nil, false, err
		}
		x = next
	}
	return x, true, nil
}

// atParent replaces the parent of the location addressed by toks with fn's
// result, copying the path to it. Parents without state are left alone.
func atParent(n Node, toks []string, fn func(parent Node, tok string) (Node, error)) (Node, error) {
	if len(toks) == 1 {
		return fn(n, toks[0])
	}
	child, ok, err := descend(n, toks[0])
	if err != nil {
		return nil, err
	}
	if !ok {
		return n, nil
	}
	nc, err := atParent(child, toks[1:], fn)
	if err != nil {
		return nil, err
	}
	if nc == child {
		return n, nil
	}
	switch x := n.(type) {
	case *Object:
		return x.withChild(toks[0], nc), nil
	case *Array:
		i, _ := ir.ParseIndex(toks[0])
		return x.withItem(i, nc), nil
	}
	panic("descended into a primitive")
}

func insertAt(st Node, toks []string, c Node) (Node, error) {
	return atParent(st, toks, func(parent Node, tok string) (Node, error) {
		switch x := parent.(type) {
		case *Object:
			if x.Keys == nil {
				return x, nil
			}
			res := x.withChild(tok, c)
			if !slices.Contains(x.Keys, tok) {
				res.Keys = append(slices.Clip(x.Keys), tok)
			}
			return res, nil
		case *Array:
			i := x.Length
			if tok != "-" {
				var ok bool
				i, ok = ir.ParseIndex(tok)
				if !ok || i > x.Length {
					return nil, fmt.Errorf("%w: cannot insert at %q in array of length %d", ErrInvalidPointer, tok, x.Length)
				}
			}
			return insertItem(x, i, c), nil
		default:
			return nil, fmt.Errorf("%w: cannot add %q to a primitive", ErrInvalidPointer, tok)
		}
	})
}

func insertItem(a *Array, i int, c Node) *Array {
	res := &Array{
		ID:       a.ID,
		Expanded: a.Expanded,
		Length:   a.Length + 1,
		Sections: insertSections(a.Sections, i),
	}
	if res.Expanded && len(res.Sections) == 0 {
		if sec, ok := DefaultSection(res.Length); ok {
			res.Sections = []Section{sec}
		}
	}
	items := make(map[int]Node, len(a.Items)+1)
	for k, v := range a.Items {
		if k >= i {
			k++
		}
		items[k] = v
	}
	if inSections(res.Sections, i) {
		items[i] = c
	}
	if len(items) != 0 {
		res.Items = items
	}
	return res
}

func removeAt(st Node, toks []string) (Node, Node, error) {
	var removed Node
	res, err := atParent(st, toks, func(parent Node, tok string) (Node, error) {
		switch x := parent.(type) {
		case *Object:
			if x.Keys == nil {
				return x, nil
			}
			i := slices.Index(x.Keys, tok)
			if i == -1 {
				return nil, fmt.Errorf("%w: missing key %q", ErrInvalidPointer, tok)
			}
			removed = x.Children[tok]
			res := &Object{
				ID:       x.ID,
				Expanded: x.Expanded,
				Keys:     slices.Delete(slices.Clone(x.Keys), i, i+1),
			}
			for k, v := range x.Children {
				if k == tok {
					continue
				}
				if res.Children == nil {
					res.Children = make(map[string]Node, len(x.Children))
				}
				res.Children[k] = v
			}
			return res, nil
		case *Array:
			i, err := arrayIndex(x, tok)
			if err != nil {
				return nil, err
			}
			removed = x.Items[i]
			return removeItem(x, i), nil
		default:
			return nil, fmt.Errorf("%w: cannot remove %q from a primitive", ErrInvalidPointer, tok)
		}
	})
	if err != nil {
		return nil, nil, err
	}
	return res, removed, nil
}

func removeItem(a *Array, i int) *Array {
	res := &Array{
		ID:       a.ID,
		Expanded: a.Expanded,
		Length:   a.Length - 1,
		Sections: removeSections(a.Sections, i),
	}
	for k, v := range a.Items {
		switch {
		case k == i:
			continue
		case k > i:
			k--
		}
		if !inSections(res.Sections, k) {
			continue
		}
		if res.Items == nil {
			res.Items = make(map[int]Node, len(a.Items))
		}
		res.Items[k] = v
	}
	return res
}

func replaceAt(st Node, toks []string, c Node) (Node, error) {
	return atParent(st, toks, func(parent Node, tok string) (Node, error) {
		switch x := parent.(type) {
		case *Object:
			if x.Keys == nil {
				return x, nil
			}
			if !slices.Contains(x.Keys, tok) {
				return nil, fmt.Errorf("%w: missing key %q", ErrInvalidPointer, tok)
			}
			return x.withChild(tok, c), nil
		case *Array:
			i, err := arrayIndex(x, tok)
			if err != nil {
				return nil, err
			}
			if _, ok := x.Items[i]; !ok {
				return x, nil
			}
			return x.withItem(i, c), nil
		default:
			return nil, fmt.Errorf("%w: cannot replace %q in a primitive", ErrInvalidPointer, tok)
		}
	})
}
