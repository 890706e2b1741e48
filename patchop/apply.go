package patchop

import (
	"fmt"
	"slices"

	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
)

// Apply returns doc with ops applied in order. doc is not modified and the
// result shares unchanged subtrees with it. Keys added to an object are
// appended to its fields, other fields keep their order.
//
// Either every operation applies or an error wrapping ErrApply is returned.
func Apply(doc *ir.Node, ops []Operation) (*ir.Node, error) {
	if doc == nil {
		doc = ir.Null()
	}
	res := doc
	for i, op := range ops {
		if debug.Patch() {
			debug.Logf("doc patch %d %s\n", i, op)
		}
		next, err := applyOne(res, op)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d (%s %s): %w", ErrApply, i, op.Op, op.Path, err)
		}
		res = next
	}
	return res, nil
}

func applyOne(doc *ir.Node, op Operation) (*ir.Node, error) {
	toks, err := ir.ParsePointer(op.Path)
	if err != nil {
		return nil, err
	}
	value := op.Value
	if value == nil {
		value = ir.Null()
	}
	switch op.Op {
	case OpAdd:
		return add(doc, toks, value)
	case OpRemove:
		res, _, err := remove(doc, toks)
		return res, err
	case OpReplace:
		return replace(doc, toks, value)
	case OpCopy:
		fromToks, err := ir.ParsePointer(op.From)
		if err != nil {
			return nil, err
		}
		v, err := get(doc, fromToks)
		if err != nil {
			return nil, err
		}
		return add(doc, toks, v.Clone())
	case OpMove:
		fromToks, err := ir.ParsePointer(op.From)
		if err != nil {
			return nil, err
		}
		if slices.Equal(fromToks, toks) {
			if _, err := get(doc, toks); err != nil {
				return nil, err
			}
			return doc, nil
		}
		if len(fromToks) < len(toks) && slices.Equal(fromToks, toks[:len(fromToks)]) {
			return nil, fmt.Errorf("%w: cannot move %q into itself", ir.ErrBadPointer, op.From)
		}
		res, v, err := remove(doc, fromToks)
		if err != nil {
			return nil, err
		}
		return add(res, toks, v)
	case OpTest:
		v, err := get(doc, toks)
		if err != nil {
			return nil, err
		}
		if !ir.Equal(v, value) {
			return nil, fmt.Errorf("%w: %q is %s", ErrTestFailed, op.Path, ir.MustJSON(v))
		}
		return doc, nil
	default:
		return nil, fmt.Errorf("unknown op %q", op.Op)
	}
}

func get(doc *ir.Node, toks []string) (*ir.Node, error) {
	x := doc
	for _, tok := range toks {
		next, _, err := step(x, tok)
		if err != nil {
			return nil, err
		}
		x = next
	}
	return x, nil
}

// step returns the child of n under tok and its position in n.Values.
func step(n *ir.Node, tok string) (*ir.Node, int, error) {
	switch n.Type {
	case ir.ObjectType:
		i := slices.Index(n.Fields, tok)
		if i == -1 {
			return nil, 0, fmt.Errorf("%w: missing key %q", ir.ErrNotFound, tok)
		}
		return n.Values[i], i, nil
	case ir.ArrayType:
		i, ok := ir.ParseIndex(tok)
		if !ok || i >= len(n.Values) {
			return nil, 0, fmt.Errorf("%w: index %q out of range", ir.ErrNotFound, tok)
		}
		return n.Values[i], i, nil
	default:
		return nil, 0, fmt.Errorf("%w: cannot index %s with %q", ir.ErrNotFound, n.Type, tok)
	}
}

// modify rebuilds the path to the parent of the last token of toks and
// replaces the parent with fn's result.
func modify(n *ir.Node, toks []string, fn func(parent *ir.Node, tok string) (*ir.Node, error)) (*ir.Node, error) {
	if len(toks) == 1 {
		return fn(n, toks[0])
	}
	child, i, err := step(n, toks[0])
	if err != nil {
		return nil, err
	}
	nc, err := modify(child, toks[1:], fn)
	if err != nil {
		return nil, err
	}
	res := *n
	res.Values = slices.Clone(n.Values)
	res.Values[i] = nc
	return &res, nil
}

func add(doc *ir.Node, toks []string, v *ir.Node) (*ir.Node, error) {
	if len(toks) == 0 {
		return v, nil
	}
	return modify(doc, toks, func(p *ir.Node, tok string) (*ir.Node, error) {
		res := *p
		switch p.Type {
		case ir.ObjectType:
			if i := slices.Index(p.Fields, tok); i != -1 {
				res.Values = slices.Clone(p.Values)
				res.Values[i] = v
				return &res, nil
			}
			res.Fields = append(slices.Clip(p.Fields), tok)
			res.Values = append(slices.Clip(p.Values), v)
			return &res, nil
		case ir.ArrayType:
			i := len(p.Values)
			if tok != "-" {
				var ok bool
				i, ok = ir.ParseIndex(tok)
				if !ok || i > len(p.Values) {
					return nil, fmt.Errorf("%w: index %q out of range", ir.ErrNotFound, tok)
				}
			}
			res.Values = slices.Insert(slices.Clone(p.Values), i, v)
			return &res, nil
		default:
			return nil, fmt.Errorf("%w: cannot add to %s", ir.ErrNotFound, p.Type)
		}
	})
}

func remove(doc *ir.Node, toks []string) (*ir.Node, *ir.Node, error) {
	if len(toks) == 0 {
		return ir.Null(), doc, nil
	}
	var removed *ir.Node
	res, err := modify(doc, toks, func(p *ir.Node, tok string) (*ir.Node, error) {
		old, i, err := step(p, tok)
		if err != nil {
			return nil, err
		}
		removed = old
		res := *p
		res.Values = slices.Delete(slices.Clone(p.Values), i, i+1)
		if p.Type == ir.ObjectType {
			res.Fields = slices.Delete(slices.Clone(p.Fields), i, i+1)
		}
		return &res, nil
	})
	if err != nil {
		return nil, nil, err
	}
	return res, removed, nil
}

func replace(doc *ir.Node, toks []string, v *ir.Node) (*ir.Node, error) {
	if len(toks) == 0 {
		return v, nil
	}
	return modify(doc, toks, func(p *ir.Node, tok string) (*ir.Node, error) {
		_, i, err := step(p, tok)
		if err != nil {
			return nil, err
		}
		res := *p
		res.Values = slices.Clone(p.Values)
		res.Values[i] = v
		return &res, nil
	})
}
