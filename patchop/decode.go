package patchop

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/signadot/docstate/ir"
)

// Decode parses a JSON Patch document. Values keep the key order of the
// input.
func Decode(d []byte) ([]Operation, error) {
	p, err := jsonpatch.DecodePatch(d)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	res := make([]Operation, 0, len(p))
	for i, jop := range p {
		op, err := fromJSONPatch(jop)
		if err != nil {
			return nil, fmt.Errorf("%w: operation %d: %w", ErrDecode, i, err)
		}
		res = append(res, op)
	}
	return res, nil
}

func fromJSONPatch(jop jsonpatch.Operation) (Operation, error) {
	op := Operation{Op: jop.Kind()}
	path, err := jop.Path()
	if err != nil {
		return op, err
	}
	op.Path = path
	switch op.Op {
	case OpAdd, OpReplace, OpTest:
		raw, ok := jop["value"]
		if !ok {
			return op, fmt.Errorf("%s %q has no value", op.Op, op.Path)
		}
		if raw == nil {
			op.Value = ir.Null()
			break
		}
		v, err := ir.Parse(*raw)
		if err != nil {
			return op, err
		}
		op.Value = v
	case OpCopy, OpMove:
		from, err := jop.From()
		if err != nil {
			return op, err
		}
		op.From = from
	case OpRemove:
	default:
		return op, fmt.Errorf("unknown op %q", op.Op)
	}
	return op, nil
}
