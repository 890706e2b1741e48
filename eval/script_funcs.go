package eval

import (
	"os"

	"github.com/expr-lang/expr"
	"github.com/signadot/docstate/ir"
)

func exprOpts(doc func() *ir.Node) []expr.Option {
	return []expr.Option{
		expr.Function("getpath", func(params ...any) (any, error) {
			root := doc()
			path, err := ir.PathFromPointer(root, params[0].(string))
			if err != nil {
				return nil, err
			}
			n, err := root.Lookup(path)
			if err != nil {
				return nil, nil
			}
			return ir.ToAny(n), nil
		},
			new(func(string) any)),
		expr.Function("truthy", func(params ...any) (any, error) {
			root := doc()
			path, err := ir.PathFromPointer(root, params[0].(string))
			if err != nil {
				return nil, err
			}
			n, err := root.Lookup(path)
			if err != nil {
				return false, nil
			}
			return ir.Truth(n), nil
		},
			new(func(string) bool)),
		expr.Function("getenv", func(params ...any) (any, error) {
			return os.Getenv(params[0].(string)), nil
		},
			new(func(string) string)),
	}
}
