package eval

import (
	"strings"

	"github.com/signadot/docstate/ir"
)

// Env is the environment of a policy evaluation.
type Env struct {
	Path    []any  `expr:"path"`
	Depth   int    `expr:"depth"`
	Pointer string `expr:"pointer"`
	Key     any    `expr:"key"`
	Kind    string `expr:"kind"`
	Size    int    `expr:"size"`
}

// NewEnv returns the environment for the node of doc at path.
func NewEnv(doc *ir.Node, path ir.Path) Env {
	env := Env{
		Path:    path.Values(),
		Depth:   len(path),
		Pointer: path.Pointer(),
	}
	if last, ok := path.Last(); ok {
		env.Key = last.Value()
	}
	if n, err := doc.Lookup(path); err == nil && n != nil {
		env.Kind = strings.ToLower(n.Type.String())
		env.Size = n.Len()
	}
	return env
}
