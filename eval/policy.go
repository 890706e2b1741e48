package eval

import (
	"fmt"
	"sync"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/signadot/docstate/debug"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/state"
)

// Policy is a compiled expansion policy.
type Policy struct {
	src string
	prg *vm.Program

	mu  sync.Mutex
	doc *ir.Node
}

// CompileExpand compiles a boolean expression into a Policy.
func CompileExpand(src string) (*Policy, error) {
	p := &Policy{src: src}
	opts := append([]expr.Option{expr.Env(Env{}), expr.AsBool()}, exprOpts(p.current)...)
	prg, err := expr.Compile(src, opts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPolicy, err)
	}
	p.prg = prg
	return p, nil
}

// MustCompileExpand is CompileExpand for policies known to be valid.
func MustCompileExpand(src string) *Policy {
	p, err := CompileExpand(src)
	if err != nil {
		panic(err)
	}
	return p
}

func (p *Policy) String() string {
	return p.src
}

func (p *Policy) current() *ir.Node {
	return p.doc
}

// Eval evaluates the policy for the node of doc at path.
func (p *Policy) Eval(doc *ir.Node, path ir.Path) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.doc = doc
	defer func() { p.doc = nil }()
	res, err := expr.Run(p.prg, NewEnv(doc, path))
	if err != nil {
		return false, fmt.Errorf("%w: %s at %s: %w", ErrPolicy, p.src, path, err)
	}
	b, _ := res.(bool)
	return b, nil
}

// Expand returns the policy as a state.ExpandFunc for doc. Evaluation errors
// leave the node collapsed.
func (p *Policy) Expand(doc *ir.Node) state.ExpandFunc {
	return func(path ir.Path) bool {
		b, err := p.Eval(doc, path)
		if err != nil {
			if debug.Expand() {
				debug.Logf("%v\n", err)
			}
			return false
		}
		return b
	}
}

// Depth returns a policy expanding containers at most n levels deep.
func Depth(n int) state.ExpandFunc {
	return func(path ir.Path) bool {
		return len(path) <= n
	}
}
