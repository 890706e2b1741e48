package state

import (
	"fmt"
	"iter"
	"testing"

	"github.com/signadot/docstate/ir"
)

const exampleDoc = `{"array": [1, 2, {"c": 6}], "object": {"a": 4, "b": 5}, "value": "hello"}`

func depth(n int) ExpandFunc {
	return func(p ir.Path) bool {
		return len(p) <= n
	}
}

func always(ir.Path) bool { return true }

func pathStrings(seq iter.Seq[ir.Path]) []string {
	res := []string{}
	for p := range seq {
		res = append(res, p.String())
	}
	return res
}

func caretStrings(seq iter.Seq[CaretPosition]) []string {
	res := []string{}
	for c := range seq {
		res = append(res, c.String())
	}
	return res
}

func indexPaths(prefix string, start, end int) []string {
	res := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		res = append(res, fmt.Sprintf("%s[%d]", prefix, i))
	}
	return res
}

func stringArray(n int) *ir.Node {
	vals := make([]*ir.Node, n)
	for i := range vals {
		vals[i] = ir.FromString(fmt.Sprintf("item %d", i))
	}
	return ir.FromSlice(vals)
}

// checkIDs fails if a node of n has an empty or duplicated ID.
func checkIDs(t *testing.T, n Node) {
	t.Helper()
	seen := map[string]bool{}
	var visit func(Node)
	visit = func(n Node) {
		id := n.NodeID()
		if id == "" {
			t.Errorf("empty id on %s node", n.Kind())
		}
		if seen[id] {
			t.Errorf("duplicate id %s", id)
		}
		seen[id] = true
		switch x := n.(type) {
		case *Object:
			for _, c := range x.Children {
				visit(c)
			}
		case *Array:
			for _, c := range x.Items {
				visit(c)
			}
		}
	}
	visit(n)
}

func mustObject(t *testing.T, n Node) *Object {
	t.Helper()
	o, ok := n.(*Object)
	if !ok {
		t.Fatalf("expected an object, got %T", n)
	}
	return o
}

func mustArray(t *testing.T, n Node) *Array {
	t.Helper()
	a, ok := n.(*Array)
	if !ok {
		t.Fatalf("expected an array, got %T", n)
	}
	return a
}
