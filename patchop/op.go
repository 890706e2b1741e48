// Package patchop holds JSON Patch (RFC 6902) operations and applies them to
// documents.
package patchop

import (
	"encoding/json"
	"fmt"

	"github.com/signadot/docstate/ir"
)

const (
	OpAdd     = "add"
	OpRemove  = "remove"
	OpReplace = "replace"
	OpCopy    = "copy"
	OpMove    = "move"
	OpTest    = "test"
)

// Operation is a single JSON Patch operation. Path and From are JSON
// Pointers; the empty pointer addresses the whole document.
type Operation struct {
	Op    string   `json:"op"`
	Path  string   `json:"path"`
	From  string   `json:"from,omitempty"`
	Value *ir.Node `json:"value,omitempty"`
}

func Add(path string, v *ir.Node) Operation {
	return Operation{Op: OpAdd, Path: path, Value: v}
}

func Remove(path string) Operation {
	return Operation{Op: OpRemove, Path: path}
}

func Replace(path string, v *ir.Node) Operation {
	return Operation{Op: OpReplace, Path: path, Value: v}
}

func Copy(from, path string) Operation {
	return Operation{Op: OpCopy, From: from, Path: path}
}

func Move(from, path string) Operation {
	return Operation{Op: OpMove, From: from, Path: path}
}

func Test(path string, v *ir.Node) Operation {
	return Operation{Op: OpTest, Path: path, Value: v}
}

func (o Operation) String() string {
	switch o.Op {
	case OpCopy, OpMove:
		return fmt.Sprintf("%s %q -> %q", o.Op, o.From, o.Path)
	case OpRemove:
		return fmt.Sprintf("%s %q", o.Op, o.Path)
	default:
		return fmt.Sprintf("%s %q %s", o.Op, o.Path, ir.MustJSON(o.Value))
	}
}

// Encode renders ops as a JSON Patch document.
func Encode(ops []Operation) ([]byte, error) {
	if ops == nil {
		ops = []Operation{}
	}
	return json.Marshal(ops)
}
