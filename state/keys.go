package state

import (
	"github.com/signadot/docstate/ir"
)

// SyncKeys merges the keys of the object value into prevKeys. Keys of
// prevKeys which are still present keep their relative order, keys new to
// prevKeys follow in the order of the document. With nil prevKeys the result
// is the document's own key order.
//
// prevKeys is returned as is when it already matches the document.
func SyncKeys(value *ir.Node, prevKeys []string) []string {
	if value == nil || value.Type != ir.ObjectType {
		return nil
	}
	if prevKeys == nil {
		return append(make([]string, 0, len(value.Fields)), value.Fields...)
	}
	present := make(map[string]bool, len(value.Fields))
	for _, f := range value.Fields {
		present[f] = true
	}
	prev := make(map[string]bool, len(prevKeys))
	retained := 0
	for _, k := range prevKeys {
		prev[k] = true
		if present[k] {
			retained++
		}
	}
	if retained == len(prevKeys) && retained == len(value.Fields) {
		return prevKeys
	}
	res := make([]string, 0, len(value.Fields))
	for _, k := range prevKeys {
		if present[k] {
			res = append(res, k)
		}
	}
	for _, f := range value.Fields {
		if !prev[f] {
			res = append(res, f)
		}
	}
	return res
}
