package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/signadot/docstate/ir"
)

type debug struct {
	Sync    bool
	Expand  bool
	Patch   bool
	Visible bool
}

var d *debug

func init() {
	d = &debug{}
	d.Sync = boolEnv("DOCSTATE_DEBUG_SYNC")
	d.Expand = boolEnv("DOCSTATE_DEBUG_EXPAND")
	d.Patch = boolEnv("DOCSTATE_DEBUG_PATCH")
	d.Visible = boolEnv("DOCSTATE_DEBUG_VISIBLE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Sync() bool {
	return d.Sync
}
func Expand() bool {
	return d.Expand
}
func Patch() bool {
	return d.Patch
}
func Visible() bool {
	return d.Visible
}

// Logf writes a trace line to stderr. *ir.Node arguments are rendered as
// JSON.
func Logf(format string, args ...any) {
	for i, a := range args {
		if n, ok := a.(*ir.Node); ok && n != nil {
			d, err := n.MarshalJSON()
			if err == nil {
				args[i] = string(d)
			}
		}
	}
	fmt.Fprintf(os.Stderr, format, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
	os.Stderr.Write([]byte{'\n'})
}
