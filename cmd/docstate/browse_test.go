package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/eval"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/state"
)

func newSession(doc string) (*session, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	e := editor.New(ir.MustParse(doc), editor.WithExpand(eval.Depth(0)))
	return &session{e: e, w: buf}, buf
}

func TestSessionExpandCollapse(t *testing.T) {
	s, buf := newSession(`{"a": {"b": 1}, "c": [1, 2]}`)
	if err := s.exec("expand /a"); err != nil {
		t.Fatal(err)
	}
	want := `{
  "a": {
    "b": 1
  },
  "c": [...] // 2 items
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	buf.Reset()
	if err := s.exec("expand /a"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "unchanged\n" {
		t.Errorf("got %q", got)
	}
	buf.Reset()
	if err := s.exec("collapse /a"); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), `"a": {...}, // 1 key`) {
		t.Errorf("got %s", buf.String())
	}
	if err := s.exec("expand /nope"); err == nil {
		t.Errorf("expected error")
	}
}

func TestSessionPatchShowsDiff(t *testing.T) {
	s, buf := newSession(`{"a": 1}`)
	if err := s.exec(`patch [{"op": "add", "path": "/b", "value": 2}]`); err != nil {
		t.Fatal(err)
	}
	want := " {\n-  \"a\": 1\n+  \"a\": 1,\n+  \"b\": 2\n }\n"
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := s.exec(`patch [{"op": "remove", "path": "/zz"}]`); err == nil {
		t.Errorf("expected error")
	}
	if got := ir.MustJSON(s.e.Doc()); got != `{"a":1,"b":2}` {
		t.Errorf("doc = %s", got)
	}
}

func TestSessionSection(t *testing.T) {
	vals := make([]*ir.Node, 150)
	for i := range vals {
		vals[i] = ir.FromInt(int64(i))
	}
	buf := &bytes.Buffer{}
	s := &session{e: editor.New(ir.FromSlice(vals), editor.WithExpand(eval.Depth(0))), w: buf}
	if err := s.exec("section 100 150"); err != nil {
		t.Fatal(err)
	}
	n, ok := state.Lookup(s.e.State(), ir.Path{})
	if !ok {
		t.Fatal("no root state")
	}
	a := n.(*state.Array)
	if diff := cmp.Diff([]state.Section{{Start: 0, End: 150}}, a.Sections); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if err := s.exec("section x 1 /a"); err == nil {
		t.Errorf("expected usage error")
	}
}

func TestSessionCaretsAndPaths(t *testing.T) {
	s, buf := newSession(`{"a": 1}`)
	if err := s.exec("paths"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "\n/a\n" {
		t.Errorf("paths %q", got)
	}
	buf.Reset()
	if err := s.exec("caret /a key"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "  {\n>   \"a\": 1\n  }\n" {
		t.Errorf("caret %q", got)
	}
	if err := s.exec("caret /a sideways"); err == nil {
		t.Errorf("expected error")
	}
}

func TestSessionCommands(t *testing.T) {
	s, buf := newSession(`{"a": 1}`)
	if err := s.exec("quit"); err != errQuit {
		t.Errorf("quit = %v", err)
	}
	if err := s.exec("frobnicate"); err == nil {
		t.Errorf("expected error")
	}
	if err := s.exec("validate"); err != nil {
		t.Fatal(err)
	}
	if got := buf.String(); got != "ok\n" {
		t.Errorf("validate %q", got)
	}
}

func TestSessionRun(t *testing.T) {
	s, buf := newSession(`[1]`)
	if err := s.run(strings.NewReader("collapse \nquit\n")); err != nil {
		t.Fatal(err)
	}
	want := "[\n  1\n]\n> [...] // 1 item\n> "
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
