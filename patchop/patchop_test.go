package patchop

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docstate/ir"
)

func TestDecode(t *testing.T) {
	ops, err := Decode([]byte(`[
		{"op": "add", "path": "/c", "value": {"z": 1, "a": 2}},
		{"op": "remove", "path": "/a"},
		{"op": "replace", "path": "", "value": null},
		{"op": "copy", "from": "/b", "path": "/d"},
		{"op": "move", "from": "/b", "path": "/e"},
		{"op": "test", "path": "/e", "value": 3}
	]`))
	if err != nil {
		t.Fatal(err)
	}
	got := make([]string, len(ops))
	for i, op := range ops {
		got[i] = op.String()
	}
	want := []string{
		`add "/c" {"z":1,"a":2}`,
		`remove "/a"`,
		`replace "" null`,
		`copy "/b" -> "/d"`,
		`move "/b" -> "/e"`,
		`test "/e" 3`,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []string{
		`{"op": "add"}`,
		`[{"op": "frob", "path": "/a"}]`,
		`[{"op": "add", "path": "/a"}]`,
		`[{"op": "move", "path": "/a"}]`,
		`[{"path": "/a"}]`,
	}
	for _, in := range tests {
		if _, err := Decode([]byte(in)); !errors.Is(err, ErrDecode) {
			t.Errorf("Decode(%s): got %v, want ErrDecode", in, err)
		}
	}
}

func TestEncode(t *testing.T) {
	ops := []Operation{
		Add("/a", ir.FromInt(1)),
		Remove("/b"),
		Move("/c", "/d"),
	}
	d, err := Encode(ops)
	if err != nil {
		t.Fatal(err)
	}
	want := `[{"op":"add","path":"/a","value":1},{"op":"remove","path":"/b"},{"op":"move","path":"/d","from":"/c"}]`
	if string(d) != want {
		t.Errorf("got %s\nwant %s", d, want)
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		ops  []Operation
		want string
	}{
		{
			name: "add appends keys",
			doc:  `{"b": 1, "a": 2}`,
			ops:  []Operation{Add("/c", ir.FromInt(3))},
			want: `{"b":1,"a":2,"c":3}`,
		},
		{
			name: "add existing key keeps position",
			doc:  `{"b": 1, "a": 2}`,
			ops:  []Operation{Add("/b", ir.FromInt(3))},
			want: `{"b":3,"a":2}`,
		},
		{
			name: "add into array",
			doc:  `[1, 2, 3]`,
			ops:  []Operation{Add("/1", ir.FromInt(9)), Add("/-", ir.FromInt(10))},
			want: `[1,9,2,3,10]`,
		},
		{
			name: "remove",
			doc:  `{"a": [1, 2, 3], "b": true}`,
			ops:  []Operation{Remove("/a/0"), Remove("/b")},
			want: `{"a":[2,3]}`,
		},
		{
			name: "replace root",
			doc:  `{"a": 2, "b": 3}`,
			ops:  []Operation{Replace("", ir.MustParse(`{"d": 4}`))},
			want: `{"d":4}`,
		},
		{
			name: "copy",
			doc:  `{"a": {"x": 1}}`,
			ops:  []Operation{Copy("/a", "/b")},
			want: `{"a":{"x":1},"b":{"x":1}}`,
		},
		{
			name: "move",
			doc:  `{"a": {"x": 1}, "b": [0]}`,
			ops:  []Operation{Move("/a/x", "/b/0")},
			want: `{"a":{},"b":[1,0]}`,
		},
		{
			name: "test",
			doc:  `{"a": {"x": 1, "y": 2}}`,
			ops:  []Operation{Test("/a", ir.MustParse(`{"y": 2, "x": 1}`))},
			want: `{"a":{"x":1,"y":2}}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := ir.MustParse(tt.doc)
			before := ir.MustJSON(doc)
			got, err := Apply(doc, tt.ops)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, ir.MustJSON(got)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			if ir.MustJSON(doc) != before {
				t.Errorf("input modified: %s", ir.MustJSON(doc))
			}
		})
	}
}

func TestApplyErrors(t *testing.T) {
	doc := ir.MustParse(`{"a": [1, 2], "s": "x"}`)
	tests := []struct {
		name string
		ops  []Operation
		is   error
	}{
		{"missing key", []Operation{Remove("/b")}, ir.ErrNotFound},
		{"index out of range", []Operation{Replace("/a/2", ir.Null())}, ir.ErrNotFound},
		{"index into string", []Operation{Add("/s/0", ir.Null())}, ir.ErrNotFound},
		{"bad pointer", []Operation{Add("a", ir.Null())}, ir.ErrBadPointer},
		{"move into child", []Operation{Move("/a", "/a/0")}, ir.ErrBadPointer},
		{"test failed", []Operation{Test("/s", ir.FromString("y"))}, ErrTestFailed},
		{"second op fails", []Operation{Add("/b", ir.Null()), Remove("/c")}, ir.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Apply(doc, tt.ops)
			if !errors.Is(err, ErrApply) || !errors.Is(err, tt.is) {
				t.Errorf("got %v, want %v", err, tt.is)
			}
		})
	}
}

func TestApplySharesUnchangedSubtrees(t *testing.T) {
	doc := ir.MustParse(`{"a": {"x": 1}, "b": {"y": 2}}`)
	got, err := Apply(doc, []Operation{Replace("/a/x", ir.FromInt(5))})
	if err != nil {
		t.Fatal(err)
	}
	if got.Values[1] != doc.Values[1] {
		t.Errorf("untouched subtree was copied")
	}
}
