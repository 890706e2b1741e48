package state

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/docstate/ir"
)

func TestCreateState(t *testing.T) {
	obj := CreateState(ir.MustParse(`{"a": 2, "b": 3}`))
	o := mustObject(t, obj)
	if diff := cmp.Diff(&Object{ID: o.ID, Keys: []string{"a", "b"}}, obj); diff != "" {
		t.Errorf("object (-want +got):\n%s", diff)
	}

	arr := CreateState(ir.MustParse(`[1, 2, 3]`))
	a := mustArray(t, arr)
	if diff := cmp.Diff(&Array{ID: a.ID, Length: 3}, arr); diff != "" {
		t.Errorf("array (-want +got):\n%s", diff)
	}

	prim := CreateState(ir.FromInt(42))
	if _, ok := prim.(*Primitive); !ok || prim.NodeID() == "" {
		t.Errorf("primitive: got %#v", prim)
	}
	if obj.NodeID() == arr.NodeID() || arr.NodeID() == prim.NodeID() {
		t.Errorf("ids are not unique")
	}
}

func TestSyncState(t *testing.T) {
	doc := ir.MustParse(exampleDoc)
	tests := []struct {
		name  string
		opts  []Option
		cKeys []string
	}{
		{"lazy keys", nil, nil},
		{"eager keys", []Option{EagerKeys()}, []string{"c"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := SyncState(doc, nil, ir.Path{}, depth(1), tt.opts...)
			root := mustObject(t, st)
			arr := mustArray(t, root.Children["array"])
			obj := mustObject(t, root.Children["object"])
			want := &Object{
				ID:       root.ID,
				Expanded: true,
				Keys:     []string{"array", "object", "value"},
				Children: map[string]Node{
					"array": &Array{
						ID:       arr.ID,
						Expanded: true,
						Length:   3,
						Sections: []Section{{0, 3}},
						Items: map[int]Node{
							0: &Primitive{ID: arr.Items[0].NodeID()},
							1: &Primitive{ID: arr.Items[1].NodeID()},
							2: &Object{ID: arr.Items[2].NodeID(), Keys: tt.cKeys},
						},
					},
					"object": &Object{
						ID:       obj.ID,
						Expanded: true,
						Keys:     []string{"a", "b"},
						Children: map[string]Node{
							"a": &Primitive{ID: obj.Children["a"].NodeID()},
							"b": &Primitive{ID: obj.Children["b"].NodeID()},
						},
					},
					"value": &Primitive{ID: root.Children["value"].NodeID()},
				},
			}
			if diff := cmp.Diff(want, st); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
			checkIDs(t, st)
		})
	}
}

func TestSyncStateReturnsPrevWhenUnchanged(t *testing.T) {
	doc := ir.MustParse(exampleDoc)
	st := SyncState(doc, nil, ir.Path{}, depth(1))
	again := SyncState(doc, st, ir.Path{}, func(p ir.Path) bool {
		t.Errorf("expand called for known node %s", p)
		return false
	})
	if again != st {
		t.Errorf("expected the previous state to be returned")
	}
}

func TestSyncStateSharesUntouchedSubtrees(t *testing.T) {
	doc := ir.MustParse(exampleDoc)
	st := SyncState(doc, nil, ir.Path{}, depth(1))
	doc2 := ir.MustParse(`{"array": [1, 2, {"c": 6}], "object": {"a": 4, "b": 5, "c": 6}, "value": "hello"}`)
	st2 := SyncState(doc2, st, ir.Path{}, depth(1))
	if st2 == st {
		t.Fatalf("expected a new root")
	}
	root, root2 := mustObject(t, st), mustObject(t, st2)
	if root2.ID != root.ID {
		t.Errorf("root id changed")
	}
	if root2.Children["array"] != root.Children["array"] {
		t.Errorf("array subtree not shared")
	}
	if root2.Children["value"] != root.Children["value"] {
		t.Errorf("value not shared")
	}
	obj, obj2 := mustObject(t, root.Children["object"]), mustObject(t, root2.Children["object"])
	if obj2.ID != obj.ID || obj2.Children["a"] != obj.Children["a"] {
		t.Errorf("object identity not kept")
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, obj2.Keys); diff != "" {
		t.Errorf("keys (-want +got):\n%s", diff)
	}
	checkIDs(t, st2)
}

func TestSyncStateExpandCalledOncePerNewContainer(t *testing.T) {
	doc := ir.MustParse(`{"a": {"b": [1, {"c": {}}]}, "d": 1}`)
	calls := map[string]int{}
	expand := func(p ir.Path) bool {
		calls[p.String()]++
		return true
	}
	st := SyncState(doc, nil, ir.Path{}, expand)
	want := map[string]int{"$": 1, "$.a": 1, "$.a.b": 1, "$.a.b[1]": 1, "$.a.b[1].c": 1}
	if diff := cmp.Diff(want, calls); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	clear(calls)
	doc2 := ir.MustParse(`{"a": {"b": [1, {"c": {}}], "e": [2]}, "d": 1}`)
	SyncState(doc2, st, ir.Path{}, expand)
	if diff := cmp.Diff(map[string]int{"$.a.e": 1}, calls); diff != "" {
		t.Errorf("resync (-want +got):\n%s", diff)
	}
}

func TestSyncStateKindChange(t *testing.T) {
	doc := ir.MustParse(`{"a": 1}`)
	st := SyncState(doc, nil, ir.Path{}, depth(0))
	id := mustObject(t, st).Children["a"].NodeID()

	called := false
	st2 := SyncState(ir.MustParse(`{"a": {"x": 1}}`), st, ir.Path{}, func(p ir.Path) bool {
		called = p.String() == "$.a"
		return true
	})
	a := mustObject(t, mustObject(t, st2).Children["a"])
	if a.ID != id {
		t.Errorf("id changed on kind change")
	}
	if !called || !a.Expanded {
		t.Errorf("expected expand to be consulted for the new object")
	}

	st3 := SyncState(ir.MustParse(`{"a": "x"}`), st2, ir.Path{}, nil)
	if p, ok := mustObject(t, st3).Children["a"].(*Primitive); !ok || p.ID != id {
		t.Errorf("got %#v", mustObject(t, st3).Children["a"])
	}
}

func TestSyncStateKeepsUserKeyOrder(t *testing.T) {
	st := SyncState(ir.MustParse(`{"b": 1, "a": 2}`), nil, ir.Path{}, always)
	st2 := SyncState(ir.MustParse(`{"a": 2, "c": 3, "b": 1}`), st, ir.Path{}, always)
	if diff := cmp.Diff([]string{"b", "a", "c"}, mustObject(t, st2).Keys); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSyncStateClipsSections(t *testing.T) {
	path := ir.NewPath("list")
	doc := ir.FromKeyVals([]ir.KeyVal{{Key: "list", Val: stringArray(500)}})
	st := SyncState(doc, nil, ir.Path{}, depth(1))
	st = ExpandSection(doc, st, path, Section{200, 300})

	doc2 := ir.FromKeyVals([]ir.KeyVal{{Key: "list", Val: stringArray(250)}})
	st2 := SyncState(doc2, st, ir.Path{}, nil)
	a, _ := lookupArray(st2, path)
	if diff := cmp.Diff([]Section{{0, 100}, {200, 250}}, a.Sections); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
	if len(a.Items) != 150 || a.Length != 250 {
		t.Errorf("got %d items, length %d", len(a.Items), a.Length)
	}

	empty := ir.FromKeyVals([]ir.KeyVal{{Key: "list", Val: ir.FromSlice(nil)}})
	st3 := SyncState(empty, st2, ir.Path{}, nil)
	a, _ = lookupArray(st3, path)
	if a.Sections != nil || a.Items != nil || !a.Expanded {
		t.Errorf("got %#v", a)
	}

	st4 := SyncState(ir.FromKeyVals([]ir.KeyVal{{Key: "list", Val: stringArray(5)}}), st3, ir.Path{}, nil)
	a, _ = lookupArray(st4, path)
	if diff := cmp.Diff([]Section{{0, 5}}, a.Sections); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSyncStateNilPolicy(t *testing.T) {
	doc := ir.MustParse(exampleDoc)
	st := SyncState(doc, nil, ir.Path{}, nil)
	o := mustObject(t, st)
	if o.Expanded || o.Children != nil || o.Keys != nil {
		t.Errorf("got %#v", o)
	}
	if diff := cmp.Diff([]string{"$"}, pathStrings(VisiblePaths(doc, st))); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestSyncStateLargeArray(t *testing.T) {
	doc := ir.FromKeyVals([]ir.KeyVal{{Key: "list", Val: stringArray(500_000)}})
	st := SyncState(doc, nil, ir.Path{}, depth(1))
	a, ok := lookupArray(st, ir.NewPath("list"))
	if !ok {
		t.Fatal("list not materialized")
	}
	if len(a.Items) != SectionSize || a.Length != 500_000 {
		t.Errorf("got %d items, length %d", len(a.Items), a.Length)
	}
	n := 0
	for range VisiblePaths(doc, st) {
		n++
	}
	if n != SectionSize+2 {
		t.Errorf("got %d visible paths", n)
	}
}
