package libdiff

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestLines(t *testing.T) {
	tests := []struct {
		name     string
		from, to string
		want     string
	}{
		{"equal", "a\nb\n", "a\nb\n", ""},
		{"insert", "a\nc\n", "a\nb\nc\n", " a\n+b\n c\n"},
		{"delete", "a\nb\nc\n", "a\nc\n", " a\n-b\n c\n"},
		{"replace", "a\nb\n", "a\nx\n", " a\n-b\n+x\n"},
		{"from empty", "", "a\n", "+a\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Lines(tt.from, tt.to)); diff != "" {
				t.Errorf("(-want +got):\n%s", diff)
			}
		})
	}
}

func TestStat(t *testing.T) {
	ins, del := Stat(Diff("a\nb\nc\n", "a\nx\ny\nc\n"))
	if ins != 2 || del != 1 {
		t.Errorf("ins %d del %d", ins, del)
	}
}

func TestColorize(t *testing.T) {
	mark := func(tag string) func(string, ...any) string {
		return func(f string, args ...any) string {
			return tag + fmt.Sprintf(f, args...)
		}
	}
	got := Colorize(" a\n-b\n+x\n", mark("I:"), mark("D:"))
	if diff := cmp.Diff(" a\nD:-b\nI:+x\n", got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}
