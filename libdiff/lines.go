// Package libdiff compares renderings line by line.
package libdiff

import (
	"strings"

	diffpatch "github.com/sergi/go-diff/diffmatchpatch"
)

// Op is the kind of a diff Line.
type Op int

const (
	Equal Op = iota
	Insert
	Delete
)

func (o Op) Prefix() string {
	switch o {
	case Insert:
		return "+"
	case Delete:
		return "-"
	default:
		return " "
	}
}

type Line struct {
	Op   Op
	Text string
}

// Diff returns the line diff from -> to. Each Text excludes its newline.
func Diff(from, to string) []Line {
	diffCfg := diffpatch.New()
	fromRunes, toRunes, lines := diffCfg.DiffLinesToRunes(from, to)
	diffs := diffCfg.DiffMainRunes(fromRunes, toRunes, false)
	diffs = diffCfg.DiffCharsToLines(diffs, lines)
	res := []Line{}
	for i := range diffs {
		diff := &diffs[i]
		var op Op
		switch diff.Type {
		case diffpatch.DiffInsert:
			op = Insert
		case diffpatch.DiffDelete:
			op = Delete
		}
		for _, ln := range splitLines(diff.Text) {
			res = append(res, Line{Op: op, Text: ln})
		}
	}
	return res
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

// Lines renders the diff from -> to with a one column +/-/space prefix on
// every line. Equal inputs give "".
func Lines(from, to string) string {
	if from == to {
		return ""
	}
	var b strings.Builder
	for _, ln := range Diff(from, to) {
		b.WriteString(ln.Op.Prefix())
		b.WriteString(ln.Text)
		b.WriteByte('\n')
	}
	return b.String()
}

// Stat counts inserted and deleted lines.
func Stat(ls []Line) (ins, del int) {
	for _, ln := range ls {
		switch ln.Op {
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	return ins, del
}

// Colorize wraps inserted and deleted lines of a Lines rendering with
// ins and del.
func Colorize(lines string, ins, del func(string, ...any) string) string {
	var b strings.Builder
	for _, ln := range splitLines(lines) {
		switch {
		case strings.HasPrefix(ln, "+"):
			ln = ins("%s", ln)
		case strings.HasPrefix(ln, "-"):
			ln = del("%s", ln)
		}
		b.WriteString(ln)
		b.WriteByte('\n')
	}
	return b.String()
}
