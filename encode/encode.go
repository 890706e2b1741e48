package encode

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/state"
)

type EncState struct {
	indent int
	caret  *state.CaretPosition
	lines  []*line

	Color func(ir.Type, ColorAttr, string) string
}

// line is one rendered line. open lines hold the key, value and inside
// caret stops of path, close lines its after stop.
type line struct {
	depth       int
	text        string
	comment     string
	path        ir.Path
	open, close bool
}

// Encode writes the visible part of doc, as given by st, to w. Collapsed
// containers and hidden array items are summarized in comments.
func Encode(doc *ir.Node, st state.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{indent: 2}
	for _, opt := range opts {
		opt(es)
	}
	if doc == nil {
		doc = ir.Null()
	}
	if err := es.build(doc, st); err != nil {
		return err
	}
	for _, ln := range es.lines {
		if err := writeString(w, es.render(ln)); err != nil {
			return err
		}
	}
	return nil
}

func MustString(doc *ir.Node, st state.Node, opts ...EncodeOption) string {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, st, buf, opts...); err != nil {
		panic(err)
	}
	return buf.String()
}

func writeString(w io.Writer, s string) error {
	_, err := w.Write([]byte(s))
	return err
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil {
		return s
	}
	return es.Color(t, a, s)
}

func (es *EncState) render(ln *line) string {
	var b strings.Builder
	if es.caret != nil {
		if es.onCaret(ln) {
			b.WriteString(es.color(ir.NullType, CaretColor, ">") + " ")
		} else {
			b.WriteString("  ")
		}
	}
	b.WriteString(strings.Repeat(" ", es.indent*ln.depth))
	b.WriteString(ln.text)
	if ln.comment != "" {
		b.WriteString(" " + es.color(ir.NullType, CommentColor, "// "+ln.comment))
	}
	b.WriteByte('\n')
	return b.String()
}

func (es *EncState) onCaret(ln *line) bool {
	if ln.path == nil || !ln.path.Equal(es.caret.Path) {
		return false
	}
	if es.caret.Type == state.CaretAfter {
		return ln.close
	}
	return ln.open
}

func (es *EncState) add(ln *line) {
	es.lines = append(es.lines, ln)
}

// comma appends a separator to the last line rendered.
func (es *EncState) comma(t ir.Type) {
	ln := es.lines[len(es.lines)-1]
	ln.text += es.color(t, SepColor, ",")
}

// frame is an expanded, non-empty container whose children are being
// rendered.
type frame struct {
	visit *state.Visit
	next  int
	items bool
}

// build renders the lines of the nodes state.Walk visits. Hidden array items
// between and after the visited ones become gap lines.
func (es *EncState) build(doc *ir.Node, st state.Node) error {
	var (
		stack []*frame
		err   error
	)
	pre := func(v *state.Visit) bool {
		depth := len(v.Path)
		prefix := ""
		if len(stack) != 0 {
			f := stack[len(stack)-1]
			t := f.visit.Value.Type
			if last, _ := v.Path.Last(); last.IsIndex() {
				if *last.Index > f.next {
					es.gap(f, *last.Index)
				}
				f.next = *last.Index + 1
			}
			if f.items {
				es.comma(t)
			}
			f.items = true
			if v.IsKey() {
				prefix, err = es.key(v.Path)
				if err != nil {
					return false
				}
			}
		}
		value := v.Value
		switch value.Type {
		case ir.ObjectType, ir.ArrayType:
			if !v.Expanded || value.Len() == 0 {
				es.add(&line{
					depth:   depth,
					text:    prefix + es.collapsed(value),
					comment: summary(value),
					path:    v.Path,
					open:    true,
					close:   true,
				})
				return true
			}
			open := "{"
			if value.Type == ir.ArrayType {
				open = "["
			}
			es.add(&line{
				depth: depth,
				text:  prefix + es.color(value.Type, SepColor, open),
				path:  v.Path,
				open:  true,
			})
			stack = append(stack, &frame{visit: v})
			return true
		}
		var d []byte
		d, err = ir.ToJSON(value)
		if err != nil {
			err = fmt.Errorf("%w at %s: %w", ErrEncoding, v.Path, err)
			return false
		}
		es.add(&line{
			depth: depth,
			text:  prefix + es.color(value.Type, ValueColor, string(d)),
			path:  v.Path,
			open:  true,
			close: true,
		})
		return true
	}
	post := func(v *state.Visit) bool {
		if len(stack) == 0 || stack[len(stack)-1].visit != v {
			return true
		}
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		close := "}"
		if v.Value.Type == ir.ArrayType {
			close = "]"
			if n := len(v.Value.Values); f.next < n {
				es.gap(f, n)
			}
		}
		es.add(&line{
			depth: len(v.Path),
			text:  es.color(v.Value.Type, SepColor, close),
			path:  v.Path,
			close: true,
		})
		return true
	}
	state.Walk(doc, st, pre, post)
	return err
}

func (es *EncState) key(path ir.Path) (string, error) {
	last, _ := path.Last()
	kd, err := json.Marshal(last.Token())
	if err != nil {
		return "", fmt.Errorf("%w at %s: %w", ErrEncoding, path, err)
	}
	return es.color(ir.ObjectType, FieldColor, string(kd)) + es.color(ir.ObjectType, SepColor, ":") + " ", nil
}

// gap summarizes the hidden items [f.next, end) of the array of f.
func (es *EncState) gap(f *frame, end int) {
	if f.items {
		es.comma(ir.ArrayType)
	}
	f.items = false
	es.add(&line{
		depth:   len(f.visit.Path) + 1,
		text:    "...",
		comment: fmt.Sprintf("%d hidden %s", end-f.next, state.Section{Start: f.next, End: end}),
	})
}

func (es *EncState) collapsed(value *ir.Node) string {
	open, close := "{", "}"
	if value.Type == ir.ArrayType {
		open, close = "[", "]"
	}
	if value.Len() == 0 {
		return es.color(value.Type, SepColor, open+close)
	}
	return es.color(value.Type, SepColor, open) + "..." + es.color(value.Type, SepColor, close)
}

func summary(value *ir.Node) string {
	n := value.Len()
	switch {
	case n == 0:
		return ""
	case value.Type == ir.ObjectType && n == 1:
		return "1 key"
	case value.Type == ir.ObjectType:
		return fmt.Sprintf("%d keys", n)
	case n == 1:
		return "1 item"
	default:
		return fmt.Sprintf("%d items", n)
	}
}
