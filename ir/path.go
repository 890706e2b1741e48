package ir

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

// Segment is one step of a Path: either an object field or an array index.
type Segment struct {
	Field *string
	Index *int
}

func FieldSegment(f string) Segment {
	return Segment{Field: &f}
}

func IndexSegment(i int) Segment {
	return Segment{Index: &i}
}

func (s Segment) IsIndex() bool {
	return s.Index != nil
}

// Value returns the segment as a string (field) or an int (index).
func (s Segment) Value() any {
	if s.Index != nil {
		return *s.Index
	}
	if s.Field != nil {
		return *s.Field
	}
	return nil
}

// Token returns the unescaped JSON Pointer reference token of the segment.
func (s Segment) Token() string {
	if s.Index != nil {
		return strconv.Itoa(*s.Index)
	}
	if s.Field != nil {
		return *s.Field
	}
	return ""
}

func (s Segment) Equal(o Segment) bool {
	if (s.Index == nil) != (o.Index == nil) || (s.Field == nil) != (o.Field == nil) {
		return false
	}
	if s.Index != nil {
		return *s.Index == *o.Index
	}
	if s.Field != nil {
		return *s.Field == *o.Field
	}
	return true
}

// Path addresses a value from the root of a document. The root is the empty
// path.
type Path []Segment

// NewPath builds a path from strings (fields) and ints (indices).
func NewPath(segs ...any) Path {
	res := make(Path, 0, len(segs))
	for _, s := range segs {
		switch x := s.(type) {
		case string:
			res = append(res, FieldSegment(x))
		case int:
			res = append(res, IndexSegment(x))
		case Segment:
			res = append(res, x)
		default:
			panic(fmt.Sprintf("invalid path segment %T", s))
		}
	}
	return res
}

// Append returns a new path with s appended. p is never modified.
func (p Path) Append(s Segment) Path {
	res := make(Path, len(p), len(p)+1)
	copy(res, p)
	return append(res, s)
}

func (p Path) Field(f string) Path {
	return p.Append(FieldSegment(f))
}

func (p Path) Index(i int) Path {
	return p.Append(IndexSegment(i))
}

func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

func (p Path) Last() (Segment, bool) {
	if len(p) == 0 {
		return Segment{}, false
	}
	return p[len(p)-1], true
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if !p[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

func (p Path) HasPrefix(o Path) bool {
	return len(o) <= len(p) && p[:len(o)].Equal(o)
}

// Values returns the path as a slice of strings and ints.
func (p Path) Values() []any {
	res := make([]any, len(p))
	for i, s := range p {
		res[i] = s.Value()
	}
	return res
}

// String renders the path in the $.a.b[0] style.
func (p Path) String() string {
	buf := bytes.NewBuffer([]byte{'$'})
	for _, s := range p {
		if s.Index != nil {
			fmt.Fprintf(buf, "[%d]", *s.Index)
			continue
		}
		if s.Field == nil {
			continue
		}
		f := *s.Field
		if f != "" && strings.IndexAny(f, "'.*$[] ") == -1 {
			buf.WriteString("." + f)
			continue
		}
		buf.WriteString(".'" + strings.ReplaceAll(f, "'", "\\'") + "'")
	}
	return buf.String()
}

// Pointer renders the path as an RFC 6901 JSON Pointer.
func (p Path) Pointer() string {
	toks := make([]string, len(p))
	for i, s := range p {
		toks[i] = s.Token()
	}
	return FormatPointer(toks)
}

// Lookup returns the value at p in y.
func (y *Node) Lookup(p Path) (*Node, error) {
	x := y
	for i, s := range p {
		var (
			next *Node
			ok   bool
		)
		switch {
		case s.Index != nil:
			next, ok = x.Index(*s.Index)
		case s.Field != nil:
			next, ok = x.Get(*s.Field)
		}
		if !ok {
			return nil, fmt.Errorf("%w: %s at %s", ErrNotFound, p, p[:i+1])
		}
		x = next
	}
	return x, nil
}
