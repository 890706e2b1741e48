package ir

import (
	"fmt"
	"strconv"
	"strings"
)

var (
	pointerDecoder = strings.NewReplacer("~1", "/", "~0", "~")
	pointerEncoder = strings.NewReplacer("~", "~0", "/", "~1")
)

// ParsePointer splits an RFC 6901 JSON Pointer into its unescaped reference
// tokens. The empty pointer addresses the whole document and has no tokens.
func ParsePointer(ptr string) ([]string, error) {
	if ptr == "" {
		return nil, nil
	}
	if ptr[0] != '/' {
		return nil, fmt.Errorf("%w: %q must start with '/'", ErrBadPointer, ptr)
	}
	parts := strings.Split(ptr[1:], "/")
	for i, p := range parts {
		if strings.Contains(strings.ReplaceAll(strings.ReplaceAll(p, "~0", ""), "~1", ""), "~") {
			return nil, fmt.Errorf("%w: %q has an invalid escape", ErrBadPointer, ptr)
		}
		parts[i] = pointerDecoder.Replace(p)
	}
	return parts, nil
}

func FormatPointer(tokens []string) string {
	var b strings.Builder
	for _, t := range tokens {
		b.WriteByte('/')
		b.WriteString(pointerEncoder.Replace(t))
	}
	return b.String()
}

// ParseIndex parses an array index reference token: a non-negative decimal
// integer without leading zeros.
func ParseIndex(tok string) (int, bool) {
	if tok == "" || (len(tok) > 1 && tok[0] == '0') {
		return 0, false
	}
	for _, c := range tok {
		if c < '0' || c > '9' {
			return 0, false
		}
	}
	i, err := strconv.Atoi(tok)
	if err != nil {
		return 0, false
	}
	return i, true
}

// PathFromPointer converts a JSON Pointer into a Path, using doc to decide
// which tokens are array indices. Tokens below a location missing from doc
// are kept as fields unless they parse as indices.
func PathFromPointer(doc *Node, ptr string) (Path, error) {
	toks, err := ParsePointer(ptr)
	if err != nil {
		return nil, err
	}
	return PathFromTokens(doc, toks), nil
}

func PathFromTokens(doc *Node, toks []string) Path {
	res := make(Path, 0, len(toks))
	x := doc
	for _, tok := range toks {
		if x != nil && x.Type == ArrayType {
			if i, ok := ParseIndex(tok); ok {
				res = append(res, IndexSegment(i))
				x, _ = x.Index(i)
				continue
			}
		}
		if x == nil {
			if i, ok := ParseIndex(tok); ok {
				res = append(res, IndexSegment(i))
				continue
			}
		}
		res = append(res, FieldSegment(tok))
		x, _ = x.Get(tok)
	}
	return res
}
