// Package schema validates documents against JSON Schemas.
package schema

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/signadot/docstate/ir"
	"github.com/xeipuuv/gojsonschema"
)

// ValidationError is a schema violation at Path.
type ValidationError struct {
	Path    ir.Path
	Message string
}

func (e ValidationError) String() string {
	return e.Path.String() + ": " + e.Message
}

// maxEnum is the number of allowed values listed in enum messages.
const maxEnum = 5

// Validator validates documents against a compiled schema.
type Validator struct {
	schema *gojsonschema.Schema
}

// NewValidator compiles schema. refs maps urls to schemas which schema
// may reference with $ref.
func NewValidator(schema *ir.Node, refs map[string]*ir.Node) (*Validator, error) {
	sl := gojsonschema.NewSchemaLoader()
	for _, url := range slices.Sorted(maps.Keys(refs)) {
		d, err := ir.ToJSON(refs[url])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchema, url, err)
		}
		if err := sl.AddSchema(url, gojsonschema.NewBytesLoader(d)); err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrSchema, url, err)
		}
	}
	d, err := ir.ToJSON(schema)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	s, err := sl.Compile(gojsonschema.NewBytesLoader(d))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSchema, err)
	}
	return &Validator{schema: s}, nil
}

// Validate returns the violations of doc, ordered by path.
func (v *Validator) Validate(doc *ir.Node) []ValidationError {
	d, err := ir.ToJSON(doc)
	if err != nil {
		return []ValidationError{{Path: ir.Path{}, Message: err.Error()}}
	}
	res, err := v.schema.Validate(gojsonschema.NewBytesLoader(d))
	if err != nil {
		return []ValidationError{{Path: ir.Path{}, Message: err.Error()}}
	}
	if res.Valid() {
		return nil
	}
	errs := make([]ValidationError, 0, len(res.Errors()))
	for _, re := range res.Errors() {
		errs = append(errs, ValidationError{
			Path:    errorPath(doc, re.Context()),
			Message: message(re),
		})
	}
	slices.SortStableFunc(errs, func(a, b ValidationError) int {
		if c := strings.Compare(a.Path.Pointer(), b.Path.Pointer()); c != 0 {
			return c
		}
		return cmp.Compare(a.Message, b.Message)
	})
	return errs
}

// errorPath resolves the context of an error against doc, so that array
// elements are addressed by index.
func errorPath(doc *ir.Node, ctx *gojsonschema.JsonContext) ir.Path {
	if ctx == nil {
		return ir.Path{}
	}
	toks := strings.Split(ctx.String("/"), "/")[1:]
	return ir.PathFromTokens(doc, joinKeys(doc, toks))
}

// joinKeys regroups toks, whose keys were joined with "/" unescaped, into
// the keys of doc. A token which is not a key of the current object is
// joined with the tokens following it until the result is one.
func joinKeys(doc *ir.Node, toks []string) []string {
	res := make([]string, 0, len(toks))
	x := doc
	for i := 0; i < len(toks); i++ {
		tok := toks[i]
		switch {
		case x != nil && x.Type == ir.ObjectType:
			fields := ir.ToMap(x)
			if _, ok := fields[tok]; !ok {
				for j := i + 1; j < len(toks); j++ {
					joined := strings.Join(toks[i:j+1], "/")
					if _, ok := fields[joined]; ok {
						tok, i = joined, j
						break
					}
				}
			}
			x = fields[tok]
		case x != nil && x.Type == ir.ArrayType:
			idx, ok := ir.ParseIndex(tok)
			if !ok {
				x = nil
				break
			}
			x, _ = x.Index(idx)
		default:
			x = nil
		}
		res = append(res, tok)
	}
	return res
}

func message(re gojsonschema.ResultError) string {
	switch re.Type() {
	case "enum":
		allowed, _ := re.Details()["allowed"].(string)
		vals := strings.Split(allowed, ", ")
		if len(vals) > maxEnum {
			more := fmt.Sprintf("(%d more...)", len(vals)-maxEnum)
			vals = append(vals[:maxEnum:maxEnum], more)
		}
		return "should be equal to one of: " + strings.Join(vals, ", ")
	case "additional_property_not_allowed":
		return fmt.Sprintf("should NOT have additional property: %v", re.Details()["property"])
	}
	return re.Description()
}
