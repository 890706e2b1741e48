package main

import (
	"fmt"
	"strings"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/encode"
	"github.com/signadot/docstate/state"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.openEditor(cc, args)
	if err != nil {
		return err
	}
	if cfg.Reveal != "" {
		path, err := e.Path(cfg.Reveal)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		if _, err := e.ExpandPath(path); err != nil {
			return err
		}
	}
	opts := cfg.encOpts(cc.Out)
	if cfg.Caret != "" {
		c, err := parseCaret(e, cfg.Caret)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		opts = append(opts, encode.EncodeCarets(c))
	}
	return encode.Encode(e.Doc(), e.State(), cc.Out, opts...)
}

var caretTypes = map[string]state.CaretType{
	"key":    state.CaretKey,
	"value":  state.CaretValue,
	"inside": state.CaretInside,
	"after":  state.CaretAfter,
}

// parseCaret parses "<pointer> [type]", the type defaulting to value. A
// lone type addresses the root.
func parseCaret(e *editor.Editor, s string) (state.CaretPosition, error) {
	ptr, typ, _ := strings.Cut(strings.TrimSpace(s), " ")
	typ = strings.TrimSpace(typ)
	if _, ok := caretTypes[ptr]; ok && typ == "" {
		ptr, typ = "", ptr
	}
	if typ == "" {
		typ = "value"
	}
	ct, ok := caretTypes[typ]
	if !ok {
		return state.CaretPosition{}, fmt.Errorf("unknown caret type %q", typ)
	}
	path, err := e.Path(ptr)
	if err != nil {
		return state.CaretPosition{}, err
	}
	return state.CaretPosition{Path: path, Type: ct}, nil
}
