package editor

import (
	"io"
	"log/slog"

	"github.com/signadot/docstate/eval"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/schema"
	"github.com/signadot/docstate/state"
)

type Option func(*Editor)

// WithLogger sets the logger for patch and resync events. The default
// discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(e *Editor) { e.log = l }
}

// WithExpand sets the expansion policy applied to containers which appear
// in the document without previous state.
func WithExpand(f state.ExpandFunc) Option {
	return func(e *Editor) {
		e.expand = func(*ir.Node) state.ExpandFunc { return f }
	}
}

// WithPolicy is WithExpand for a compiled policy, which is bound to the
// current document on every sync.
func WithPolicy(p *eval.Policy) Option {
	return func(e *Editor) { e.expand = p.Expand }
}

func WithValidator(v *schema.Validator) Option {
	return func(e *Editor) { e.validator = v }
}

func WithSyncOptions(opts ...state.Option) Option {
	return func(e *Editor) { e.syncOpts = append(e.syncOpts, opts...) }
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
