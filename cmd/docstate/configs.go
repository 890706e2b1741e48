package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/encode"
	"github.com/signadot/docstate/eval"
	"github.com/signadot/docstate/state"

	"github.com/scott-cotton/cli"

	"github.com/mattn/go-isatty"
)

type MainConfig struct {
	Color  bool   `cli:"name=color desc='render with color'"`
	Expand string `cli:"name=expand desc='expansion policy expression, overrides -depth'"`
	Depth  int    `cli:"name=depth desc='expand containers up to this depth (-1 for none)'"`
	Eager  bool   `cli:"name=eager desc='compute the keys of collapsed objects'"`
	Indent int    `cli:"name=indent desc='indentation width'"`

	Out      string
	CloseOut func() error

	Main *cli.Command
}

func (cfg *MainConfig) editorOpts() ([]editor.Option, error) {
	res := []editor.Option{editor.WithLogger(theLog)}
	if cfg.Eager {
		res = append(res, editor.WithSyncOptions(state.EagerKeys()))
	}
	if cfg.Expand != "" {
		p, err := eval.CompileExpand(cfg.Expand)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		return append(res, editor.WithPolicy(p)), nil
	}
	return append(res, editor.WithExpand(eval.Depth(cfg.Depth))), nil
}

func (cfg *MainConfig) useColor(w io.Writer) bool {
	if cfg.Color {
		return true
	}
	for _, opt := range cfg.Main.Opts {
		if opt.Name != "color" {
			continue
		}
		if opt.Value != nil {
			return false
		}
		break
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	res := []encode.EncodeOption{}
	if cfg.Indent > 0 {
		res = append(res, encode.EncodeIndent(cfg.Indent))
	}
	if cfg.useColor(w) {
		res = append(res, encode.EncodeColors(encode.NewColors()))
	}
	return res
}

type ViewConfig struct {
	*MainConfig
	Reveal string `cli:"name=reveal desc='expand everything down to this JSON pointer'"`
	Caret  string `cli:"name=caret desc='mark a caret: <pointer> [key|value|inside|after]'"`

	View *cli.Command
}

type PathsConfig struct {
	*MainConfig
	Pointers bool `cli:"name=p aliases=pointers desc='print JSON pointers'"`

	Paths *cli.Command
}

type CaretsConfig struct {
	*MainConfig

	Carets *cli.Command
}

type PatchConfig struct {
	*MainConfig
	Diff bool `cli:"name=diff desc='show the change of the rendering'"`
	JSON bool `cli:"name=json desc='output the patched document as JSON'"`

	Patch *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Refs map[string]string

	Validate *cli.Command
}

func refOptTypeFunc(refs map[string]string) func(cc *cli.Context, a string) (any, error) {
	return func(cc *cli.Context, a string) (any, error) {
		url, file, ok := strings.Cut(a, "=")
		if !ok || url == "" || file == "" {
			return nil, fmt.Errorf("%w: expected url=file, got %q", cli.ErrUsage, a)
		}
		refs[url] = file
		return 0, nil
	}
}

type BrowseConfig struct {
	*MainConfig
	Gops   bool   `cli:"name=gops desc='start a gops diagnostics agent'"`
	Schema string `cli:"name=schema desc='schema file for the validate command'"`

	Browse *cli.Command
}
