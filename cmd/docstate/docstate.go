package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/ir"
)

func docstateMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	defer func() {
		if cfg.CloseOut != nil {
			cfg.CloseOut()
		}
	}()
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if cfg.Depth < -1 {
		return fmt.Errorf("%w: -depth must be at least -1", cli.ErrUsage)
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	sub := cfg.Main.FindSub(cc, args[0])
	if sub == nil {
		return fmt.Errorf("%w: %q not found", cli.ErrNoSuchCommand, args[0])
	}
	err = sub.Run(cc, args[1:])
	if errors.Is(err, cli.ErrUsage) {
		sub.Usage(cc, err)
		os.Exit(sub.Exit(cc, err))
	}
	return err
}

func (cfg *MainConfig) outOpt(cc *cli.Context, a string) (any, error) {
	cfg.Out = a
	if a == "-" {
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Out, os.O_CREATE|os.O_TRUNC|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	cc.Out = f
	cfg.CloseOut = f.Close
	return nil, nil
}

// readDoc parses file, or in when file is "-".
func readDoc(file string, in io.Reader) (*ir.Node, error) {
	r := in
	if file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, fmt.Errorf("could not open %q: %w", file, err)
		}
		defer f.Close()
		r = f
	}
	d, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", file, err)
	}
	doc, err := ir.Parse(d)
	if err != nil {
		return nil, fmt.Errorf("error processing %s: %w", file, err)
	}
	return doc, nil
}

// docArg returns the document argument of args, "-" when there is none.
func docArg(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "-", nil
	case 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: at most one document", cli.ErrUsage)
	}
}

func (cfg *MainConfig) openEditor(cc *cli.Context, args []string, extra ...editor.Option) (*editor.Editor, error) {
	file, err := docArg(args)
	if err != nil {
		return nil, err
	}
	doc, err := readDoc(file, cc.In)
	if err != nil {
		return nil, err
	}
	opts, err := cfg.editorOpts()
	if err != nil {
		return nil, err
	}
	return editor.New(doc, append(opts, extra...)...), nil
}
