package main

import (
	"fmt"

	"github.com/scott-cotton/cli"
)

func paths(cfg *PathsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Paths.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.openEditor(cc, args)
	if err != nil {
		return err
	}
	for _, p := range e.VisiblePaths() {
		s := p.String()
		if cfg.Pointers {
			s = p.Pointer()
		}
		if _, err := fmt.Fprintln(cc.Out, s); err != nil {
			return err
		}
	}
	return nil
}

func carets(cfg *CaretsConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Carets.Parse(cc, args)
	if err != nil {
		return err
	}
	e, err := cfg.openEditor(cc, args)
	if err != nil {
		return err
	}
	for _, c := range e.Carets() {
		if _, err := fmt.Fprintln(cc.Out, c); err != nil {
			return err
		}
	}
	return nil
}
