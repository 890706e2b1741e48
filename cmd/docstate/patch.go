package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/scott-cotton/cli"
	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/encode"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/libdiff"
)

func patch(cfg *PatchConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Patch.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: patch requires a patch file", cli.ErrUsage)
	}
	patchFile := args[0]
	if patchFile == "-" && (len(args) == 1 || args[1] == "-") {
		return fmt.Errorf("%w: patch and document cannot both be stdin", cli.ErrUsage)
	}
	var pd []byte
	if patchFile == "-" {
		pd, err = io.ReadAll(cc.In)
	} else {
		pd, err = os.ReadFile(patchFile)
	}
	if err != nil {
		return fmt.Errorf("error reading %s: %w", patchFile, err)
	}
	e, err := cfg.openEditor(cc, args[1:])
	if err != nil {
		return err
	}
	before := encode.MustString(e.Doc(), e.State())
	if err := e.PatchJSON(pd); err != nil {
		return err
	}
	if cfg.JSON {
		_, err := fmt.Fprintln(cc.Out, ir.MustJSON(e.Doc()))
		return err
	}
	if cfg.Diff {
		return writeDiff(cfg.MainConfig, cc.Out, before, e)
	}
	return encode.Encode(e.Doc(), e.State(), cc.Out, cfg.encOpts(cc.Out)...)
}

func writeDiff(cfg *MainConfig, w io.Writer, before string, e *editor.Editor) error {
	after := encode.MustString(e.Doc(), e.State())
	d := libdiff.Lines(before, after)
	if cfg.useColor(w) {
		d = libdiff.Colorize(d, color.GreenString, color.RedString)
	}
	_, err := io.WriteString(w, d)
	return err
}
