package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/gops/agent"
	"github.com/scott-cotton/cli"
	"github.com/signadot/docstate/editor"
	"github.com/signadot/docstate/encode"
	"github.com/signadot/docstate/ir"
	"github.com/signadot/docstate/libdiff"
	"github.com/signadot/docstate/schema"
	"github.com/signadot/docstate/state"
)

func browse(cfg *BrowseConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Browse.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 1 || args[0] == "-" {
		return fmt.Errorf("%w: browse reads commands from stdin and needs a document file", cli.ErrUsage)
	}
	if cfg.Gops {
		if err := agent.Listen(agent.Options{}); err != nil {
			fmt.Fprintf(cc.Out, "gops agent failed: %v\n", err)
		} else {
			defer agent.Close()
		}
	}
	var extra []editor.Option
	if cfg.Schema != "" {
		sd, err := readDoc(cfg.Schema, cc.In)
		if err != nil {
			return err
		}
		v, err := schema.NewValidator(sd, schema.All())
		if err != nil {
			return err
		}
		extra = append(extra, editor.WithValidator(v))
	}
	e, err := cfg.openEditor(cc, args, extra...)
	if err != nil {
		return err
	}
	s := &session{
		e:     e,
		w:     cc.Out,
		opts:  cfg.encOpts(cc.Out),
		color: cfg.useColor(cc.Out),
	}
	return s.run(cc.In)
}

var errQuit = errors.New("quit")

// session is a line oriented browser over an editor.
type session struct {
	e     *editor.Editor
	w     io.Writer
	opts  []encode.EncodeOption
	color bool
	last  string
}

func (s *session) run(r io.Reader) error {
	if err := s.show(); err != nil {
		return err
	}
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for {
		fmt.Fprint(s.w, "> ")
		if !sc.Scan() {
			fmt.Fprintln(s.w)
			return sc.Err()
		}
		err := s.exec(sc.Text())
		if errors.Is(err, errQuit) {
			return nil
		}
		if err != nil {
			theLog.Debug("browse", "line", sc.Text(), "err", err)
			fmt.Fprintf(s.w, "error: %v\n", err)
		}
	}
}

const browseHelp = `commands:
  show                      render the document
  expand <ptr>              expand a container
  collapse <ptr>            collapse a container
  toggle <ptr>              expand or collapse a container
  reveal <ptr>              expand everything down to ptr
  section <start> <end> [ptr]
                            show the items [start,end) of an array
  paths                     list visible paths
  carets                    list caret positions
  caret <ptr> [type]        render with a caret mark
  patch <json patch>        apply an RFC 6902 patch
  diff                      show the change since the last render
  validate                  check the document against -schema
  quit
`

func (s *session) exec(line string) error {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case "":
		return nil
	case "help", "?":
		_, err := io.WriteString(s.w, browseHelp)
		return err
	case "quit", "q", "exit":
		return errQuit
	case "show", "s":
		return s.show()
	case "expand", "e":
		return s.pathCmd(arg, s.e.Expand)
	case "collapse", "c":
		return s.pathCmd(arg, s.e.Collapse)
	case "toggle", "t":
		return s.pathCmd(arg, s.e.Toggle)
	case "reveal", "r":
		return s.pathCmd(arg, s.e.ExpandPath)
	case "section":
		return s.section(arg)
	case "paths":
		for _, p := range s.e.VisiblePaths() {
			fmt.Fprintln(s.w, p.Pointer())
		}
		return nil
	case "carets":
		for _, c := range s.e.Carets() {
			fmt.Fprintln(s.w, c)
		}
		return nil
	case "caret":
		c, err := parseCaret(s.e, arg)
		if err != nil {
			return err
		}
		return encode.Encode(s.e.Doc(), s.e.State(), s.w, append(s.opts, encode.EncodeCarets(c))...)
	case "patch", "p":
		before := encode.MustString(s.e.Doc(), s.e.State())
		if err := s.e.PatchJSON([]byte(arg)); err != nil {
			return err
		}
		return s.diff(before)
	case "diff", "d":
		return s.diff(s.last)
	case "validate", "v":
		errs := s.e.Validate()
		if len(errs) == 0 {
			fmt.Fprintln(s.w, "ok")
		}
		for _, ve := range errs {
			fmt.Fprintln(s.w, ve)
		}
		return nil
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
}

func (s *session) show() error {
	out := encode.MustString(s.e.Doc(), s.e.State())
	s.last = out
	if len(s.opts) == 0 {
		_, err := io.WriteString(s.w, out)
		return err
	}
	return encode.Encode(s.e.Doc(), s.e.State(), s.w, s.opts...)
}

func (s *session) diff(before string) error {
	after := encode.MustString(s.e.Doc(), s.e.State())
	s.last = after
	d := libdiff.Lines(before, after)
	if s.color {
		d = libdiff.Colorize(d, color.GreenString, color.RedString)
	}
	_, err := io.WriteString(s.w, d)
	return err
}

func (s *session) pathCmd(ptr string, fn func(ir.Path) (bool, error)) error {
	path, err := s.e.Path(ptr)
	if err != nil {
		return err
	}
	changed, err := fn(path)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Fprintln(s.w, "unchanged")
		return nil
	}
	return s.show()
}

func (s *session) section(arg string) error {
	fs := strings.Fields(arg)
	if len(fs) != 2 && len(fs) != 3 {
		return fmt.Errorf("usage: section <start> <end> [ptr]")
	}
	start, err := strconv.Atoi(fs[0])
	if err != nil {
		return err
	}
	end, err := strconv.Atoi(fs[1])
	if err != nil {
		return err
	}
	ptr := ""
	if len(fs) == 3 {
		ptr = fs[2]
	}
	return s.pathCmd(ptr, func(p ir.Path) (bool, error) {
		return s.e.ExpandSection(p, state.Section{Start: start, End: end})
	})
}
