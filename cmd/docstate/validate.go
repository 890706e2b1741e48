package main

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/scott-cotton/cli"
	"github.com/signadot/docstate/schema"
)

var errInvalid = errors.New("document is invalid")

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: validate requires a schema file", cli.ErrUsage)
	}
	v, err := loadValidator(cfg, cc, args[0])
	if err != nil {
		return err
	}
	e, err := cfg.openEditor(cc, args[1:])
	if err != nil {
		return err
	}
	errs := v.Validate(e.Doc())
	for _, ve := range errs {
		if _, err := fmt.Fprintln(cc.Out, ve); err != nil {
			return err
		}
	}
	if len(errs) != 0 {
		return fmt.Errorf("%w: %d errors", errInvalid, len(errs))
	}
	return nil
}

func loadValidator(cfg *ValidateConfig, cc *cli.Context, file string) (*schema.Validator, error) {
	for _, url := range slices.Sorted(maps.Keys(cfg.Refs)) {
		ref, err := readDoc(cfg.Refs[url], cc.In)
		if err != nil {
			return nil, err
		}
		if err := schema.Register(url, ref); err != nil {
			return nil, err
		}
	}
	s, err := readDoc(file, cc.In)
	if err != nil {
		return nil, fmt.Errorf("failed to load schema %s: %w", file, err)
	}
	return schema.NewValidator(s, schema.All())
}
