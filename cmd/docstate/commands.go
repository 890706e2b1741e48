package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	sOpts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts := append(sOpts, &cli.Opt{
		Name:        "o",
		Description: "output file (default stdout)",
		Type:        cli.NamedFuncOpt(cfg.outOpt, "(filepath)"),
	})

	return cli.NewCommandAt(&cfg.Main, "docstate").
		WithSynopsis("docstate [opts] command [opts]").
		WithDescription("docstate browses JSON and YAML documents as collapsible trees.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return docstateMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			PathsCommand(cfg),
			CaretsCommand(cfg),
			PatchCommand(cfg),
			ValidateCommand(cfg),
			BrowseCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithOpts(opts...).
		WithSynopsis("view [-reveal ptr] [-caret 'ptr type'] [file]").
		WithDescription("render the visible part of a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func PathsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PathsConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Paths, "paths").
		WithAliases("p").
		WithOpts(opts...).
		WithSynopsis("paths [-p] [file]").
		WithDescription("list the visible paths of a document in display order").
		WithRun(func(cc *cli.Context, args []string) error {
			return paths(cfg, cc, args)
		})
}

func CaretsCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CaretsConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Carets, "carets").
		WithAliases("c").
		WithSynopsis("carets [file]").
		WithDescription("list the caret positions of the visible part of a document").
		WithRun(func(cc *cli.Context, args []string) error {
			return carets(cfg, cc, args)
		})
}

func PatchCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &PatchConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Patch, "patch").
		WithOpts(opts...).
		WithSynopsis("patch [-diff] [-json] <patchfile> [file]").
		WithDescription("apply an RFC 6902 JSON patch, keeping the presentation state").
		WithRun(func(cc *cli.Context, args []string) error {
			return patch(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg, Refs: map[string]string{}}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	opts = append(opts, &cli.Opt{
		Name:        "ref",
		Description: "register a referenced schema",
		Type:        cli.NamedFuncOpt(cli.FuncOpt(refOptTypeFunc(cfg.Refs)), "(url=file)"),
	})
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("check").
		WithOpts(opts...).
		WithSynopsis("validate [-ref url=file]... <schemafile> [file]").
		WithDescription("validate a document against a JSON schema").
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func BrowseCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &BrowseConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Browse, "browse").
		WithAliases("b").
		WithOpts(opts...).
		WithSynopsis("browse [-gops] file").
		WithDescription("interactively expand, collapse and patch a document; type help for commands").
		WithRun(func(cc *cli.Context, args []string) error {
			return browse(cfg, cc, args)
		})
}
