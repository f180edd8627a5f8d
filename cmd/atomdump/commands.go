package main

import (
	"github.com/scott-cotton/cli"
)

func MainCommand() *cli.Command {
	cfg := &MainConfig{}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "atomdump").
		WithSynopsis("atomdump [opts] command [opts]").
		WithDescription("atomdump inspects LV2 atom buffers.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return atomdumpMain(cfg, cc, args)
		}).
		WithSubs(
			ViewCommand(cfg),
			DemoCommand(cfg))
}

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [-key uri] [files]").
		WithDescription("print every atom in files, or stdin when none or - is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}

func DemoCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DemoConfig{MainConfig: mainCfg, Events: 4}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Demo, "demo").
		WithSynopsis("demo [-o file] [-n events] [-beats]").
		WithDescription("write a sample sequence of note objects").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return demo(cfg, cc, args)
		})
}
