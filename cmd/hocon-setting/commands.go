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
	return cli.NewCommandAt(&cfg.Main, "hocon-setting").
		WithSynopsis("hocon-setting [opts] command [opts]").
		WithDescription("hocon-setting manages individual settings in HOCON files, keeping comments and layout.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return hsMain(cfg, cc, args)
		}).
		WithSubs(
			SetCommand(cfg),
			RmCommand(cfg),
			GetCommand(cfg),
			ApplyCommand(cfg),
			ViewCommand(cfg))
}

func SetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SetConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Set, "set").
		WithAliases("s").
		WithSynopsis("set [-t type] <file> <setting> <value> [values...]").
		WithDescription(setDescription).
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return set(cfg, cc, args)
		})
}

const setDescription = `set ensures a setting has a value.

The setting is a dotted path such as 'server.port'. Missing sections are
created. An existing value is replaced in place, keeping the comments and
layout around it. Running set twice changes nothing the second time.

With -t array the values form an array. With -t array_element each value is
added to the array if it is not already there.`

func RmCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &RmConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Rm, "rm").
		WithAliases("r", "remove").
		WithSynopsis("rm [-e] <file> <setting> [values...]").
		WithDescription("rm removes a setting, and the sections left empty by it. With -e it removes the given values from an array instead.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return rm(cfg, cc, args)
		})
}

func GetCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GetConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Get, "get").
		WithAliases("g").
		WithSynopsis("get <file> <setting>").
		WithDescription("get prints the value of a setting as written in the file").
		WithRun(func(cc *cli.Context, args []string) error {
			return get(cfg, cc, args)
		})
}

func ApplyCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ApplyConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Apply, "apply").
		WithAliases("a").
		WithSynopsis("apply <manifest.yaml> [manifests...]").
		WithDescription(applyDescription).
		WithRun(func(cc *cli.Context, args []string) error {
			return apply(cfg, cc, args)
		})
}

const applyDescription = `apply applies the settings declared in YAML manifests.

  path: /etc/app/app.conf
  settings:
  - setting: server.port
    value: 8080
  - setting: legacy
    ensure: absent

Each setting of a file may be declared once across all the manifests given.
A declaration failing does not stop the others.`

func ViewCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ViewConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.View, "view").
		WithAliases("v").
		WithSynopsis("view [files]").
		WithDescription("view checks HOCON files and prints them, in color on a terminal").
		WithRun(func(cc *cli.Context, args []string) error {
			return view(cfg, cc, args)
		})
}
