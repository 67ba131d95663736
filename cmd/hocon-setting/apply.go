package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	hocon "github.com/h0tw1r3/puppetlabs-hocon"
	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/manifest"
)

func apply(cfg *ApplyConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Apply.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return fmt.Errorf("%w: apply requires at least one manifest", cli.ErrUsage)
	}
	var ops []*hocon.Operation
	for _, file := range args {
		m, err := manifest.ReadFile(file)
		if err != nil {
			return err
		}
		mOps, err := m.Operations()
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		ops = append(ops, mOps...)
	}
	ctx, stop := signalContext()
	defer stop()
	results := cfg.applier().ApplyAll(ctx, ops)
	changed := 0
	for _, r := range results {
		if r.Err == nil && r.Outcome == edit.Changed {
			changed++
		}
	}
	theLog.Info("applied", "operations", len(ops), "changed", changed, "noop", cfg.NoOp)
	return report(cfg.MainConfig, cc, results)
}
