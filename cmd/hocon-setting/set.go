package main

import (
	"fmt"
	"path/filepath"

	"github.com/scott-cotton/cli"

	hocon "github.com/h0tw1r3/puppetlabs-hocon"
)

func set(cfg *SetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Set.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: set requires a file and a setting, got %v", cli.ErrUsage, args)
	}
	op := &hocon.Operation{
		Name:    cfg.Name,
		Path:    absPath(args[0]),
		Setting: args[1],
	}
	if op.Ensure, err = hocon.ParseEnsure(cfg.Ensure); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	if op.Type, err = hocon.ParseValueType(cfg.Type); err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	vals := args[2:]
	switch {
	case op.Type == hocon.TypeArray || op.Type == hocon.TypeArrayElement:
		if len(vals) > 0 {
			op.Values = vals
		}
	case len(vals) == 1:
		op.Value = &vals[0]
	case len(vals) > 1:
		return fmt.Errorf("%w: %s takes one value, got %d", cli.ErrUsage, op.Type, len(vals))
	}
	ctx, stop := signalContext()
	defer stop()
	res := cfg.applier().Apply(ctx, op)
	return report(cfg.MainConfig, cc, []hocon.Result{res})
}

func rm(cfg *RmConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Rm.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) < 2 {
		return fmt.Errorf("%w: rm requires a file and a setting, got %v", cli.ErrUsage, args)
	}
	op := &hocon.Operation{
		Path:    absPath(args[0]),
		Setting: args[1],
		Ensure:  hocon.Absent,
	}
	switch {
	case cfg.Elements:
		op.Type = hocon.TypeArrayElement
		if len(args) > 2 {
			op.Values = args[2:]
		}
	case len(args) > 2:
		return fmt.Errorf("%w: values given without -e", cli.ErrUsage)
	}
	ctx, stop := signalContext()
	defer stop()
	res := cfg.applier().Apply(ctx, op)
	return report(cfg.MainConfig, cc, []hocon.Result{res})
}

// absPath qualifies a path given on the command line against the working
// directory.
func absPath(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	abs, err := filepath.Abs(p)
	if err != nil {
		return p
	}
	return abs
}
