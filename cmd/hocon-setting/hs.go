package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/scott-cotton/cli"

	hocon "github.com/h0tw1r3/puppetlabs-hocon"
	"github.com/h0tw1r3/puppetlabs-hocon/libdiff"
)

func hsMain(cfg *MainConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Main.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) == 0 {
		return cli.ErrNoCommandProvided
	}
	if err := cfg.load(); err != nil {
		if errors.Is(err, cli.ErrUsage) {
			return err
		}
		return fmt.Errorf("error loading configuration: %w", err)
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

// report prints the diffs of changed files and logs the failures. It
// returns an exit error if any operation failed.
func report(cfg *MainConfig, cc *cli.Context, results []hocon.Result) error {
	if cfg.conf.ShowDiff {
		color := cfg.colored(cc.Out)
		for _, r := range results {
			if r.Err != nil || string(r.Before) == string(r.After) {
				continue
			}
			d := libdiff.Unified(r.Op.Path, r.Before, r.After, libdiff.DefaultContext)
			if color {
				d = libdiff.Colorize(d)
			}
			if _, err := cc.Out.Write([]byte(d)); err != nil {
				return err
			}
		}
	}
	err := hocon.Errors(results)
	if err == nil {
		return nil
	}
	theLog.Error("failed", "error", err)
	return cli.ExitCodeErr(1)
}

// signalContext returns a context canceled on interrupt, so a run stops
// between files.
func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}
