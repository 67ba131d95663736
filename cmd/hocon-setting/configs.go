package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	hocon "github.com/h0tw1r3/puppetlabs-hocon"
	"github.com/h0tw1r3/puppetlabs-hocon/config"
	"github.com/h0tw1r3/puppetlabs-hocon/encode"
	"github.com/h0tw1r3/puppetlabs-hocon/registry"
)

type MainConfig struct {
	NoOp    bool   `cli:"name=n aliases=noop desc='show what would change without writing'"`
	Diff    bool   `cli:"name=diff desc='print a unified diff of changed files'"`
	Color   string `cli:"name=color desc='color output: auto, always or never'"`
	Verbose bool   `cli:"name=v desc='log every operation'"`
	Config  string `cli:"name=config desc='configuration file'"`

	conf config.Config

	Main *cli.Command
}

// load reads the configuration file, then applies the flags over it.
func (cfg *MainConfig) load() error {
	src := config.DefaultSource()
	if cfg.Config != "" {
		src = &config.Source{Path: cfg.Config, DropInDir: cfg.Config + ".d"}
	}
	c, err := src.Read()
	if err != nil {
		return err
	}
	if cfg.Color != "" {
		m, err := config.ParseColorMode(cfg.Color)
		if err != nil {
			return fmt.Errorf("%w: %w", cli.ErrUsage, err)
		}
		c.Color = m
	}
	if cfg.Diff {
		c.ShowDiff = true
	}
	if cfg.Verbose {
		c.LogLevel = slog.LevelDebug
	}
	switch c.Color {
	case config.ColorAlways:
		color.NoColor = false
	case config.ColorNever:
		color.NoColor = true
	}
	logLevel.Set(c.LogLevel)
	cfg.conf = c
	return nil
}

func (cfg *MainConfig) applier() *hocon.Applier {
	return &hocon.Applier{
		Registry: registry.New(),
		Logger:   theLog,
		Mode:     cfg.conf.FileMode,
		NoOp:     cfg.NoOp,
	}
}

func (cfg *MainConfig) colored(w io.Writer) bool {
	switch cfg.conf.Color {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

func (cfg *MainConfig) encOpts(w io.Writer) []encode.EncodeOption {
	if !cfg.colored(w) {
		return nil
	}
	return []encode.EncodeOption{encode.EncodeColors(encode.NewColors())}
}

type SetConfig struct {
	*MainConfig
	Type   string `cli:"name=t aliases=type desc='value type: auto, string, number, boolean, text, array, array_element'"`
	Name   string `cli:"name=name desc='name used in messages (default the setting)'"`
	Ensure string `cli:"name=ensure desc='present or absent'"`

	Set *cli.Command
}

type RmConfig struct {
	*MainConfig
	Elements bool `cli:"name=e desc='remove the given elements from an array instead of the setting'"`

	Rm *cli.Command
}

type GetConfig struct {
	*MainConfig

	Get *cli.Command
}

type ApplyConfig struct {
	*MainConfig

	Apply *cli.Command
}

type ViewConfig struct {
	*MainConfig

	View *cli.Command
}
