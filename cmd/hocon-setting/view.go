package main

import (
	"fmt"

	"github.com/scott-cotton/cli"

	"github.com/h0tw1r3/puppetlabs-hocon/encode"
)

func view(cfg *ViewConfig, cc *cli.Context, args []string) error {
	args, err := cfg.View.Parse(cc, args)
	if err != nil {
		return err
	}
	opts := cfg.encOpts(cc.Out)
	for _, file := range args {
		doc, err := readDoc(file)
		if err != nil {
			return fmt.Errorf("error processing %s: %w", file, err)
		}
		if err := encode.Encode(doc, cc.Out, opts...); err != nil {
			return fmt.Errorf("error encoding %s: %w", file, err)
		}
	}
	return nil
}
