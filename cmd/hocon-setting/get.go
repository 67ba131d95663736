package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/scott-cotton/cli"

	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/encode"
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
	"github.com/h0tw1r3/puppetlabs-hocon/parse"
)

func get(cfg *GetConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Get.Parse(cc, args)
	if err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: get requires a file and a setting, got %v", cli.ErrUsage, args)
	}
	path, err := setpath.Parse(args[1])
	if err != nil {
		return fmt.Errorf("%w: %w", cli.ErrUsage, err)
	}
	doc, err := readDoc(args[0])
	if err != nil {
		return err
	}
	h, err := edit.Resolve(doc, path, false)
	if errors.Is(err, edit.ErrNotFound) {
		theLog.Debug("setting not found", "path", args[0], "setting", path.String())
		return cli.ExitCodeErr(1)
	}
	if err != nil {
		return err
	}
	return writeNode(cc.Out, value(h), cfg.encOpts(cc.Out))
}

// value returns the value of the setting at h. A setting only defined
// through a longer dotted key gets an object holding the rest of the key.
func value(h *edit.Handle) *ir.Node {
	if n := h.Node(); n != nil {
		return n
	}
	rest := h.Field.Key[len(h.Key):]
	obj := ir.Object(true)
	obj.Fields = append(obj.Fields, &ir.Field{
		Lead:   " ",
		KeyRaw: encode.Key(rest),
		Key:    rest,
		Sep:    h.Field.Sep,
		Value:  h.Field.Value,
	})
	obj.Tail = " "
	return obj
}

func writeNode(w io.Writer, n *ir.Node, opts []encode.EncodeOption) error {
	if err := encode.EncodeNode(n, w, opts...); err != nil {
		return err
	}
	_, err := w.Write([]byte("\n"))
	return err
}

func readDoc(file string) (*ir.Document, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	return parse.Parse(d, parse.ParseFilename(file))
}
