package hocon

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hashicorp/go-multierror"

	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/encode"
	"github.com/h0tw1r3/puppetlabs-hocon/parse"
	"github.com/h0tw1r3/puppetlabs-hocon/registry"
)

// DefaultMode is the mode of files created by an Applier without Mode.
const DefaultMode os.FileMode = 0o644

// Applier applies Operations to files.
type Applier struct {
	// Registry rejects operations managing a setting already managed in
	// the same run. Nil disables the check.
	Registry *registry.Registry
	Logger   *slog.Logger
	// Mode is the mode of new files. Existing files keep theirs.
	Mode os.FileMode
	// NoOp computes results without writing files.
	NoOp bool
}

// Result is the result of applying one Operation. Before and After hold
// the file content; they are equal unless Outcome is edit.Changed.
type Result struct {
	Op      *Operation
	Outcome edit.Outcome
	Before  []byte
	After   []byte
	Err     error
}

// Apply validates, registers and applies op.
func (a *Applier) Apply(ctx context.Context, op *Operation) Result {
	if err := a.prepare(op); err != nil {
		return Result{Op: op, Err: err}
	}
	if err := ctx.Err(); err != nil {
		return Result{Op: op, Err: op.err(err)}
	}
	return a.execute(op)
}

// ApplyAll applies ops in order. Every operation is validated and
// registered before any file is read, so a duplicate declaration fails
// before anything it collides with runs. An operation failing does not
// stop the others.
func (a *Applier) ApplyAll(ctx context.Context, ops []*Operation) []Result {
	res := make([]Result, len(ops))
	for i, op := range ops {
		res[i].Op = op
		res[i].Err = a.prepare(op)
	}
	for i, op := range ops {
		if res[i].Err != nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			res[i].Err = op.err(err)
			continue
		}
		res[i] = a.execute(op)
	}
	return res
}

func (a *Applier) prepare(op *Operation) error {
	if err := op.Validate(); err != nil {
		return err
	}
	if a.Registry == nil {
		return nil
	}
	if err := a.Registry.Register(op.Path, op.setting, op.Name); err != nil {
		return op.err(err)
	}
	return nil
}

func (a *Applier) execute(op *Operation) Result {
	log := a.logger().With("path", op.Path, "setting", op.setting.String(), "ensure", op.Ensure.String())
	res := Result{Op: op}
	before, err := os.ReadFile(op.Path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		res.Err = op.err(err)
		log.Error("read failed", "error", err)
		return res
	}
	res.Before, res.After = before, before
	doc, err := parse.Parse(before, parse.ParseFilename(op.Path))
	if err != nil {
		res.Err = op.err(err)
		log.Error("parse failed", "error", err)
		return res
	}
	doc, res.Outcome, err = edit.Apply(doc, op.EditOp())
	if err != nil {
		res.Err = op.err(err)
		log.Error("edit failed", "error", err)
		return res
	}
	if res.Outcome == edit.Unchanged {
		log.Debug("setting up to date", "outcome", res.Outcome.String())
		return res
	}
	res.After = encode.Render(doc)
	if a.NoOp {
		log.Info("would change setting", "outcome", res.Outcome.String())
		return res
	}
	if err := writeFile(op.Path, res.After, a.mode()); err != nil {
		res.Err = op.err(err)
		log.Error("write failed", "error", err)
		return res
	}
	log.Info("setting changed", "outcome", res.Outcome.String())
	return res
}

func (a *Applier) logger() *slog.Logger {
	if a.Logger == nil {
		return slog.Default()
	}
	return a.Logger
}

func (a *Applier) mode() os.FileMode {
	if a.Mode == 0 {
		return DefaultMode
	}
	return a.Mode
}

// writeFile replaces the content of path with d through a temporary file
// in the same directory. A symbolic link is followed and its target
// replaced. An existing file keeps its mode and, where permitted, its
// owner and group.
func writeFile(path string, d []byte, mode os.FileMode) error {
	path, err := target(path)
	if err != nil {
		return err
	}
	fi, err := os.Stat(path)
	switch {
	case err == nil:
		mode = fi.Mode().Perm()
	case !errors.Is(err, fs.ErrNotExist):
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	defer os.Remove(tmp)
	if _, err := f.Write(d); err != nil {
		f.Close()
		return err
	}
	if err := f.Chmod(mode); err != nil {
		f.Close()
		return err
	}
	if fi != nil {
		if err := chown(f, fi); err != nil {
			f.Close()
			return err
		}
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// target returns the file path finally refers to, following symbolic
// links. The file itself need not exist, a dangling link names the file
// to create.
func target(path string) (string, error) {
	for range maxLinks {
		fi, err := os.Lstat(path)
		if errors.Is(err, fs.ErrNotExist) {
			dir, err := filepath.EvalSymlinks(filepath.Dir(path))
			if err != nil {
				return "", err
			}
			return filepath.Join(dir, filepath.Base(path)), nil
		}
		if err != nil {
			return "", err
		}
		if fi.Mode()&fs.ModeSymlink == 0 {
			return filepath.EvalSymlinks(path)
		}
		link, err := os.Readlink(path)
		if err != nil {
			return "", err
		}
		if !filepath.IsAbs(link) {
			link = filepath.Join(filepath.Dir(path), link)
		}
		path = link
	}
	return "", fmt.Errorf("%s: too many levels of symbolic links", path)
}

const maxLinks = 40

// Errors returns the errors of results, nil if there are none.
func Errors(results []Result) error {
	var merr *multierror.Error
	for _, r := range results {
		if r.Err != nil {
			merr = multierror.Append(merr, r.Err)
		}
	}
	return merr.ErrorOrNil()
}

// Changed reports whether any of results changed a file.
func Changed(results []Result) bool {
	for _, r := range results {
		if r.Outcome == edit.Changed && r.Err == nil {
			return true
		}
	}
	return false
}
