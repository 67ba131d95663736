package hocon

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/registry"
)

func str(s string) *string {
	return &s
}

func newApplier() *Applier {
	return &Applier{
		Registry: registry.New(),
		Logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	d, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(d)
}

func TestApplyPresent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "hocon_setting.conf")
	ops := []*Operation{
		{Name: "ensure => present for section", Path: path, Setting: "one.two", Value: str("three")},
		{Name: "ensure => present for top level", Path: path, Setting: "four", Value: str("five")},
	}
	res := newApplier().ApplyAll(context.Background(), ops)
	if err := Errors(res); err != nil {
		t.Fatal(err)
	}
	want := "one {\n    two = three\n}\nfour: \"five\"\n"
	if got := readFile(t, path); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	for _, r := range res {
		if r.Outcome != edit.Changed {
			t.Errorf("%s: %s", r.Op.Name, r.Outcome)
		}
	}
	if !Changed(res) {
		t.Error("expected a change")
	}

	// a second run changes nothing
	res = newApplier().ApplyAll(context.Background(), ops)
	if err := Errors(res); err != nil {
		t.Fatal(err)
	}
	if Changed(res) {
		t.Error("second run changed the file")
	}
	if got := readFile(t, path); got != want {
		t.Errorf("second run: got %q", got)
	}
}

func TestApplyAbsent(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		setting string
		want    string
	}{
		{setting: "one.two", want: "four=five\n"},
		{setting: "four", want: "one {\n    two=three\n}\n"},
		{setting: "five", want: "one {\n    two=three\n}\nfour=five\n"},
	}
	for i, tc := range tests {
		path := filepath.Join(dir, tc.setting+".conf")
		if err := os.WriteFile(path, []byte("one {\n    two=three\n}\nfour=five\n"), 0o600); err != nil {
			t.Fatal(err)
		}
		op := &Operation{Path: path, Setting: tc.setting, Ensure: Absent}
		r := newApplier().Apply(context.Background(), op)
		if r.Err != nil {
			t.Fatalf("%d: %v", i, r.Err)
		}
		if got := readFile(t, path); got != tc.want {
			t.Errorf("%d: got %q want %q", i, got, tc.want)
		}
		fi, err := os.Stat(path)
		if err != nil {
			t.Fatal(err)
		}
		if fi.Mode().Perm() != 0o600 {
			t.Errorf("%d: mode changed to %v", i, fi.Mode())
		}
	}
}

func TestApplyAbsentMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "none.conf")
	r := newApplier().Apply(context.Background(), &Operation{Path: path, Setting: "a", Ensure: Absent})
	if r.Err != nil || r.Outcome != edit.Unchanged {
		t.Fatalf("got %+v", r)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file created: %v", err)
	}
}

func TestApplyErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hocon_setting.conf")
	tests := []struct {
		name string
		op   *Operation
		err  error
		msg  string
	}{
		{
			name: "missing value",
			op:   &Operation{Name: "_setting", Path: path, Setting: "test.foo"},
			err:  ErrMissingValue,
			msg:  "value is a required",
		},
		{
			name: "missing value and setting",
			op:   &Operation{Path: path, Name: "x"},
			err:  ErrMissingValue,
			msg:  "value is a required",
		},
		{
			name: "relative path",
			op:   &Operation{Path: "foo", Setting: "one.two", Value: str("three")},
			err:  ErrPathNotQualified,
			msg:  "must be fully qualified",
		},
		{
			name: "bad setting",
			op:   &Operation{Path: path, Setting: "a..b", Value: str("x")},
			err:  ErrInvalidSetting,
		},
		{
			name: "no setting",
			op:   &Operation{Path: path, Value: str("x")},
			err:  ErrInvalidSetting,
		},
		{
			name: "bad number",
			op:   &Operation{Path: path, Setting: "n", Value: str("ten"), Type: TypeNumber},
			err:  ErrInvalidValue,
		},
		{
			name: "bad boolean",
			op:   &Operation{Path: path, Setting: "b", Value: str("yes"), Type: TypeBoolean},
			err:  ErrInvalidValue,
		},
		{
			name: "bad text",
			op:   &Operation{Path: path, Setting: "t", Value: str("{"), Type: TypeText},
			err:  ErrInvalidValue,
		},
		{
			name: "bad ensure",
			op:   &Operation{Path: path, Setting: "e", Value: str("x"), Ensure: Ensure(7)},
			err:  ErrInvalidEnsure,
		},
		{
			name: "element without value",
			op:   &Operation{Path: path, Setting: "l", Type: TypeArrayElement, Ensure: Absent},
			err:  ErrMissingValue,
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newApplier().Apply(context.Background(), tc.op)
			if !errors.Is(r.Err, tc.err) {
				t.Fatalf("got %v want %v", r.Err, tc.err)
			}
			if !strings.Contains(r.Err.Error(), tc.msg) {
				t.Errorf("message %q does not contain %q", r.Err.Error(), tc.msg)
			}
			opErr := &OpError{}
			if !errors.As(r.Err, &opErr) {
				t.Errorf("%v is not an OpError", r.Err)
			}
			if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
				t.Errorf("file touched: %v", err)
			}
		})
	}
}

func TestApplyParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.conf")
	if err := os.WriteFile(path, []byte("a = {\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newApplier().Apply(context.Background(), &Operation{Path: path, Setting: "a.b", Value: str("1")})
	if !errors.Is(r.Err, ErrParse) {
		t.Fatalf("got %v", r.Err)
	}
	if got := readFile(t, path); got != "a = {\n" {
		t.Errorf("file modified: %q", got)
	}
}

func TestApplyPathConflict(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.conf")
	if err := os.WriteFile(path, []byte("a = 1\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	r := newApplier().Apply(context.Background(), &Operation{Path: path, Setting: "a.b", Value: str("1")})
	if !errors.Is(r.Err, ErrPathConflict) {
		t.Fatalf("got %v", r.Err)
	}
}

func TestApplyDuplicates(t *testing.T) {
	dir := t.TempDir()
	one := filepath.Join(dir, "one.conf")
	four := filepath.Join(dir, "four.conf")
	ops := []*Operation{
		{Name: "one.two", Path: one, Value: str("one")},
		{Name: "one.two2", Path: one, Setting: "one.two", Value: str("two")},
		{Name: "one.two3", Path: four, Setting: "one.two", Value: str("one")},
		{Name: "one.two4", Path: four, Setting: "one.three", Value: str("two")},
	}
	res := newApplier().ApplyAll(context.Background(), ops)
	if res[0].Err != nil || res[2].Err != nil || res[3].Err != nil {
		t.Fatalf("unexpected errors: %v", Errors(res))
	}
	if !errors.Is(res[1].Err, ErrDuplicate) {
		t.Fatalf("got %v", res[1].Err)
	}
	if !strings.Contains(res[1].Err.Error(), "Cannot alias") {
		t.Errorf("message %q", res[1].Err)
	}
	if got := readFile(t, one); got != "one {\n    two = one\n}\n" {
		t.Errorf("one.conf: %q", got)
	}
	if got := readFile(t, four); got != "one {\n    two = one\n    three = two\n}\n" {
		t.Errorf("four.conf: %q", got)
	}
	err := Errors(res)
	if err == nil || !errors.Is(err, ErrDuplicate) {
		t.Errorf("aggregate: %v", err)
	}
}

func TestApplySymlink(t *testing.T) {
	dir := t.TempDir()
	dst := filepath.Join(dir, "real.conf")
	link := filepath.Join(dir, "app.conf")
	if err := os.WriteFile(dst, []byte("a = 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.Symlink("real.conf", link); err != nil {
		t.Skip(err)
	}
	r := newApplier().Apply(context.Background(), &Operation{Path: link, Setting: "b", Value: str("2")})
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	fi, err := os.Lstat(link)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode()&os.ModeSymlink == 0 {
		t.Errorf("link replaced by %v", fi.Mode())
	}
	if got := readFile(t, dst); got != "a = 1\nb: 2\n" {
		t.Errorf("target: got %q", got)
	}
	fi, err = os.Stat(dst)
	if err != nil {
		t.Fatal(err)
	}
	if fi.Mode().Perm() != 0o600 {
		t.Errorf("target mode changed to %v", fi.Mode())
	}

	// a dangling link names the file to create
	created := filepath.Join(dir, "sub", "created.conf")
	if err := os.Mkdir(filepath.Dir(created), 0o755); err != nil {
		t.Fatal(err)
	}
	dangling := filepath.Join(dir, "new.conf")
	if err := os.Symlink(filepath.Join("sub", "created.conf"), dangling); err != nil {
		t.Fatal(err)
	}
	r = newApplier().Apply(context.Background(), &Operation{Path: dangling, Setting: "c", Value: str("x")})
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if got := readFile(t, created); got != "c: \"x\"\n" {
		t.Errorf("created: got %q", got)
	}
	if fi, err := os.Lstat(dangling); err != nil || fi.Mode()&os.ModeSymlink == 0 {
		t.Errorf("dangling link replaced: %v", err)
	}
}

func TestApplySymlinkLoop(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.conf")
	b := filepath.Join(dir, "b.conf")
	if err := os.Symlink(b, a); err != nil {
		t.Skip(err)
	}
	if err := os.Symlink(a, b); err != nil {
		t.Fatal(err)
	}
	r := newApplier().Apply(context.Background(), &Operation{Path: a, Setting: "c", Value: str("x")})
	if r.Err == nil {
		t.Fatal("expected error")
	}
}

func TestApplyNoOp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "n.conf")
	a := newApplier()
	a.NoOp = true
	r := a.Apply(context.Background(), &Operation{Path: path, Setting: "top", Value: str("level")})
	if r.Err != nil {
		t.Fatal(r.Err)
	}
	if r.Outcome != edit.Changed || string(r.After) != "top: \"level\"\n" || len(r.Before) != 0 {
		t.Errorf("got %+v", r)
	}
	if _, err := os.Stat(path); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("file written: %v", err)
	}
}

func TestApplyTypes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "types.conf")
	ops := []*Operation{
		{Path: path, Setting: "s.str", Value: str("5"), Type: TypeString},
		{Path: path, Setting: "s.num", Value: str("5"), Type: TypeNumber},
		{Path: path, Setting: "s.bool", Value: str("true"), Type: TypeBoolean},
		{Path: path, Setting: "s.text", Value: str("{ x = 1 }"), Type: TypeText},
		{Path: path, Setting: "s.arr", Values: []string{"a", "b c"}, Type: TypeArray},
		{Path: path, Setting: "s.elems", Values: []string{"x", "y"}, Type: TypeArrayElement},
	}
	for i := 0; i < 2; i++ {
		res := newApplier().ApplyAll(context.Background(), ops)
		if err := Errors(res); err != nil {
			t.Fatal(err)
		}
		if i == 1 && Changed(res) {
			t.Error("second run changed the file")
		}
	}
	want := "s {\n" +
		"    str = \"5\"\n" +
		"    num = 5\n" +
		"    bool = true\n" +
		"    text = { x = 1 }\n" +
		"    arr = [a, \"b c\"]\n" +
		"    elems = [x, y]\n" +
		"}\n"
	if diff := cmp.Diff(want, readFile(t, path)); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	rm := &Operation{Path: path, Setting: "s.elems", Value: str("x"), Type: TypeArrayElement, Ensure: Absent}
	if r := newApplier().Apply(context.Background(), rm); r.Err != nil || r.Outcome != edit.Changed {
		t.Fatalf("got %+v", r)
	}
	if got := readFile(t, path); !strings.Contains(got, "elems = [y]\n") {
		t.Errorf("got %q", got)
	}
}

func TestApplyCanceled(t *testing.T) {
	path := filepath.Join(t.TempDir(), "c.conf")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	res := newApplier().ApplyAll(ctx, []*Operation{{Path: path, Setting: "a", Value: str("b")}})
	if !errors.Is(res[0].Err, context.Canceled) {
		t.Fatalf("got %v", res[0].Err)
	}
}

func TestParseEnsure(t *testing.T) {
	for s, want := range map[string]Ensure{"": Present, "present": Present, "absent": Absent} {
		got, err := ParseEnsure(s)
		if err != nil || got != want {
			t.Errorf("ParseEnsure(%q) = %v, %v", s, got, err)
		}
	}
	if _, err := ParseEnsure("latest"); !errors.Is(err, ErrInvalidEnsure) {
		t.Errorf("got %v", err)
	}
	for name := range map[string]bool{"auto": true, "string": true, "array_element": true} {
		vt, err := ParseValueType(name)
		if err != nil || vt.String() != name {
			t.Errorf("ParseValueType(%q) = %v, %v", name, vt, err)
		}
	}
	if _, err := ParseValueType("float"); !errors.Is(err, ErrInvalidType) {
		t.Errorf("got %v", err)
	}
}
