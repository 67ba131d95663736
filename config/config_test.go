package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefault(t *testing.T) {
	want := Config{
		LogLevel: slog.LevelWarn,
		FileMode: 0o644,
		ShowDiff: false,
		Color:    ColorAuto,
	}
	if diff := cmp.Diff(want, Default()); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestRead(t *testing.T) {
	dir := t.TempDir()
	main := filepath.Join(dir, "config.toml")
	dropIns := main + ".d"
	if err := os.Mkdir(dropIns, 0o755); err != nil {
		t.Fatal(err)
	}
	files := map[string]string{
		main:                                  "log-level = \"INFO\"\nfile-mode = \"0600\"\n",
		filepath.Join(dropIns, "20-diff.toml"): "show-diff = true\ncolor = \"never\"\n",
		filepath.Join(dropIns, "10-log.toml"):  "log-level = \"DEBUG\"\n",
		filepath.Join(dropIns, "30-log.toml"):  "log-level = \"error\"\n",
		filepath.Join(dropIns, "ignored.conf"): "not toml",
	}
	for p, d := range files {
		if err := os.WriteFile(p, []byte(d), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := (&Source{Path: main, DropInDir: dropIns}).Read()
	if err != nil {
		t.Fatal(err)
	}
	want := Config{
		LogLevel: slog.LevelError,
		FileMode: 0o600,
		ShowDiff: true,
		Color:    ColorNever,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadMissing(t *testing.T) {
	dir := t.TempDir()
	got, err := (&Source{Path: filepath.Join(dir, "none.toml"), DropInDir: filepath.Join(dir, "none.d")}).Read()
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(Default(), got); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestReadInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
		inv  bool
	}{
		{name: "syntax", data: "log-level = "},
		{name: "unknown key", data: "colour = \"always\"\n", inv: true},
		{name: "bad mode", data: "file-mode = \"0999\"\n", inv: true},
		{name: "bad level", data: "log-level = \"LOUD\"\n", inv: true},
		{name: "bad color", data: "color = \"sometimes\"\n", inv: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(p, []byte(tc.data), 0o644); err != nil {
				t.Fatal(err)
			}
			_, err := (&Source{Path: p}).Read()
			if err == nil {
				t.Fatal("expected error")
			}
			if tc.inv && !errors.Is(err, ErrInvalid) {
				t.Errorf("got %v", err)
			}
		})
	}
}

func TestDefaultSource(t *testing.T) {
	t.Setenv(EnvPath, "/tmp/x.toml")
	s := DefaultSource()
	if s.Path != "/tmp/x.toml" || s.DropInDir != "/tmp/x.toml.d" {
		t.Errorf("got %+v", s)
	}
	t.Setenv(EnvPath, "")
	if s := DefaultSource(); s.Path != DefaultPath {
		t.Errorf("got %+v", s)
	}
}
