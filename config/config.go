package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultPath is the main configuration file.
	DefaultPath = "/etc/hocon-setting/config.toml"
	// EnvPath names the variable overriding DefaultPath. Its drop-in
	// directory is the path with ".d" appended.
	EnvPath = "HOCON_SETTING_CONFIG"
)

var ErrInvalid = errors.New("invalid configuration")

//go:embed default.toml
var defaultConfig string

// ColorMode selects when output is colored.
type ColorMode int

const (
	ColorAuto ColorMode = iota
	ColorAlways
	ColorNever
)

func (m ColorMode) String() string {
	switch m {
	case ColorAlways:
		return "always"
	case ColorNever:
		return "never"
	default:
		return "auto"
	}
}

// ParseColorMode parses auto, always or never.
func ParseColorMode(s string) (ColorMode, error) {
	switch strings.ToLower(s) {
	case "auto", "":
		return ColorAuto, nil
	case "always":
		return ColorAlways, nil
	case "never":
		return ColorNever, nil
	}
	return ColorAuto, fmt.Errorf("%w: color %q, expected auto, always or never", ErrInvalid, s)
}

// Config is the resolved configuration.
type Config struct {
	LogLevel slog.Level
	FileMode os.FileMode
	ShowDiff bool
	Color    ColorMode
}

type configDTO struct {
	LogLevel *string `toml:"log-level"`
	FileMode *string `toml:"file-mode"`
	ShowDiff *bool   `toml:"show-diff"`
	Color    *string `toml:"color"`
}

// Update applies the keys set in dto.
func (c *Config) Update(dto configDTO) error {
	if dto.LogLevel != nil {
		var l slog.Level
		if err := l.UnmarshalText([]byte(*dto.LogLevel)); err != nil {
			return fmt.Errorf("%w: log-level: %w", ErrInvalid, err)
		}
		c.LogLevel = l
	}
	if dto.FileMode != nil {
		m, err := strconv.ParseUint(*dto.FileMode, 8, 32)
		if err != nil || m > 0o777 {
			return fmt.Errorf("%w: file-mode %q is not an octal permission", ErrInvalid, *dto.FileMode)
		}
		c.FileMode = os.FileMode(m)
	}
	if dto.ShowDiff != nil {
		c.ShowDiff = *dto.ShowDiff
	}
	if dto.Color != nil {
		m, err := ParseColorMode(*dto.Color)
		if err != nil {
			return err
		}
		c.Color = m
	}
	return nil
}

// Default returns the embedded defaults.
func Default() Config {
	c := Config{}
	dto, err := parse(defaultConfig)
	if err != nil {
		panic(fmt.Sprintf("failed to parse embedded defaults: %v", err))
	}
	if err := c.Update(dto); err != nil {
		panic(fmt.Sprintf("invalid embedded defaults: %v", err))
	}
	return c
}

// Source is a main configuration file and its drop-in directory.
type Source struct {
	Path      string
	DropInDir string
}

// DefaultSource returns the source named by $HOCON_SETTING_CONFIG, or
// DefaultPath.
func DefaultSource() *Source {
	p := os.Getenv(EnvPath)
	if p == "" {
		p = DefaultPath
	}
	return &Source{Path: p, DropInDir: p + ".d"}
}

// Read returns the defaults overridden by the main file and then each
// drop-in file. Missing files are skipped; a file which cannot be parsed
// fails.
func (s *Source) Read() (Config, error) {
	c := Default()
	data, err := os.ReadFile(s.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return c, fmt.Errorf("failed to load %s: %w", s.Path, err)
	default:
		if err := apply(&c, s.Path, string(data)); err != nil {
			return c, err
		}
	}
	paths, err := s.dropIns()
	if err != nil {
		return c, err
	}
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return c, err
		}
		if err := apply(&c, p, string(data)); err != nil {
			return c, err
		}
	}
	return c, nil
}

func apply(c *Config, path, data string) error {
	dto, err := parse(data)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := c.Update(dto); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

func parse(data string) (configDTO, error) {
	var dto configDTO
	md, err := toml.Decode(data, &dto)
	if err != nil {
		return dto, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undec := md.Undecoded(); len(undec) > 0 {
		return dto, fmt.Errorf("%w: unknown key %q", ErrInvalid, undec[0].String())
	}
	return dto, nil
}

// dropIns returns the *.toml files of the drop-in directory, sorted.
func (s *Source) dropIns() ([]string, error) {
	if s.DropInDir == "" {
		return nil, nil
	}
	entries, err := os.ReadDir(s.DropInDir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read drop-in directory %s: %w", s.DropInDir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		paths = append(paths, filepath.Join(s.DropInDir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}
