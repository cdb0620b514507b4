package main

import (
	"errors"
	"fmt"
	iofs "io/fs"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/afero"
)

const configFileName = "abilink.toml"

// fileConfig mirrors abilink.toml:
//
//	[link]
//	inputs = ["obj/a.sdump"]
//	output = "out/libfoo.so.lsdump"
//
//	[visibility]
//	export_dirs = ["include"]
//	so = "out/libfoo.so"
//
//	[log]
//	level = "info"
type fileConfig struct {
	Link       linkSection       `toml:"link"`
	Visibility visibilitySection `toml:"visibility"`
	Log        logSection        `toml:"log"`

	dir  string
	meta toml.MetaData
}

type linkSection struct {
	Inputs       []string `toml:"inputs"`
	Output       string   `toml:"output"`
	InputFormat  string   `toml:"input_format"`
	OutputFormat string   `toml:"output_format"`
	MaxEntities  int      `toml:"max_entities"`
	Timings      bool     `toml:"timings"`
	UI           string   `toml:"ui"`
}

type visibilitySection struct {
	ExportDirs       []string `toml:"export_dirs"`
	NoFilter         bool     `toml:"no_filter"`
	SharedObject     string   `toml:"so"`
	VersionScript    string   `toml:"version_script"`
	UseVersionScript bool     `toml:"use_version_script"`
	API              string   `toml:"api"`
	Arch             string   `toml:"arch"`
}

type logSection struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	Verbose bool   `toml:"verbose"`
	Color   string `toml:"color"`
}

// findConfigFile walks from startDir up to the filesystem root looking for
// abilink.toml.
func findConfigFile(fs afero.Fs, startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := fs.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, iofs.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfigFile(fs afero.Fs, path string) (*fileConfig, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, err
	}
	cfg := &fileConfig{dir: filepath.Dir(path)}
	meta, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	cfg.meta = meta
	return cfg, nil
}

// path resolves p against the directory holding the config file.
func (c *fileConfig) path(p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.dir, filepath.FromSlash(p))
}

func (c *fileConfig) paths(ps []string) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = c.path(p)
	}
	return out
}

// apply copies every key present in the file onto opts.
func (c *fileConfig) apply(opts *options) {
	defined := c.meta.IsDefined
	if defined("link", "inputs") {
		opts.Inputs = c.paths(c.Link.Inputs)
	}
	if defined("link", "output") {
		opts.Output = c.path(c.Link.Output)
	}
	if defined("link", "input_format") {
		opts.InputFormat = c.Link.InputFormat
	}
	if defined("link", "output_format") {
		opts.OutputFormat = c.Link.OutputFormat
	}
	if defined("link", "max_entities") {
		opts.MaxEntities = c.Link.MaxEntities
	}
	if defined("link", "timings") {
		opts.Timings = c.Link.Timings
	}
	if defined("link", "ui") {
		opts.UI = c.Link.UI
	}

	v := c.Visibility
	if defined("visibility", "export_dirs") {
		opts.ExportDirs = c.paths(v.ExportDirs)
	}
	if defined("visibility", "no_filter") {
		opts.NoFilter = v.NoFilter
	}
	if defined("visibility", "so") {
		opts.SharedObject = c.path(v.SharedObject)
	}
	if defined("visibility", "version_script") {
		opts.VersionScript = c.path(v.VersionScript)
	}
	if defined("visibility", "use_version_script") {
		opts.UseVersionScript = v.UseVersionScript
	}
	if defined("visibility", "api") {
		opts.API = v.API
	}
	if defined("visibility", "arch") {
		opts.Arch = v.Arch
	}

	if defined("log", "level") {
		opts.LogLevel = c.Log.Level
	}
	if defined("log", "format") {
		opts.LogFormat = c.Log.Format
	}
	if defined("log", "verbose") {
		opts.Verbose = c.Log.Verbose
	}
	if defined("log", "color") {
		opts.Color = c.Log.Color
	}
}
