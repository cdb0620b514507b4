package main

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"abilink/internal/diag"
	"abilink/internal/dump"
	"abilink/internal/linkpipeline"
	"abilink/internal/prof"
	"abilink/internal/visibility"
)

// options is the consolidated configuration of one run. Sources apply in
// increasing precedence: defaults, config file, environment, flags.
type options struct {
	Inputs           []string
	Output           string
	ExportDirs       []string
	NoFilter         bool
	SharedObject     string
	VersionScript    string
	UseVersionScript bool
	API              string
	Arch             string
	InputFormat      string
	OutputFormat     string
	MaxEntities      int

	ConfigPath string
	LogLevel   string
	LogFormat  string
	Verbose    bool
	Color      string
	Timings    bool
	UI         string

	CPUProfile string
	MemProfile string
	ExecTrace  string
}

func defaultOptions() options {
	return options{
		API:          "current",
		InputFormat:  string(dump.FormatAuto),
		OutputFormat: string(dump.FormatAuto),
		LogLevel:     logrus.WarnLevel.String(),
		LogFormat:    "text",
		Color:        string(colorModeAuto),
		UI:           string(uiModeAuto),
	}
}

func (c *rootCommand) loadOptions(cmd *cobra.Command, args []string) (*options, error) {
	opts := defaultOptions()

	env, err := readEnv(c.lookupEnv)
	if err != nil {
		return nil, err
	}

	configPath := c.flags.ConfigPath
	explicit := cmd.Flags().Changed("config")
	if !explicit && env.Config != nil {
		configPath, explicit = *env.Config, true
	}
	if err := c.applyConfigFile(&opts, configPath, explicit); err != nil {
		return nil, err
	}
	env.apply(&opts)
	c.applyFlags(cmd.Flags(), &opts)
	if len(args) > 0 {
		opts.Inputs = append([]string(nil), args...)
	}

	if err := opts.validate(); err != nil {
		return nil, err
	}
	return &opts, nil
}

func (c *rootCommand) applyConfigFile(opts *options, path string, explicit bool) error {
	if !explicit {
		wd, err := c.getwd()
		if err != nil {
			return diag.New(diag.ConfigurationError, "config", "", fmt.Errorf("resolve working directory: %w", err))
		}
		found, ok, err := findConfigFile(c.fs, wd)
		if err != nil {
			return diag.New(diag.ConfigurationError, "config", "", err)
		}
		if !ok {
			return nil
		}
		path = found
	}
	cfg, err := loadConfigFile(c.fs, path)
	if err != nil {
		return diag.New(diag.ConfigurationError, "config", path, err)
	}
	cfg.apply(opts)
	c.logger.WithField("path", path).Debug("config file loaded")
	return nil
}

// applyFlags copies every flag the user set explicitly.
func (c *rootCommand) applyFlags(flags *pflag.FlagSet, opts *options) {
	f := &c.flags
	flags.Visit(func(flag *pflag.Flag) {
		switch flag.Name {
		case "output":
			opts.Output = f.Output
		case "export-dir":
			opts.ExportDirs = append([]string(nil), f.ExportDirs...)
		case "no-filter":
			opts.NoFilter = f.NoFilter
		case "so":
			opts.SharedObject = f.SharedObject
		case "version-script":
			opts.VersionScript = f.VersionScript
		case "use-version-script":
			opts.UseVersionScript = f.UseVersionScript
		case "api":
			opts.API = f.API
		case "arch":
			opts.Arch = f.Arch
		case "input-format":
			opts.InputFormat = f.InputFormat
		case "output-format":
			opts.OutputFormat = f.OutputFormat
		case "max-entities":
			opts.MaxEntities = f.MaxEntities
		case "config":
			opts.ConfigPath = f.ConfigPath
		case "log-level":
			opts.LogLevel = f.LogLevel
		case "log-format":
			opts.LogFormat = f.LogFormat
		case "verbose":
			opts.Verbose = f.Verbose
		case "color":
			opts.Color = f.Color
		case "timings":
			opts.Timings = f.Timings
		case "ui":
			opts.UI = f.UI
		case "cpu-profile":
			opts.CPUProfile = f.CPUProfile
		case "mem-profile":
			opts.MemProfile = f.MemProfile
		case "exec-trace":
			opts.ExecTrace = f.ExecTrace
		}
	})
}

func (o *options) validate() error {
	if o.Output == "" {
		return diag.Configuration("missing output path (-o)")
	}
	if !o.UseVersionScript && o.SharedObject == "" {
		return diag.Configuration("missing shared object (-so); pass --use-version-script to rely on -v instead")
	}
	if _, err := dump.ParseFormat(o.InputFormat); err != nil {
		return diag.Configuration("--input-format: " + err.Error())
	}
	if _, err := dump.ParseFormat(o.OutputFormat); err != nil {
		return diag.Configuration("--output-format: " + err.Error())
	}
	if _, err := logrus.ParseLevel(o.LogLevel); err != nil {
		return diag.Configuration("--log-level: " + err.Error())
	}
	switch strings.ToLower(o.LogFormat) {
	case "text", "json":
	default:
		return diag.Configuration(fmt.Sprintf("--log-format: invalid value %q (expected text|json)", o.LogFormat))
	}
	if _, err := readColorMode(o.Color); err != nil {
		return diag.Configuration(err.Error())
	}
	if _, err := readUIMode(o.UI); err != nil {
		return diag.Configuration(err.Error())
	}
	return nil
}

func (o *options) profiles() prof.Config {
	return prof.Config{CPU: o.CPUProfile, Mem: o.MemProfile, Trace: o.ExecTrace}
}

// request builds the pipeline request. The caller fills in I/O dependencies.
func (o *options) request() (*linkpipeline.Request, error) {
	in, err := dump.ParseFormat(o.InputFormat)
	if err != nil {
		return nil, diag.Configuration(err.Error())
	}
	out, err := dump.ParseFormat(o.OutputFormat)
	if err != nil {
		return nil, diag.Configuration(err.Error())
	}
	exportDirs := o.ExportDirs
	if o.NoFilter {
		exportDirs = nil
	}
	return &linkpipeline.Request{
		Inputs:       o.Inputs,
		Output:       o.Output,
		InputFormat:  in,
		OutputFormat: out,
		Visibility: visibility.Config{
			ExportDirs:       exportDirs,
			SharedObject:     o.SharedObject,
			VersionScript:    o.VersionScript,
			UseVersionScript: o.UseVersionScript,
			Arch:             o.Arch,
			API:              o.API,
		},
		MaxEntities: o.MaxEntities,
	}, nil
}
