package main

import (
	"strings"

	"github.com/spf13/pflag"
)

func (c *rootCommand) flagSet() *pflag.FlagSet {
	o := &c.flags
	flags := pflag.NewFlagSet("", pflag.ContinueOnError)
	flags.SortFlags = false

	flags.StringVarP(&o.Output, "output", "o", "", "path of the linked ABI dump (required)")
	flags.StringArrayVarP(&o.ExportDirs, "export-dir", "I", nil, "directory holding exported headers (repeatable)")
	flags.BoolVar(&o.NoFilter, "no-filter", false, "ignore -I and keep entities from every header")
	flags.StringVar(&o.SharedObject, "so", "", "shared object whose dynamic symbols are exported")
	flags.StringVarP(&o.VersionScript, "version-script", "v", "", "version script listing exported symbols")
	flags.BoolVar(&o.UseVersionScript, "use-version-script", false, "take exported symbols from the version script instead of --so")
	flags.StringVar(&o.API, "api", o.API, "API level for version script filtering (number, codename, current)")
	flags.StringVar(&o.Arch, "arch", "", "architecture for version script filtering")
	flags.StringVar(&o.InputFormat, "input-format", o.InputFormat, "input dump format (auto|json|yaml|msgpack)")
	flags.StringVar(&o.OutputFormat, "output-format", o.OutputFormat, "output dump format (auto|json|yaml|msgpack)")
	flags.IntVar(&o.MaxEntities, "max-entities", 0, "fail when a linked category grows past this many entities (0 = unlimited)")

	flags.StringVar(&o.ConfigPath, "config", "", "TOML config file (default: nearest abilink.toml)")
	flags.StringVar(&o.LogLevel, "log-level", o.LogLevel, "log level (panic|fatal|error|warn|info|debug|trace)")
	flags.StringVar(&o.LogFormat, "log-format", o.LogFormat, "log format (text|json)")
	flags.BoolVar(&o.Verbose, "verbose", false, "enable debug logging")
	flags.StringVar(&o.Color, "color", o.Color, "colorize output (auto|on|off)")
	flags.BoolVar(&o.Timings, "timings", false, "print per-stage timings")
	flags.StringVar(&o.UI, "ui", o.UI, "progress display (auto|on|off)")
	flags.StringVar(&o.CPUProfile, "cpu-profile", "", "write a CPU profile to this file")
	flags.StringVar(&o.MemProfile, "mem-profile", "", "write a heap profile to this file")
	flags.StringVar(&o.ExecTrace, "exec-trace", "", "write a runtime execution trace to this file")
	return flags
}

// legacyLongFlags are long options the original tool spelled with a single dash.
var legacyLongFlags = map[string]struct{}{
	"so":                 {},
	"api":                {},
	"arch":               {},
	"no-filter":          {},
	"use-version-script": {},
	"input-format":       {},
	"output-format":      {},
}

// rewriteLegacyArgs turns "-so lib.so" style options into "--so lib.so" so
// pflag does not read them as a run of shorthands. Arguments after "--" are
// left alone.
func rewriteLegacyArgs(args []string) []string {
	out := make([]string, 0, len(args))
	for i, arg := range args {
		if arg == "--" {
			out = append(out, args[i:]...)
			break
		}
		if len(arg) > 2 && arg[0] == '-' && arg[1] != '-' {
			name, _, _ := strings.Cut(arg[1:], "=")
			if _, ok := legacyLongFlags[name]; ok {
				arg = "-" + arg
			}
		}
		out = append(out, arg)
	}
	return out
}
