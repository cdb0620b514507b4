package main

import (
	"github.com/mstoykov/envconfig"

	"abilink/internal/diag"
)

// envConfig holds ABILINK_* overrides. Pointer fields stay nil when the
// variable is unset so only present variables override lower sources.
type envConfig struct {
	Config           *string  `envconfig:"ABILINK_CONFIG"`
	Output           *string  `envconfig:"ABILINK_OUTPUT"`
	ExportDirs       []string `envconfig:"ABILINK_EXPORT_DIRS"`
	NoFilter         *bool    `envconfig:"ABILINK_NO_FILTER"`
	SharedObject     *string  `envconfig:"ABILINK_SO"`
	VersionScript    *string  `envconfig:"ABILINK_VERSION_SCRIPT"`
	UseVersionScript *bool    `envconfig:"ABILINK_USE_VERSION_SCRIPT"`
	API              *string  `envconfig:"ABILINK_API"`
	Arch             *string  `envconfig:"ABILINK_ARCH"`
	InputFormat      *string  `envconfig:"ABILINK_INPUT_FORMAT"`
	OutputFormat     *string  `envconfig:"ABILINK_OUTPUT_FORMAT"`
	MaxEntities      *int     `envconfig:"ABILINK_MAX_ENTITIES"`
	LogLevel         *string  `envconfig:"ABILINK_LOG_LEVEL"`
	LogFormat        *string  `envconfig:"ABILINK_LOG_FORMAT"`
	Color            *string  `envconfig:"ABILINK_COLOR"`
	UI               *string  `envconfig:"ABILINK_UI"`
}

func readEnv(lookup func(string) (string, bool)) (envConfig, error) {
	var env envConfig
	if err := envconfig.Process("", &env, lookup); err != nil {
		return envConfig{}, diag.New(diag.ConfigurationError, "config", "", err)
	}
	return env, nil
}

func (e envConfig) apply(opts *options) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&opts.Output, e.Output)
	if e.ExportDirs != nil {
		opts.ExportDirs = append([]string(nil), e.ExportDirs...)
	}
	if e.NoFilter != nil {
		opts.NoFilter = *e.NoFilter
	}
	setString(&opts.SharedObject, e.SharedObject)
	setString(&opts.VersionScript, e.VersionScript)
	if e.UseVersionScript != nil {
		opts.UseVersionScript = *e.UseVersionScript
	}
	setString(&opts.API, e.API)
	setString(&opts.Arch, e.Arch)
	setString(&opts.InputFormat, e.InputFormat)
	setString(&opts.OutputFormat, e.OutputFormat)
	if e.MaxEntities != nil {
		opts.MaxEntities = *e.MaxEntities
	}
	setString(&opts.LogLevel, e.LogLevel)
	setString(&opts.LogFormat, e.LogFormat)
	setString(&opts.Color, e.Color)
	setString(&opts.UI, e.UI)
}
