// Package visibility decides which entities of a library are public.
//
// Two inputs shape the decision. Export directories yield the set of public
// headers; an empty list disables header filtering. Independently, the
// exported symbol surface comes from exactly one of a shared object's dynamic
// symbol table or a version script (exact names plus glob patterns). When
// neither is supplied, functions and globals fall back to plain dedup.
package visibility

import (
	"context"
	"errors"
	"fmt"
	iofs "io/fs"

	"github.com/spf13/afero"

	"abilink/internal/diag"
	"abilink/internal/headers"
	"abilink/internal/sofile"
	"abilink/internal/symbols"
	"abilink/internal/versionscript"
)

const stage = "resolve"

// Mode names the source of the exported symbol surface.
type Mode uint8

const (
	// ModeNone: no symbol source, functions and globals use plain dedup.
	ModeNone Mode = iota
	ModeSharedObject
	ModeVersionScript
)

func (m Mode) String() string {
	switch m {
	case ModeNone:
		return "none"
	case ModeSharedObject:
		return "shared-object"
	case ModeVersionScript:
		return "version-script"
	}
	return "unknown"
}

// Config carries the visibility-related options of one run.
type Config struct {
	ExportDirs       []string
	SharedObject     string
	VersionScript    string
	UseVersionScript bool
	Arch             string
	API              string
}

// Policy is the resolved visibility decision.
type Policy struct {
	Mode              Mode
	ExportedHeaders   headers.Set
	Functions         symbols.Set
	GlobalVars        symbols.Set
	FunctionPatterns  symbols.Set
	GlobalVarPatterns symbols.Set
}

// SymbolMode reports whether functions and globals are matched against the
// exported symbol surface rather than plainly deduplicated.
func (p *Policy) SymbolMode() bool {
	return p != nil && p.Mode != ModeNone
}

// Validate rejects option combinations that cannot name a symbol source.
func (c Config) Validate() error {
	if c.UseVersionScript && c.VersionScript == "" {
		return diag.Configuration("--use-version-script requires a version script (-v)")
	}
	if !c.UseVersionScript && c.SharedObject == "" && c.VersionScript != "" {
		return diag.Configuration("a version script (-v) is only used with --use-version-script")
	}
	if c.UseVersionScript {
		if _, err := versionscript.ParseAPILevel(c.API); err != nil {
			return diag.Configuration(err.Error())
		}
	}
	return nil
}

// Mode returns the symbol source selected by c.
func (c Config) Mode() Mode {
	switch {
	case c.UseVersionScript:
		return ModeVersionScript
	case c.SharedObject != "":
		return ModeSharedObject
	}
	return ModeNone
}

// Resolve builds the policy for cfg. Failures carry diag codes:
// ConfigurationError, ResolutionError, or InputParseError.
func Resolve(ctx context.Context, fs afero.Fs, cfg Config) (*Policy, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	exported, err := headers.CollectExported(ctx, fs, cfg.ExportDirs)
	if err != nil {
		return nil, diag.New(diag.ResolutionError, stage, "", fmt.Errorf("collect exported headers: %w", err))
	}

	p := &Policy{
		Mode:              cfg.Mode(),
		ExportedHeaders:   exported,
		Functions:         symbols.NewSet(),
		GlobalVars:        symbols.NewSet(),
		FunctionPatterns:  symbols.NewSet(),
		GlobalVarPatterns: symbols.NewSet(),
	}

	switch p.Mode {
	case ModeSharedObject:
		syms, err := sofile.ExtractFile(fs, cfg.SharedObject)
		if err != nil {
			return nil, diag.New(diag.ResolutionError, stage, cfg.SharedObject, err)
		}
		p.Functions = syms.Functions
		p.GlobalVars = syms.GlobalVars

	case ModeVersionScript:
		script, err := versionscript.ParseFile(fs, cfg.VersionScript, cfg.Arch, cfg.API)
		if err != nil {
			code := diag.InputParseError
			if errors.Is(err, iofs.ErrNotExist) {
				code = diag.ResolutionError
			}
			return nil, diag.New(code, stage, cfg.VersionScript, err)
		}
		p.Functions = script.Functions
		p.GlobalVars = script.GlobalVars
		p.FunctionPatterns = script.FunctionPatterns
		p.GlobalVarPatterns = script.GlobalVarPatterns
	}
	return p, nil
}
