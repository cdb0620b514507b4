// Package sofile extracts the exported dynamic symbols of a shared object.
package sofile

import (
	"debug/elf"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/afero"

	"abilink/internal/symbols"
)

// GNU extensions living in the OS-specific ranges of st_info.
const (
	sttGNUIFunc  = elf.STT_LOOS
	stbGNUUnique = elf.STB_LOOS
)

// Symbols is the exported surface of a shared object, split by symbol type.
type Symbols struct {
	Functions  symbols.Set
	GlobalVars symbols.Set
}

// Extract reads the dynamic symbol table of the ELF image in r.
func Extract(r io.ReaderAt) (*Symbols, error) {
	f, err := elf.NewFile(r)
	if err != nil {
		return nil, fmt.Errorf("not an object file: %w", err)
	}
	defer f.Close()

	syms, err := f.DynamicSymbols()
	if err != nil {
		if errors.Is(err, elf.ErrNoSymbols) {
			return nil, fmt.Errorf("no dynamic symbol table")
		}
		return nil, err
	}
	return Classify(syms), nil
}

// Classify sorts defined, externally visible symbols into functions and
// global variables. Undefined, local, and hidden symbols are dropped.
func Classify(syms []elf.Symbol) *Symbols {
	out := &Symbols{Functions: symbols.NewSet(), GlobalVars: symbols.NewSet()}
	for _, s := range syms {
		if !isExported(s) {
			continue
		}
		switch elf.ST_TYPE(s.Info) {
		case elf.STT_FUNC, sttGNUIFunc:
			out.Functions.Add(s.Name)
		case elf.STT_OBJECT, elf.STT_TLS, elf.STT_COMMON:
			out.GlobalVars.Add(s.Name)
		}
	}
	return out
}

func isExported(s elf.Symbol) bool {
	if s.Name == "" || s.Section == elf.SHN_UNDEF {
		return false
	}
	switch elf.ST_BIND(s.Info) {
	case elf.STB_GLOBAL, elf.STB_WEAK, stbGNUUnique:
	default:
		return false
	}
	switch elf.ST_VISIBILITY(s.Other) {
	case elf.STV_DEFAULT, elf.STV_PROTECTED:
		return true
	}
	return false
}

// ExtractFile opens path on fs and extracts its exported symbols.
func ExtractFile(fs afero.Fs, path string) (*Symbols, error) {
	f, err := fs.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	syms, err := Extract(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return syms, nil
}
