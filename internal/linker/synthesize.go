package linker

import (
	"abilink/internal/abi"
	"abilink/internal/symbols"
)

// Synthesize appends one ElfFunction per exported function name and one
// ElfObject per exported global name, in lexical order. It must run before
// any descriptor is linked so the entries reflect the full resolved surface.
func Synthesize(dst *abi.TranslationUnit, functions, globals symbols.Set) {
	for _, name := range functions.Sorted() {
		dst.ElfFunctions = append(dst.ElfFunctions, abi.ElfFunction{Name: name})
	}
	for _, name := range globals.Sorted() {
		dst.ElfObjects = append(dst.ElfObjects, abi.ElfObject{Name: name})
	}
}
