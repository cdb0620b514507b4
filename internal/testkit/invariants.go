// Package testkit holds helpers shared by package tests: synthetic ELF
// images and structural checks on linked translation units.
package testkit

import (
	"fmt"

	"abilink/internal/abi"
	"abilink/internal/headers"
)

// CheckLinkedUnit runs the structural invariants every linked unit satisfies:
//  1. no two entities of one category share a linkage key
//  2. when exported is non-empty, every entity that names a source file
//     names one inside exported
func CheckLinkedUnit(tu *abi.TranslationUnit, exported headers.Set) error {
	if tu == nil {
		return fmt.Errorf("nil translation unit")
	}
	for _, c := range abi.Categories {
		seen := make(map[string]int, tu.Len(c))
		for i, key := range tu.Keys(c) {
			if prev, ok := seen[key]; ok {
				return fmt.Errorf("%s: duplicate key %q at %d and %d", c, key, prev, i)
			}
			seen[key] = i
		}
	}
	if len(exported) == 0 {
		return nil
	}
	for _, c := range abi.Categories {
		for _, e := range tu.Entities(c) {
			if src := e.SourceFile(); src != "" && !exported.Contains(src) {
				return fmt.Errorf("%s: %q from unexported header %q", c, e.LinkageKey(), src)
			}
		}
	}
	return nil
}
