package linker

import (
	"errors"
	"fmt"

	"abilink/internal/abi"
	"abilink/internal/headers"
	"abilink/internal/pattern"
	"abilink/internal/symbols"
)

// ErrLimitExceeded is returned when a category would grow past Config.MaxEntities.
var ErrLimitExceeded = errors.New("linked category exceeds entity limit")

// SymbolFilter configures how one symbol category (functions or globals) is
// deduplicated. With Enabled false the category falls back to plain dedup.
type SymbolFilter struct {
	Enabled  bool
	Exact    symbols.Set
	Patterns *pattern.Matcher
}

// Config is the resolved visibility decision handed to the linker.
type Config struct {
	// ExportedHeaders restricts entities to those declared in these headers.
	// Empty disables header filtering.
	ExportedHeaders headers.Set
	Functions       SymbolFilter
	GlobalVars      SymbolFilter
	// MaxEntities caps every linked category; 0 means unlimited.
	MaxEntities int
	// OnVerdict, when set, observes every admission decision.
	OnVerdict func(c abi.Category, key string, v Verdict)
}

type declState struct {
	symbolMode bool
	seen       symbols.Set
	exact      symbols.Set
	wildcard   *WildcardMatcher
}

func newSymbolState(f SymbolFilter) declState {
	if !f.Enabled {
		return declState{seen: symbols.NewSet()}
	}
	return declState{
		symbolMode: true,
		exact:      f.Exact.Clone(),
		wildcard:   NewWildcardMatcher(f.Patterns),
	}
}

// Accumulator is the linked descriptor under construction.
type Accumulator struct {
	unit        *abi.TranslationUnit
	exported    headers.Set
	maxEntities int
	onVerdict   func(abi.Category, string, Verdict)

	types     declState
	functions declState
	globals   declState

	stats Stats
}

// New returns an empty accumulator for cfg. Exact symbol sets are copied so
// consumption never mutates the caller's sets.
func New(cfg Config) *Accumulator {
	return &Accumulator{
		unit:        &abi.TranslationUnit{},
		exported:    cfg.ExportedHeaders,
		maxEntities: cfg.MaxEntities,
		onVerdict:   cfg.OnVerdict,
		types:       declState{seen: symbols.NewSet()},
		functions:   newSymbolState(cfg.Functions),
		globals:     newSymbolState(cfg.GlobalVars),
		stats:       newStats(),
	}
}

// Unit returns the linked descriptor. It stays owned by the accumulator.
func (a *Accumulator) Unit() *abi.TranslationUnit { return a.unit }

// Stats returns a snapshot of the per-category counters.
func (a *Accumulator) Stats() Stats { return a.stats.clone() }

// RemainingExact returns the exact symbols of category c not yet consumed.
func (a *Accumulator) RemainingExact(c abi.Category) symbols.Set {
	switch c {
	case abi.CategoryFunction:
		return a.functions.exact.Clone()
	case abi.CategoryGlobalVar:
		return a.globals.exact.Clone()
	}
	return nil
}

// Link merges every category of tu: types first, then functions, then globals.
func (a *Accumulator) Link(tu *abi.TranslationUnit) error {
	if tu == nil {
		return nil
	}
	for _, c := range abi.Categories {
		if err := a.LinkCategory(tu, c); err != nil {
			return err
		}
	}
	return nil
}

// LinkCategory merges the entities of category c from tu.
func (a *Accumulator) LinkCategory(tu *abi.TranslationUnit, c abi.Category) error {
	u := a.unit
	switch c {
	case abi.CategoryRecordType:
		return linkDecl(a, c, &u.RecordTypes, tu.RecordTypes, &a.types)
	case abi.CategoryEnumType:
		return linkDecl(a, c, &u.EnumTypes, tu.EnumTypes, &a.types)
	case abi.CategoryBuiltinType:
		return linkDecl(a, c, &u.BuiltinTypes, tu.BuiltinTypes, &a.types)
	case abi.CategoryPointerType:
		return linkDecl(a, c, &u.PointerTypes, tu.PointerTypes, &a.types)
	case abi.CategoryLvalueReferenceType:
		return linkDecl(a, c, &u.LvalueReferenceTypes, tu.LvalueReferenceTypes, &a.types)
	case abi.CategoryRvalueReferenceType:
		return linkDecl(a, c, &u.RvalueReferenceTypes, tu.RvalueReferenceTypes, &a.types)
	case abi.CategoryArrayType:
		return linkDecl(a, c, &u.ArrayTypes, tu.ArrayTypes, &a.types)
	case abi.CategoryQualifiedType:
		return linkDecl(a, c, &u.QualifiedTypes, tu.QualifiedTypes, &a.types)
	case abi.CategoryFunction:
		return linkDecl(a, c, &u.Functions, tu.Functions, &a.functions)
	case abi.CategoryGlobalVar:
		return linkDecl(a, c, &u.GlobalVars, tu.GlobalVars, &a.globals)
	}
	return fmt.Errorf("unknown category %d", c)
}

func linkDecl[T abi.Entity](a *Accumulator, c abi.Category, dst *[]T, src []T, st *declState) error {
	for _, e := range src {
		v := a.admit(st, e)
		a.stats.record(c, v)
		if a.onVerdict != nil {
			a.onVerdict(c, e.LinkageKey(), v)
		}
		if v != Accepted {
			continue
		}
		if a.maxEntities > 0 && len(*dst) >= a.maxEntities {
			return fmt.Errorf("%s: %w (%d)", c, ErrLimitExceeded, a.maxEntities)
		}
		*dst = append(*dst, e)
	}
	return nil
}

// admit decides whether e joins the linked descriptor and updates the
// seen/consumed state accordingly.
func (a *Accumulator) admit(st *declState, e abi.Entity) Verdict {
	if len(a.exported) > 0 {
		if src := e.SourceFile(); src != "" && !a.exported.Contains(src) {
			return RejectedHeader
		}
	}
	key := e.LinkageKey()
	if !st.symbolMode {
		if !st.seen.Add(key) {
			return RejectedDuplicate
		}
		return Accepted
	}
	if st.exact.Consume(key) {
		// A consumed name must not come back in through a pattern.
		st.wildcard.matched.Add(key)
		return Accepted
	}
	return st.wildcard.Claim(key)
}
