package linker

import (
	"abilink/internal/pattern"
	"abilink/internal/symbols"
)

// WildcardMatcher pairs a compiled pattern set with the record of names it
// has already admitted, so each wildcard-matched name is linked once.
type WildcardMatcher struct {
	matcher *pattern.Matcher
	matched symbols.Set
}

func NewWildcardMatcher(m *pattern.Matcher) *WildcardMatcher {
	return &WildcardMatcher{matcher: m, matched: symbols.NewSet()}
}

// Claim tests name against the record first and then against the patterns.
// A fresh match is recorded.
func (w *WildcardMatcher) Claim(name string) Verdict {
	if w == nil {
		return RejectedUnexported
	}
	if w.matched.Has(name) {
		return RejectedDuplicate
	}
	if !w.matcher.Match(name) {
		return RejectedUnexported
	}
	w.matched.Add(name)
	return Accepted
}

// Matched returns the names admitted through wildcard matching so far.
func (w *WildcardMatcher) Matched() symbols.Set {
	if w == nil {
		return nil
	}
	return w.matched
}
