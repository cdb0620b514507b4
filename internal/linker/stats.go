package linker

import "abilink/internal/abi"

// CategoryStats counts admission outcomes for one category.
type CategoryStats struct {
	Accepted   int
	Header     int
	Duplicate  int
	Unexported int
}

// Rejected is the total number of rejected entities.
func (s CategoryStats) Rejected() int {
	return s.Header + s.Duplicate + s.Unexported
}

// Stats holds counters for every linkable category.
type Stats map[abi.Category]CategoryStats

func newStats() Stats {
	return make(Stats, len(abi.Categories))
}

func (s Stats) record(c abi.Category, v Verdict) {
	cs := s[c]
	switch v {
	case Accepted:
		cs.Accepted++
	case RejectedHeader:
		cs.Header++
	case RejectedDuplicate:
		cs.Duplicate++
	case RejectedUnexported:
		cs.Unexported++
	}
	s[c] = cs
}

func (s Stats) clone() Stats {
	out := make(Stats, len(s))
	for c, cs := range s {
		out[c] = cs
	}
	return out
}

// Types sums the counters of every type category.
func (s Stats) Types() CategoryStats {
	var total CategoryStats
	for _, c := range abi.TypeCategories {
		cs := s[c]
		total.Accepted += cs.Accepted
		total.Header += cs.Header
		total.Duplicate += cs.Duplicate
		total.Unexported += cs.Unexported
	}
	return total
}
