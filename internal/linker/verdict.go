package linker

// Verdict is the outcome of admitting one entity.
type Verdict uint8

const (
	Accepted Verdict = iota
	// RejectedHeader: declared in a header outside the exported set.
	RejectedHeader
	// RejectedDuplicate: key already linked from an earlier input.
	RejectedDuplicate
	// RejectedUnexported: symbol mode found no exact or wildcard match.
	RejectedUnexported
)

func (v Verdict) String() string {
	switch v {
	case Accepted:
		return "accepted"
	case RejectedHeader:
		return "not-exported-header"
	case RejectedDuplicate:
		return "duplicate"
	case RejectedUnexported:
		return "not-exported-symbol"
	}
	return "unknown"
}
