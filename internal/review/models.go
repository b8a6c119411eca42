package review

import "strings"

// DispositionKind identifies the terminal classification chosen for a match.
type DispositionKind string

const (
	DispositionNone       DispositionKind = "none"
	DispositionApprove    DispositionKind = "approve"
	DispositionSelfPosted DispositionKind = "self_posted"
	DispositionReport     DispositionKind = "report"
	DispositionTakedown   DispositionKind = "takedown"
)

var allKinds = []DispositionKind{
	DispositionApprove,
	DispositionSelfPosted,
	DispositionReport,
	DispositionTakedown,
}

// Valid reports whether the kind is one of the four resolvable dispositions.
func (k DispositionKind) Valid() bool {
	for _, kind := range allKinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Reasoned reports whether the kind requires a free-text reason before it
// can be finalized.
func (k DispositionKind) Reasoned() bool {
	return k == DispositionReport || k == DispositionTakedown
}

// Label returns the user-facing name of the kind.
func (k DispositionKind) Label() string {
	switch k {
	case DispositionApprove:
		return "Approved"
	case DispositionSelfPosted:
		return "Posted by me"
	case DispositionReport:
		return "Reported"
	case DispositionTakedown:
		return "Takedown requested"
	default:
		return "Unresolved"
	}
}

// ParseDispositionKind maps a wire or CLI string to a DispositionKind.
func ParseDispositionKind(value string) (DispositionKind, bool) {
	kind := DispositionKind(strings.ToLower(strings.TrimSpace(value)))
	if !kind.Valid() {
		return DispositionNone, false
	}
	return kind, true
}

// MatchItem is a candidate image found elsewhere that may depict the
// subject. Immutable once created; owned by exactly one of the pending
// queue or the history ledger.
type MatchItem struct {
	ID       int64
	ImageRef string
	SiteURL  string
}

// Disposition pairs a kind with its justification. Reason is set only for
// reasoned kinds and is always non-empty by the time it reaches history.
type Disposition struct {
	Kind   DispositionKind
	Reason string
}

// String renders the disposition the way the history view shows it.
func (d Disposition) String() string {
	if d.Reason == "" {
		return d.Kind.Label()
	}
	return d.Kind.Label() + ": " + d.Reason
}

// HistoryEntry records a resolved item together with its final disposition.
// Insertion order in the ledger is the chronological order of resolution.
type HistoryEntry struct {
	Item        MatchItem
	Disposition Disposition
}

// PendingReason marks the single item pulled out of direct resolution and
// awaiting a reason. The item stays in the pending queue until the reason
// is submitted.
type PendingReason struct {
	ItemID int64
	Kind   DispositionKind
}
