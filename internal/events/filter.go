package events

import "fmt"

// ProbabilityFilter is the declarative replacement for the original
// closure-based DropProbabilities predicate. A closure can decide
// membership but can't be compared for equality, and DropProbabilities
// entries must support equality comparison against ProbEntry (see
// ProbEntry's doc comment). A filter is built from optional match
// criteria, all of which must hold for an entry to match; Exact, when
// set, instead matches by direct membership in a pre-selected set of
// entries and ignores PartyID/Kind.
type ProbabilityFilter struct {
	PartyID *int
	Kind    *Kind
	Exact   []ProbEntry
}

// ExactFilter builds a filter matching only entries equal to one of the
// given entries, the shape the sleep/wake schedule needs to drop exactly
// the awake-set entries it previously added.
func ExactFilter(entries []ProbEntry) ProbabilityFilter {
	return ProbabilityFilter{Exact: entries}
}

// PartyFilter builds a filter matching every probabilistic entry
// belonging to partyID.
func PartyFilter(partyID int) ProbabilityFilter {
	return ProbabilityFilter{PartyID: &partyID}
}

// Matches reports whether entry satisfies the filter.
func (f ProbabilityFilter) Matches(entry ProbEntry) bool {
	if f.Exact != nil {
		for _, e := range f.Exact {
			if e.Equal(entry) {
				return true
			}
		}
		return false
	}
	if f.PartyID != nil && *f.PartyID != entry.PartyID {
		return false
	}
	if f.Kind != nil && *f.Kind != entry.Event.Kind {
		return false
	}
	return true
}

// Equal reports value equality between two filters, needed by Event.Equal
// since DropProbabilities embeds a ProbabilityFilter.
func (f ProbabilityFilter) Equal(o ProbabilityFilter) bool {
	if (f.PartyID == nil) != (o.PartyID == nil) {
		return false
	}
	if f.PartyID != nil && *f.PartyID != *o.PartyID {
		return false
	}
	if (f.Kind == nil) != (o.Kind == nil) {
		return false
	}
	if f.Kind != nil && *f.Kind != *o.Kind {
		return false
	}
	return equalProbEntries(f.Exact, o.Exact)
}

func (f ProbabilityFilter) String() string {
	switch {
	case f.Exact != nil:
		return fmt.Sprintf("exact(%d)", len(f.Exact))
	case f.PartyID != nil:
		return fmt.Sprintf("party=%d", *f.PartyID)
	case f.Kind != nil:
		return fmt.Sprintf("kind=%s", f.Kind.String())
	default:
		return "any"
	}
}
