package events

import "github.com/ersantana/rangesync-testbench/internal/simtime"

// Triggers is a system's full set of pending work: a schedule of
// one-shot events keyed by the instant they fire, and a stable-ordered
// list of per-tick probabilistic draws.
type Triggers struct {
	Scheduled     map[simtime.Instant][]PartyEvent
	Probabilistic []ProbEntry
}

// NewTriggers returns an empty Triggers ready for Append calls.
func NewTriggers() Triggers {
	return Triggers{Scheduled: make(map[simtime.Instant][]PartyEvent)}
}

// AppendScheduled adds entries to the event queue at instant t, preserving
// insertion order relative to any entries already queued there.
func (tr *Triggers) AppendScheduled(t simtime.Instant, entries ...PartyEvent) {
	tr.Scheduled[t] = append(tr.Scheduled[t], entries...)
}

// AppendProbabilistic extends the probabilistic trigger list.
func (tr *Triggers) AppendProbabilistic(entries ...ProbEntry) {
	tr.Probabilistic = append(tr.Probabilistic, entries...)
}

// DropProbabilistic removes entries matching filter, returning the before
// and after counts for trace recording.
func (tr *Triggers) DropProbabilistic(filter ProbabilityFilter) (before, after int) {
	before = len(tr.Probabilistic)
	kept := tr.Probabilistic[:0]
	for _, e := range tr.Probabilistic {
		if !filter.Matches(e) {
			kept = append(kept, e)
		}
	}
	tr.Probabilistic = kept
	after = len(tr.Probabilistic)
	return before, after
}
