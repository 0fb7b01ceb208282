// Package events defines the trigger event algebra the simulator
// dispatches: authoring posts, pairwise sync, and the meta-events that
// mutate the trigger set itself (sleep/wake schedules, repeating timers).
package events

import (
	"fmt"

	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// Kind discriminates an Event's variant. Only the fields relevant to Kind
// are populated on a given Event value.
type Kind int

const (
	Post Kind = iota
	Sync
	AddProbabilities
	DropProbabilities
	ScheduleRelative
	Repeat
)

func (k Kind) String() string {
	switch k {
	case Post:
		return "Post"
	case Sync:
		return "Sync"
	case AddProbabilities:
		return "AddProbabilities"
	case DropProbabilities:
		return "DropProbabilities"
	case ScheduleRelative:
		return "ScheduleRelative"
	case Repeat:
		return "Repeat"
	default:
		return "Unknown"
	}
}

// ProbEntry is one entry of a Triggers.Probabilistic slot: a party, the
// probability it fires with each tick, and the event it fires. It must be
// value-comparable so DropProbabilities' filter can match stored entries
// by equality, the same requirement the canonical sleep/wake schedule
// drives in the experiment configurator.
type ProbEntry struct {
	PartyID     int
	Probability simtime.Probability
	Event       Event
}

func (e ProbEntry) Equal(o ProbEntry) bool {
	return e.PartyID == o.PartyID && e.Probability == o.Probability && e.Event.Equal(o.Event)
}

// PartyEvent pairs a scheduled (or just-fired) event with the party it
// applies to.
type PartyEvent struct {
	PartyID int
	Event   Event
}

// Event is a tagged union over the six trigger variants. Go has no sum
// types, so Kind discriminates which of the following fields are
// meaningful; the zero value of the others is ignored.
type Event struct {
	Kind Kind

	// AddProbabilities
	AddEntries []ProbEntry

	// DropProbabilities
	Filter ProbabilityFilter

	// ScheduleRelative
	ScheduleOffset  simtime.Duration
	ScheduleEntries []PartyEvent

	// Repeat
	RepeatPeriod simtime.Duration
	RepeatInner  *Event

	// Sync
	SyncPartner int
}

func NewPost() Event { return Event{Kind: Post} }

func NewSync(partner int) Event { return Event{Kind: Sync, SyncPartner: partner} }

func NewAddProbabilities(entries []ProbEntry) Event {
	return Event{Kind: AddProbabilities, AddEntries: entries}
}

func NewDropProbabilities(filter ProbabilityFilter) Event {
	return Event{Kind: DropProbabilities, Filter: filter}
}

func NewScheduleRelative(offset simtime.Duration, entries []PartyEvent) Event {
	return Event{Kind: ScheduleRelative, ScheduleOffset: offset, ScheduleEntries: entries}
}

func NewRepeat(period simtime.Duration, inner Event) Event {
	return Event{Kind: Repeat, RepeatPeriod: period, RepeatInner: &inner}
}

// Equal reports deep value equality between two events, needed because
// Event embeds slices and a pointer and so isn't comparable with ==.
func (e Event) Equal(o Event) bool {
	if e.Kind != o.Kind {
		return false
	}
	switch e.Kind {
	case Post:
		return true
	case Sync:
		return e.SyncPartner == o.SyncPartner
	case AddProbabilities:
		return equalProbEntries(e.AddEntries, o.AddEntries)
	case DropProbabilities:
		return e.Filter.Equal(o.Filter)
	case ScheduleRelative:
		if e.ScheduleOffset != o.ScheduleOffset || len(e.ScheduleEntries) != len(o.ScheduleEntries) {
			return false
		}
		for i := range e.ScheduleEntries {
			a, b := e.ScheduleEntries[i], o.ScheduleEntries[i]
			if a.PartyID != b.PartyID || !a.Event.Equal(b.Event) {
				return false
			}
		}
		return true
	case Repeat:
		if e.RepeatPeriod != o.RepeatPeriod {
			return false
		}
		if (e.RepeatInner == nil) != (o.RepeatInner == nil) {
			return false
		}
		if e.RepeatInner == nil {
			return true
		}
		return e.RepeatInner.Equal(*o.RepeatInner)
	default:
		return false
	}
}

func equalProbEntries(a, b []ProbEntry) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

// String renders a human-readable debug form, used verbatim as the trace
// row's `event` column.
func (e Event) String() string {
	switch e.Kind {
	case Post:
		return "Post"
	case Sync:
		return fmt.Sprintf("Sync(%d)", e.SyncPartner)
	case AddProbabilities:
		return fmt.Sprintf("AddProbabilities(%d entries)", len(e.AddEntries))
	case DropProbabilities:
		return fmt.Sprintf("DropProbabilities(%s)", e.Filter.String())
	case ScheduleRelative:
		return fmt.Sprintf("ScheduleRelative(+%d, %d entries)", e.ScheduleOffset, len(e.ScheduleEntries))
	case Repeat:
		inner := "<nil>"
		if e.RepeatInner != nil {
			inner = e.RepeatInner.String()
		}
		return fmt.Sprintf("Repeat(%d, %s)", e.RepeatPeriod, inner)
	default:
		return "Unknown"
	}
}
