package simulator

import (
	"fmt"

	"github.com/ersantana/rangesync-testbench/internal/events"
	"github.com/ersantana/rangesync-testbench/internal/simobject"
	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// Sim runs the deterministic minute-tick loop for length minutes and
// returns the resulting Trace. Scheduled events for a tick fire before
// that tick's probabilistic entries; probabilistic entries are evaluated
// against a snapshot of the trigger list taken once the tick's scheduled
// events have run, so changes made by scheduled events apply to this
// tick's draws, while a fired probabilistic event that adds or drops
// entries can't change which entries this tick draws against — only
// future ticks see that change.
func Sim[T comparable, M comparable](
	rng simtime.RNG,
	nParties int,
	initial events.Triggers,
	length simtime.Duration,
	scheme Scheme[T, M],
) (Trace, error) {
	state := NewSystemState[T, M](nParties, initial, scheme.Ops)
	var trace Trace

	for tick := uint64(0); tick < uint64(length); tick++ {
		t := simtime.Instant(tick)

		if scheduled, ok := state.Triggers.Scheduled[t]; ok {
			entries := append([]events.PartyEvent(nil), scheduled...)
			delete(state.Triggers.Scheduled, t)
			for _, pe := range entries {
				entry, err := HandleEvent(state, scheme, pe.Event, t, pe.PartyID)
				if err != nil {
					return trace, err
				}
				trace = append(trace, TraceRecord{
					Meta:  TraceMeta{Time: t, PartyID: pe.PartyID, Event: pe.Event.String()},
					Entry: entry,
				})
			}
		}

		snapshot := append([]events.ProbEntry(nil), state.Triggers.Probabilistic...)
		for _, pe := range snapshot {
			roll := simtime.RollOverOne(rng)
			if !pe.Probability.DoesFire(roll) {
				continue
			}
			entry, err := HandleEvent(state, scheme, pe.Event, t, pe.PartyID)
			if err != nil {
				return trace, err
			}
			trace = append(trace, TraceRecord{
				Meta:  TraceMeta{Time: t, PartyID: pe.PartyID, Event: pe.Event.String()},
				Entry: entry,
			})
		}
	}

	return trace, nil
}

// HandleEvent applies one event to state and returns its recorded
// outcome. Repeat events re-enqueue themselves at time+period and then
// recurse into their inner event, so the returned TraceEntry is always
// the inner event's outcome; the re-enqueue itself never appears directly
// in the trace except through its own eventual firing.
func HandleEvent[T comparable, M comparable](
	state *SystemState[T, M],
	scheme Scheme[T, M],
	ev events.Event,
	t simtime.Instant,
	partyID int,
) (TraceEntry, error) {
	switch ev.Kind {
	case events.Post:
		postID := state.NextPostID()
		obj := simobject.SimObject{Author: uint64(partyID), PostID: postID, Timestamp: t}
		item := scheme.ToItem(obj)
		state.Parties[partyID].Post(item, obj)
		return TraceEntry{Kind: Posted, PostedAuthor: obj.Author, PostedPostID: obj.PostID}, nil

	case events.Sync:
		partner := ev.SyncPartner
		initiator := state.Parties[partyID]
		responder := state.Parties[partner]
		initLearned, respLearned, statsInit, statsResp, err := scheme.RunProtocol(
			initiator.Tree, initiator.Objects,
			responder.Tree, responder.Objects,
		)
		if err != nil {
			return TraceEntry{}, err
		}
		for _, p := range initLearned {
			initiator.Learn(p.Item, p.Object)
		}
		for _, p := range respLearned {
			responder.Learn(p.Item, p.Object)
		}
		return TraceEntry{
			Kind:          SyncResult,
			SyncPartner:   partner,
			SyncInitStats: statsInit,
			SyncRespStats: statsResp,
		}, nil

	case events.AddProbabilities:
		state.Triggers.AppendProbabilistic(ev.AddEntries...)
		return TraceEntry{Kind: AddProbabilitiesResult, AddedCount: len(ev.AddEntries)}, nil

	case events.DropProbabilities:
		before, after := state.Triggers.DropProbabilistic(ev.Filter)
		return TraceEntry{Kind: DropProbabilitiesResult, DropBefore: before, DropAfter: after}, nil

	case events.ScheduleRelative:
		target := t.Add(ev.ScheduleOffset)
		state.Triggers.AppendScheduled(target, ev.ScheduleEntries...)
		return TraceEntry{Kind: ScheduleRelativeResult, ScheduledCount: len(ev.ScheduleEntries)}, nil

	case events.Repeat:
		if ev.RepeatInner == nil {
			return TraceEntry{}, fmt.Errorf("simulator: Repeat event missing inner event")
		}
		state.Triggers.AppendScheduled(t.Add(ev.RepeatPeriod), events.PartyEvent{
			PartyID: partyID,
			Event:   events.NewRepeat(ev.RepeatPeriod, *ev.RepeatInner),
		})
		return HandleEvent(state, scheme, *ev.RepeatInner, t, partyID)

	default:
		return TraceEntry{}, fmt.Errorf("simulator: unknown event kind %v", ev.Kind)
	}
}
