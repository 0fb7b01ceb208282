// Package experiments builds the trigger configurations the four
// reference experiments run against: the canonical 10-party sleep/wake
// configuration and a simpler always-on ring topology, plus the
// experiment Spec values the CLI harness iterates over.
package experiments

import (
	"github.com/ersantana/rangesync-testbench/internal/events"
	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// sleepSchedule appends a daily sleep/wake cycle for partyID to tr: the
// party wakes at offset, stays awake for 10 hours posting roughly hourly
// and syncing with peer roughly every 3 hours, then goes back to sleep —
// repeating every day for the life of the run. Kept as a named helper
// (not inlined into TriggerConf10) since S5-style tests construct a
// single party's wake cycle directly.
func sleepSchedule(tr *events.Triggers, partyID, peer int, offset simtime.Duration) {
	awakeSet := []events.ProbEntry{
		{PartyID: partyID, Probability: simtime.FromFrequency(simtime.FromPeriod(simtime.Hour)), Event: events.NewPost()},
		{PartyID: partyID, Probability: simtime.FromFrequency(simtime.FromPeriod(3 * simtime.Hour)), Event: events.NewSync(peer)},
	}
	wakeAt := simtime.Instant(offset)
	sleepAt := simtime.Instant(offset + 10*simtime.Hour)

	tr.AppendScheduled(wakeAt, events.PartyEvent{
		PartyID: partyID,
		Event:   events.NewRepeat(simtime.Day, events.NewAddProbabilities(awakeSet)),
	})
	tr.AppendScheduled(sleepAt, events.PartyEvent{
		PartyID: partyID,
		Event:   events.NewRepeat(simtime.Day, events.NewDropProbabilities(events.ExactFilter(awakeSet))),
	})
}

// SleepSchedule is the exported form of sleepSchedule for tests building
// a bespoke single-party (or small-group) wake cycle directly, without
// the full 10-party canonical topology.
func SleepSchedule(tr *events.Triggers, partyID, peer int, offset simtime.Duration) {
	sleepSchedule(tr, partyID, peer, offset)
}

// TriggerConf10 builds the canonical 10-party configuration (spec.md
// §4.5): two groups of four sleep-scheduled parties (0-3 syncing with
// party 8, 4-7 syncing with party 9, all waking at offset zero) plus
// parties 8 and 9, who are always on and sync with each other roughly
// once a day.
func TriggerConf10() events.Triggers {
	tr := events.NewTriggers()
	for i := 0; i < 4; i++ {
		sleepSchedule(&tr, i, 8, 0)
	}
	for i := 4; i < 8; i++ {
		sleepSchedule(&tr, i, 9, 0)
	}
	dailySync := simtime.FromFrequency(simtime.FromPeriod(simtime.Day))
	tr.AppendProbabilistic(
		events.ProbEntry{PartyID: 8, Probability: dailySync, Event: events.NewSync(9)},
		events.ProbEntry{PartyID: 9, Probability: dailySync, Event: events.NewSync(8)},
	)
	return tr
}

// ProbabilisticTriggers builds a simpler always-on ring topology of
// nParties: every party posts roughly hourly and syncs with its
// successor (wrapping around) roughly every 3 hours, with no sleep/wake
// cycle. Not used by the four reference experiments (which all run
// against the canonical TriggerConf10 topology); kept for ring-shaped
// scale experiments beyond the reference set.
func ProbabilisticTriggers(nParties int) events.Triggers {
	tr := events.NewTriggers()
	postFreq := simtime.FromFrequency(simtime.FromPeriod(simtime.Hour))
	syncFreq := simtime.FromFrequency(simtime.FromPeriod(3 * simtime.Hour))
	for i := 0; i < nParties; i++ {
		peer := (i + 1) % nParties
		tr.AppendProbabilistic(
			events.ProbEntry{PartyID: i, Probability: postFreq, Event: events.NewPost()},
			events.ProbEntry{PartyID: i, Probability: syncFreq, Event: events.NewSync(peer)},
		)
	}
	return tr
}

// ManyParties builds a hub-and-spoke topology of n sleep-scheduled
// parties (excluding hub, which stays always-on) all syncing with hub,
// their wake offsets staggered across the day to avoid a thundering
// herd. Independently useful for scale experiments beyond the four
// canonical reference runs.
func ManyParties(n, hub int) events.Triggers {
	tr := events.NewTriggers()
	for i := 0; i < n; i++ {
		if i == hub {
			continue
		}
		offset := simtime.Scale(uint64(i%24), simtime.Hour)
		sleepSchedule(&tr, i, hub, offset)
	}
	return tr
}
