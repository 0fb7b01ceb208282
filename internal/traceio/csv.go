// Package traceio projects a simulator.Trace onto the wide-row CSV format
// consumers expect: one row per event, with only the columns relevant to
// that event's kind populated.
package traceio

import (
	"encoding/csv"
	"io"
	"strconv"

	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/ersantana/rangesync-testbench/internal/simulator"
)

// columns is the fixed header row every trace CSV carries, in order.
var columns = []string{
	"time", "party_id", "event", "kind",
	"posted_object_author", "posted_object_post_id",
	"sync_resp_party_id",
	"sync_initiator_msgs_sent", "sync_initiator_item_sets_sent", "sync_initiator_fingerprints_sent",
	"sync_initiator_items_sent", "sync_initiator_items_wanted_sent", "sync_initiator_objects_sent",
	"sync_initiator_items_known_sent", "sync_initiator_bytes_sent",
	"sync_responder_msgs_sent", "sync_responder_item_sets_sent", "sync_responder_fingerprints_sent",
	"sync_responder_items_sent", "sync_responder_items_wanted_sent", "sync_responder_objects_sent",
	"sync_responder_items_known_sent", "sync_responder_bytes_sent",
	"drop_probabilities_entries_before", "drop_probabilities_entries_after",
	"add_probabilities_added", "schedule_relative_added",
}

func kindName(k simulator.TraceKind) string {
	switch k {
	case simulator.Posted:
		return "Posted"
	case simulator.SyncResult:
		return "Sync"
	case simulator.DropProbabilitiesResult:
		return "DropProbabilities"
	case simulator.AddProbabilitiesResult:
		return "AddProbabilities"
	case simulator.ScheduleRelativeResult:
		return "ScheduleRelative"
	default:
		return "Unknown"
	}
}

// bytesSent estimates the wire size of one side's accumulated sync
// messages. Both sides use the same scheme-specific constants; the
// original implementation this system is modeled on hardcoded the
// responder's formula to the uniform scheme's literal byte sizes, which
// silently under/over-counted for every other scheme. Using the same
// symmetric formula on both sides here keeps the estimate correct
// regardless of which scheme produced the stats.
func bytesSent(stats reconcile.RunStats, itemSize, monoidSize int) int {
	return (2*itemSize+monoidSize)*stats.FingerprintsSent +
		(2*itemSize)*stats.ItemSetsSent +
		itemSize*stats.ItemsSent
}

func statsColumns(stats reconcile.RunStats, itemSize, monoidSize int) []string {
	return []string{
		strconv.Itoa(stats.MsgsSent),
		strconv.Itoa(stats.ItemSetsSent),
		strconv.Itoa(stats.FingerprintsSent),
		strconv.Itoa(stats.ItemsSent),
		strconv.Itoa(stats.ItemsWanted),
		strconv.Itoa(stats.ObjectsSent),
		strconv.Itoa(stats.ItemsKnown),
		strconv.Itoa(bytesSent(stats, itemSize, monoidSize)),
	}
}

func emptyStatsColumns() []string {
	return []string{"", "", "", "", "", "", "", ""}
}

// row projects one TraceRecord to its CSV fields, in column order.
func row(rec simulator.TraceRecord, itemSize, monoidSize int) []string {
	out := make([]string, 0, len(columns))
	out = append(out,
		strconv.FormatUint(uint64(rec.Meta.Time), 10),
		strconv.Itoa(rec.Meta.PartyID),
		rec.Meta.Event,
		kindName(rec.Entry.Kind),
	)

	if rec.Entry.Kind == simulator.Posted {
		out = append(out, strconv.FormatUint(rec.Entry.PostedAuthor, 10), strconv.FormatUint(rec.Entry.PostedPostID, 10))
	} else {
		out = append(out, "", "")
	}

	if rec.Entry.Kind == simulator.SyncResult {
		out = append(out, strconv.Itoa(rec.Entry.SyncPartner))
		out = append(out, statsColumns(rec.Entry.SyncInitStats, itemSize, monoidSize)...)
		out = append(out, statsColumns(rec.Entry.SyncRespStats, itemSize, monoidSize)...)
	} else {
		out = append(out, "")
		out = append(out, emptyStatsColumns()...)
		out = append(out, emptyStatsColumns()...)
	}

	if rec.Entry.Kind == simulator.DropProbabilitiesResult {
		out = append(out, strconv.Itoa(rec.Entry.DropBefore), strconv.Itoa(rec.Entry.DropAfter))
	} else {
		out = append(out, "", "")
	}

	if rec.Entry.Kind == simulator.AddProbabilitiesResult {
		out = append(out, strconv.Itoa(rec.Entry.AddedCount))
	} else {
		out = append(out, "")
	}

	if rec.Entry.Kind == simulator.ScheduleRelativeResult {
		out = append(out, strconv.Itoa(rec.Entry.ScheduledCount))
	} else {
		out = append(out, "")
	}

	return out
}

// WriteCSV serializes trace to w in the wide-row format, header first.
// No third-party CSV writer appears anywhere in the retrieved reference
// repos, so this uses the standard library's encoding/csv rather than
// inventing a dependency the corpus never reached for.
func WriteCSV(w io.Writer, trace simulator.Trace, itemSize, monoidSize int) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}
	for _, rec := range trace {
		if err := cw.Write(row(rec, itemSize, monoidSize)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
