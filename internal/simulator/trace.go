package simulator

import (
	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// TraceMeta is the (when, who, what) header shared by every trace row.
type TraceMeta struct {
	Time    simtime.Instant `json:"time"`
	PartyID int             `json:"party_id"`
	Event   string          `json:"event"`
}

// TraceKind discriminates a TraceEntry's outcome variant.
type TraceKind int

const (
	Posted TraceKind = iota
	SyncResult
	DropProbabilitiesResult
	AddProbabilitiesResult
	ScheduleRelativeResult
)

// TraceEntry is one event's recorded outcome. Only the fields relevant to
// Kind are meaningful.
type TraceEntry struct {
	Kind TraceKind `json:"kind"`

	// Posted
	PostedAuthor uint64 `json:"posted_author,omitempty"`
	PostedPostID uint64 `json:"posted_post_id,omitempty"`

	// SyncResult
	SyncPartner   int               `json:"sync_partner,omitempty"`
	SyncInitStats reconcile.RunStats `json:"sync_init_stats,omitempty"`
	SyncRespStats reconcile.RunStats `json:"sync_resp_stats,omitempty"`

	// DropProbabilitiesResult
	DropBefore int `json:"drop_before,omitempty"`
	DropAfter  int `json:"drop_after,omitempty"`

	// AddProbabilitiesResult
	AddedCount int `json:"added_count,omitempty"`

	// ScheduleRelativeResult
	ScheduledCount int `json:"scheduled_count,omitempty"`
}

// TraceRecord pairs one TraceMeta with its TraceEntry outcome.
type TraceRecord struct {
	Meta  TraceMeta  `json:"meta"`
	Entry TraceEntry `json:"entry"`
}

// Trace is the ordered sequence of records a Sim run produces: always
// non-decreasing by Time, scheduled events preceding probabilistic events
// within a tick, and stable insertion order within each group.
type Trace []TraceRecord
