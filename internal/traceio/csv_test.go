package traceio_test

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/ersantana/rangesync-testbench/internal/simulator"
	"github.com/ersantana/rangesync-testbench/internal/traceio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSVHeaderAndRowCounts(t *testing.T) {
	trace := simulator.Trace{
		{
			Meta:  simulator.TraceMeta{Time: 0, PartyID: 1, Event: "Post"},
			Entry: simulator.TraceEntry{Kind: simulator.Posted, PostedAuthor: 1, PostedPostID: 0},
		},
		{
			Meta: simulator.TraceMeta{Time: 5, PartyID: 1, Event: "Sync(2)"},
			Entry: simulator.TraceEntry{
				Kind:        simulator.SyncResult,
				SyncPartner: 2,
				SyncInitStats: reconcile.RunStats{
					MsgsSent: 2, FingerprintsSent: 1, ItemSetsSent: 1, ItemsSent: 3, ItemsKnown: 10,
				},
				SyncRespStats: reconcile.RunStats{
					MsgsSent: 2, FingerprintsSent: 1, ItemSetsSent: 1, ItemsSent: 2, ItemsKnown: 7,
				},
			},
		},
	}

	var buf bytes.Buffer
	err := traceio.WriteCSV(&buf, trace, 30, 60)
	require.NoError(t, err)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3) // header + 2 rows

	header := records[0]
	assert.Equal(t, "time", header[0])
	assert.Equal(t, "sync_initiator_bytes_sent", header[14])

	postRow := records[1]
	assert.Equal(t, "Posted", postRow[3])
	assert.Equal(t, "1", postRow[4])
	assert.Equal(t, "", postRow[6]) // sync_resp_party_id blank for a Posted row

	syncRow := records[2]
	assert.Equal(t, "Sync", syncRow[3])
	assert.Equal(t, "2", syncRow[6])
	// bytes_sent = (2*30+60)*1 fingerprint + (2*30)*1 item_set + 30*3 items = 120+60+90 = 270
	assert.Equal(t, "270", syncRow[14])
}

func TestWriteCSVLeavesIrrelevantColumnsBlank(t *testing.T) {
	trace := simulator.Trace{
		{
			Meta:  simulator.TraceMeta{Time: 1, PartyID: 0, Event: "AddProbabilities(1 entries)"},
			Entry: simulator.TraceEntry{Kind: simulator.AddProbabilitiesResult, AddedCount: 1},
		},
	}
	var buf bytes.Buffer
	require.NoError(t, traceio.WriteCSV(&buf, trace, 30, 60))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	row := records[1]
	assert.Equal(t, "", row[4]) // posted_object_author
	assert.Equal(t, "1", row[len(row)-2])
}
