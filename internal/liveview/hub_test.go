package liveview

import (
	"testing"

	"github.com/ersantana/rangesync-testbench/internal/simulator"
	"github.com/stretchr/testify/assert"
)

func TestBroadcastRecordWithNoClientsDoesNotBlock(t *testing.T) {
	hub := NewHub()
	stop := make(chan struct{})
	go hub.Run(stop)
	defer close(stop)

	hub.BroadcastRecord(simulator.TraceRecord{
		Meta: simulator.TraceMeta{Time: 1, PartyID: 0, Event: "Post"},
		Entry: simulator.TraceEntry{
			Kind: simulator.Posted,
		},
	})
	assert.Equal(t, 0, hub.ClientCount())
}

func TestClientCountStartsAtZero(t *testing.T) {
	hub := NewHub()
	assert.Equal(t, 0, hub.ClientCount())
}
