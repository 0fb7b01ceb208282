package simulator

import (
	"github.com/ersantana/rangesync-testbench/internal/events"
	"github.com/ersantana/rangesync-testbench/internal/fingerprint"
	"github.com/ersantana/rangesync-testbench/internal/simobject"
)

// SystemState is the full mutable state of one simulation run: every
// party's fingerprint tree and object store, the pending trigger set, and
// the monotonic post-ID counter that uniquely identifies each authored
// object together with its author.
type SystemState[T comparable, M comparable] struct {
	Triggers  events.Triggers
	Parties   []*simobject.PartyState[T, M]
	CurPostID uint64
}

// NewSystemState builds a SystemState for nParties empty parties and the
// given initial triggers.
func NewSystemState[T comparable, M comparable](nParties int, initial events.Triggers, ops fingerprint.Ops[T, M]) *SystemState[T, M] {
	parties := make([]*simobject.PartyState[T, M], nParties)
	for i := range parties {
		parties[i] = simobject.NewPartyState[T, M](ops)
	}
	return &SystemState[T, M]{
		Triggers: initial,
		Parties:  parties,
	}
}

// NextPostID returns the next monotonically increasing post ID and
// advances the counter.
func (s *SystemState[T, M]) NextPostID() uint64 {
	id := s.CurPostID
	s.CurPostID++
	return id
}
