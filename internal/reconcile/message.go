// Package reconcile implements the range-based set reconciliation
// protocol driver: the sync-message loop that two parties run against
// each other's fingerprint trees until their object stores converge. It
// is generic over the item type T, its monoid M, and the object type O,
// so the same driver serves both the uniform and timestamped item
// schemas.
package reconcile

import "github.com/ersantana/rangesync-testbench/internal/fingerprint"

// FingerprintEntry asks the peer to compare Monoid, the aggregate over
// Range as seen by the sender, against its own view of the same range.
type FingerprintEntry[T any, M comparable] struct {
	Range  fingerprint.Range[T]
	Monoid M
}

// ItemSetEntry transmits the explicit member list of Range once its item
// count has fallen at or below the configured threshold.
type ItemSetEntry[T any] struct {
	Range fingerprint.Range[T]
	Items []T
}

// Provided carries one object the sender is handing to the peer, either
// because the peer asked for it (Wants) or because the sender noticed the
// peer lacked it while diffing an item set.
type Provided[T any, O any] struct {
	Item   T
	Object O
}

// Message is one leg of the sync exchange. An empty Message (IsEnd) is
// the terminal sentinel: neither side has anything further to compare or
// exchange.
type Message[T comparable, M comparable, O any] struct {
	Fingerprints []FingerprintEntry[T, M]
	ItemSets     []ItemSetEntry[T]
	Wants        []T
	Provide      []Provided[T, O]
}

// IsEnd reports whether the message carries no further work for the
// recipient.
func (m Message[T, M, O]) IsEnd() bool {
	return len(m.Fingerprints) == 0 && len(m.ItemSets) == 0 && len(m.Wants) == 0 && len(m.Provide) == 0
}

// FirstMessage is the initiator's opening move: a single fingerprint
// entry summarising its entire tree. O is the object type carried by
// later Provide entries; FirstMessage itself never populates any.
func FirstMessage[T comparable, M comparable, O any](root fingerprint.Node[T, M]) Message[T, M, O] {
	return Message[T, M, O]{
		Fingerprints: []FingerprintEntry[T, M]{{
			Range:  root.Range(),
			Monoid: root.MonoidOverRange(),
		}},
	}
}
