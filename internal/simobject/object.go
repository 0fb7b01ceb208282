// Package simobject defines the content objects parties exchange and the
// two wire-schema projections (uniform, timestamped) the reconciliation
// tree is generalized over.
package simobject

import (
	"encoding/binary"

	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// SimObject is a post authored by a party at a simulated instant. PostID
// comes from one counter shared by all authors; (Author, PostID) is the
// object's identity, Timestamp is carried separately because the
// timestamped schema reorders on it.
type SimObject struct {
	Author    uint64
	PostID    uint64
	Timestamp simtime.Instant
}

// UniformItem is the 16-byte-significant, 30-byte-wire identity item used
// by the uniform reconciliation scheme: author and post ID only, no
// timestamp. The trailing padding keeps the wire size aligned with the
// timestamped scheme's unique-suffix length so both schemes can share a
// tree-node encoding size if desired.
type UniformItem [30]byte

// ToUniformItem projects a SimObject onto its uniform-scheme identity: an
// 8-byte little-endian author followed by an 8-byte little-endian post ID,
// zero-padded to 30 bytes.
func ToUniformItem(o SimObject) UniformItem {
	var it UniformItem
	binary.LittleEndian.PutUint64(it[0:8], o.Author)
	binary.LittleEndian.PutUint64(it[8:16], o.PostID)
	return it
}

// Less gives UniformItem a total byte-lexicographic order, which is also
// the (Author, PostID) order given the encoding above.
func (a UniformItem) Less(b UniformItem) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

func (a UniformItem) Equal(b UniformItem) bool { return a == b }

// TimestampedItem orders first by Timestamp and only falls back to the
// uniform identity to break ties between objects authored in the same
// simulated minute.
type TimestampedItem struct {
	Timestamp simtime.Instant
	Unique    UniformItem
}

// ToTimestampedItem projects a SimObject onto its timestamped-scheme item.
func ToTimestampedItem(o SimObject) TimestampedItem {
	return TimestampedItem{Timestamp: o.Timestamp, Unique: ToUniformItem(o)}
}

func (a TimestampedItem) Less(b TimestampedItem) bool {
	if a.Timestamp != b.Timestamp {
		return a.Timestamp < b.Timestamp
	}
	return a.Unique.Less(b.Unique)
}

func (a TimestampedItem) Equal(b TimestampedItem) bool {
	return a.Timestamp == b.Timestamp && a.Unique == b.Unique
}
