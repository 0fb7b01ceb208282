package simobject

import (
	"crypto/sha256"

	"github.com/ersantana/rangesync-testbench/internal/fingerprint"
	"github.com/ersantana/rangesync-testbench/internal/simtime"
)

// UniformMonoid summarises a set of UniformItems with a count and an
// order-independent digest: each item hashes to a 32-byte sha256 digest,
// and digests combine by XOR so the aggregate is identical regardless of
// insertion order, matching the commutative monoid the protocol's
// fingerprint comparison needs. Two subtrees with the same items (in any
// order) always fingerprint identically; two subtrees differing in even
// one item almost certainly don't.
type UniformMonoid struct {
	Count  uint64
	Digest [32]byte
}

func uniformDigest(it UniformItem) [32]byte {
	return sha256.Sum256(it[:])
}

func xorDigest(a, b [32]byte) [32]byte {
	var out [32]byte
	for i := range out {
		out[i] = a[i] ^ b[i]
	}
	return out
}

// UniformOps is the fingerprint.Ops binding for the uniform item schema.
var UniformOps = fingerprint.Ops[UniformItem, UniformMonoid]{
	Less:     func(a, b UniformItem) bool { return a.Less(b) },
	Equal:    func(a, b UniformItem) bool { return a.Equal(b) },
	Identity: UniformMonoid{},
	FromItem: func(it UniformItem) UniformMonoid {
		return UniformMonoid{Count: 1, Digest: uniformDigest(it)}
	},
	Combine: func(a, b UniformMonoid) UniformMonoid {
		return UniformMonoid{Count: a.Count + b.Count, Digest: xorDigest(a.Digest, b.Digest)}
	},
}

// UniformItemSize and UniformMonoidSize are the uniform scheme's wire-size constants
// used to estimate bytes_sent in trace projection.
const (
	UniformItemSize   = 30
	UniformMonoidSize = 60
)

// TimestampedMonoid extends UniformMonoid with the min/max timestamp
// observed in the subtree, compared along with the digest when peers
// check fingerprints. The split policies see only item counts and do not
// read these fields.
type TimestampedMonoid struct {
	Inner    UniformMonoid
	MinTS    simtime.Instant
	MaxTS    simtime.Instant
	HasItems bool
}

// TimestampedOps is the fingerprint.Ops binding for the timestamped item
// schema.
var TimestampedOps = fingerprint.Ops[TimestampedItem, TimestampedMonoid]{
	Less:     func(a, b TimestampedItem) bool { return a.Less(b) },
	Equal:    func(a, b TimestampedItem) bool { return a.Equal(b) },
	Identity: TimestampedMonoid{},
	FromItem: func(it TimestampedItem) TimestampedMonoid {
		return TimestampedMonoid{
			Inner:    UniformOps.FromItem(it.Unique),
			MinTS:    it.Timestamp,
			MaxTS:    it.Timestamp,
			HasItems: true,
		}
	},
	Combine: func(a, b TimestampedMonoid) TimestampedMonoid {
		switch {
		case !a.HasItems:
			return b
		case !b.HasItems:
			return a
		default:
			min, max := a.MinTS, a.MaxTS
			if b.MinTS < min {
				min = b.MinTS
			}
			if b.MaxTS > max {
				max = b.MaxTS
			}
			return TimestampedMonoid{
				Inner:    UniformOps.Combine(a.Inner, b.Inner),
				MinTS:    min,
				MaxTS:    max,
				HasItems: true,
			}
		}
	},
}

const (
	TimestampedItemSize   = 38
	TimestampedMonoidSize = 68
)
