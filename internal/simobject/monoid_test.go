package simobject

import (
	"testing"

	"github.com/ersantana/rangesync-testbench/internal/simtime"
	"github.com/stretchr/testify/assert"
)

func TestUniformMonoidCommutesOverInsertionOrder(t *testing.T) {
	items := []UniformItem{
		ToUniformItem(SimObject{Author: 1, PostID: 1}),
		ToUniformItem(SimObject{Author: 2, PostID: 1}),
		ToUniformItem(SimObject{Author: 3, PostID: 1}),
	}

	forward := UniformOps.Identity
	for _, it := range items {
		forward = UniformOps.Combine(forward, UniformOps.FromItem(it))
	}

	backward := UniformOps.Identity
	for i := len(items) - 1; i >= 0; i-- {
		backward = UniformOps.Combine(backward, UniformOps.FromItem(items[i]))
	}

	assert.Equal(t, forward, backward)
}

func TestUniformMonoidDiffersWhenItemSetDiffers(t *testing.T) {
	a := UniformOps.FromItem(ToUniformItem(SimObject{Author: 1, PostID: 1}))
	b := UniformOps.FromItem(ToUniformItem(SimObject{Author: 1, PostID: 2}))
	assert.NotEqual(t, a.Digest, b.Digest)
}

func TestTimestampedMonoidTracksMinMax(t *testing.T) {
	a := TimestampedOps.FromItem(ToTimestampedItem(SimObject{Author: 1, PostID: 1, Timestamp: simtime.Instant(5)}))
	b := TimestampedOps.FromItem(ToTimestampedItem(SimObject{Author: 1, PostID: 2, Timestamp: simtime.Instant(50)}))
	combined := TimestampedOps.Combine(a, b)
	assert.Equal(t, simtime.Instant(5), combined.MinTS)
	assert.Equal(t, simtime.Instant(50), combined.MaxTS)
	assert.Equal(t, uint64(2), combined.Inner.Count)
}

func TestTimestampedIdentityCombinesAsNoOp(t *testing.T) {
	a := TimestampedOps.FromItem(ToTimestampedItem(SimObject{Author: 1, PostID: 1, Timestamp: simtime.Instant(5)}))
	combined := TimestampedOps.Combine(TimestampedOps.Identity, a)
	assert.Equal(t, a, combined)
}
