package simobject

import (
	"testing"

	"github.com/ersantana/rangesync-testbench/internal/simtime"
	"github.com/stretchr/testify/assert"
)

func TestToUniformItemEncodesAuthorThenPostID(t *testing.T) {
	o := SimObject{Author: 1, PostID: 2, Timestamp: simtime.Instant(99)}
	it := ToUniformItem(o)
	assert.Equal(t, byte(1), it[0])
	assert.Equal(t, byte(2), it[8])
}

func TestUniformItemOrdersByAuthorThenPostID(t *testing.T) {
	a := ToUniformItem(SimObject{Author: 1, PostID: 0})
	b := ToUniformItem(SimObject{Author: 1, PostID: 1})
	c := ToUniformItem(SimObject{Author: 2, PostID: 0})
	assert.True(t, a.Less(b))
	assert.True(t, b.Less(c))
	assert.False(t, b.Less(a))
}

func TestTimestampedItemOrdersByTimestampFirst(t *testing.T) {
	early := ToTimestampedItem(SimObject{Author: 5, PostID: 5, Timestamp: simtime.Instant(1)})
	late := ToTimestampedItem(SimObject{Author: 0, PostID: 0, Timestamp: simtime.Instant(2)})
	assert.True(t, early.Less(late))
}

func TestTimestampedItemBreaksTiesOnUnique(t *testing.T) {
	a := ToTimestampedItem(SimObject{Author: 1, PostID: 0, Timestamp: simtime.Instant(10)})
	b := ToTimestampedItem(SimObject{Author: 1, PostID: 1, Timestamp: simtime.Instant(10)})
	assert.True(t, a.Less(b))
	assert.False(t, a.Equal(b))
}
