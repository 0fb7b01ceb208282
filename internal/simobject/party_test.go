package simobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostIsIdempotent(t *testing.T) {
	p := NewPartyState[UniformItem, UniformMonoid](UniformOps)
	obj := SimObject{Author: 1, PostID: 1}
	item := ToUniformItem(obj)
	p.Post(item, obj)
	p.Post(item, obj)
	assert.Equal(t, 1, p.Tree.Len())
	assert.Len(t, p.Objects, 1)
}

func TestPostKeepsTreeAndObjectsInSync(t *testing.T) {
	p := NewPartyState[UniformItem, UniformMonoid](UniformOps)
	for i := uint64(0); i < 5; i++ {
		obj := SimObject{Author: 1, PostID: i}
		p.Post(ToUniformItem(obj), obj)
	}
	require.Equal(t, 5, p.Tree.Len())
	for _, item := range p.Tree.Items() {
		_, ok := p.Objects[item]
		assert.True(t, ok)
	}
}
