package simobject

import "github.com/ersantana/rangesync-testbench/internal/fingerprint"

// PartyState is one party's fingerprint tree paired with the object store
// it indexes. The invariant held across Post and every reconciliation
// apply is that tree's keys are exactly objects' keys.
type PartyState[T any, M any] struct {
	Tree    *fingerprint.Tree[T, M]
	Objects map[T]SimObject
}

// NewPartyState builds an empty party state for the given schema.
func NewPartyState[T comparable, M any](ops fingerprint.Ops[T, M]) *PartyState[T, M] {
	return &PartyState[T, M]{
		Tree:    fingerprint.New[T, M](ops),
		Objects: make(map[T]SimObject),
	}
}

// Post records a newly authored object under its schema-specific item key,
// inserting into both the tree and the object store. Re-posting an
// identical item is a no-op on the tree side and overwrites the object
// store entry with an identical value.
func (p *PartyState[T, M]) Post(item T, obj SimObject) {
	p.Tree.Insert(item)
	p.Objects[item] = obj
}

// Learn applies an object received during reconciliation, the same way a
// local Post does, except the item/object pair originates with the peer
// rather than this party's own authoring.
func (p *PartyState[T, M]) Learn(item T, obj SimObject) {
	p.Tree.Insert(item)
	p.Objects[item] = obj
}
