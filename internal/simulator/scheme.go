// Package simulator wires the time/probability primitives, the party
// state model, and the reconciliation driver into the deterministic
// tick loop that produces a Trace for one experiment run.
package simulator

import (
	"github.com/ersantana/rangesync-testbench/internal/fingerprint"
	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/ersantana/rangesync-testbench/internal/simobject"
)

// RunProtocolFn selects one reconciliation variant (uniform equal-k split,
// timestamped fixed split, timestamped dynamic split) by closing over a
// threshold and split policy; Sync events call it with nothing more than
// the two parties' read-only tree/object views.
type RunProtocolFn[T comparable, M comparable] func(
	initiatorTree *fingerprint.Tree[T, M], initiatorObjects map[T]simobject.SimObject,
	responderTree *fingerprint.Tree[T, M], responderObjects map[T]simobject.SimObject,
) ([]reconcile.Provided[T, simobject.SimObject], []reconcile.Provided[T, simobject.SimObject], reconcile.RunStats, reconcile.RunStats, error)

// Scheme bundles everything the simulator needs to run one item/monoid
// schema end to end: how to project a SimObject to an item, the
// fingerprint operations over that item, the reconciliation variant to
// run on Sync, and the wire-size constants the trace projection uses to
// estimate bytes_sent.
type Scheme[T comparable, M comparable] struct {
	Name        string
	Ops         fingerprint.Ops[T, M]
	ToItem      func(simobject.SimObject) T
	RunProtocol RunProtocolFn[T, M]
	ItemSize    int
	MonoidSize  int
}

// NewRunProtocolFn binds a threshold and split policy into a
// RunProtocolFn, the form a Scheme stores and Sync events invoke.
func NewRunProtocolFn[T comparable, M comparable](
	ops fingerprint.Ops[T, M],
	threshold int,
	split reconcile.SplitFunc,
) RunProtocolFn[T, M] {
	return func(
		initiatorTree *fingerprint.Tree[T, M], initiatorObjects map[T]simobject.SimObject,
		responderTree *fingerprint.Tree[T, M], responderObjects map[T]simobject.SimObject,
	) ([]reconcile.Provided[T, simobject.SimObject], []reconcile.Provided[T, simobject.SimObject], reconcile.RunStats, reconcile.RunStats, error) {
		return reconcile.RunProtocol(ops, initiatorTree, initiatorObjects, responderTree, responderObjects, threshold, split)
	}
}
