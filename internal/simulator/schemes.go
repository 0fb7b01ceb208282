package simulator

import (
	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/ersantana/rangesync-testbench/internal/simobject"
)

// UniformScheme builds the uniform item/monoid scheme (author+post-id
// identity, digest fingerprint) with an equal-k split policy.
func UniformScheme(threshold, k int) Scheme[simobject.UniformItem, simobject.UniformMonoid] {
	return Scheme[simobject.UniformItem, simobject.UniformMonoid]{
		Name:        "uniform",
		Ops:         simobject.UniformOps,
		ToItem:      simobject.ToUniformItem,
		RunProtocol: NewRunProtocolFn(simobject.UniformOps, threshold, reconcile.UniformSplit(k)),
		ItemSize:    simobject.UniformItemSize,
		MonoidSize:  simobject.UniformMonoidSize,
	}
}

// TimestampedScheme builds the timestamp-ordered item/monoid scheme with
// a fixed equal-k split policy.
func TimestampedScheme(threshold, k int) Scheme[simobject.TimestampedItem, simobject.TimestampedMonoid] {
	return Scheme[simobject.TimestampedItem, simobject.TimestampedMonoid]{
		Name:        "timestamped",
		Ops:         simobject.TimestampedOps,
		ToItem:      simobject.ToTimestampedItem,
		RunProtocol: NewRunProtocolFn(simobject.TimestampedOps, threshold, reconcile.UniformSplit(k)),
		ItemSize:    simobject.TimestampedItemSize,
		MonoidSize:  simobject.TimestampedMonoidSize,
	}
}

// TimestampedDynamicScheme builds the timestamp-ordered scheme with the
// dynamic, cluster-size-driven split policy instead of equal-k.
func TimestampedDynamicScheme(threshold, minClusterSize int) Scheme[simobject.TimestampedItem, simobject.TimestampedMonoid] {
	return Scheme[simobject.TimestampedItem, simobject.TimestampedMonoid]{
		Name:        "timestamped_dynamic",
		Ops:         simobject.TimestampedOps,
		ToItem:      simobject.ToTimestampedItem,
		RunProtocol: NewRunProtocolFn(simobject.TimestampedOps, threshold, reconcile.DynamicSplit(minClusterSize)),
		ItemSize:    simobject.TimestampedItemSize,
		MonoidSize:  simobject.TimestampedMonoidSize,
	}
}
