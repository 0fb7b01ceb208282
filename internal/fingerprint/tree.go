// Package fingerprint implements a monoid-annotated set (a "fingerprint
// tree") generic over an item type and its aggregation monoid, so the
// reconciliation protocol can run identically over the uniform and
// timestamped item schemas.
package fingerprint

// Ops supplies the operations a Tree needs for a concrete (item, monoid)
// pair. Go generics can't express "M has an Identity() and Combine()
// method" without a self-referential constraint that both schemes would
// have to satisfy identically, so the tree takes these as plain function
// values instead — the same shape the reconciliation suites already use to
// select a schema at the call site.
type Ops[T any, M any] struct {
	Less     func(a, b T) bool
	Equal    func(a, b T) bool
	Identity M
	FromItem func(T) M
	Combine  func(a, b M) M
}

// Bound is one edge of a Range. A zero Inf means Value is the literal
// edge; NegInf/PosInf let a Range reach off either end of the tree without
// needing a sentinel minimum/maximum value of T.
type Infinity int8

const (
	Finite Infinity = 0
	NegInf Infinity = -1
	PosInf Infinity = 1
)

type Bound[T any] struct {
	Value T
	Inf   Infinity
}

// FiniteBound wraps a concrete value as a finite edge.
func FiniteBound[T any](v T) Bound[T] { return Bound[T]{Value: v, Inf: Finite} }

// NegInfBound and PosInfBound construct the two unbounded edges.
func NegInfBound[T any]() Bound[T] { var zero T; return Bound[T]{Value: zero, Inf: NegInf} }
func PosInfBound[T any]() Bound[T] { var zero T; return Bound[T]{Value: zero, Inf: PosInf} }

// Range is a half-open interval [Low, High) over T.
type Range[T any] struct {
	Low  Bound[T]
	High Bound[T]
}

// Full returns the range spanning the entire tree.
func Full[T any]() Range[T] {
	return Range[T]{Low: NegInfBound[T](), High: PosInfBound[T]()}
}

// Tree is a sorted, deduplicated set of items with an associated segment
// tree over their per-item monoid projections, giving O(log n) monoid
// queries over any contiguous subrange.
type Tree[T any, M any] struct {
	ops   Ops[T, M]
	items []T
	seg   []M // 1-indexed complete binary tree, leaves at [n, 2n)
	n     int // seg leaf count (next power of two >= len(items), at least 1)
}

// New builds an empty Tree for the given schema operations.
func New[T any, M any](ops Ops[T, M]) *Tree[T, M] {
	t := &Tree[T, M]{ops: ops}
	t.rebuild()
	return t
}

// Len reports the number of distinct items stored.
func (t *Tree[T, M]) Len() int { return len(t.items) }

// Items returns the tree's items in sorted order. Callers must not mutate
// the returned slice.
func (t *Tree[T, M]) Items() []T { return t.items }

// Insert adds an item, preserving sorted order and set semantics: an item
// Equal to one already present is a no-op.
func (t *Tree[T, M]) Insert(item T) {
	idx, found := t.search(item)
	if found {
		return
	}
	t.items = append(t.items, item)
	copy(t.items[idx+1:], t.items[idx:])
	t.items[idx] = item
	t.rebuild()
}

// search returns the insertion index for item and whether an Equal item is
// already present at that index.
func (t *Tree[T, M]) search(item T) (idx int, found bool) {
	lo, hi := 0, len(t.items)
	for lo < hi {
		mid := (lo + hi) / 2
		if t.ops.Less(t.items[mid], item) {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(t.items) && t.ops.Equal(t.items[lo], item) {
		return lo, true
	}
	return lo, false
}

func (t *Tree[T, M]) rebuild() {
	n := 1
	for n < len(t.items) {
		n *= 2
	}
	if n == 0 {
		n = 1
	}
	t.n = n
	t.seg = make([]M, 2*n)
	for i := range t.seg {
		t.seg[i] = t.ops.Identity
	}
	for i, item := range t.items {
		t.seg[n+i] = t.ops.FromItem(item)
	}
	for i := n - 1; i >= 1; i-- {
		t.seg[i] = t.ops.Combine(t.seg[2*i], t.seg[2*i+1])
	}
}

// boundIndex returns the first slice index whose item is >= a finite
// bound's value. Both Low and High bounds resolve the same way (the
// first item not less than the bound value); infinite bounds resolve
// to the tree's edges.
func (t *Tree[T, M]) boundIndex(b Bound[T]) int {
	switch b.Inf {
	case NegInf:
		return 0
	case PosInf:
		return len(t.items)
	default:
		lo, hi := 0, len(t.items)
		for lo < hi {
			mid := (lo + hi) / 2
			if t.ops.Less(t.items[mid], b.Value) {
				lo = mid + 1
			} else {
				hi = mid
			}
		}
		return lo
	}
}

// Bounds resolves a Range to a half-open index interval [lo, hi) into the
// tree's sorted items.
func (t *Tree[T, M]) Bounds(r Range[T]) (lo, hi int) {
	lo = t.boundIndex(r.Low)
	hi = t.boundIndex(r.High)
	if hi < lo {
		hi = lo
	}
	return lo, hi
}

// query folds the segment tree over leaf range [l, r) using the classic
// iterative bottom-up walk, preserving left-to-right combine order so
// non-commutative monoids still aggregate correctly.
func (t *Tree[T, M]) query(l, r int) M {
	left, right := t.ops.Identity, t.ops.Identity
	l += t.n
	r += t.n
	for l < r {
		if l&1 == 1 {
			left = t.ops.Combine(left, t.seg[l])
			l++
		}
		if r&1 == 1 {
			r--
			right = t.ops.Combine(t.seg[r], right)
		}
		l >>= 1
		r >>= 1
	}
	return t.ops.Combine(left, right)
}

// Node is a read-only view over a subrange of a Tree: its item count,
// aggregated monoid, and member items, all restricted to that subrange.
type Node[T any, M any] interface {
	Range() Range[T]
	Count() int
	MonoidOverRange() M
	ItemsInRange() []T
}

type node[T any, M any] struct {
	tree   *Tree[T, M]
	rng    Range[T]
	lo, hi int
}

func (n *node[T, M]) Range() Range[T]      { return n.rng }
func (n *node[T, M]) Count() int           { return n.hi - n.lo }
func (n *node[T, M]) MonoidOverRange() M   { return n.tree.query(n.lo, n.hi) }
func (n *node[T, M]) ItemsInRange() []T {
	out := make([]T, n.hi-n.lo)
	copy(out, n.tree.items[n.lo:n.hi])
	return out
}

// Root returns a Node over the entire tree.
func (t *Tree[T, M]) Root() Node[T, M] {
	return t.ViewRange(Full[T]())
}

// ViewRange returns a Node restricted to r.
func (t *Tree[T, M]) ViewRange(r Range[T]) Node[T, M] {
	lo, hi := t.Bounds(r)
	return &node[T, M]{tree: t, rng: r, lo: lo, hi: hi}
}

// CountInRange is a convenience wrapper avoiding a full ItemsInRange copy
// when only the count is needed.
func (t *Tree[T, M]) CountInRange(r Range[T]) int {
	lo, hi := t.Bounds(r)
	return hi - lo
}
