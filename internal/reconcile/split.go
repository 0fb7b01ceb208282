package reconcile

// SplitFunc maps a range's item count to the sizes of the child ranges it
// should be partitioned into; the sizes sum to n.
type SplitFunc func(n int) []int

// UniformSplit builds a SplitFunc dividing a range into k nearly-equal
// parts, the policy the uniform-schema suites use: every child gets n/k
// items, with the first n%k children getting one extra so the sizes still
// sum to n.
func UniformSplit(k int) SplitFunc {
	if k < 1 {
		panic("reconcile: UniformSplit requires k >= 1")
	}
	return func(n int) []int {
		if n == 0 {
			return nil
		}
		kk := k
		if n < kk {
			kk = n
		}
		sizes := make([]int, kk)
		base, rem := n/kk, n%kk
		for i := range sizes {
			sizes[i] = base
			if i < rem {
				sizes[i]++
			}
		}
		return sizes
	}
}

// DynamicSplit builds a SplitFunc approximating the original's
// timestamp-density-driven split by item count alone: rather than equal
// partitions, it peels fixed-size minClusterSize chunks off the front of
// the range while more than two chunks' worth remains, then emits the
// remainder (between minClusterSize+1 and 2*minClusterSize items) as one
// final chunk. A range of at most 2*minClusterSize items is halved
// instead, so every range of two or more items splits into at least two
// strictly narrower children. It does not look at timestamps.
func DynamicSplit(minClusterSize int) SplitFunc {
	if minClusterSize < 1 {
		panic("reconcile: DynamicSplit requires minClusterSize >= 1")
	}
	return func(n int) []int {
		if n == 0 {
			return nil
		}
		if n <= 2*minClusterSize {
			if n == 1 {
				return []int{1}
			}
			half := n / 2
			return []int{half, n - half}
		}
		var sizes []int
		remaining := n
		for remaining > 2*minClusterSize {
			sizes = append(sizes, minClusterSize)
			remaining -= minClusterSize
		}
		sizes = append(sizes, remaining)
		return sizes
	}
}
