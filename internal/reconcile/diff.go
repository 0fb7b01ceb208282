package reconcile

// twoWayDiff merges two sorted, schema-ordered item slices and reports
// the asymmetric difference in both directions: peerOnly holds items
// present in peer but missing from local (local should want them);
// localOnly holds items present in local but missing from peer (local
// should offer them).
func twoWayDiff[T any](less, equal func(a, b T) bool, local, peer []T) (peerOnly, localOnly []T) {
	i, j := 0, 0
	for i < len(local) && j < len(peer) {
		switch {
		case equal(local[i], peer[j]):
			i++
			j++
		case less(local[i], peer[j]):
			localOnly = append(localOnly, local[i])
			i++
		default:
			peerOnly = append(peerOnly, peer[j])
			j++
		}
	}
	for ; i < len(local); i++ {
		localOnly = append(localOnly, local[i])
	}
	for ; j < len(peer); j++ {
		peerOnly = append(peerOnly, peer[j])
	}
	return peerOnly, localOnly
}
