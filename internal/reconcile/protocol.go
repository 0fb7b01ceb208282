package reconcile

import (
	"fmt"

	"github.com/ersantana/rangesync-testbench/internal/fingerprint"
)

// RunStats accumulates per-participant accounting for one sync round.
// ItemsKnown is a snapshot taken once at the start of the round and never
// updated again, even though the participant learns more objects as the
// round proceeds.
type RunStats struct {
	MsgsSent         int
	ItemSetsSent     int
	FingerprintsSent int
	ItemsSent        int
	ItemsWanted      int
	ObjectsSent      int
	ItemsKnown       int
}

// Consume folds one sent Message's shape into stats.
func Consume[T comparable, M comparable, O any](stats *RunStats, msg Message[T, M, O]) {
	stats.MsgsSent++
	stats.ItemSetsSent += len(msg.ItemSets)
	stats.FingerprintsSent += len(msg.Fingerprints)
	for _, s := range msg.ItemSets {
		stats.ItemsSent += len(s.Items)
	}
	stats.ItemsWanted += len(msg.Wants)
	stats.ObjectsSent += len(msg.Provide)
}

// partitionRange cuts items (sorted, drawn from parent) into consecutive
// chunks of the given sizes and returns the corresponding half-open
// sub-ranges of parent. The first chunk inherits parent's Low bound and
// the last inherits parent's High bound, so the sub-ranges exactly tile
// parent with no gap or overlap.
func partitionRange[T any](parent fingerprint.Range[T], items []T, sizes []int) []fingerprint.Range[T] {
	ranges := make([]fingerprint.Range[T], 0, len(sizes))
	idx := 0
	for i, sz := range sizes {
		low := parent.Low
		if i > 0 {
			low = fingerprint.FiniteBound(items[idx])
		}
		idx += sz
		high := parent.High
		if i < len(sizes)-1 {
			high = fingerprint.FiniteBound(items[idx])
		}
		ranges = append(ranges, fingerprint.Range[T]{Low: low, High: high})
	}
	return ranges
}

// RespondToMessage is the responder's half of one protocol round: for
// every incoming fingerprint range, either confirm agreement (nothing to
// send back), send the explicit item set (range at or below threshold),
// or split into child fingerprints (range above threshold and still
// mismatched). For every incoming item set, it diffs against its own view
// of the same range, asking for items it lacks and proactively attaching
// items the peer lacks. For every incoming want, it attaches the object
// if it has one.
func RespondToMessage[T comparable, M comparable, O any](
	ops fingerprint.Ops[T, M],
	tree *fingerprint.Tree[T, M],
	objects map[T]O,
	msg Message[T, M, O],
	threshold int,
	split SplitFunc,
) (Message[T, M, O], []Provided[T, O], error) {
	if threshold < 0 {
		return Message[T, M, O]{}, nil, fmt.Errorf("reconcile: threshold must be >= 0, got %d", threshold)
	}

	var reply Message[T, M, O]

	for _, fp := range msg.Fingerprints {
		localNode := tree.ViewRange(fp.Range)
		if localNode.MonoidOverRange() == fp.Monoid {
			continue
		}
		count := localNode.Count()
		if count <= threshold {
			reply.ItemSets = append(reply.ItemSets, ItemSetEntry[T]{
				Range: fp.Range,
				Items: localNode.ItemsInRange(),
			})
			continue
		}
		items := localNode.ItemsInRange()
		sizes := split(count)
		for _, sr := range partitionRange(fp.Range, items, sizes) {
			reply.Fingerprints = append(reply.Fingerprints, FingerprintEntry[T, M]{
				Range:  sr,
				Monoid: tree.ViewRange(sr).MonoidOverRange(),
			})
		}
	}

	for _, s := range msg.ItemSets {
		localItems := tree.ViewRange(s.Range).ItemsInRange()
		peerOnly, localOnly := twoWayDiff(ops.Less, ops.Equal, localItems, s.Items)
		reply.Wants = append(reply.Wants, peerOnly...)
		for _, item := range localOnly {
			if obj, ok := objects[item]; ok {
				reply.Provide = append(reply.Provide, Provided[T, O]{Item: item, Object: obj})
			}
		}
	}

	for _, w := range msg.Wants {
		if obj, ok := objects[w]; ok {
			reply.Provide = append(reply.Provide, Provided[T, O]{Item: w, Object: obj})
		}
	}

	learned := append([]Provided[T, O]{}, msg.Provide...)
	return reply, learned, nil
}

// RunProtocol drives the full sync exchange between an initiator and a
// responder to convergence, returning the objects each side learned and
// each side's accumulated stats.
func RunProtocol[T comparable, M comparable, O any](
	ops fingerprint.Ops[T, M],
	initiatorTree *fingerprint.Tree[T, M], initiatorObjects map[T]O,
	responderTree *fingerprint.Tree[T, M], responderObjects map[T]O,
	threshold int, split SplitFunc,
) (initiatorLearned, responderLearned []Provided[T, O], statsInit, statsResp RunStats, err error) {
	statsInit.ItemsKnown = len(initiatorObjects)
	statsResp.ItemsKnown = len(responderObjects)

	msg := FirstMessage[T, M, O](initiatorTree.Root())
	Consume(&statsInit, msg)

	for {
		var learnedR []Provided[T, O]
		msg, learnedR, err = RespondToMessage(ops, responderTree, responderObjects, msg, threshold, split)
		if err != nil {
			return nil, nil, statsInit, statsResp, err
		}
		Consume(&statsResp, msg)
		responderLearned = append(responderLearned, learnedR...)
		if msg.IsEnd() {
			break
		}

		var learnedI []Provided[T, O]
		msg, learnedI, err = RespondToMessage(ops, initiatorTree, initiatorObjects, msg, threshold, split)
		if err != nil {
			return nil, nil, statsInit, statsResp, err
		}
		Consume(&statsInit, msg)
		initiatorLearned = append(initiatorLearned, learnedI...)
		if msg.IsEnd() {
			break
		}
	}

	return initiatorLearned, responderLearned, statsInit, statsResp, nil
}
