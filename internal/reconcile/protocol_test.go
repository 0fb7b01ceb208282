package reconcile_test

import (
	"sort"
	"testing"

	"github.com/ersantana/rangesync-testbench/internal/fingerprint"
	"github.com/ersantana/rangesync-testbench/internal/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testMonoid combines a count with an XOR checksum so two ranges with the
// same cardinality but different members still disagree, the property a
// bare count monoid can't provide.
type testMonoid struct {
	Count int
	XOR   int
}

var testOps = fingerprint.Ops[int, testMonoid]{
	Less:     func(a, b int) bool { return a < b },
	Equal:    func(a, b int) bool { return a == b },
	Identity: testMonoid{},
	FromItem: func(v int) testMonoid { return testMonoid{Count: 1, XOR: v} },
	Combine: func(a, b testMonoid) testMonoid {
		return testMonoid{Count: a.Count + b.Count, XOR: a.XOR ^ b.XOR}
	},
}

func buildTree(items []int, objects map[int]string) *fingerprint.Tree[int, testMonoid] {
	tr := fingerprint.New[int, testMonoid](testOps)
	for _, it := range items {
		tr.Insert(it)
		objects[it] = "obj"
	}
	return tr
}

func TestRunProtocolConvergesDisjointSets(t *testing.T) {
	initObjects := map[int]string{}
	respObjects := map[int]string{}
	initTree := buildTree([]int{1, 2, 3}, initObjects)
	respTree := buildTree([]int{10, 11, 12}, respObjects)

	initLearned, respLearned, statsInit, statsResp, err := reconcile.RunProtocol(
		testOps, initTree, initObjects, respTree, respObjects,
		1, reconcile.UniformSplit(2),
	)
	require.NoError(t, err)

	assert.ElementsMatch(t, []int{10, 11, 12}, learnedItems(initLearned))
	assert.ElementsMatch(t, []int{1, 2, 3}, learnedItems(respLearned))
	assert.Greater(t, statsInit.MsgsSent, 0)
	assert.Greater(t, statsResp.MsgsSent, 0)
	assert.Equal(t, 3, statsInit.ItemsKnown)
	assert.Equal(t, 3, statsResp.ItemsKnown)
}

func TestRunProtocolNoOpWhenAlreadySynced(t *testing.T) {
	initObjects := map[int]string{}
	respObjects := map[int]string{}
	initTree := buildTree([]int{1, 2, 3}, initObjects)
	respTree := buildTree([]int{1, 2, 3}, respObjects)

	initLearned, respLearned, statsInit, _, err := reconcile.RunProtocol(
		testOps, initTree, initObjects, respTree, respObjects,
		1, reconcile.UniformSplit(2),
	)
	require.NoError(t, err)
	assert.Empty(t, initLearned)
	assert.Empty(t, respLearned)
	assert.Equal(t, 1, statsInit.MsgsSent)
}

func TestRunProtocolConvergesOverlappingLargeSets(t *testing.T) {
	initObjects := map[int]string{}
	respObjects := map[int]string{}
	var initItems, respItems []int
	for i := 0; i < 40; i++ {
		initItems = append(initItems, i)
	}
	for i := 20; i < 60; i++ {
		respItems = append(respItems, i)
	}
	initTree := buildTree(initItems, initObjects)
	respTree := buildTree(respItems, respObjects)

	initLearned, respLearned, _, _, err := reconcile.RunProtocol(
		testOps, initTree, initObjects, respTree, respObjects,
		3, reconcile.DynamicSplit(4),
	)
	require.NoError(t, err)

	var expectInitLearns []int
	for i := 40; i < 60; i++ {
		expectInitLearns = append(expectInitLearns, i)
	}
	var expectRespLearns []int
	for i := 0; i < 20; i++ {
		expectRespLearns = append(expectRespLearns, i)
	}
	assert.ElementsMatch(t, expectInitLearns, learnedItems(initLearned))
	assert.ElementsMatch(t, expectRespLearns, learnedItems(respLearned))
}

func TestRespondToMessageRejectsNegativeThreshold(t *testing.T) {
	tr := fingerprint.New[int, testMonoid](testOps)
	_, _, err := reconcile.RespondToMessage(testOps, tr, map[int]string{}, reconcile.Message[int, testMonoid, string]{}, -1, reconcile.UniformSplit(2))
	assert.Error(t, err)
}

func TestUniformSplitSumsToN(t *testing.T) {
	split := reconcile.UniformSplit(3)
	sizes := split(10)
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	assert.Equal(t, 10, sum)
	assert.Len(t, sizes, 3)
}

func TestDynamicSplitSumsToN(t *testing.T) {
	split := reconcile.DynamicSplit(4)
	sizes := split(30)
	sum := 0
	for _, s := range sizes {
		sum += s
	}
	assert.Equal(t, 30, sum)
}

func learnedItems(p []reconcile.Provided[int, string]) []int {
	out := make([]int, len(p))
	for i, e := range p {
		out[i] = e.Item
	}
	sort.Ints(out)
	return out
}
