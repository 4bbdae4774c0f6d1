package memo

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// buildChain returns Limit(10) -> Filter(TRUE) -> Values(a), a three-node
// plan exercising recursive insertion.
func buildChain(ids *planner.PlanNodeIDAllocator) (*planner.LimitNode, *planner.FilterNode, *planner.ValuesNode) {
	values := planner.NewValuesNode(ids.Next(), []planner.Symbol{"a"}, [][]planner.Expression{
		{planner.NewConstant(common.BigintType, int64(1))},
	})
	filter := planner.NewFilterNode(ids.Next(), values, planner.TrueLiteral)
	limit := planner.NewLimitNode(ids.Next(), filter, 10, nil)
	return limit, filter, values
}

func TestInsertDecomposesTree(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)

	m := New(ids, limit)
	assert.Equal(t, 3, m.GroupCount())

	root := m.GetNode(m.RootGroup())
	rootLimit, ok := root.(*planner.LimitNode)
	require.True(t, ok)
	assert.Equal(t, limit.ID(), rootLimit.ID(), "representative keeps the node id")

	ref, ok := rootLimit.Source.(*GroupReference)
	require.True(t, ok, "children inside the memo are group references")
	assert.Equal(t, []planner.Symbol{"a"}, ref.OutputSymbols())

	child, ok := m.GetNode(ref.Group).(*planner.FilterNode)
	require.True(t, ok)
	_, ok = child.Source.(*GroupReference)
	assert.True(t, ok)
}

func TestResolveSubstitutesRepresentative(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	root := m.GetNode(m.RootGroup()).(*planner.LimitNode)
	resolved := m.Resolve(root.Source)
	_, ok := resolved.(*planner.FilterNode)
	assert.True(t, ok)

	assert.Same(t, root, m.Resolve(root), "concrete nodes resolve to themselves")
}

func TestExtractResolvesAllReferences(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	extracted := m.Extract(m.RootGroup())

	var walk func(n planner.PlanNode)
	walk = func(n planner.PlanNode) {
		_, isRef := n.(*GroupReference)
		require.False(t, isRef, "no group reference may survive extraction")
		for _, s := range n.Sources() {
			walk(s)
		}
	}
	walk(extracted)

	assert.Equal(t, limit.ID(), extracted.ID())
	assert.IsType(t, &planner.FilterNode{}, extracted.(*planner.LimitNode).Source)
}

func TestReplaceEvictsOrphanedGroups(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)
	require.Equal(t, 3, m.GroupCount())

	// Replace the root with a leaf: the filter and values groups die.
	empty := planner.NewEmptyValuesNode(ids.Next(), []planner.Symbol{"a"})
	m.Replace(m.RootGroup(), empty, "test")

	assert.Equal(t, 1, m.GroupCount())
	assert.Same(t, empty, m.GetNode(m.RootGroup()))
}

func TestReplaceWithGroupReferenceAliasesMembership(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	root := m.GetNode(m.RootGroup()).(*planner.LimitNode)
	source := root.Source.(*GroupReference)

	// "Limit is redundant": the group adopts its source's representative.
	m.Replace(m.RootGroup(), source, "test")

	_, ok := m.GetNode(m.RootGroup()).(*planner.FilterNode)
	assert.True(t, ok)

	extracted := m.Extract(m.RootGroup())
	_, ok = extracted.(*planner.FilterNode)
	assert.True(t, ok)
}

func TestReplaceInsertsNewChildren(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	root := m.GetNode(m.RootGroup()).(*planner.LimitNode)

	// Push a projection between the limit and its source.
	project := planner.NewIdentityProjection(ids.Next(), root.Source, []planner.Symbol{"a"})
	newLimit := root.ReplaceSources([]planner.PlanNode{project})
	installed := m.Replace(m.RootGroup(), newLimit, "test")

	ref, ok := installed.(*planner.LimitNode).Source.(*GroupReference)
	require.True(t, ok, "concrete children are inserted and replaced by references")
	_, ok = m.GetNode(ref.Group).(*planner.ProjectNode)
	assert.True(t, ok)
	assert.Equal(t, 4, m.GroupCount())
}

func TestSelfReferentialReplacePanics(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	root := m.RootGroup()
	require.Panics(t, func() {
		m.Replace(root, NewGroupReference(ids.Next(), root, []planner.Symbol{"a"}), "test")
	})
}

func TestCyclicReplacePanics(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	root := m.RootGroup()
	selfRef := NewGroupReference(ids.Next(), root, []planner.Symbol{"a"})
	cyclic := planner.NewLimitNode(ids.Next(), selfRef, 5, nil)
	require.Panics(t, func() {
		m.Replace(root, cyclic, "test")
	})
}

func TestCostCacheIsWriteOnce(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)
	g := m.RootGroup()

	_, ok := m.GetCost(g)
	assert.False(t, ok)

	stored := cost.NewCostEstimate(1, 2, 3)
	m.StoreCost(g, stored)

	got, ok := m.GetCost(g)
	require.True(t, ok)
	assert.Equal(t, stored, got)

	require.Panics(t, func() {
		m.StoreCost(g, cost.ZeroCost())
	}, "re-storing a cost is a fatal invariant violation")
}

func TestStatsCacheIsWriteOnce(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)
	g := m.RootGroup()

	m.StoreStats(g, cost.NewStatsEstimate(42))
	got, ok := m.GetStats(g)
	require.True(t, ok)
	assert.Equal(t, 42.0, got.OutputRowCount)

	require.Panics(t, func() {
		m.StoreStats(g, cost.NewStatsEstimate(7))
	})
}

func TestReplaceDropsCachedEstimates(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)
	g := m.RootGroup()

	m.StoreStats(g, cost.NewStatsEstimate(42))
	m.StoreCost(g, cost.NewCostEstimate(1, 1, 1))

	m.Replace(g, planner.NewEmptyValuesNode(ids.Next(), []planner.Symbol{"a"}), "test")

	_, ok := m.GetStats(g)
	assert.False(t, ok, "estimates of the old representative must not survive")
	_, ok = m.GetCost(g)
	assert.False(t, ok)

	// The slot is writable again for the new representative.
	m.StoreStats(g, cost.NewStatsEstimate(0))
}

func TestGroupIDsAreAscending(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	limit, _, _ := buildChain(ids)
	m := New(ids, limit)

	groupIDs := m.GroupIDs()
	require.Len(t, groupIDs, 3)
	for i := 1; i < len(groupIDs); i++ {
		assert.Less(t, groupIDs[i-1], groupIDs[i])
	}
}
