package optimizer

import (
	"bytes"
	"errors"
	"testing"

	"github.com/go-kit/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/memo"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// countingStatsCalculator counts invocations per node so tests can assert
// that cached estimates are never recomputed.
type countingStatsCalculator struct {
	calls    map[planner.PlanNodeID]int
	delegate cost.StatsCalculator
}

func newCountingStatsCalculator() *countingStatsCalculator {
	return &countingStatsCalculator{
		calls:    make(map[planner.PlanNodeID]int),
		delegate: cost.NewComposableStatsCalculator(nil),
	}
}

func (c *countingStatsCalculator) CalculateStats(
	node planner.PlanNode,
	sourceStats cost.StatsProvider,
	lookup planner.Lookup,
	types planner.TypeProvider,
) (cost.PlanNodeStatsEstimate, error) {
	c.calls[node.ID()]++
	return c.delegate.CalculateStats(node, sourceStats, lookup, types)
}

type failingStatsCalculator struct{}

func (failingStatsCalculator) CalculateStats(
	node planner.PlanNode,
	sourceStats cost.StatsProvider,
	lookup planner.Lookup,
	types planner.TypeProvider,
) (cost.PlanNodeStatsEstimate, error) {
	return cost.UnknownStats(), errors.New("connector stats unavailable")
}

func testSession() *Session {
	s := DefaultSession()
	s.MaxRuleInvocations = 1_000
	return s
}

func buildMemoChain(t *testing.T, ids *planner.PlanNodeIDAllocator) (*memo.Memo, *memo.GroupReference) {
	t.Helper()
	values := planner.NewValuesNode(ids.Next(), []planner.Symbol{"a"}, make([][]planner.Expression, 4))
	limit := planner.NewLimitNode(ids.Next(), values, 2, nil)
	m := memo.New(ids, limit)
	ref, ok := m.GetNode(m.RootGroup()).(*planner.LimitNode).Source.(*memo.GroupReference)
	require.True(t, ok)
	return m, ref
}

func TestGroupStatsComputedOnce(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	m, ref := buildMemoChain(t, ids)

	calc := newCountingStatsCalculator()
	provider := NewCachingStatsProvider(calc, m, m, planner.NewTypeProvider(nil), testSession())

	first, err := provider.Stats(ref)
	require.NoError(t, err)
	assert.Equal(t, 4.0, first.OutputRowCount)

	for i := 0; i < 5; i++ {
		again, err := provider.Stats(ref)
		require.NoError(t, err)
		assert.Equal(t, first, again, "repeated reads return the identical stored value")
	}
	total := 0
	for _, n := range calc.calls {
		total += n
	}
	assert.Equal(t, 1, total, "the calculator runs once per group")
}

func TestIdentityKeyedCacheDoesNotMergeStructuralTwins(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	calc := newCountingStatsCalculator()
	provider := NewCachingStatsProvider(calc, nil, planner.NoLookup, planner.NewTypeProvider(nil), testSession())

	// Two independently constructed, structurally identical instances:
	// they may be mid-rewrite and must not share a cache slot.
	id := ids.Next()
	twinA := planner.NewValuesNode(id, []planner.Symbol{"a"}, make([][]planner.Expression, 2))
	twinB := planner.NewValuesNode(id, []planner.Symbol{"a"}, make([][]planner.Expression, 2))

	_, err := provider.Stats(twinA)
	require.NoError(t, err)
	_, err = provider.Stats(twinB)
	require.NoError(t, err)
	assert.Equal(t, 2, calc.calls[id], "each instance is computed separately")

	_, err = provider.Stats(twinA)
	require.NoError(t, err)
	assert.Equal(t, 2, calc.calls[id], "repeat lookups of the same instance hit the cache")
}

func TestStrictEstimationFailureAborts(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	m, ref := buildMemoChain(t, ids)

	session := testSession()
	session.StrictEstimation = true
	provider := NewCachingStatsProvider(failingStatsCalculator{}, m, m, planner.NewTypeProvider(nil), session)

	_, err := provider.Stats(ref)
	require.Error(t, err)
	code, ok := common.ErrorCodeOf(err)
	require.True(t, ok)
	assert.Equal(t, common.EstimationFailed, code)
}

func TestBestEffortEstimationDegradesToUnknownAndLogs(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	m, ref := buildMemoChain(t, ids)

	var buf bytes.Buffer
	session := testSession()
	session.Logger = log.NewLogfmtLogger(&buf)
	provider := NewCachingStatsProvider(failingStatsCalculator{}, m, m, planner.NewTypeProvider(nil), session)

	stats, err := provider.Stats(ref)
	require.NoError(t, err)
	assert.True(t, stats.IsOutputRowCountUnknown())
	assert.Contains(t, buf.String(), "statistics estimation failed")
}

func TestGroupCostComputedOnce(t *testing.T) {
	ids := planner.NewPlanNodeIDAllocator()
	m, ref := buildMemoChain(t, ids)

	session := testSession()
	types := planner.NewTypeProvider(map[planner.Symbol]common.Type{"a": common.BigintType})
	statsProvider := NewCachingStatsProvider(cost.NewComposableStatsCalculator(nil), m, m, types, session)

	calc := &countingCostCalculator{delegate: cost.NewBasicCostCalculator()}
	provider := NewCachingCostProvider(calc, statsProvider, m, m, types, session)

	first, err := provider.Cost(ref)
	require.NoError(t, err)
	require.False(t, first.IsUnknown())

	for i := 0; i < 5; i++ {
		again, err := provider.Cost(ref)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
	assert.Equal(t, 1, calc.calls, "the cost calculator runs once per group")
}

type countingCostCalculator struct {
	calls    int
	delegate cost.CostCalculator
}

func (c *countingCostCalculator) CalculateCost(
	node planner.PlanNode,
	stats cost.StatsProvider,
	sourceCosts cost.CostProvider,
	lookup planner.Lookup,
	types planner.TypeProvider,
) (cost.PlanCostEstimate, error) {
	c.calls++
	return c.delegate.CalculateCost(node, stats, sourceCosts, lookup, types)
}
