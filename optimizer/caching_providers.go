package optimizer

import (
	"github.com/go-kit/log/level"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/memo"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// CachingStatsProvider memoizes statistics per node. Ordinary nodes are
// cached by instance identity, never by structural equality: two
// structurally identical nodes built independently may be mid-rewrite and
// not yet proven equivalent, so they must not share a slot. Group
// references instead go through the memo's group-keyed write-once cache,
// so every reference to a group reuses one stored value.
type CachingStatsProvider struct {
	calculator cost.StatsCalculator
	memo       *memo.Memo // nil when providing stats outside a memo
	lookup     planner.Lookup
	types      planner.TypeProvider
	session    *Session

	// keyed by the node interface value; pointer identity, not structure
	cache map[planner.PlanNode]cost.PlanNodeStatsEstimate
}

func NewCachingStatsProvider(
	calculator cost.StatsCalculator,
	m *memo.Memo,
	lookup planner.Lookup,
	types planner.TypeProvider,
	session *Session,
) *CachingStatsProvider {
	return &CachingStatsProvider{
		calculator: calculator,
		memo:       m,
		lookup:     lookup,
		types:      types,
		session:    session,
		cache:      make(map[planner.PlanNode]cost.PlanNodeStatsEstimate),
	}
}

func (p *CachingStatsProvider) Stats(node planner.PlanNode) (cost.PlanNodeStatsEstimate, error) {
	if ref, ok := node.(*memo.GroupReference); ok {
		common.Assert(p.memo != nil, "group reference %s seen without a memo", ref)
		if stats, ok := p.memo.GetStats(ref.Group); ok {
			return stats, nil
		}
		stats, err := p.compute(p.memo.GetNode(ref.Group))
		if err != nil {
			return cost.UnknownStats(), err
		}
		p.memo.StoreStats(ref.Group, stats)
		return stats, nil
	}

	if stats, ok := p.cache[node]; ok {
		return stats, nil
	}
	stats, err := p.compute(node)
	if err != nil {
		return cost.UnknownStats(), err
	}
	p.cache[node] = stats
	return stats, nil
}

func (p *CachingStatsProvider) compute(node planner.PlanNode) (cost.PlanNodeStatsEstimate, error) {
	stats, err := p.calculator.CalculateStats(node, p, p.lookup, p.types)
	if err == nil {
		return stats, nil
	}
	if isPlannerFailure(err) {
		// Already classified (typically a nested strict-mode failure).
		return cost.UnknownStats(), err
	}
	if p.session.StrictEstimation {
		return cost.UnknownStats(), common.WrapPlannerError(common.EstimationFailed, err,
			"statistics estimation failed for %s", node)
	}
	level.Warn(p.session.Logger).Log("msg", "statistics estimation failed, using unknown estimate",
		"node", node.String(), "err", err)
	return cost.UnknownStats(), nil
}

// CachingCostProvider memoizes cumulative cost per node with the same
// identity-keyed / group-keyed split as CachingStatsProvider.
type CachingCostProvider struct {
	calculator cost.CostCalculator
	stats      cost.StatsProvider
	memo       *memo.Memo
	lookup     planner.Lookup
	types      planner.TypeProvider
	session    *Session

	cache map[planner.PlanNode]cost.PlanCostEstimate
}

func NewCachingCostProvider(
	calculator cost.CostCalculator,
	stats cost.StatsProvider,
	m *memo.Memo,
	lookup planner.Lookup,
	types planner.TypeProvider,
	session *Session,
) *CachingCostProvider {
	return &CachingCostProvider{
		calculator: calculator,
		stats:      stats,
		memo:       m,
		lookup:     lookup,
		types:      types,
		session:    session,
		cache:      make(map[planner.PlanNode]cost.PlanCostEstimate),
	}
}

func (p *CachingCostProvider) Cost(node planner.PlanNode) (cost.PlanCostEstimate, error) {
	if ref, ok := node.(*memo.GroupReference); ok {
		common.Assert(p.memo != nil, "group reference %s seen without a memo", ref)
		if estimate, ok := p.memo.GetCost(ref.Group); ok {
			return estimate, nil
		}
		estimate, err := p.compute(p.memo.GetNode(ref.Group))
		if err != nil {
			return cost.UnknownCost(), err
		}
		p.memo.StoreCost(ref.Group, estimate)
		return estimate, nil
	}

	if estimate, ok := p.cache[node]; ok {
		return estimate, nil
	}
	estimate, err := p.compute(node)
	if err != nil {
		return cost.UnknownCost(), err
	}
	p.cache[node] = estimate
	return estimate, nil
}

func (p *CachingCostProvider) compute(node planner.PlanNode) (cost.PlanCostEstimate, error) {
	estimate, err := p.calculator.CalculateCost(node, p.stats, p, p.lookup, p.types)
	if err == nil {
		return estimate, nil
	}
	if isPlannerFailure(err) {
		return cost.UnknownCost(), err
	}
	if p.session.StrictEstimation {
		return cost.UnknownCost(), common.WrapPlannerError(common.EstimationFailed, err,
			"cost estimation failed for %s", node)
	}
	level.Warn(p.session.Logger).Log("msg", "cost estimation failed, using unknown estimate",
		"node", node.String(), "err", err)
	return cost.UnknownCost(), nil
}

func isPlannerFailure(err error) bool {
	_, ok := common.ErrorCodeOf(err)
	return ok
}
