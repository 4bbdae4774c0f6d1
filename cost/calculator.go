package cost

import (
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// StatsProvider returns the statistics estimate for a plan node. The
// caching provider in the optimizer implements it; calculators receive one
// to obtain their children's statistics without inspecting structure.
type StatsProvider interface {
	Stats(node planner.PlanNode) (PlanNodeStatsEstimate, error)
}

// CostProvider returns the cumulative cost estimate for a subtree.
type CostProvider interface {
	Cost(node planner.PlanNode) (PlanCostEstimate, error)
}

// StatsCalculator is the pluggable strategy computing one node's statistics
// from its local semantics plus its children's statistics (obtained through
// sourceStats, never by walking structure). Connector- or catalog-backed
// implementations plug in here.
type StatsCalculator interface {
	CalculateStats(
		node planner.PlanNode,
		sourceStats StatsProvider,
		lookup planner.Lookup,
		types planner.TypeProvider,
	) (PlanNodeStatsEstimate, error)
}

// CostCalculator is the pluggable strategy computing one node's cumulative
// cost from its statistics and its children's costs.
type CostCalculator interface {
	CalculateCost(
		node planner.PlanNode,
		stats StatsProvider,
		sourceCosts CostProvider,
		lookup planner.Lookup,
		types planner.TypeProvider,
	) (PlanCostEstimate, error)
}
