package cost

import (
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// BasicCostCalculator charges cpu proportional to the data a node
// processes and memory for accumulating operators. Cumulative cost is the
// node's local cost plus its children's cumulative costs, obtained through
// the cost provider.
type BasicCostCalculator struct{}

func NewBasicCostCalculator() *BasicCostCalculator {
	return &BasicCostCalculator{}
}

func (c *BasicCostCalculator) CalculateCost(
	node planner.PlanNode,
	stats StatsProvider,
	sourceCosts CostProvider,
	lookup planner.Lookup,
	types planner.TypeProvider,
) (PlanCostEstimate, error) {
	nodeStats, err := stats.Stats(node)
	if err != nil {
		return UnknownCost(), err
	}

	dataSize := nodeStats.OutputRowCount * rowWidth(node.OutputSymbols(), types)

	local := NewCostEstimate(dataSize, 0, 0)
	switch node.(type) {
	case *planner.AggregationNode, *planner.SortNode, *planner.TopNNode, *planner.DistinctLimitNode:
		// Accumulating operators hold their working set in memory.
		local.MemoryCost = dataSize
	}

	total := local
	for _, source := range node.Sources() {
		sourceCost, err := sourceCosts.Cost(source)
		if err != nil {
			return UnknownCost(), err
		}
		total = total.Add(sourceCost)
	}
	return total, nil
}

func rowWidth(symbols []planner.Symbol, types planner.TypeProvider) float64 {
	var width float64
	for _, s := range symbols {
		width += types.Get(s).Width()
	}
	return width
}
