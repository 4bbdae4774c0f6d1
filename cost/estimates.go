// Package cost defines the statistics and cost estimates the optimizer
// trades in, and the pluggable calculator strategies that produce them.
// Calculators are pure functions of a node's local semantics and its
// children's already-computed estimates; they never touch physical
// execution.
package cost

import (
	"fmt"
	"math"
)

// PlanNodeStatsEstimate estimates the relation a plan node produces.
// NaN output row count is the explicit "unknown" sentinel, distinct from
// zero rows.
type PlanNodeStatsEstimate struct {
	OutputRowCount float64
}

// UnknownStats returns the estimate used when nothing can be derived.
func UnknownStats() PlanNodeStatsEstimate {
	return PlanNodeStatsEstimate{OutputRowCount: math.NaN()}
}

func NewStatsEstimate(outputRowCount float64) PlanNodeStatsEstimate {
	return PlanNodeStatsEstimate{OutputRowCount: outputRowCount}
}

func (e PlanNodeStatsEstimate) IsOutputRowCountUnknown() bool {
	return math.IsNaN(e.OutputRowCount)
}

func (e PlanNodeStatsEstimate) String() string {
	if e.IsOutputRowCountUnknown() {
		return "stats{rows: ?}"
	}
	return fmt.Sprintf("stats{rows: %.1f}", e.OutputRowCount)
}

// PlanCostEstimate estimates the execution cost of a subtree in abstract
// cpu/memory/network units. NaN components mean the cost is unknown.
type PlanCostEstimate struct {
	CPUCost     float64
	MemoryCost  float64
	NetworkCost float64
}

func ZeroCost() PlanCostEstimate {
	return PlanCostEstimate{}
}

// UnknownCost returns the estimate used when any input was unknown.
func UnknownCost() PlanCostEstimate {
	nan := math.NaN()
	return PlanCostEstimate{CPUCost: nan, MemoryCost: nan, NetworkCost: nan}
}

func NewCostEstimate(cpu, memory, network float64) PlanCostEstimate {
	return PlanCostEstimate{CPUCost: cpu, MemoryCost: memory, NetworkCost: network}
}

func (e PlanCostEstimate) IsUnknown() bool {
	return math.IsNaN(e.CPUCost) || math.IsNaN(e.MemoryCost) || math.IsNaN(e.NetworkCost)
}

// Add combines two estimates component-wise. Unknown propagates.
func (e PlanCostEstimate) Add(other PlanCostEstimate) PlanCostEstimate {
	return PlanCostEstimate{
		CPUCost:     e.CPUCost + other.CPUCost,
		MemoryCost:  e.MemoryCost + other.MemoryCost,
		NetworkCost: e.NetworkCost + other.NetworkCost,
	}
}

func (e PlanCostEstimate) String() string {
	if e.IsUnknown() {
		return "cost{?}"
	}
	return fmt.Sprintf("cost{cpu: %.1f, mem: %.1f, net: %.1f}", e.CPUCost, e.MemoryCost, e.NetworkCost)
}
