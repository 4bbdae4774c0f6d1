package cost

import (
	"math"

	"github.com/rohankumardubey/hetu-sub001/planner"
)

// unknownFilterCoefficient is the selectivity assumed for predicates the
// calculator cannot analyze.
const unknownFilterCoefficient = 0.9

// ComposableStatsCalculator derives per-node statistics with simple,
// operator-local estimation logic. Leaf cardinalities come from the table
// stats source; everything else is derived from the children's estimates.
type ComposableStatsCalculator struct {
	tableStats TableStatsSource
}

// NewComposableStatsCalculator builds the default calculator. tableStats
// may be nil, in which case table scans estimate as unknown.
func NewComposableStatsCalculator(tableStats TableStatsSource) *ComposableStatsCalculator {
	return &ComposableStatsCalculator{tableStats: tableStats}
}

func (c *ComposableStatsCalculator) CalculateStats(
	node planner.PlanNode,
	sourceStats StatsProvider,
	lookup planner.Lookup,
	types planner.TypeProvider,
) (PlanNodeStatsEstimate, error) {
	v := &statsVisitor{calc: c, sourceStats: sourceStats, lookup: lookup}
	result := node.Accept(v).(PlanNodeStatsEstimate)
	if v.err != nil {
		return UnknownStats(), v.err
	}
	return result, nil
}

// statsVisitor dispatches estimation per operator kind. Estimation errors
// are carried in err; the returned estimate is then meaningless.
type statsVisitor struct {
	calc        *ComposableStatsCalculator
	sourceStats StatsProvider
	lookup      planner.Lookup
	err         error
}

// statsOf obtains a child's statistics through the provider, so cached and
// group-resolved estimates are reused rather than recomputed.
func (v *statsVisitor) statsOf(child planner.PlanNode) PlanNodeStatsEstimate {
	if v.err != nil {
		return UnknownStats()
	}
	stats, err := v.sourceStats.Stats(child)
	if err != nil {
		v.err = err
		return UnknownStats()
	}
	return stats
}

func (v *statsVisitor) VisitDefault(node planner.PlanNode) any {
	return UnknownStats()
}

func (v *statsVisitor) VisitValues(node *planner.ValuesNode) any {
	return NewStatsEstimate(float64(node.RowCount()))
}

func (v *statsVisitor) VisitTableScan(node *planner.TableScanNode) any {
	if v.calc.tableStats == nil {
		return UnknownStats()
	}
	stats, err := v.calc.tableStats.TableStats(node.Table)
	if err != nil {
		v.err = err
		return UnknownStats()
	}
	if !stats.RowCountKnown() {
		return UnknownStats()
	}
	return NewStatsEstimate(stats.RowCount)
}

func (v *statsVisitor) VisitFilter(node *planner.FilterNode) any {
	source := v.statsOf(node.Source)
	if planner.IsTrueLiteral(node.Predicate) {
		return source
	}
	if planner.IsFalseLiteral(node.Predicate) {
		return NewStatsEstimate(0)
	}
	return NewStatsEstimate(source.OutputRowCount * unknownFilterCoefficient)
}

func (v *statsVisitor) VisitProject(node *planner.ProjectNode) any {
	return v.statsOf(node.Source)
}

func (v *statsVisitor) VisitAggregation(node *planner.AggregationNode) any {
	if len(node.GroupingKeys) == 0 {
		// Global aggregation always produces exactly one row.
		return NewStatsEstimate(1)
	}
	// Without NDV statistics the grouped row count is bounded by the
	// source cardinality.
	return v.statsOf(node.Source)
}

func (v *statsVisitor) VisitLimit(node *planner.LimitNode) any {
	return v.clampToLimit(node.Source, node.Count)
}

func (v *statsVisitor) VisitDistinctLimit(node *planner.DistinctLimitNode) any {
	return v.clampToLimit(node.Source, node.Limit)
}

func (v *statsVisitor) VisitTopN(node *planner.TopNNode) any {
	return v.clampToLimit(node.Source, node.Count)
}

func (v *statsVisitor) VisitSort(node *planner.SortNode) any {
	return v.statsOf(node.Source)
}

func (v *statsVisitor) VisitOutput(node *planner.OutputNode) any {
	return v.statsOf(node.Source)
}

func (v *statsVisitor) clampToLimit(source planner.PlanNode, limit int64) PlanNodeStatsEstimate {
	stats := v.statsOf(source)
	if stats.IsOutputRowCountUnknown() {
		// A limit bounds the output even when the source is unknown.
		return NewStatsEstimate(float64(limit))
	}
	return NewStatsEstimate(math.Min(stats.OutputRowCount, float64(limit)))
}
