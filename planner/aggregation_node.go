package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// Aggregation computes one aggregate function over the source rows of each
// group. Function semantics live in the execution engine; the optimizer
// treats the name as opaque.
type Aggregation struct {
	Output   Symbol
	Function string
	Args     []Expression
}

// AggregationNode groups the source rows by GroupingKeys and computes
// Aggregations per group. With no aggregations it is a plain
// duplicate-elimination over the grouping keys.
type AggregationNode struct {
	id           PlanNodeID
	Source       PlanNode
	GroupingKeys []Symbol
	Aggregations []Aggregation
	outputs      []Symbol
}

func NewAggregationNode(id PlanNodeID, source PlanNode, groupingKeys []Symbol, aggregations []Aggregation) *AggregationNode {
	outputs := make([]Symbol, 0, len(groupingKeys)+len(aggregations))
	outputs = append(outputs, groupingKeys...)
	for _, agg := range aggregations {
		outputs = append(outputs, agg.Output)
	}
	return &AggregationNode{
		id:           id,
		Source:       source,
		GroupingKeys: groupingKeys,
		Aggregations: aggregations,
		outputs:      outputs,
	}
}

// NewDistinctNode builds the grouped-aggregation form of SELECT DISTINCT
// over the given symbols.
func NewDistinctNode(id PlanNodeID, source PlanNode, symbols []Symbol) *AggregationNode {
	return NewAggregationNode(id, source, symbols, nil)
}

func (n *AggregationNode) ID() PlanNodeID { return n.id }

func (n *AggregationNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *AggregationNode) OutputSymbols() []Symbol { return n.outputs }

// ProducesDistinctRows reports whether the node is a pure
// duplicate-elimination: no aggregate functions, only grouping keys.
func (n *AggregationNode) ProducesDistinctRows() bool {
	return len(n.Aggregations) == 0
}

func (n *AggregationNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Aggregation takes one source, got %d", len(sources))
	return &AggregationNode{
		id:           n.id,
		Source:       sources[0],
		GroupingKeys: n.GroupingKeys,
		Aggregations: n.Aggregations,
		outputs:      n.outputs,
	}
}

func (n *AggregationNode) Accept(v Visitor) any { return v.VisitAggregation(n) }

func (n *AggregationNode) String() string {
	return fmt.Sprintf("Aggregate: GroupBy(%v), %d aggregations", n.GroupingKeys, len(n.Aggregations))
}
