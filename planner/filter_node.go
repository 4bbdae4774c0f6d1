package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// FilterNode keeps only the source rows satisfying Predicate.
type FilterNode struct {
	id        PlanNodeID
	Source    PlanNode
	Predicate Expression
}

func NewFilterNode(id PlanNodeID, source PlanNode, predicate Expression) *FilterNode {
	return &FilterNode{id: id, Source: source, Predicate: predicate}
}

func (n *FilterNode) ID() PlanNodeID { return n.id }

func (n *FilterNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *FilterNode) OutputSymbols() []Symbol { return n.Source.OutputSymbols() }

func (n *FilterNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Filter takes one source, got %d", len(sources))
	return &FilterNode{id: n.id, Source: sources[0], Predicate: n.Predicate}
}

func (n *FilterNode) Accept(v Visitor) any { return v.VisitFilter(n) }

func (n *FilterNode) String() string {
	return fmt.Sprintf("Filter: %s", n.Predicate)
}
