package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// SortNode orders the source rows by the given scheme.
type SortNode struct {
	id       PlanNodeID
	Source   PlanNode
	Ordering *OrderingScheme
}

func NewSortNode(id PlanNodeID, source PlanNode, ordering *OrderingScheme) *SortNode {
	return &SortNode{id: id, Source: source, Ordering: ordering}
}

func (n *SortNode) ID() PlanNodeID { return n.id }

func (n *SortNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *SortNode) OutputSymbols() []Symbol { return n.Source.OutputSymbols() }

func (n *SortNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Sort takes one source, got %d", len(sources))
	return &SortNode{id: n.id, Source: sources[0], Ordering: n.Ordering}
}

func (n *SortNode) Accept(v Visitor) any { return v.VisitSort(n) }

func (n *SortNode) String() string {
	return fmt.Sprintf("Sort: (%s)", n.Ordering)
}
