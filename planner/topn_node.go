package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// TopNNode represents a combined Sort + Limit operation.
type TopNNode struct {
	id       PlanNodeID
	Source   PlanNode
	Count    int64
	Ordering *OrderingScheme
}

func NewTopNNode(id PlanNodeID, source PlanNode, count int64, ordering *OrderingScheme) *TopNNode {
	return &TopNNode{id: id, Source: source, Count: count, Ordering: ordering}
}

func (n *TopNNode) ID() PlanNodeID { return n.id }

func (n *TopNNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *TopNNode) OutputSymbols() []Symbol { return n.Source.OutputSymbols() }

func (n *TopNNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "TopN takes one source, got %d", len(sources))
	return &TopNNode{id: n.id, Source: sources[0], Count: n.Count, Ordering: n.Ordering}
}

func (n *TopNNode) Accept(v Visitor) any { return v.VisitTopN(n) }

func (n *TopNNode) String() string {
	return fmt.Sprintf("TopN: %d by (%s)", n.Count, n.Ordering)
}
