package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// DistinctLimitNode produces the first Limit distinct rows of the source,
// projected to DistinctSymbols. It arises from SELECT DISTINCT ... LIMIT n
// and stops consuming its source once Limit distinct rows are seen.
type DistinctLimitNode struct {
	id              PlanNodeID
	Source          PlanNode
	Limit           int64
	DistinctSymbols []Symbol
}

func NewDistinctLimitNode(id PlanNodeID, source PlanNode, limit int64, distinctSymbols []Symbol) *DistinctLimitNode {
	return &DistinctLimitNode{id: id, Source: source, Limit: limit, DistinctSymbols: distinctSymbols}
}

func (n *DistinctLimitNode) ID() PlanNodeID { return n.id }

func (n *DistinctLimitNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *DistinctLimitNode) OutputSymbols() []Symbol { return n.DistinctSymbols }

func (n *DistinctLimitNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "DistinctLimit takes one source, got %d", len(sources))
	return &DistinctLimitNode{id: n.id, Source: sources[0], Limit: n.Limit, DistinctSymbols: n.DistinctSymbols}
}

func (n *DistinctLimitNode) Accept(v Visitor) any { return v.VisitDistinctLimit(n) }

func (n *DistinctLimitNode) String() string {
	return fmt.Sprintf("DistinctLimit: %d over %v", n.Limit, n.DistinctSymbols)
}
