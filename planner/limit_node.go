package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// LimitNode truncates the source to Count rows. A non-nil Ties scheme makes
// it a WITH TIES limit: rows comparing equal to the last kept row under the
// scheme are kept as well, so the ordering symbols stay semantically load
// bearing even though the node does not sort.
type LimitNode struct {
	id     PlanNodeID
	Source PlanNode
	Count  int64
	Ties   *OrderingScheme
}

func NewLimitNode(id PlanNodeID, source PlanNode, count int64, ties *OrderingScheme) *LimitNode {
	return &LimitNode{id: id, Source: source, Count: count, Ties: ties}
}

func (n *LimitNode) ID() PlanNodeID { return n.id }

func (n *LimitNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *LimitNode) OutputSymbols() []Symbol { return n.Source.OutputSymbols() }

func (n *LimitNode) WithTies() bool { return n.Ties != nil }

func (n *LimitNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Limit takes one source, got %d", len(sources))
	return &LimitNode{id: n.id, Source: sources[0], Count: n.Count, Ties: n.Ties}
}

func (n *LimitNode) Accept(v Visitor) any { return v.VisitLimit(n) }

func (n *LimitNode) String() string {
	if n.WithTies() {
		return fmt.Sprintf("Limit: %d with ties (%s)", n.Count, n.Ties)
	}
	return fmt.Sprintf("Limit: %d", n.Count)
}
