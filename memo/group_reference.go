package memo

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// GroupReference is the placeholder plan node standing in for "the current
// representative of group G". Inside the memo every source is one of
// these, so exploring an alternative never copies subtrees. A
// GroupReference must never survive into the final, fully-resolved plan.
type GroupReference struct {
	id      planner.PlanNodeID
	Group   GroupID
	outputs []planner.Symbol
}

func NewGroupReference(id planner.PlanNodeID, group GroupID, outputs []planner.Symbol) *GroupReference {
	return &GroupReference{id: id, Group: group, outputs: outputs}
}

func (n *GroupReference) ID() planner.PlanNodeID { return n.id }

func (n *GroupReference) Sources() []planner.PlanNode { return nil }

func (n *GroupReference) OutputSymbols() []planner.Symbol { return n.outputs }

func (n *GroupReference) ReplaceSources(sources []planner.PlanNode) planner.PlanNode {
	common.Assert(len(sources) == 0, "GroupReference takes no sources, got %d", len(sources))
	return n
}

func (n *GroupReference) Accept(v planner.Visitor) any { return v.VisitDefault(n) }

func (n *GroupReference) String() string {
	return fmt.Sprintf("GroupReference: G%d", n.Group)
}
