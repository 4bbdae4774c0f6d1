package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// OutputNode is the root of every plan: it binds the query's visible column
// names to the symbols that produce them. The symbols it lists are the ones
// column-pruning rules must never discard.
type OutputNode struct {
	id          PlanNodeID
	Source      PlanNode
	ColumnNames []string
	outputs     []Symbol
}

func NewOutputNode(id PlanNodeID, source PlanNode, columnNames []string, outputs []Symbol) *OutputNode {
	common.Assert(len(columnNames) == len(outputs),
		"Output has %d column names for %d symbols", len(columnNames), len(outputs))
	return &OutputNode{id: id, Source: source, ColumnNames: columnNames, outputs: outputs}
}

func (n *OutputNode) ID() PlanNodeID { return n.id }

func (n *OutputNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *OutputNode) OutputSymbols() []Symbol { return n.outputs }

func (n *OutputNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Output takes one source, got %d", len(sources))
	return &OutputNode{id: n.id, Source: sources[0], ColumnNames: n.ColumnNames, outputs: n.outputs}
}

func (n *OutputNode) Accept(v Visitor) any { return v.VisitOutput(n) }

func (n *OutputNode) String() string {
	return fmt.Sprintf("Output[%v]", n.ColumnNames)
}
