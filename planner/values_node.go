package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// ValuesNode produces an inline constant relation. An empty Rows slice is
// the canonical empty relation rules rewrite provably-empty subtrees to.
type ValuesNode struct {
	id      PlanNodeID
	outputs []Symbol
	Rows    [][]Expression
}

func NewValuesNode(id PlanNodeID, outputs []Symbol, rows [][]Expression) *ValuesNode {
	return &ValuesNode{id: id, outputs: outputs, Rows: rows}
}

// NewEmptyValuesNode produces a zero-row relation with the given outputs.
func NewEmptyValuesNode(id PlanNodeID, outputs []Symbol) *ValuesNode {
	return &ValuesNode{id: id, outputs: outputs}
}

func (n *ValuesNode) ID() PlanNodeID { return n.id }

func (n *ValuesNode) Sources() []PlanNode { return nil }

func (n *ValuesNode) OutputSymbols() []Symbol { return n.outputs }

func (n *ValuesNode) RowCount() int { return len(n.Rows) }

func (n *ValuesNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 0, "Values takes no sources, got %d", len(sources))
	return n
}

func (n *ValuesNode) Accept(v Visitor) any { return v.VisitValues(n) }

func (n *ValuesNode) String() string {
	return fmt.Sprintf("Values: %d rows", len(n.Rows))
}
