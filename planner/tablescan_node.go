package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// TableScanNode is the leaf reading a catalog table. The actual reader is a
// connector concern; the optimizer only needs the table identity and the
// symbol-to-column binding for statistics.
type TableScanNode struct {
	id      PlanNodeID
	Table   common.ObjectID
	outputs []Symbol
	// Assignments maps each output symbol to the table column it reads.
	Assignments map[Symbol]string
}

func NewTableScanNode(id PlanNodeID, table common.ObjectID, outputs []Symbol, assignments map[Symbol]string) *TableScanNode {
	return &TableScanNode{id: id, Table: table, outputs: outputs, Assignments: assignments}
}

func (n *TableScanNode) ID() PlanNodeID { return n.id }

func (n *TableScanNode) Sources() []PlanNode { return nil }

func (n *TableScanNode) OutputSymbols() []Symbol { return n.outputs }

func (n *TableScanNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 0, "TableScan takes no sources, got %d", len(sources))
	return n
}

func (n *TableScanNode) Accept(v Visitor) any { return v.VisitTableScan(n) }

func (n *TableScanNode) String() string {
	return fmt.Sprintf("TableScan: table %d", n.Table)
}
