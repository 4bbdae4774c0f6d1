package planner

// PlanNodeID uniquely identifies one plan node instance for the lifetime of
// a planning session. Rewrites that produce a new node mint a fresh id;
// ReplaceSources keeps the id since the node's semantics are unchanged.
type PlanNodeID int32

// PlanNodeIDAllocator hands out fresh node ids within one planning session.
// Sessions are single-threaded, so no synchronization is needed.
type PlanNodeIDAllocator struct {
	next PlanNodeID
}

func NewPlanNodeIDAllocator() *PlanNodeIDAllocator {
	return &PlanNodeIDAllocator{}
}

func (a *PlanNodeIDAllocator) Next() PlanNodeID {
	id := a.next
	a.next++
	return id
}

// PlanNode represents one operator in a query plan.
// It is immutable once constructed; rewrites produce new instances.
//
// The optimizer core does not require a fixed closed set of operators: any
// type providing this capability set can participate. Visitors route
// operators they do not know to VisitDefault.
type PlanNode interface {
	// ID returns the node's identity, stable for the node's lifetime.
	ID() PlanNodeID

	// Sources returns the child plan nodes in order.
	Sources() []PlanNode

	// OutputSymbols returns the symbols produced by this node, in order.
	OutputSymbols() []Symbol

	// ReplaceSources returns a copy of this node with the given children.
	// The copy keeps this node's id. len(sources) must match Sources().
	ReplaceSources(sources []PlanNode) PlanNode

	// Accept dispatches to the visitor method for this operator kind.
	Accept(v Visitor) any

	// String returns a one-line description of the operator.
	String() string
}

// Visitor dispatches over the built-in operator kinds. Operators outside
// the closed set (group references, host-defined nodes) are routed to
// VisitDefault.
type Visitor interface {
	VisitDefault(node PlanNode) any
	VisitValues(node *ValuesNode) any
	VisitTableScan(node *TableScanNode) any
	VisitFilter(node *FilterNode) any
	VisitProject(node *ProjectNode) any
	VisitAggregation(node *AggregationNode) any
	VisitLimit(node *LimitNode) any
	VisitDistinctLimit(node *DistinctLimitNode) any
	VisitTopN(node *TopNNode) any
	VisitSort(node *SortNode) any
	VisitOutput(node *OutputNode) any
}

// BaseVisitor routes every operator to VisitDefault. Embed it to implement
// only the kinds a visitor cares about.
type BaseVisitor struct {
	Default func(node PlanNode) any
}

func (b BaseVisitor) VisitDefault(node PlanNode) any            { return b.Default(node) }
func (b BaseVisitor) VisitValues(node *ValuesNode) any          { return b.VisitDefault(node) }
func (b BaseVisitor) VisitTableScan(node *TableScanNode) any    { return b.VisitDefault(node) }
func (b BaseVisitor) VisitFilter(node *FilterNode) any          { return b.VisitDefault(node) }
func (b BaseVisitor) VisitProject(node *ProjectNode) any        { return b.VisitDefault(node) }
func (b BaseVisitor) VisitAggregation(node *AggregationNode) any { return b.VisitDefault(node) }
func (b BaseVisitor) VisitLimit(node *LimitNode) any            { return b.VisitDefault(node) }
func (b BaseVisitor) VisitDistinctLimit(node *DistinctLimitNode) any {
	return b.VisitDefault(node)
}
func (b BaseVisitor) VisitTopN(node *TopNNode) any     { return b.VisitDefault(node) }
func (b BaseVisitor) VisitSort(node *SortNode) any     { return b.VisitDefault(node) }
func (b BaseVisitor) VisitOutput(node *OutputNode) any { return b.VisitDefault(node) }
