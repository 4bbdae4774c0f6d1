package planner

import (
	"fmt"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// Assignment binds one output symbol to the expression computing it.
type Assignment struct {
	Output Symbol
	Expr   Expression
}

// ProjectNode computes a new set of output symbols from its source.
type ProjectNode struct {
	id          PlanNodeID
	Source      PlanNode
	Assignments []Assignment
	outputs     []Symbol
}

func NewProjectNode(id PlanNodeID, source PlanNode, assignments []Assignment) *ProjectNode {
	outputs := make([]Symbol, len(assignments))
	for i, a := range assignments {
		outputs[i] = a.Output
	}
	return &ProjectNode{id: id, Source: source, Assignments: assignments, outputs: outputs}
}

// NewIdentityProjection projects the given symbols through unchanged.
func NewIdentityProjection(id PlanNodeID, source PlanNode, symbols []Symbol) *ProjectNode {
	assignments := make([]Assignment, len(symbols))
	for i, s := range symbols {
		assignments[i] = Assignment{Output: s, Expr: NewSymbolReference(s)}
	}
	return NewProjectNode(id, source, assignments)
}

func (n *ProjectNode) ID() PlanNodeID { return n.id }

func (n *ProjectNode) Sources() []PlanNode { return []PlanNode{n.Source} }

func (n *ProjectNode) OutputSymbols() []Symbol { return n.outputs }

// IsIdentity reports whether every assignment passes a symbol through under
// its own name.
func (n *ProjectNode) IsIdentity() bool {
	for _, a := range n.Assignments {
		ref, ok := a.Expr.(*SymbolReference)
		if !ok || ref.Name != a.Output {
			return false
		}
	}
	return true
}

// ReferencedSymbols returns the symbols the assignments read from the source.
func (n *ProjectNode) ReferencedSymbols() []Symbol {
	var out []Symbol
	for _, a := range n.Assignments {
		out = append(out, SymbolsIn(a.Expr)...)
	}
	return out
}

func (n *ProjectNode) ReplaceSources(sources []PlanNode) PlanNode {
	common.Assert(len(sources) == 1, "Project takes one source, got %d", len(sources))
	return &ProjectNode{id: n.id, Source: sources[0], Assignments: n.Assignments, outputs: n.outputs}
}

func (n *ProjectNode) Accept(v Visitor) any { return v.VisitProject(n) }

func (n *ProjectNode) String() string {
	return fmt.Sprintf("Project: %d columns", len(n.Assignments))
}
