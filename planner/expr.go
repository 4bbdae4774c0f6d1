package planner

import (
	"fmt"
	"strings"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// Expression is a node in a scalar expression tree. The optimizer core does
// not evaluate expressions; it only inspects their structure (which symbols
// they reference, whether a predicate is trivially true or false).
// Expressions are stateless and immutable.
type Expression interface {
	// String returns a string representation of the expression.
	String() string
}

// SymbolReference refers to a symbol produced by a source node.
type SymbolReference struct {
	Name Symbol
}

func NewSymbolReference(s Symbol) *SymbolReference {
	return &SymbolReference{Name: s}
}

func (e *SymbolReference) String() string {
	return string(e.Name)
}

// Constant is a literal value. The core never interprets Value beyond
// boolean short-circuit checks.
type Constant struct {
	Type  common.Type
	Value any
}

func NewConstant(t common.Type, v any) *Constant {
	return &Constant{Type: t, Value: v}
}

// TrueLiteral and FalseLiteral are the canonical boolean constants used by
// predicate simplification.
var (
	TrueLiteral  = &Constant{Type: common.BooleanType, Value: true}
	FalseLiteral = &Constant{Type: common.BooleanType, Value: false}
)

func (e *Constant) String() string {
	if e.Type == common.VarcharType {
		return fmt.Sprintf("'%v'", e.Value)
	}
	return fmt.Sprintf("%v", e.Value)
}

type ComparisonOp int

const (
	Equal ComparisonOp = iota
	NotEqual
	LessThan
	LessThanOrEqual
	GreaterThan
	GreaterThanOrEqual
)

func (op ComparisonOp) String() string {
	switch op {
	case Equal:
		return "="
	case NotEqual:
		return "<>"
	case LessThan:
		return "<"
	case LessThanOrEqual:
		return "<="
	case GreaterThan:
		return ">"
	case GreaterThanOrEqual:
		return ">="
	}
	return "?"
}

type Comparison struct {
	Op    ComparisonOp
	Left  Expression
	Right Expression
}

func NewComparison(op ComparisonOp, left, right Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func (e *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left, e.Op, e.Right)
}

type LogicalOp int

const (
	And LogicalOp = iota
	Or
)

func (op LogicalOp) String() string {
	if op == And {
		return "AND"
	}
	return "OR"
}

type Logical struct {
	Op    LogicalOp
	Terms []Expression
}

func NewLogical(op LogicalOp, terms ...Expression) *Logical {
	return &Logical{Op: op, Terms: terms}
}

func (e *Logical) String() string {
	parts := make([]string, len(e.Terms))
	for i, t := range e.Terms {
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, " "+e.Op.String()+" ") + ")"
}

// SymbolsIn returns every symbol referenced anywhere in the expression.
func SymbolsIn(expr Expression) []Symbol {
	var out []Symbol
	collectSymbols(expr, &out)
	return out
}

func collectSymbols(expr Expression, out *[]Symbol) {
	switch e := expr.(type) {
	case *SymbolReference:
		*out = append(*out, e.Name)
	case *Comparison:
		collectSymbols(e.Left, out)
		collectSymbols(e.Right, out)
	case *Logical:
		for _, t := range e.Terms {
			collectSymbols(t, out)
		}
	}
}

// IsTrueLiteral reports whether expr is the constant TRUE.
func IsTrueLiteral(expr Expression) bool {
	c, ok := expr.(*Constant)
	return ok && c.Type == common.BooleanType && c.Value == true
}

// IsFalseLiteral reports whether expr is the constant FALSE.
func IsFalseLiteral(expr Expression) bool {
	c, ok := expr.(*Constant)
	return ok && c.Type == common.BooleanType && c.Value == false
}
