package planner

import (
	"fmt"
	"strings"
)

type SortOrder int

const (
	Ascending SortOrder = iota
	Descending
)

func (o SortOrder) String() string {
	if o == Descending {
		return "DESC"
	}
	return "ASC"
}

// Ordering pairs a symbol with its sort direction.
type Ordering struct {
	Symbol Symbol
	Order  SortOrder
}

// OrderingScheme describes a required tuple order: sort, top-N and
// limit-with-ties nodes carry one.
type OrderingScheme struct {
	Orderings []Ordering
}

func NewOrderingScheme(orderings ...Ordering) *OrderingScheme {
	return &OrderingScheme{Orderings: orderings}
}

// Symbols returns the ordering symbols in priority order.
func (s *OrderingScheme) Symbols() []Symbol {
	out := make([]Symbol, len(s.Orderings))
	for i, o := range s.Orderings {
		out[i] = o.Symbol
	}
	return out
}

func (s *OrderingScheme) String() string {
	parts := make([]string, len(s.Orderings))
	for i, o := range s.Orderings {
		parts[i] = fmt.Sprintf("%s %s", o.Symbol, o.Order)
	}
	return strings.Join(parts, ", ")
}
