package planner

import (
	"fmt"

	"github.com/tidwall/btree"

	"github.com/rohankumardubey/hetu-sub001/common"
)

// Symbol is a named column/value reference flowing between plan nodes.
// Equality is by name; the type is tracked externally via a TypeProvider.
type Symbol string

func (s Symbol) String() string {
	return string(s)
}

// TypeProvider resolves symbols to their types. It is supplied by the
// analysis phase and consumed read-only during optimization.
type TypeProvider struct {
	types map[Symbol]common.Type
}

func NewTypeProvider(types map[Symbol]common.Type) TypeProvider {
	return TypeProvider{types: types}
}

func (p TypeProvider) Get(s Symbol) common.Type {
	if t, ok := p.types[s]; ok {
		return t
	}
	return common.UnknownType
}

// SymbolAllocator mints fresh symbols during plan rewrites and records
// their types. Names are made unique by suffixing a counter, so rules can
// reuse readable hints.
type SymbolAllocator struct {
	types map[Symbol]common.Type
	next  int
}

func NewSymbolAllocator() *SymbolAllocator {
	return &SymbolAllocator{types: make(map[Symbol]common.Type)}
}

// NewSymbolAllocatorFrom seeds the allocator with the symbols already
// present in a plan so fresh names never collide with existing ones.
func NewSymbolAllocatorFrom(types map[Symbol]common.Type) *SymbolAllocator {
	copied := make(map[Symbol]common.Type, len(types))
	for s, t := range types {
		copied[s] = t
	}
	return &SymbolAllocator{types: copied}
}

func (a *SymbolAllocator) NewSymbol(nameHint string, t common.Type) Symbol {
	s := Symbol(nameHint)
	for {
		if _, taken := a.types[s]; !taken {
			break
		}
		a.next++
		s = Symbol(fmt.Sprintf("%s_%d", nameHint, a.next))
	}
	a.types[s] = t
	return s
}

func (a *SymbolAllocator) Types() TypeProvider {
	return TypeProvider{types: a.types}
}

// SymbolSet is an ordered set of symbols. Rules use it to compute required
// output sets deterministically: iteration order is the symbols' natural
// order, independent of insertion order.
type SymbolSet struct {
	tree *btree.BTreeG[Symbol]
}

func NewSymbolSet(symbols ...Symbol) *SymbolSet {
	set := &SymbolSet{
		tree: btree.NewBTreeG(func(a, b Symbol) bool { return a < b }),
	}
	set.Add(symbols...)
	return set
}

func (s *SymbolSet) Add(symbols ...Symbol) {
	for _, sym := range symbols {
		s.tree.Set(sym)
	}
}

func (s *SymbolSet) Contains(sym Symbol) bool {
	_, ok := s.tree.Get(sym)
	return ok
}

func (s *SymbolSet) ContainsAll(symbols []Symbol) bool {
	for _, sym := range symbols {
		if !s.Contains(sym) {
			return false
		}
	}
	return true
}

func (s *SymbolSet) Len() int {
	return s.tree.Len()
}

// Symbols returns the members in ascending order.
func (s *SymbolSet) Symbols() []Symbol {
	out := make([]Symbol, 0, s.tree.Len())
	s.tree.Scan(func(sym Symbol) bool {
		out = append(out, sym)
		return true
	})
	return out
}
