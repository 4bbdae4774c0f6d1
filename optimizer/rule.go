package optimizer

import (
	"reflect"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// Context is handed to every rule application. Sources seen by a rule are
// group references; Lookup resolves them to the group's current
// representative before inspection.
type Context struct {
	Lookup          planner.Lookup
	IDAllocator     *planner.PlanNodeIDAllocator
	SymbolAllocator *planner.SymbolAllocator
	Stats           cost.StatsProvider
	Cost            cost.CostProvider
	Session         *Session
}

// Result is the outcome of one rule application: either "no change" or a
// replacement node for the matched node's group.
type Result struct {
	node planner.PlanNode
}

func NoChange() Result {
	return Result{}
}

func Rewrite(node planner.PlanNode) Result {
	common.Assert(node != nil, "a rewrite requires a replacement node")
	return Result{node: node}
}

func (r Result) Empty() bool {
	return r.node == nil
}

func (r Result) Node() planner.PlanNode {
	return r.node
}

// Rule is a pattern-guarded local plan rewrite. Apply is only invoked on
// nodes the pattern matched. A rule must never reintroduce a shape it (or
// a complementary rule) just removed; the engine does not police
// termination beyond the session budget.
type Rule interface {
	Name() string
	Pattern() matching.Matcher
	Apply(node planner.PlanNode, captures *matching.Captures, ctx *Context) (Result, error)
}

// RuleIndex holds a registry of rules bucketed by the concrete node type
// their pattern targets, so each node only consults plausible rules.
// Rules whose pattern targets an interface type go to the generic bucket
// and are consulted for every node.
type RuleIndex struct {
	byType  map[reflect.Type][]Rule
	generic []Rule
}

func NewRuleIndex(rules ...Rule) *RuleIndex {
	idx := &RuleIndex{byType: make(map[reflect.Type][]Rule)}
	for _, r := range rules {
		target := r.Pattern().TargetType()
		if target.Kind() == reflect.Interface {
			idx.generic = append(idx.generic, r)
			continue
		}
		idx.byType[target] = append(idx.byType[target], r)
	}
	return idx
}

// CandidatesFor returns the rules whose pattern could match node, in
// registration order within each bucket.
func (idx *RuleIndex) CandidatesFor(node planner.PlanNode) []Rule {
	typed := idx.byType[reflect.TypeOf(node)]
	if len(idx.generic) == 0 {
		return typed
	}
	out := make([]Rule, 0, len(typed)+len(idx.generic))
	out = append(out, typed...)
	out = append(out, idx.generic...)
	return out
}
