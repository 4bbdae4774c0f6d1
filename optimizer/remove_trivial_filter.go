package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// RemoveTrivialFilter drops filters whose predicate is constant: TRUE
// passes the source through, FALSE yields an empty values node.
type RemoveTrivialFilter struct {
	pattern *matching.Pattern[*planner.FilterNode]
}

func NewRemoveTrivialFilter() *RemoveTrivialFilter {
	return &RemoveTrivialFilter{
		pattern: matching.TypeOf[*planner.FilterNode](),
	}
}

func (r *RemoveTrivialFilter) Name() string {
	return "RemoveTrivialFilter"
}

func (r *RemoveTrivialFilter) Pattern() matching.Matcher {
	return r.pattern
}

func (r *RemoveTrivialFilter) Apply(node planner.PlanNode, _ *matching.Captures, ctx *Context) (Result, error) {
	n := node.(*planner.FilterNode)

	if planner.IsTrueLiteral(n.Predicate) {
		return Rewrite(n.Source), nil
	}
	if planner.IsFalseLiteral(n.Predicate) {
		return Rewrite(planner.NewEmptyValuesNode(ctx.IDAllocator.Next(), n.OutputSymbols())), nil
	}
	return NoChange(), nil
}
