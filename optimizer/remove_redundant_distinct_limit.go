package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// RemoveRedundantDistinctLimit elides a distinct-limit whose work is
// provably unnecessary:
//   - limit 0 produces nothing: replace with an empty values node;
//   - a source emitting at most one row is already distinct and within any
//     positive limit: the source replaces the node directly;
//   - a source emitting at most `limit` distinct candidates never trips
//     the limit: only the duplicate elimination remains.
type RemoveRedundantDistinctLimit struct {
	pattern *matching.Pattern[*planner.DistinctLimitNode]
}

func NewRemoveRedundantDistinctLimit() *RemoveRedundantDistinctLimit {
	return &RemoveRedundantDistinctLimit{
		pattern: matching.TypeOf[*planner.DistinctLimitNode](),
	}
}

func (r *RemoveRedundantDistinctLimit) Name() string {
	return "RemoveRedundantDistinctLimit"
}

func (r *RemoveRedundantDistinctLimit) Pattern() matching.Matcher {
	return r.pattern
}

func (r *RemoveRedundantDistinctLimit) Apply(node planner.PlanNode, _ *matching.Captures, ctx *Context) (Result, error) {
	n := node.(*planner.DistinctLimitNode)

	if n.Limit == 0 {
		return Rewrite(planner.NewEmptyValuesNode(ctx.IDAllocator.Next(), n.OutputSymbols())), nil
	}

	stats, err := ctx.Stats.Stats(n.Source)
	if err != nil {
		return NoChange(), err
	}
	if stats.IsOutputRowCountUnknown() {
		return NoChange(), nil
	}

	if stats.OutputRowCount <= 1 {
		return Rewrite(n.Source), nil
	}
	if stats.OutputRowCount <= float64(n.Limit) {
		return Rewrite(planner.NewDistinctNode(ctx.IDAllocator.Next(), n.Source, n.DistinctSymbols)), nil
	}
	return NoChange(), nil
}
