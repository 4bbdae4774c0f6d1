package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// RemoveRedundantLimit elides limits that cannot take effect: a limit of 0
// becomes an empty values node, and a limit larger than the source's
// proven cardinality disappears entirely.
type RemoveRedundantLimit struct {
	pattern *matching.Pattern[*planner.LimitNode]
}

func NewRemoveRedundantLimit() *RemoveRedundantLimit {
	return &RemoveRedundantLimit{
		pattern: matching.TypeOf[*planner.LimitNode](),
	}
}

func (r *RemoveRedundantLimit) Name() string {
	return "RemoveRedundantLimit"
}

func (r *RemoveRedundantLimit) Pattern() matching.Matcher {
	return r.pattern
}

func (r *RemoveRedundantLimit) Apply(node planner.PlanNode, _ *matching.Captures, ctx *Context) (Result, error) {
	n := node.(*planner.LimitNode)

	if n.Count == 0 {
		return Rewrite(planner.NewEmptyValuesNode(ctx.IDAllocator.Next(), n.OutputSymbols())), nil
	}

	stats, err := ctx.Stats.Stats(n.Source)
	if err != nil {
		return NoChange(), err
	}
	if !stats.IsOutputRowCountUnknown() && stats.OutputRowCount <= float64(n.Count) {
		return Rewrite(n.Source), nil
	}
	return NoChange(), nil
}
