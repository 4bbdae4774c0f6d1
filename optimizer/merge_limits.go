package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// MergeLimits collapses a stack of two plain limits into one with the
// smaller count. Limits with ties are left alone: their tie expansion is
// not composable.
type MergeLimits struct {
	pattern *matching.Pattern[*planner.LimitNode]
	child   *matching.Capture[*planner.LimitNode]
}

func NewMergeLimits() *MergeLimits {
	child := matching.NewCapture[*planner.LimitNode]("childLimit")
	plain := func(n *planner.LimitNode, _ any) bool { return !n.WithTies() }
	pattern := matching.With(
		matching.TypeOf[*planner.LimitNode]().Matching(plain),
		Source[*planner.LimitNode](),
		matching.TypeOf[*planner.LimitNode]().Matching(plain).CapturedAs(child),
	)
	return &MergeLimits{pattern: pattern, child: child}
}

func (r *MergeLimits) Name() string {
	return "MergeLimits"
}

func (r *MergeLimits) Pattern() matching.Matcher {
	return r.pattern
}

func (r *MergeLimits) Apply(node planner.PlanNode, captures *matching.Captures, ctx *Context) (Result, error) {
	parent := node.(*planner.LimitNode)
	child := matching.CaptureValue(captures, r.child)

	count := parent.Count
	if child.Count < count {
		count = child.Count
	}
	return Rewrite(planner.NewLimitNode(ctx.IDAllocator.Next(), child.Source, count, nil)), nil
}
