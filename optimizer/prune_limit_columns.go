package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// PruneLimitColumns narrows the input of a limit under a project: when the
// project does not read every column the limit emits, a narrowing identity
// projection is pushed below the limit. The child's new output set is
// exactly the union of the symbols the project references and, for a limit
// with ties, the tie-break ordering symbols — which stay semantically load
// bearing even though nothing above reads them.
type PruneLimitColumns struct {
	pattern *matching.Pattern[*planner.ProjectNode]
	limit   *matching.Capture[*planner.LimitNode]
}

func NewPruneLimitColumns() *PruneLimitColumns {
	limit := matching.NewCapture[*planner.LimitNode]("limit")
	pattern := matching.With(
		matching.TypeOf[*planner.ProjectNode](),
		Source[*planner.ProjectNode](),
		matching.TypeOf[*planner.LimitNode]().CapturedAs(limit),
	)
	return &PruneLimitColumns{pattern: pattern, limit: limit}
}

func (r *PruneLimitColumns) Name() string {
	return "PruneLimitColumns"
}

func (r *PruneLimitColumns) Pattern() matching.Matcher {
	return r.pattern
}

func (r *PruneLimitColumns) Apply(node planner.PlanNode, captures *matching.Captures, ctx *Context) (Result, error) {
	project := node.(*planner.ProjectNode)
	limit := matching.CaptureValue(captures, r.limit)

	required := planner.NewSymbolSet(project.ReferencedSymbols()...)
	if limit.WithTies() {
		required.Add(limit.Ties.Symbols()...)
	}

	if required.ContainsAll(limit.OutputSymbols()) {
		return NoChange(), nil
	}

	pruned := planner.NewIdentityProjection(ctx.IDAllocator.Next(), limit.Source, required.Symbols())
	newLimit := limit.ReplaceSources([]planner.PlanNode{pruned})
	return Rewrite(project.ReplaceSources([]planner.PlanNode{newLimit})), nil
}
