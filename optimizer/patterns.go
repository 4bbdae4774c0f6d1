package optimizer

import (
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// Source extracts a node's single source, resolved through the context's
// Lookup so sub-patterns inspect the concrete node rather than a group
// reference. Nodes without exactly one source yield no candidate.
func Source[T planner.PlanNode]() matching.Property[T, planner.PlanNode] {
	return matching.NewProperty("source", func(node T, ctx any) (planner.PlanNode, bool) {
		sources := node.Sources()
		if len(sources) != 1 {
			return nil, false
		}
		return lookupFrom(ctx).Resolve(sources[0]), true
	})
}

// Sources extracts every source of a node, resolved; each one continues
// its own decomposition path.
func Sources[T planner.PlanNode]() matching.Property[T, planner.PlanNode] {
	return matching.NewMultiProperty("sources", func(node T, ctx any) []planner.PlanNode {
		lookup := lookupFrom(ctx)
		out := make([]planner.PlanNode, len(node.Sources()))
		for i, s := range node.Sources() {
			out[i] = lookup.Resolve(s)
		}
		return out
	})
}

func lookupFrom(ctx any) planner.Lookup {
	if c, ok := ctx.(*Context); ok {
		return c.Lookup
	}
	return planner.NoLookup
}
