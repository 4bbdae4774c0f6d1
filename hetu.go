// Package hetu wires the optimizer core together: catalog metadata, the
// cached table statistics source, the default calculators and rule set,
// and the iterative driver. Embedding hosts that bring their own rules or
// calculators can assemble the pieces directly from the sub-packages.
package hetu

import (
	"context"

	"github.com/go-kit/log"

	"github.com/rohankumardubey/hetu-sub001/catalog"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/optimizer"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// tableStatsCacheSize bounds the cross-session statistics cache; entries
// are small, the bound only guards against unbounded catalogs.
const tableStatsCacheSize = 1024

// Planner is the top-level container for plan optimization. One Planner
// serves many concurrent sessions; the only state shared between them is
// the read-only catalog and the table statistics cache.
type Planner struct {
	Catalog    *catalog.Catalog
	TableStats *cost.CachingTableStats
	Optimizer  *optimizer.IterativeOptimizer
	Logger     log.Logger
}

func NewPlanner(cat *catalog.Catalog, rules []optimizer.Rule, logger log.Logger) (*Planner, error) {
	tableStats, err := cost.NewCachingTableStats(cat, tableStatsCacheSize)
	if err != nil {
		return nil, err
	}
	if rules == nil {
		rules = optimizer.DefaultRules()
	}
	if logger == nil {
		logger = log.NewNopLogger()
	}
	statsCalculator := cost.NewComposableStatsCalculator(tableStats)
	costCalculator := cost.NewBasicCostCalculator()
	return &Planner{
		Catalog:    cat,
		TableStats: tableStats,
		Optimizer:  optimizer.NewIterativeOptimizer(rules, statsCalculator, costCalculator),
		Logger:     logger,
	}, nil
}

// Optimize runs one independent optimization session over plan. The
// allocators must be the ones that built the plan, so fresh ids and
// symbols never collide with existing ones.
func (p *Planner) Optimize(
	ctx context.Context,
	idAllocator *planner.PlanNodeIDAllocator,
	symbolAllocator *planner.SymbolAllocator,
	plan planner.PlanNode,
) (planner.PlanNode, error) {
	session := optimizer.DefaultSession()
	session.Logger = p.Logger
	return p.Optimizer.Optimize(ctx, session, idAllocator, symbolAllocator, plan)
}
