// Package optimizer drives rule-based iterative plan optimization: it owns
// the rule abstraction, the session budget, the caching estimate providers
// and the fixpoint loop over the memo.
package optimizer

import (
	"context"
	"time"

	"github.com/go-kit/log/level"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/matching"
	"github.com/rohankumardubey/hetu-sub001/memo"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// IterativeOptimizer owns a rule registry and repeatedly applies it over a
// memo until no rule produces a change anywhere (fixpoint) or the session
// budget runs out. The optimizer itself is stateless across calls; every
// Optimize invocation builds its own memo and providers, so concurrent
// queries plan independently.
type IterativeOptimizer struct {
	rules           *RuleIndex
	statsCalculator cost.StatsCalculator
	costCalculator  cost.CostCalculator
}

func NewIterativeOptimizer(rules []Rule, statsCalculator cost.StatsCalculator, costCalculator cost.CostCalculator) *IterativeOptimizer {
	return &IterativeOptimizer{
		rules:           NewRuleIndex(rules...),
		statsCalculator: statsCalculator,
		costCalculator:  costCalculator,
	}
}

// Optimize rewrites plan to the cheapest equivalent the rule set can reach.
// It fails with a BudgetExceeded error when the iteration ceiling or
// deadline is hit before a fixpoint; the partially-rewritten memo is never
// exposed. The deadline is checked between rule applications, not only
// between passes, so a runaway rule pair is interrupted promptly.
func (o *IterativeOptimizer) Optimize(
	ctx context.Context,
	session *Session,
	idAllocator *planner.PlanNodeIDAllocator,
	symbolAllocator *planner.SymbolAllocator,
	plan planner.PlanNode,
) (planner.PlanNode, error) {
	m := memo.New(idAllocator, plan)
	types := symbolAllocator.Types()

	statsProvider := NewCachingStatsProvider(o.statsCalculator, m, m, types, session)
	costProvider := NewCachingCostProvider(o.costCalculator, statsProvider, m, m, types, session)
	ruleCtx := &Context{
		Lookup:          m,
		IDAllocator:     idAllocator,
		SymbolAllocator: symbolAllocator,
		Stats:           statsProvider,
		Cost:            costProvider,
		Session:         session,
	}

	deadline := time.Now().Add(session.Timeout)
	if ctxDeadline, ok := ctx.Deadline(); ok && ctxDeadline.Before(deadline) {
		deadline = ctxDeadline
	}

	invocations := 0
	progress := true
	for progress {
		progress = false
		for _, g := range m.GroupIDs() {
			// A rewrite earlier in this pass may have evicted the group.
			if !m.HasGroup(g) {
				continue
			}
			changed, err := o.exploreGroup(ctx, m, g, ruleCtx, deadline, &invocations)
			if err != nil {
				return nil, err
			}
			if changed {
				progress = true
			}
		}
	}

	return m.Extract(m.RootGroup()), nil
}

// exploreGroup matches every candidate rule against the group's current
// representative and commits the first successful rewrite. A result
// identical to the representative counts as no change, so a rule may
// legally return a no-op "success" without defeating fixpoint detection.
func (o *IterativeOptimizer) exploreGroup(
	ctx context.Context,
	m *memo.Memo,
	g memo.GroupID,
	ruleCtx *Context,
	deadline time.Time,
	invocations *int,
) (bool, error) {
	node := m.GetNode(g)
	for _, rule := range o.rules.CandidatesFor(node) {
		if err := checkBudget(ctx, ruleCtx.Session, deadline, *invocations); err != nil {
			return false, err
		}
		*invocations++

		match, ok := firstMatch(rule.Pattern(), node, ruleCtx)
		if !ok {
			continue
		}
		result, err := rule.Apply(node, match.Captures, ruleCtx)
		if err != nil {
			return false, err
		}
		if result.Empty() || result.Node() == node {
			continue
		}

		m.Replace(g, result.Node(), rule.Name())
		level.Debug(ruleCtx.Session.Logger).Log("msg", "applied rule",
			"rule", rule.Name(), "group", int(g))
		return true, nil
	}
	return false, nil
}

// firstMatch consumes only the first satisfying decomposition path; the
// lazy match stream ensures no further paths are evaluated.
func firstMatch(pattern matching.Matcher, node planner.PlanNode, ruleCtx *Context) (matching.AnyMatch, bool) {
	for m := range pattern.MatchAny(node, ruleCtx) {
		return m, true
	}
	return matching.AnyMatch{}, false
}

func checkBudget(ctx context.Context, session *Session, deadline time.Time, invocations int) error {
	if invocations >= session.MaxRuleInvocations {
		return common.NewPlannerError(common.BudgetExceeded,
			"optimizer did not converge within %d rule invocations, likely a cycling rule set",
			session.MaxRuleInvocations)
	}
	if err := ctx.Err(); err != nil {
		return common.WrapPlannerError(common.BudgetExceeded, err, "optimization interrupted")
	}
	if time.Now().After(deadline) {
		return common.NewPlannerError(common.BudgetExceeded,
			"optimizer timeout of %s exhausted before reaching a fixpoint", session.Timeout)
	}
	return nil
}
