// Package memo stores the equivalence classes ("groups") of plan nodes
// explored during one optimization session. Groups are identified by plain
// integer ids and cross-reference each other only through those ids, so the
// plan-alternative search space is an explicit, boundable DAG rather than a
// forest of copied subtrees. The memo is transient: it lives for exactly
// one optimization call and is owned by a single goroutine.
package memo

import (
	"sort"

	"github.com/rohankumardubey/hetu-sub001/common"
	"github.com/rohankumardubey/hetu-sub001/cost"
	"github.com/rohankumardubey/hetu-sub001/planner"
)

// GroupID identifies one equivalence class within a Memo.
type GroupID int

// rootCaller marks the root group's external referrer in the reference
// counts, so the root is never evicted.
const rootCaller GroupID = -1

type group struct {
	membership planner.PlanNode
	// incomingReferences counts, per referrer group, how many group
	// references point here. A group with no incoming references is dead.
	incomingReferences map[GroupID]int

	stats *cost.PlanNodeStatsEstimate
	cost  *cost.PlanCostEstimate
}

// Memo owns the full set of groups of one optimization session. The
// canonical top-level node is itself wrapped into the root group, so the
// driver treats the root like any other group.
type Memo struct {
	idAllocator *planner.PlanNodeIDAllocator
	groups      map[GroupID]*group
	nextGroupID GroupID
	root        GroupID
}

// New decomposes plan into groups and returns the memo with the plan's
// node as the root group's representative.
func New(idAllocator *planner.PlanNodeIDAllocator, plan planner.PlanNode) *Memo {
	m := &Memo{
		idAllocator: idAllocator,
		groups:      make(map[GroupID]*group),
	}
	m.root = m.insertGroup(plan)
	m.groups[m.root].incomingReferences[rootCaller]++
	return m
}

// RootGroup returns the id of the group holding the session's top node.
func (m *Memo) RootGroup() GroupID {
	return m.root
}

// GroupCount returns the number of live groups.
func (m *Memo) GroupCount() int {
	return len(m.groups)
}

// HasGroup reports whether the group is still live. Groups die when the
// last reference to them is replaced away.
func (m *Memo) HasGroup(id GroupID) bool {
	_, ok := m.groups[id]
	return ok
}

// GroupIDs returns the live group ids in ascending order, giving the
// driver a deterministic scan order.
func (m *Memo) GroupIDs() []GroupID {
	out := make([]GroupID, 0, len(m.groups))
	for id := range m.groups {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// GetNode returns the group's current representative.
func (m *Memo) GetNode(id GroupID) planner.PlanNode {
	return m.get(id).membership
}

// Resolve implements planner.Lookup: a GroupReference resolves to its
// group's current representative, any other node to itself.
func (m *Memo) Resolve(node planner.PlanNode) planner.PlanNode {
	if ref, ok := node.(*GroupReference); ok {
		return m.GetNode(ref.Group)
	}
	return node
}

// Insert decomposes node's tree into the memo and returns the id of the
// group holding the rewritten node. Children that are not already group
// references are inserted recursively and replaced by references.
func (m *Memo) Insert(node planner.PlanNode) GroupID {
	return m.insertGroup(node)
}

// Replace installs node as the group's new representative. The node's
// concrete children are inserted as new groups; groups orphaned by the
// replacement are evicted together with their cached estimates. The
// group's own cached estimates described the old representative and are
// dropped.
//
// Note the rewrite commits immediately: there is no transaction across the
// memo, and later matching within the same pass sees the new state.
func (m *Memo) Replace(id GroupID, node planner.PlanNode, reason string) planner.PlanNode {
	grp := m.get(id)
	old := grp.membership

	if ref, ok := node.(*GroupReference); ok {
		common.Assert(ref.Group != id, "rule %s produced a self-referential group reference in group %d", reason, id)
		node = m.GetNode(ref.Group)
	} else {
		node = m.insertChildrenAndRewrite(node)
	}
	m.assertReachableWithout(node, id, reason)

	m.incrementReferences(node, id)
	grp.membership = node
	grp.stats = nil
	grp.cost = nil
	m.decrementReferences(old, id)

	return node
}

// Extract returns the group's representative with every group reference
// transitively substituted, yielding a plan fit to hand outside the memo.
func (m *Memo) Extract(id GroupID) planner.PlanNode {
	return m.resolveReferences(m.GetNode(id))
}

// StoreStats caches the group's statistics estimate. The slot is
// write-once for the lifetime of the current representative; storing twice
// means two computations raced within one session, which the
// single-threaded model forbids.
func (m *Memo) StoreStats(id GroupID, stats cost.PlanNodeStatsEstimate) {
	grp := m.get(id)
	common.Assert(grp.stats == nil, "stats already stored for group %d", id)
	grp.stats = &stats
}

// GetStats returns the group's cached statistics estimate, if stored.
func (m *Memo) GetStats(id GroupID) (cost.PlanNodeStatsEstimate, bool) {
	if s := m.get(id).stats; s != nil {
		return *s, true
	}
	return cost.PlanNodeStatsEstimate{}, false
}

// StoreCost caches the group's cost estimate; write-once like StoreStats.
func (m *Memo) StoreCost(id GroupID, estimate cost.PlanCostEstimate) {
	grp := m.get(id)
	common.Assert(grp.cost == nil, "cost already stored for group %d", id)
	grp.cost = &estimate
}

// GetCost returns the group's cached cost estimate, if stored.
func (m *Memo) GetCost(id GroupID) (cost.PlanCostEstimate, bool) {
	if c := m.get(id).cost; c != nil {
		return *c, true
	}
	return cost.PlanCostEstimate{}, false
}

func (m *Memo) get(id GroupID) *group {
	grp, ok := m.groups[id]
	common.Assert(ok, "group %d does not exist or was evicted", id)
	return grp
}

func (m *Memo) insertGroup(node planner.PlanNode) GroupID {
	id := m.nextGroupID
	m.nextGroupID++

	rewritten := m.insertChildrenAndRewrite(node)
	m.groups[id] = &group{
		membership:         rewritten,
		incomingReferences: make(map[GroupID]int),
	}
	m.incrementReferences(rewritten, id)
	return id
}

func (m *Memo) insertChildrenAndRewrite(node planner.PlanNode) planner.PlanNode {
	sources := node.Sources()
	if len(sources) == 0 {
		return node
	}
	changed := false
	rewritten := make([]planner.PlanNode, len(sources))
	for i, source := range sources {
		if ref, ok := source.(*GroupReference); ok {
			rewritten[i] = ref
			continue
		}
		childGroup := m.insertGroup(source)
		rewritten[i] = NewGroupReference(m.idAllocator.Next(), childGroup, source.OutputSymbols())
		changed = true
	}
	if !changed {
		return node
	}
	return node.ReplaceSources(rewritten)
}

func (m *Memo) incrementReferences(node planner.PlanNode, referrer GroupID) {
	for _, source := range node.Sources() {
		ref := source.(*GroupReference)
		m.get(ref.Group).incomingReferences[referrer]++
	}
}

func (m *Memo) decrementReferences(node planner.PlanNode, referrer GroupID) {
	for _, source := range node.Sources() {
		ref := source.(*GroupReference)
		grp := m.get(ref.Group)
		grp.incomingReferences[referrer]--
		common.Assert(grp.incomingReferences[referrer] >= 0,
			"reference count of group %d from group %d went negative", ref.Group, referrer)
		if grp.incomingReferences[referrer] == 0 {
			delete(grp.incomingReferences, referrer)
		}
		if len(grp.incomingReferences) == 0 {
			m.evictGroup(ref.Group)
		}
	}
}

func (m *Memo) evictGroup(id GroupID) {
	grp := m.get(id)
	delete(m.groups, id)
	m.decrementReferences(grp.membership, id)
}

// assertReachableWithout panics if any group reference reachable from node
// leads back to the group being replaced. Cross-references are plain ids,
// so this is the only way a cycle could enter the arena.
func (m *Memo) assertReachableWithout(node planner.PlanNode, forbidden GroupID, reason string) {
	seen := make(map[GroupID]bool)
	var walk func(n planner.PlanNode)
	walk = func(n planner.PlanNode) {
		for _, source := range n.Sources() {
			if ref, ok := source.(*GroupReference); ok {
				common.Assert(ref.Group != forbidden,
					"rule %s would create a cycle through group %d", reason, forbidden)
				if seen[ref.Group] {
					continue
				}
				seen[ref.Group] = true
				walk(m.GetNode(ref.Group))
				continue
			}
			walk(source)
		}
	}
	walk(node)
}

func (m *Memo) resolveReferences(node planner.PlanNode) planner.PlanNode {
	sources := node.Sources()
	if len(sources) == 0 {
		return node
	}
	resolved := make([]planner.PlanNode, len(sources))
	for i, source := range sources {
		if ref, ok := source.(*GroupReference); ok {
			resolved[i] = m.resolveReferences(m.GetNode(ref.Group))
			continue
		}
		resolved[i] = m.resolveReferences(source)
	}
	return node.ReplaceSources(resolved)
}
