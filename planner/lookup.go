package planner

// Lookup resolves placeholder nodes to the concrete node they currently
// stand for. The memo implements it by substituting a group's current
// representative for a group reference; outside a memo the identity lookup
// suffices.
//
// Rules and calculators must resolve a source through a Lookup before
// inspecting it, since inside the memo every source is a placeholder.
type Lookup interface {
	// Resolve returns the concrete node node currently stands for.
	// Concrete nodes resolve to themselves.
	Resolve(node PlanNode) PlanNode
}

type identityLookup struct{}

func (identityLookup) Resolve(node PlanNode) PlanNode { return node }

// NoLookup is the identity Lookup used when matching plans that are not
// held in a memo.
var NoLookup Lookup = identityLookup{}
