package optimizer

// DefaultRules returns the built-in rewrite set in its canonical order.
// Callers may extend or reorder it; the driver only ever invokes rules
// whose pattern matches.
func DefaultRules() []Rule {
	return []Rule{
		NewRemoveTrivialFilter(),
		NewRemoveRedundantLimit(),
		NewMergeLimits(),
		NewRemoveRedundantDistinctLimit(),
		NewPruneLimitColumns(),
	}
}
