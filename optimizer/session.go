package optimizer

import (
	"time"

	"github.com/go-kit/log"
)

// Session carries the per-optimization configuration. One Session value is
// consulted by the driver and both caching providers; it is never shared
// between concurrent optimizations.
type Session struct {
	// MaxRuleInvocations is the hard iteration ceiling. The engine does
	// not police rule termination; this backstop turns a runaway
	// complementary rule pair into a BudgetExceeded failure.
	MaxRuleInvocations int

	// Timeout bounds the wall-clock time of one optimization call.
	Timeout time.Duration

	// StrictEstimation makes a failing stats/cost calculator abort the
	// optimization instead of degrading to an unknown estimate.
	StrictEstimation bool

	Logger log.Logger
}

func DefaultSession() *Session {
	return &Session{
		MaxRuleInvocations: 10_000,
		Timeout:            3 * time.Minute,
		Logger:             log.NewNopLogger(),
	}
}
