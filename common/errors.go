package common

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

type PlannerErrorCode int

const (
	// InvariantViolation indicates a defect in rule or engine code: a
	// duplicate capture key, re-storing a cached cost, a self-referential
	// group replacement. These are panicked immediately and never recovered.
	InvariantViolation PlannerErrorCode = iota
	// EstimationFailed indicates a stats or cost calculator failed while the
	// session runs in strict estimation mode.
	EstimationFailed
	// BudgetExceeded indicates the optimizer reached its iteration ceiling
	// or wall-clock deadline without converging to a fixpoint.
	BudgetExceeded
)

func (ec PlannerErrorCode) String() string {
	switch ec {
	case InvariantViolation:
		return "InvariantViolation"
	case EstimationFailed:
		return "EstimationFailed"
	case BudgetExceeded:
		return "BudgetExceeded"
	}
	return "unknown"
}

// PlannerError is the typed failure surfaced by the optimizer core.
// It wraps a specific PlannerErrorCode with a detailed message so callers
// can tell a runaway rule set apart from a bad estimate or a true bug.
type PlannerError struct {
	Code      PlannerErrorCode
	ErrString string
	cause     error
}

func (e PlannerError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("err: %s; msg: %s: %v", e.Code.String(), e.ErrString, e.cause)
	}
	return fmt.Sprintf("err: %s; msg: %s", e.Code.String(), e.ErrString)
}

func (e PlannerError) Unwrap() error {
	return e.cause
}

func NewPlannerError(code PlannerErrorCode, format string, args ...any) PlannerError {
	return PlannerError{Code: code, ErrString: fmt.Sprintf(format, args...)}
}

func WrapPlannerError(code PlannerErrorCode, cause error, format string, args ...any) PlannerError {
	return PlannerError{Code: code, ErrString: fmt.Sprintf(format, args...), cause: cause}
}

// ErrorCodeOf extracts the PlannerErrorCode from err, unwrapping as needed.
func ErrorCodeOf(err error) (PlannerErrorCode, bool) {
	var pe PlannerError
	if errors.As(err, &pe) {
		return pe.Code, true
	}
	return 0, false
}

// Assert checks an internal invariant and panics with an
// InvariantViolation if it does not hold.
//
// Invariant breaks inside the optimizer (a cost stored twice, a capture
// bound twice) indicate broken engine or rule code, not a runtime
// condition; continuing would hand the executor an inconsistent plan.
// Runtime conditions (a calculator failing, a budget running out) return
// errors instead.
func Assert(cond bool, format string, args ...any) {
	if !cond {
		panic(NewPlannerError(InvariantViolation, format, args...))
	}
}
