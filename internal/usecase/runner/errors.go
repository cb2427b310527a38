package runner

import (
	"errors"
	"fmt"
)

// FailureKind classifies why a run ended in FAILED. ActionExecutionError is
// the one recoverable kind: it never fails a run, it only shows up as a
// ledger entry for the oracle to react to.
type FailureKind string

const (
	KindEnvironmentUnavailable  FailureKind = "environment_unavailable"
	KindOracleProtocolViolation FailureKind = "oracle_protocol_violation"
	KindActionExecutionError    FailureKind = "action_execution_error"
	KindStepBudgetExhausted     FailureKind = "step_budget_exhausted"
	KindCancelled               FailureKind = "cancelled"
)

type Error struct {
	Kind FailureKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newError(kind FailureKind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the failure kind from err, or "" if err is not a runner
// error.
func KindOf(err error) FailureKind {
	var re *Error
	if errors.As(err, &re) {
		return re.Kind
	}
	return ""
}
