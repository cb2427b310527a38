package input

import (
	"context"

	"web-agent/internal/domain/entity"
)

type RunStatus string

const (
	RunStatusDone   RunStatus = "done"
	RunStatusFailed RunStatus = "failed"
)

// Report is returned for every run, including failed ones, so callers can
// inspect the final state and the ledger.
type Report struct {
	Status  RunStatus
	Result  string
	Success bool
	Steps   int
	State   *entity.AgentState
}

type TaskRunner interface {
	Run(ctx context.Context, task string) (*Report, error)
}
