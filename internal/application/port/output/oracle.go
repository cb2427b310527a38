package output

import (
	"context"

	"web-agent/internal/domain/entity"
)

// OraclePort decides the next action. Each call receives a complete,
// self-sufficient snapshot plus a bounded history summary, so the oracle is
// stateless between calls and every planning call is independently
// replayable.
type OraclePort interface {
	Decide(ctx context.Context, task string, obs *entity.Observation, historySummary string) (*entity.ActionSelection, error)
}
