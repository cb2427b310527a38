package output

import (
	"context"

	"web-agent/internal/domain/entity"
)

// EnvironmentPort is the stateful browser the agent drives. Observe must
// return the environment's actual current state at the instant of the call;
// snapshots are never cached across actions.
//
// Execute reports recoverable action failures inside ActionResult.Error. A
// non-nil Go error means the environment itself is unreachable and the run
// cannot continue.
type EnvironmentPort interface {
	Observe(ctx context.Context) (*entity.Observation, error)
	Execute(ctx context.Context, name entity.ActionName, args map[string]any) (*entity.ActionResult, error)
	Close()
}
