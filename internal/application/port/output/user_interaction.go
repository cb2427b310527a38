package output

import (
	"context"

	"web-agent/internal/domain/entity"
)

type UserInteractionPort interface {
	AskQuestion(ctx context.Context, question string) (string, error)
	WaitForUserAction(ctx context.Context, message string) error

	ShowStep(ctx context.Context, step, stepBudget int)
	ShowActionStart(ctx context.Context, action entity.ActionName, args map[string]any)
	ShowActionResult(ctx context.Context, action entity.ActionName, result string, isError bool)
}
