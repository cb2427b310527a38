package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"web-agent/internal/domain/entity"
)

type ClockTool struct {
	now func() time.Time
}

func NewClockTool() *ClockTool {
	return &ClockTool{now: time.Now}
}

func (t *ClockTool) Name() entity.ToolName { return "get_time" }
func (t *ClockTool) Description() string {
	return "Get the current date and time, optionally in a specific IANA timezone"
}

func (t *ClockTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"timezone": map[string]interface{}{
				"type":        "string",
				"description": "IANA timezone name, e.g. America/New_York (default UTC)",
			},
		},
	}
}

func (t *ClockTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		Timezone string `json:"timezone"`
	}
	if args != "" {
		if err := json.Unmarshal([]byte(args), &input); err != nil {
			return "", fmt.Errorf("invalid get_time arguments: %w", err)
		}
	}

	loc := time.UTC
	if input.Timezone != "" {
		parsed, err := time.LoadLocation(input.Timezone)
		if err != nil {
			return "", fmt.Errorf("unknown timezone %q: %w", input.Timezone, err)
		}
		loc = parsed
	}

	return t.now().In(loc).Format("2006-01-02 15:04:05 MST"), nil
}
