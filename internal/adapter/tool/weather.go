package tool

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"web-agent/internal/domain/entity"
)

// WeatherTool is the mock lookup used by the chat demo: canned data, no real
// API behind it.
type WeatherTool struct{}

func NewWeatherTool() *WeatherTool {
	return &WeatherTool{}
}

func (t *WeatherTool) Name() entity.ToolName { return "get_weather" }
func (t *WeatherTool) Description() string {
	return "Get the current weather for a specific city"
}

func (t *WeatherTool) Parameters() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"city": map[string]interface{}{
				"type":        "string",
				"description": "The name of the city",
			},
		},
		"required": []string{"city"},
	}
}

func (t *WeatherTool) Execute(ctx context.Context, args string) (string, error) {
	var input struct {
		City string `json:"city"`
	}
	if err := json.Unmarshal([]byte(args), &input); err != nil {
		return "", fmt.Errorf("invalid get_weather arguments: %w", err)
	}

	report := map[string]string{"city": input.City}
	switch {
	case strings.Contains(strings.ToLower(input.City), "san francisco"):
		report["temperature"] = "15°C"
		report["conditions"] = "Foggy"
	case strings.Contains(strings.ToLower(input.City), "new york"):
		report["temperature"] = "22°C"
		report["conditions"] = "Sunny"
	default:
		report["temperature"] = "20°C"
		report["conditions"] = "Clear skies"
	}

	data, err := json.Marshal(report)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
