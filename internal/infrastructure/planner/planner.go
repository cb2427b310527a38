package planner

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"

	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
	"web-agent/internal/infrastructure/prompts"
)

var _ output.OraclePort = (*LLMPlanner)(nil)

// LLMPlanner implements the decision oracle on top of a chat-completion
// model with tool calling. The model is stateless between calls: every
// Decide builds a complete snapshot message from scratch.
type LLMPlanner struct {
	llm    output.LLMPort
	logger output.LoggerPort
	cfg    Config

	stepsSeen int
}

type Config struct {
	SystemPrompt string
	StepBudget   int

	// WithAskUser exposes the ask_user tool; only enable it when a user
	// interaction port is wired into the loop.
	WithAskUser bool

	// SendScreenshots attaches the observation screenshot as an image part
	// (requires a vision-capable model).
	SendScreenshots bool
}

func New(llm output.LLMPort, logger output.LoggerPort, cfg Config) *LLMPlanner {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = prompts.BrowserSystemPrompt
	}
	return &LLMPlanner{llm: llm, logger: logger, cfg: cfg}
}

func (p *LLMPlanner) Decide(ctx context.Context, task string, obs *entity.Observation, historySummary string) (*entity.ActionSelection, error) {
	p.stepsSeen++

	stepContext, err := prompts.BuildStepContext(prompts.StepContextData{
		Step:       p.stepsSeen,
		StepBudget: p.cfg.StepBudget,
		History:    historySummary,
		URL:        obs.URL,
		Title:      obs.Title,
		Elements:   prompts.FormatElements(obs.Elements),
		Task:       task,
	})
	if err != nil {
		return nil, err
	}

	userMsg := entity.Message{Role: entity.RoleUser, Content: stepContext}
	if p.cfg.SendScreenshots && obs.Screenshot != nil {
		userMsg.ImageB64 = base64.StdEncoding.EncodeToString(obs.Screenshot.Data)
		userMsg.ImageFormat = obs.Screenshot.Format
	}

	resp, err := p.llm.Chat(ctx, output.ChatRequest{
		Messages: []entity.Message{
			{Role: entity.RoleSystem, Content: p.cfg.SystemPrompt},
			userMsg,
		},
		Tools:       actionDefinitions(p.cfg.WithAskUser),
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("planning call failed: %w", err)
	}

	// No tool call means the model answered in plain text; treat that as an
	// implicit termination with the text as the result.
	if len(resp.Message.ToolCalls) == 0 {
		p.logger.Debug("Oracle replied without a tool call, mapping to done", "content", resp.Message.Content)
		return &entity.ActionSelection{
			Name: entity.ActionDone,
			Args: map[string]any{"result": resp.Message.Content, "success": true},
		}, nil
	}

	tc := resp.Message.ToolCalls[0]
	args := map[string]any{}
	if tc.Arguments != "" {
		if err := json.Unmarshal([]byte(tc.Arguments), &args); err != nil {
			return nil, fmt.Errorf("malformed arguments for action %q: %w", tc.Name, err)
		}
	}

	return &entity.ActionSelection{
		Name: entity.ActionName(tc.Name),
		Args: args,
	}, nil
}
