package chat

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"

	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
	"web-agent/internal/infrastructure/prompts"
)

const defaultMaxIterations = 10

// Agent is the tool-calling conversational demo: planning and routing are
// delegated to the model through langchaingo, the agent only executes the
// tool calls it gets back and feeds the results in again.
type Agent struct {
	model         llms.Model
	tools         output.ToolRegistry
	logger        output.LoggerPort
	systemPrompt  string
	maxIterations int
}

type Config struct {
	SystemPrompt  string
	MaxIterations int
}

func New(model llms.Model, tools output.ToolRegistry, logger output.LoggerPort, cfg Config) *Agent {
	if cfg.SystemPrompt == "" {
		cfg.SystemPrompt = prompts.ChatSystemPrompt
	}
	if cfg.MaxIterations <= 0 {
		cfg.MaxIterations = defaultMaxIterations
	}
	return &Agent{
		model:         model,
		tools:         tools,
		logger:        logger,
		systemPrompt:  cfg.SystemPrompt,
		maxIterations: cfg.MaxIterations,
	}
}

// Ask answers one user question, looping through tool calls until the model
// produces a plain text reply.
func (a *Agent) Ask(ctx context.Context, question string) (string, error) {
	messages := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, a.systemPrompt),
		llms.TextParts(llms.ChatMessageTypeHuman, question),
	}

	toolDefs := a.toolDefinitions()

	for iteration := 1; iteration <= a.maxIterations; iteration++ {
		resp, err := a.model.GenerateContent(ctx, messages,
			llms.WithTools(toolDefs),
			llms.WithTemperature(0.0),
		)
		if err != nil {
			return "", fmt.Errorf("chat completion failed: %w", err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("no choices in response")
		}

		choice := resp.Choices[0]
		if len(choice.ToolCalls) == 0 {
			a.logger.Debug("Chat answered", "iterations", iteration)
			return choice.Content, nil
		}

		assistant := llms.MessageContent{Role: llms.ChatMessageTypeAI}
		for _, tc := range choice.ToolCalls {
			assistant.Parts = append(assistant.Parts, tc)
		}
		messages = append(messages, assistant)

		for _, tc := range choice.ToolCalls {
			result := a.executeTool(ctx, tc)
			messages = append(messages, llms.MessageContent{
				Role: llms.ChatMessageTypeTool,
				Parts: []llms.ContentPart{
					llms.ToolCallResponse{
						ToolCallID: tc.ID,
						Name:       tc.FunctionCall.Name,
						Content:    result,
					},
				},
			})
		}
	}

	return "", fmt.Errorf("max iterations (%d) exceeded", a.maxIterations)
}

func (a *Agent) executeTool(ctx context.Context, tc llms.ToolCall) string {
	name := tc.FunctionCall.Name
	tool, ok := a.tools.Get(entity.ToolName(name))
	if !ok {
		a.logger.Warn("Unknown tool called", "name", name)
		return fmt.Sprintf("Error: unknown tool '%s'", name)
	}

	a.logger.Info("Executing tool", "name", name, "args", tc.FunctionCall.Arguments)

	result, err := tool.Execute(ctx, tc.FunctionCall.Arguments)
	if err != nil {
		a.logger.Error("Tool execution failed", "name", name, "error", err)
		return "Error: " + err.Error()
	}
	return result
}

func (a *Agent) toolDefinitions() []llms.Tool {
	defs := a.tools.Definitions()
	result := make([]llms.Tool, 0, len(defs))
	for _, def := range defs {
		result = append(result, llms.Tool{
			Type: "function",
			Function: &llms.FunctionDefinition{
				Name:        string(def.Name),
				Description: def.Description,
				Parameters:  def.Parameters,
			},
		})
	}
	return result
}
