package evaluator

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"web-agent/internal/application/port/output"
	"web-agent/internal/domain/entity"
)

// Evaluator is an optional post-run judge: it asks the model whether the
// final result actually satisfies the task. Useful because the agent's own
// done(success=true) is self-reported.
type Evaluator struct {
	llm    output.LLMPort
	logger output.LoggerPort
}

func New(llm output.LLMPort, logger output.LoggerPort) *Evaluator {
	return &Evaluator{
		llm:    llm,
		logger: logger,
	}
}

const systemPrompt = `You are an evaluator. Your job is to assess if a browser agent successfully completed its task.

Analyze the task description and the actual result, then respond in JSON:
{
  "success": true/false,
  "confidence": 0.0-1.0,
  "issues": ["issue1", "issue2"],
  "feedback": "specific feedback"
}

Evaluation criteria:
- Was the requested task completed?
- Is the result concrete (actual values, not just "found" or "identified")?
- Are there obvious errors or failures in the result?

Be strict but fair. Confidence reflects certainty (1.0 = definitely successful).`

func (e *Evaluator) Evaluate(ctx context.Context, criteria entity.EvaluationCriteria) (*entity.EvaluationResult, error) {
	messages := []entity.Message{
		{Role: entity.RoleSystem, Content: systemPrompt},
		{Role: entity.RoleUser, Content: fmt.Sprintf(
			"Task: %s\n\nSteps taken: %d\n\nFinal result:\n%s",
			criteria.Task, criteria.Steps, criteria.FinalResult)},
	}

	resp, err := e.llm.Chat(ctx, output.ChatRequest{
		Messages:    messages,
		Temperature: 0.0,
	})
	if err != nil {
		return nil, fmt.Errorf("evaluation llm request failed: %w", err)
	}

	result, err := parseEvaluationResponse(resp.Message.Content)
	if err != nil {
		e.logger.Warn("Failed to parse evaluation response, assuming success", "error", err)
		return &entity.EvaluationResult{
			Success:    true,
			Confidence: 0.5,
			Issues:     []string{},
		}, nil
	}

	e.logger.Info("Evaluation completed",
		"success", result.Success,
		"confidence", result.Confidence,
		"issues_count", len(result.Issues),
	)
	return result, nil
}

func parseEvaluationResponse(response string) (*entity.EvaluationResult, error) {
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start == -1 || end == -1 || end < start {
		return nil, fmt.Errorf("no JSON found in response")
	}

	var result entity.EvaluationResult
	if err := json.Unmarshal([]byte(response[start:end+1]), &result); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}
	return &result, nil
}
