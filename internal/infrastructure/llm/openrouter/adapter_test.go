package openrouter

import (
	"testing"

	"github.com/sashabaranov/go-openai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"web-agent/internal/domain/entity"
)

func TestConvertMessages(t *testing.T) {
	msgs := convertMessages([]entity.Message{
		{Role: entity.RoleSystem, Content: "system prompt"},
		{Role: entity.RoleUser, Content: "do the thing"},
		{Role: entity.RoleAssistant, ToolCalls: []entity.ToolCall{
			{ID: "call_1", Name: "click", Arguments: `{"index":5}`},
		}},
		{Role: entity.RoleTool, ToolCallID: "call_1", Name: "click", Content: "ok"},
	})

	require.Len(t, msgs, 4)
	assert.Equal(t, "system", msgs[0].Role)
	assert.Equal(t, "do the thing", msgs[1].Content)

	require.Len(t, msgs[2].ToolCalls, 1)
	assert.Equal(t, "click", msgs[2].ToolCalls[0].Function.Name)
	assert.Equal(t, openai.ToolTypeFunction, msgs[2].ToolCalls[0].Type)

	assert.Equal(t, "call_1", msgs[3].ToolCallID)
}

func TestConvertMessages_Multimodal(t *testing.T) {
	msgs := convertMessages([]entity.Message{
		{Role: entity.RoleUser, Content: "what do you see?", ImageB64: "aGVsbG8=", ImageFormat: "jpeg"},
	})

	require.Len(t, msgs, 1)
	assert.Empty(t, msgs[0].Content, "content moves into MultiContent for multimodal messages")
	require.Len(t, msgs[0].MultiContent, 2)
	assert.Equal(t, "what do you see?", msgs[0].MultiContent[0].Text)
	assert.Equal(t, "data:image/jpeg;base64,aGVsbG8=", msgs[0].MultiContent[1].ImageURL.URL)
}

func TestConvertTools(t *testing.T) {
	tools := convertTools([]entity.ToolDefinition{
		{
			Name:        "navigate",
			Description: "Navigate to a URL",
			Parameters: map[string]interface{}{
				"type": "object",
				"properties": map[string]interface{}{
					"url": map[string]interface{}{"type": "string"},
				},
			},
		},
	})

	require.Len(t, tools, 1)
	assert.Equal(t, openai.ToolTypeFunction, tools[0].Type)
	assert.Equal(t, "navigate", tools[0].Function.Name)
}

func TestConvertResponseMessage(t *testing.T) {
	msg := convertResponseMessage(openai.ChatCompletionMessage{
		Role:    "assistant",
		Content: "thinking done",
		ToolCalls: []openai.ToolCall{
			{ID: "call_9", Function: openai.FunctionCall{Name: "done", Arguments: `{"result":"ok"}`}},
		},
	})

	assert.Equal(t, entity.RoleAssistant, msg.Role)
	assert.Equal(t, "thinking done", msg.Content)
	require.Len(t, msg.ToolCalls, 1)
	assert.Equal(t, "done", msg.ToolCalls[0].Name)
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig("key", "anthropic/claude-sonnet-4")
	assert.Equal(t, "https://openrouter.ai/api/v1", cfg.BaseURL)
	assert.Equal(t, "anthropic/claude-sonnet-4", cfg.Model)
}
