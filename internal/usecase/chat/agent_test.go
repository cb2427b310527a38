package chat

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"

	"web-agent/internal/adapter/tool"
	"web-agent/internal/application/service"
	"web-agent/internal/infrastructure/logger"
)

// fakeModel returns scripted responses in order.
type fakeModel struct {
	responses []*llms.ContentResponse
	calls     int
	requests  [][]llms.MessageContent
}

func (m *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	m.requests = append(m.requests, messages)
	resp := m.responses[m.calls]
	m.calls++
	return resp, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return "", nil
}

func textResponse(content string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: content}}}
}

func toolCallResponse(id, name, args string) *llms.ContentResponse {
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{
		ToolCalls: []llms.ToolCall{{
			ID:           id,
			Type:         "function",
			FunctionCall: &llms.FunctionCall{Name: name, Arguments: args},
		}},
	}}}
}

func newRegistry() *service.ToolRegistryImpl {
	registry := service.NewToolRegistry()
	registry.Register(tool.NewWeatherTool())
	registry.Register(tool.NewClockTool())
	return registry
}

func TestAsk_DirectAnswerWithoutTools(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{
		textResponse("Hi Bob, nice to meet you!"),
	}}

	agent := New(model, newRegistry(), logger.NewNop(), Config{})
	answer, err := agent.Ask(context.Background(), "Hi, my name is Bob.")

	require.NoError(t, err)
	assert.Equal(t, "Hi Bob, nice to meet you!", answer)
	assert.Equal(t, 1, model.calls)
}

func TestAsk_ToolCallRoundTrip(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{
		toolCallResponse("call_1", "get_weather", `{"city":"San Francisco"}`),
		textResponse("It is 15°C and foggy in San Francisco."),
	}}

	agent := New(model, newRegistry(), logger.NewNop(), Config{})
	answer, err := agent.Ask(context.Background(), "What is the weather in San Francisco?")

	require.NoError(t, err)
	assert.Contains(t, answer, "foggy")
	assert.Equal(t, 2, model.calls)

	// Second request must contain the assistant tool call and its result.
	second := model.requests[1]
	require.Len(t, second, 4)
	assert.Equal(t, llms.ChatMessageTypeAI, second[2].Role)
	assert.Equal(t, llms.ChatMessageTypeTool, second[3].Role)

	toolResp, ok := second[3].Parts[0].(llms.ToolCallResponse)
	require.True(t, ok)
	assert.Equal(t, "call_1", toolResp.ToolCallID)
	assert.Contains(t, toolResp.Content, "Foggy")
}

func TestAsk_UnknownToolReportedToModel(t *testing.T) {
	model := &fakeModel{responses: []*llms.ContentResponse{
		toolCallResponse("call_1", "launch_rocket", `{}`),
		textResponse("Sorry, I cannot do that."),
	}}

	agent := New(model, newRegistry(), logger.NewNop(), Config{})
	answer, err := agent.Ask(context.Background(), "Launch a rocket")

	require.NoError(t, err)
	assert.Equal(t, "Sorry, I cannot do that.", answer)

	toolResp := model.requests[1][3].Parts[0].(llms.ToolCallResponse)
	assert.Contains(t, toolResp.Content, "unknown tool")
}

func TestAsk_MaxIterations(t *testing.T) {
	responses := make([]*llms.ContentResponse, 0, 3)
	for i := 0; i < 3; i++ {
		responses = append(responses, toolCallResponse("call", "get_time", `{}`))
	}
	model := &fakeModel{responses: responses}

	agent := New(model, newRegistry(), logger.NewNop(), Config{MaxIterations: 3})
	_, err := agent.Ask(context.Background(), "loop forever")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "max iterations")
}
