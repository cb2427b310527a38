package entity

type MessageRole string

const (
	RoleSystem    MessageRole = "system"
	RoleUser      MessageRole = "user"
	RoleAssistant MessageRole = "assistant"
	RoleTool      MessageRole = "tool"
)

type Message struct {
	Role       MessageRole
	Content    string
	ToolCalls  []ToolCall
	ToolCallID string
	Name       string

	// ImageB64 attaches a base64-encoded image to a user message; the LLM
	// adapter sends it as a multimodal content part (screenshots for
	// vision-capable models).
	ImageB64    string
	ImageFormat string
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments string
}

type ToolName string

type ToolDefinition struct {
	Name        ToolName
	Description string
	Parameters  map[string]interface{}
}
