package planner

import (
	"web-agent/internal/domain/entity"
)

func obj(props map[string]interface{}, required ...string) map[string]interface{} {
	schema := map[string]interface{}{
		"type":       "object",
		"properties": props,
	}
	if len(required) > 0 {
		schema["required"] = required
	}
	return schema
}

func str(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "string", "description": desc}
}

func integer(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "integer", "description": desc}
}

func boolean(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "boolean", "description": desc}
}

func number(desc string) map[string]interface{} {
	return map[string]interface{}{"type": "number", "description": desc}
}

// actionDefinitions is the fixed action set presented to the oracle as tool
// schemas, one tool per action.
func actionDefinitions(withAskUser bool) []entity.ToolDefinition {
	defs := []entity.ToolDefinition{
		{
			Name:        entity.ToolName(entity.ActionNavigate),
			Description: "Navigate the browser to a specific URL.",
			Parameters: obj(map[string]interface{}{
				"url": str("The complete URL to navigate to, e.g. https://www.example.com"),
			}, "url"),
		},
		{
			Name:        entity.ToolName(entity.ActionClick),
			Description: "Click an element on the page by its index number from the Interactive Elements list.",
			Parameters: obj(map[string]interface{}{
				"index": integer("Index of the element to click"),
			}, "index"),
		},
		{
			Name:        entity.ToolName(entity.ActionInputText),
			Description: "Type text into an input field identified by its index number.",
			Parameters: obj(map[string]interface{}{
				"index": integer("Index of the input element"),
				"text":  str("The text to type into the field"),
			}, "index", "text"),
		},
		{
			Name:        entity.ToolName(entity.ActionExtract),
			Description: "Extract the visible text content of the current page to answer a question about it.",
			Parameters: obj(map[string]interface{}{
				"query": str("What information to look for, e.g. 'product name and price'"),
			}, "query"),
		},
		{
			Name:        entity.ToolName(entity.ActionSendKeys),
			Description: "Send keyboard keys like Enter, Tab, Escape, or combinations like Control+A.",
			Parameters: obj(map[string]interface{}{
				"keys": str("Key or key combination to send"),
			}, "keys"),
		},
		{
			Name:        entity.ToolName(entity.ActionScroll),
			Description: "Scroll the page up or down to reveal more content.",
			Parameters: obj(map[string]interface{}{
				"down":  boolean("true to scroll down, false to scroll up (default true)"),
				"pages": number("How many viewport heights to scroll (default 1.0)"),
			}),
		},
		{
			Name:        entity.ToolName(entity.ActionScreenshot),
			Description: "Take a screenshot of the current page.",
			Parameters:  obj(map[string]interface{}{}),
		},
	}

	if withAskUser {
		defs = append(defs, entity.ToolDefinition{
			Name:        entity.ToolName(entity.ActionAskUser),
			Description: "Ask the user a question in the terminal and wait for their response.",
			Parameters: obj(map[string]interface{}{
				"question": str("The question to ask the user"),
			}, "question"),
		})
	}

	defs = append(defs, entity.ToolDefinition{
		Name:        entity.ToolName(entity.ActionDone),
		Description: "Mark the task as complete and return the final result.",
		Parameters: obj(map[string]interface{}{
			"result":  str("Summary of what was accomplished, or why the task cannot be completed"),
			"success": boolean("Whether the task was completed successfully (default true)"),
		}, "result"),
	})

	return defs
}
