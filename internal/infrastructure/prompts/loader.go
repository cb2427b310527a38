package prompts

import (
	_ "embed"
)

//go:embed system.txt
var BrowserSystemPrompt string

//go:embed chat_system.txt
var ChatSystemPrompt string
