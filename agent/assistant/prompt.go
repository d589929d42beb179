package assistant

import (
	_ "embed"
	"strings"
)

//go:embed template/system.txt
var systemPromptRaw string

// SystemPrompt returns the trimmed system prompt for the shopping assistant.
func SystemPrompt() string {
	return strings.TrimSpace(systemPromptRaw)
}
