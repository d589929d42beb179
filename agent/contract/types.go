package contract

// ToolResult is the flat envelope handed back across the tool boundary.
// Error reports boundary problems (bad arguments, unknown tool); business
// outcomes, including failures, travel inside Result.
type ToolResult struct {
	Tool   string `json:"tool"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}
