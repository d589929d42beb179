package contract

import "context"

// Executor dispatches a single tool call to the deterministic engine layer.
type Executor interface {
	Execute(ctx context.Context, tool string, args map[string]any) (ToolResult, error)
}
