package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/rs/zerolog/log"

	contractx "shopping-assistant/agent/contract"
	"shopping-assistant/agent/tool"
)

// Assistant is the thin conversational adapter around the deterministic tool
// layer: it sends the tool schemas to the model, executes whatever tool calls
// come back, and returns the model's final reply. All state lives behind the
// executor; the assistant itself holds only chat history.
type Assistant struct {
	client    openai.Client
	model     openai.ChatModel
	exec      contractx.Executor
	maxRounds int
	history   []openai.ChatCompletionMessageParamUnion
}

type Config struct {
	BaseURL   string        `envconfig:"BASE_URL" split_words:"true" default:"https://api.openai.com/v1"`
	APIKey    string        `envconfig:"API_KEY" split_words:"true" required:"true"`
	Model     string        `envconfig:"MODEL" split_words:"true" default:"gpt-4o-mini"`
	Timeout   time.Duration `envconfig:"TIMEOUT" split_words:"true" default:"30s"`
	MaxRounds int           `envconfig:"MAX_ROUNDS" split_words:"true" default:"4"`
}

func New(cfg Config, exec contractx.Executor) (*Assistant, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("api key is required")
	}
	if exec == nil {
		return nil, errors.New("tool executor is required")
	}
	maxRounds := cfg.MaxRounds
	if maxRounds <= 0 {
		maxRounds = 4
	}

	client := openai.NewClient(
		option.WithAPIKey(strings.TrimSpace(cfg.APIKey)),
		option.WithBaseURL(strings.TrimRight(cfg.BaseURL, "/")),
		option.WithRequestTimeout(cfg.Timeout),
	)

	return &Assistant{
		client:    client,
		model:     openai.ChatModel(strings.TrimSpace(cfg.Model)),
		exec:      exec,
		maxRounds: maxRounds,
		history: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(SystemPrompt()),
		},
	}, nil
}

// HandleMessage runs one user turn: at most maxRounds model calls, executing
// tool calls between them, and returns the final assistant text.
func (a *Assistant) HandleMessage(ctx context.Context, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: message is empty", contractx.ErrValidation)
	}
	a.history = append(a.history, openai.UserMessage(text))

	for round := 0; round < a.maxRounds; round++ {
		resp, err := a.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    a.model,
			Messages: a.history,
			Tools:    tool.Definitions(),
		})
		if err != nil {
			return "", fmt.Errorf("%w: %v", contractx.ErrModelInvoke, err)
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("%w: empty choices", contractx.ErrModelInvoke)
		}

		msg := resp.Choices[0].Message
		a.history = append(a.history, msg.ToParam())

		if len(msg.ToolCalls) == 0 {
			return msg.Content, nil
		}

		for _, call := range msg.ToolCalls {
			result := a.executeCall(ctx, call)
			payload, err := json.Marshal(result)
			if err != nil {
				return "", fmt.Errorf("marshal tool result: %w", err)
			}
			a.history = append(a.history, openai.ToolMessage(string(payload), call.ID))
		}
	}

	return "", fmt.Errorf("%w: no final reply after %d rounds", contractx.ErrModelInvoke, a.maxRounds)
}

func (a *Assistant) executeCall(ctx context.Context, call openai.ChatCompletionMessageToolCall) contractx.ToolResult {
	name := call.Function.Name

	var args map[string]any
	if raw := strings.TrimSpace(call.Function.Arguments); raw != "" {
		if err := json.Unmarshal([]byte(raw), &args); err != nil {
			return contractx.ToolResult{Tool: name, Error: fmt.Sprintf("invalid tool arguments: %v", err)}
		}
	}

	result, err := a.exec.Execute(ctx, name, args)
	if err != nil {
		// System failure: the engine could not complete the cycle. The model
		// still gets a structured answer so it can apologize to the user.
		log.Error().Err(err).Str("tool", name).Msg("tool execution failed")
		return contractx.ToolResult{Tool: name, Error: "the store is temporarily unavailable, please try again later"}
	}
	return result
}
