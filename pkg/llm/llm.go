package llm

import "context"

// Message is a single chat turn as sent to the model.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatModel is a minimal abstraction for chat-based LLMs used by the domain.
// It intentionally hides concrete providers to preserve dependency direction.
type ChatModel interface {
	// Ask sends a system+user prompt pair and returns the model reply.
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	// AskJSON sends a single prompt and requests a strict JSON object reply.
	AskJSON(ctx context.Context, prompt string) (string, error)
	// Converse sends a full message history and returns the next assistant turn.
	Converse(ctx context.Context, messages []Message) (string, error)
}
