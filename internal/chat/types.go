package chat

import "time"

// Minimal subset of the OpenAI-compatible chat schema used by this app.
// The response side is deliberately left schema-flexible (see Document).

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"` // system|user|assistant
	Content string `json:"content"`
}

// Params are the per-call sampling knobs. MaxTokens is omitted from the wire
// payload when nil; the remote API is the authority on range limits.
type Params struct {
	Model       string
	Temperature float64
	MaxTokens   *int
	Timeout     time.Duration
}

// DefaultTimeout bounds a single outbound call when Params.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Request is the wire payload for POST /chat/completions.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   *int      `json:"max_tokens,omitempty"`
}

// Document is the parsed response body, returned as-is and unvalidated.
// Consumers probe for known keys rather than enforcing a fixed schema.
type Document = any

// SystemInstruction is the fixed system message sent with every conversation.
const SystemInstruction = "You are a concise, professional assistant."

// BuildConversation pairs the fixed system instruction with the user prompt.
func BuildConversation(prompt string) []Message {
	return []Message{
		{Role: RoleSystem, Content: SystemInstruction},
		{Role: RoleUser, Content: prompt},
	}
}
