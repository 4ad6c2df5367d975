package llm

import (
	"context"
	"fmt"
)

// ProviderID identifies an LLM backend.
type ProviderID string

const (
	ProviderAnthropic ProviderID = "anthropic"
	ProviderOpenAI    ProviderID = "openai"
	ProviderGemini    ProviderID = "gemini"
)

// Provider is the interface every LLM backend implements.
type Provider interface {
	ID() ProviderID
	Name() string

	// Chat sends the conversation and returns the next model turn. When
	// req.ToolTurn is set, the request continues a conversation after the
	// agent executed the model's tool calls.
	Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error)

	Models() []Model
	DefaultModel() string

	// SetModel switches the active model. Returns an error if the ID is not
	// in the provider's model list.
	SetModel(modelID string) error
}

// Model describes one selectable model.
type Model struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	ContextWindow int    `json:"context_window"`
	SupportsTools bool   `json:"supports_tools"`
}

// Message is one conversation turn, role "user" or "assistant".
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ToolTurn carries the model's tool calls plus the agent's results, so the
// provider can replay the exchange in its native wire format.
type ToolTurn struct {
	Calls   []ToolCall   `json:"calls"`
	Results []ToolResult `json:"results"`
}

// ChatRequest is the provider-agnostic request.
type ChatRequest struct {
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
	Tools     []Tool    `json:"tools,omitempty"`
	Model     string    `json:"model,omitempty"` // provider default if empty
	MaxTokens int       `json:"max_tokens,omitempty"`
	ToolTurn  *ToolTurn `json:"tool_turn,omitempty"`
}

// ChatResponse is the provider-agnostic response.
type ChatResponse struct {
	Content    string     `json:"content"`
	ToolCalls  []ToolCall `json:"tool_calls,omitempty"`
	StopReason string     `json:"stop_reason"`
	Usage      Usage      `json:"usage"`
}

// Usage tracks token consumption for a single call.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
}

const defaultMaxTokens = 4096

// EnvVarForProvider returns the environment variable holding a provider's
// API key.
func EnvVarForProvider(id ProviderID) string {
	switch id {
	case ProviderAnthropic:
		return "ANTHROPIC_API_KEY"
	case ProviderOpenAI:
		return "OPENAI_API_KEY"
	case ProviderGemini:
		return "GOOGLE_API_KEY"
	default:
		return ""
	}
}

// AllProviderIDs returns known providers in priority order.
func AllProviderIDs() []ProviderID {
	return []ProviderID{ProviderAnthropic, ProviderOpenAI, ProviderGemini}
}

// ValidateModelID checks that modelID exists in the given model list.
func ValidateModelID(modelID string, models []Model) error {
	for _, m := range models {
		if m.ID == modelID {
			return nil
		}
	}
	return fmt.Errorf("unknown model %q for this provider", modelID)
}

func resolveRequest(req *ChatRequest, fallbackModel string) (model string, maxTokens int) {
	model = req.Model
	if model == "" {
		model = fallbackModel
	}
	maxTokens = req.MaxTokens
	if maxTokens == 0 {
		maxTokens = defaultMaxTokens
	}
	return model, maxTokens
}
