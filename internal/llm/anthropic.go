package llm

import (
	"context"
	"fmt"

	"github.com/liushuangls/go-anthropic/v2"
)

// AnthropicProvider implements Provider for Anthropic Claude.
type AnthropicProvider struct {
	client *anthropic.Client
	model  string
}

var anthropicModels = []Model{
	{ID: "claude-sonnet-4-20250514", Name: "Claude Sonnet 4", ContextWindow: 200000, SupportsTools: true},
	{ID: "claude-3-5-sonnet-20241022", Name: "Claude 3.5 Sonnet", ContextWindow: 200000, SupportsTools: true},
	{ID: "claude-3-5-haiku-20241022", Name: "Claude 3.5 Haiku", ContextWindow: 200000, SupportsTools: true},
}

func NewAnthropicProvider(apiKey, model string) (*AnthropicProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "claude-3-5-sonnet-20241022"
	}
	return &AnthropicProvider{
		client: anthropic.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *AnthropicProvider) ID() ProviderID       { return ProviderAnthropic }
func (p *AnthropicProvider) Name() string         { return "Anthropic" }
func (p *AnthropicProvider) Models() []Model      { return anthropicModels }
func (p *AnthropicProvider) DefaultModel() string { return p.model }

func (p *AnthropicProvider) SetModel(modelID string) error {
	if err := ValidateModelID(modelID, p.Models()); err != nil {
		return err
	}
	p.model = modelID
	return nil
}

func (p *AnthropicProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model, maxTokens := resolveRequest(req, p.model)

	messages := make([]anthropic.Message, 0, len(req.Messages)+2)
	for _, msg := range req.Messages {
		role := anthropic.RoleUser
		if msg.Role == "assistant" {
			role = anthropic.RoleAssistant
		}
		messages = append(messages, anthropic.Message{
			Role:    role,
			Content: []anthropic.MessageContent{anthropic.NewTextMessageContent(msg.Content)},
		})
	}

	// Replay the tool exchange: assistant tool_use turn, then tool results
	// as a user turn.
	if turn := req.ToolTurn; turn != nil {
		if len(turn.Calls) > 0 {
			uses := make([]anthropic.MessageContent, 0, len(turn.Calls))
			for _, tc := range turn.Calls {
				uses = append(uses, anthropic.NewToolUseMessageContent(tc.ID, tc.Name, tc.Input))
			}
			messages = append(messages, anthropic.Message{Role: anthropic.RoleAssistant, Content: uses})
		}
		if len(turn.Results) > 0 {
			results := make([]anthropic.MessageContent, 0, len(turn.Results))
			for _, tr := range turn.Results {
				results = append(results, anthropic.NewToolResultMessageContent(tr.ToolUseID, tr.Content, tr.IsError))
			}
			messages = append(messages, anthropic.Message{Role: anthropic.RoleUser, Content: results})
		}
	}

	areq := anthropic.MessagesRequest{
		Model:     anthropic.Model(model),
		MaxTokens: maxTokens,
		System:    req.System,
		Messages:  messages,
	}
	if len(req.Tools) > 0 {
		tools := make([]anthropic.ToolDefinition, 0, len(req.Tools))
		for _, tool := range req.Tools {
			tools = append(tools, anthropic.ToolDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				InputSchema: tool.InputSchema,
			})
		}
		areq.Tools = tools
	}

	resp, err := p.client.CreateMessages(ctx, areq)
	if err != nil {
		return nil, fmt.Errorf("anthropic chat: %w", err)
	}

	out := &ChatResponse{
		StopReason: string(resp.StopReason),
		Usage: Usage{
			InputTokens:  resp.Usage.InputTokens,
			OutputTokens: resp.Usage.OutputTokens,
		},
	}
	for _, content := range resp.Content {
		switch content.Type {
		case anthropic.MessagesContentTypeText:
			if content.Text != nil {
				out.Content = *content.Text
			}
		case anthropic.MessagesContentTypeToolUse:
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:    content.ID,
				Name:  content.Name,
				Input: content.Input,
			})
		}
	}
	return out, nil
}
