package llm

import (
	"context"
	"encoding/json"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Provider for OpenAI chat completions.
type OpenAIProvider struct {
	client *openai.Client
	model  string
}

var openaiModels = []Model{
	{ID: "gpt-4o", Name: "GPT-4o", ContextWindow: 128000, SupportsTools: true},
	{ID: "gpt-4o-mini", Name: "GPT-4o Mini", ContextWindow: 128000, SupportsTools: true},
	{ID: "gpt-4-turbo", Name: "GPT-4 Turbo", ContextWindow: 128000, SupportsTools: true},
}

func NewOpenAIProvider(apiKey, model string) (*OpenAIProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if model == "" {
		model = "gpt-4o"
	}
	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  model,
	}, nil
}

func (p *OpenAIProvider) ID() ProviderID       { return ProviderOpenAI }
func (p *OpenAIProvider) Name() string         { return "OpenAI" }
func (p *OpenAIProvider) Models() []Model      { return openaiModels }
func (p *OpenAIProvider) DefaultModel() string { return p.model }

func (p *OpenAIProvider) SetModel(modelID string) error {
	if err := ValidateModelID(modelID, p.Models()); err != nil {
		return err
	}
	p.model = modelID
	return nil
}

func (p *OpenAIProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	model, maxTokens := resolveRequest(req, p.model)

	messages := make([]openai.ChatCompletionMessage, 0, len(req.Messages)+4)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	for _, msg := range req.Messages {
		role := openai.ChatMessageRoleUser
		if msg.Role == "assistant" {
			role = openai.ChatMessageRoleAssistant
		}
		messages = append(messages, openai.ChatCompletionMessage{Role: role, Content: msg.Content})
	}

	if turn := req.ToolTurn; turn != nil {
		if len(turn.Calls) > 0 {
			assistantMsg := openai.ChatCompletionMessage{Role: openai.ChatMessageRoleAssistant}
			for _, tc := range turn.Calls {
				assistantMsg.ToolCalls = append(assistantMsg.ToolCalls, openai.ToolCall{
					ID:   tc.ID,
					Type: openai.ToolTypeFunction,
					Function: openai.FunctionCall{
						Name:      tc.Name,
						Arguments: string(tc.Input),
					},
				})
			}
			messages = append(messages, assistantMsg)
		}
		for _, tr := range turn.Results {
			messages = append(messages, openai.ChatCompletionMessage{
				Role:       openai.ChatMessageRoleTool,
				Content:    tr.Content,
				ToolCallID: tr.ToolUseID,
			})
		}
	}

	oreq := openai.ChatCompletionRequest{
		Model:     model,
		MaxTokens: maxTokens,
		Messages:  messages,
	}
	for _, tool := range req.Tools {
		var params map[string]any
		_ = json.Unmarshal(tool.InputSchema, &params)
		oreq.Tools = append(oreq.Tools, openai.Tool{
			Type: openai.ToolTypeFunction,
			Function: &openai.FunctionDefinition{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  params,
			},
		})
	}

	resp, err := p.client.CreateChatCompletion(ctx, oreq)
	if err != nil {
		return nil, fmt.Errorf("openai chat: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat: no choices in response")
	}

	choice := resp.Choices[0]
	out := &ChatResponse{
		Content:    choice.Message.Content,
		StopReason: string(choice.FinishReason),
		Usage: Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		},
	}
	for _, tc := range choice.Message.ToolCalls {
		if tc.Type == openai.ToolTypeFunction {
			out.ToolCalls = append(out.ToolCalls, ToolCall{
				ID:    tc.ID,
				Name:  tc.Function.Name,
				Input: json.RawMessage(tc.Function.Arguments),
			})
		}
	}
	return out, nil
}
