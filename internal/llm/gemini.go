package llm

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

var geminiModels = []Model{
	{ID: "gemini-2.0-flash", Name: "Gemini 2.0 Flash", ContextWindow: 1000000, SupportsTools: true},
	{ID: "gemini-1.5-pro", Name: "Gemini 1.5 Pro", ContextWindow: 2000000, SupportsTools: true},
	{ID: "gemini-1.5-flash", Name: "Gemini 1.5 Flash", ContextWindow: 1000000, SupportsTools: true},
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) ID() ProviderID       { return ProviderGemini }
func (p *GeminiProvider) Name() string         { return "Google Gemini" }
func (p *GeminiProvider) Models() []Model      { return geminiModels }
func (p *GeminiProvider) DefaultModel() string { return p.model }

func (p *GeminiProvider) SetModel(modelID string) error {
	if err := ValidateModelID(modelID, p.Models()); err != nil {
		return err
	}
	p.model = modelID
	return nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}

func (p *GeminiProvider) Chat(ctx context.Context, req *ChatRequest) (*ChatResponse, error) {
	modelName, _ := resolveRequest(req, p.model)
	model := p.client.GenerativeModel(modelName)

	if req.System != "" {
		model.SystemInstruction = &genai.Content{
			Parts: []genai.Part{genai.Text(req.System)},
		}
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, tool := range req.Tools {
			var params map[string]any
			_ = json.Unmarshal(tool.InputSchema, &params)
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        tool.Name,
				Description: tool.Description,
				Parameters:  geminiSchema(params),
			})
		}
		model.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	var contents []*genai.Content
	for _, msg := range req.Messages {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		contents = append(contents, &genai.Content{
			Role:  role,
			Parts: []genai.Part{genai.Text(msg.Content)},
		})
	}

	if turn := req.ToolTurn; turn != nil {
		if len(turn.Calls) > 0 {
			var calls []genai.Part
			for _, tc := range turn.Calls {
				var args map[string]any
				_ = json.Unmarshal(tc.Input, &args)
				calls = append(calls, genai.FunctionCall{Name: tc.Name, Args: args})
			}
			contents = append(contents, &genai.Content{Role: "model", Parts: calls})
		}
		if len(turn.Results) > 0 {
			var results []genai.Part
			for _, tr := range turn.Results {
				// Gemini correlates by function name, not call ID.
				results = append(results, genai.FunctionResponse{
					Name:     tr.ToolUseID,
					Response: map[string]any{"result": tr.Content},
				})
			}
			contents = append(contents, &genai.Content{Role: "user", Parts: results})
		}
	}

	if len(contents) == 0 {
		return nil, fmt.Errorf("gemini chat: empty conversation")
	}

	cs := model.StartChat()
	cs.History = contents[:len(contents)-1]
	last := contents[len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return nil, fmt.Errorf("gemini chat: %w", err)
	}
	return parseGeminiResponse(resp)
}

func parseGeminiResponse(resp *genai.GenerateContentResponse) (*ChatResponse, error) {
	if len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("gemini chat: no candidates in response")
	}

	candidate := resp.Candidates[0]
	out := &ChatResponse{StopReason: string(candidate.FinishReason)}
	if resp.UsageMetadata != nil {
		out.Usage = Usage{
			InputTokens:  int(resp.UsageMetadata.PromptTokenCount),
			OutputTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			switch v := part.(type) {
			case genai.Text:
				out.Content = string(v)
			case genai.FunctionCall:
				argsJSON, _ := json.Marshal(v.Args)
				out.ToolCalls = append(out.ToolCalls, ToolCall{
					ID:    v.Name,
					Name:  v.Name,
					Input: argsJSON,
				})
			}
		}
	}
	return out, nil
}

// geminiSchema converts a JSON-schema map into the genai schema type.
// Only the subset our tool definitions use is mapped.
func geminiSchema(params map[string]any) *genai.Schema {
	if params == nil {
		return nil
	}

	schema := &genai.Schema{Type: genai.TypeObject}
	if props, ok := params["properties"].(map[string]any); ok {
		schema.Properties = make(map[string]*genai.Schema, len(props))
		for name, prop := range props {
			if propMap, ok := prop.(map[string]any); ok {
				schema.Properties[name] = geminiProperty(propMap)
			}
		}
	}
	if required, ok := params["required"].([]any); ok {
		for _, r := range required {
			if s, ok := r.(string); ok {
				schema.Required = append(schema.Required, s)
			}
		}
	}
	return schema
}

func geminiProperty(prop map[string]any) *genai.Schema {
	schema := &genai.Schema{}
	switch prop["type"] {
	case "string":
		schema.Type = genai.TypeString
	case "number":
		schema.Type = genai.TypeNumber
	case "integer":
		schema.Type = genai.TypeInteger
	case "boolean":
		schema.Type = genai.TypeBoolean
	case "array":
		schema.Type = genai.TypeArray
	case "object":
		schema.Type = genai.TypeObject
	}
	if desc, ok := prop["description"].(string); ok {
		schema.Description = desc
	}
	if enum, ok := prop["enum"].([]any); ok {
		for _, e := range enum {
			if s, ok := e.(string); ok {
				schema.Enum = append(schema.Enum, s)
			}
		}
	}
	return schema
}
