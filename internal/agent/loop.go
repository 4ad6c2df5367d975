package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/minatolabs/minato/internal/auth"
	"github.com/minatolabs/minato/internal/feeds"
	"github.com/minatolabs/minato/internal/llm"
	"github.com/minatolabs/minato/internal/remind"
)

// ChatEvent represents a single event in the chat flow (tool call, result, or content)
type ChatEvent struct {
	Type    string          // "tool_call", "tool_result", "content"
	Tool    string          // Tool name for tool_call/tool_result
	Args    string          // Tool arguments (summarized) for tool_call
	Content string          // Content for tool_result or final content
	Result  json.RawMessage // Structured result document for tool_result
	IsError bool            // True if tool result was an error
}

// Agent is the core agent that orchestrates conversations and tool calls
type Agent struct {
	// mu protects conversation from concurrent access. Prevents concurrent Chat()
	// calls from interleaving messages and corrupting conversation state.
	mu           sync.Mutex
	provider     llm.Provider
	authManager  *auth.Manager
	dataDir      string
	toolRegistry *ToolRegistry
	systemPrompt string
	conversation []llm.Message
	sessionID    string
	sessionLog   *sessionLogger
}

// SystemPrompt is the default system prompt for the assistant
const SystemPrompt = `You are minato, a terminal research assistant. You answer questions and fetch live information through your tools.

## Your Capabilities
- Web, news, product, and lead search
- Weather forecasts, recipes, Reddit and Hacker News feeds
- Photo and video search, video summaries
- Reminders (create, list, complete) and Stripe payment links

## Tool Use
- Use tools proactively when the user asks about anything current or external
- Tool results arrive as JSON; the terminal renders them as cards, so do not
  repeat the full payload in your reply. Summarize and add context instead.
- If a tool result contains an "error" field, tell the user what failed and
  suggest a fix (usually a missing API key)

## Response Style
- Be concise and direct
- Plain prose; the terminal renders your markdown`

// New creates a new agent with the default provider
func New(providerID string) (*Agent, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}
	dataDir := filepath.Join(home, ".minato")

	authManager, err := auth.NewManager(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to create auth manager: %w", err)
	}

	var targetProvider llm.ProviderID
	if providerID != "" {
		targetProvider = llm.ProviderID(providerID)
	} else {
		targetProvider = authManager.GetDefaultProvider()
	}

	provider, err := CreateProvider(authManager, targetProvider)
	if err != nil {
		// Fall back to any connected provider.
		connected := authManager.ListConnected()
		if len(connected) == 0 {
			return nil, fmt.Errorf("no LLM providers connected. Run 'minato auth connect <provider>' or set an API key environment variable")
		}
		for _, pid := range connected {
			provider, err = CreateProvider(authManager, pid)
			if err == nil {
				break
			}
		}
		if provider == nil {
			return nil, fmt.Errorf("failed to initialize any LLM provider: %w", err)
		}
	}

	store, err := remind.OpenStore(dataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open reminder store: %w", err)
	}

	feedsClient := feeds.NewClient(feeds.Config{
		SerperKey: authManager.GetServiceKey(auth.ServiceSerper),
		PexelsKey: authManager.GetServiceKey(auth.ServicePexels),
		StripeKey: authManager.GetServiceKey(auth.ServiceStripe),
	})

	a := &Agent{
		provider:     provider,
		authManager:  authManager,
		dataDir:      dataDir,
		toolRegistry: NewToolRegistry(feedsClient, store),
		systemPrompt: SystemPrompt,
		conversation: make([]llm.Message, 0),
		sessionID:    uuid.NewString(),
	}

	// Transcript logging is best-effort; a read-only data dir should not
	// block the session.
	if sl, err := newSessionLogger(dataDir, a.sessionID); err == nil {
		a.sessionLog = sl
	}

	return a, nil
}

// CreateProvider creates a provider instance from stored credentials.
func CreateProvider(authManager *auth.Manager, providerID llm.ProviderID) (llm.Provider, error) {
	key, err := authManager.GetAPIKey(providerID)
	if err != nil {
		return nil, err
	}

	switch providerID {
	case llm.ProviderAnthropic:
		return llm.NewAnthropicProvider(key, "")
	case llm.ProviderOpenAI:
		return llm.NewOpenAIProvider(key, "")
	case llm.ProviderGemini:
		return llm.NewGeminiProvider(context.Background(), key, "")
	default:
		return nil, fmt.Errorf("unknown provider: %s", providerID)
	}
}

// ReminderStore exposes the reminder store for the scheduler.
func (a *Agent) ReminderStore() *remind.Store {
	if a.toolRegistry == nil {
		return nil
	}
	return a.toolRegistry.reminders
}

// SessionID returns the ID of the current session transcript.
func (a *Agent) SessionID() string {
	return a.sessionID
}

// Chat sends a user message and returns the agent's response.
// This is a thin wrapper around ChatWithEvents that discards event data.
func (a *Agent) Chat(ctx context.Context, userMessage string) (string, error) {
	events, err := a.ChatWithEvents(ctx, userMessage)
	if err != nil {
		return "", err
	}

	for i := len(events) - 1; i >= 0; i-- {
		if events[i].Type == "content" {
			return events[i].Content, nil
		}
	}
	return "", nil
}

// ChatWithEvents sends a user message and returns structured events for UI rendering.
// This exposes tool calls and results to the caller for visualization.
func (a *Agent) ChatWithEvents(ctx context.Context, userMessage string) ([]ChatEvent, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.provider == nil {
		return nil, fmt.Errorf("agent provider not initialized")
	}

	a.conversation = append(a.conversation, llm.Message{
		Role:    "user",
		Content: userMessage,
	})
	a.logSession(sessionRecord{TS: nowTS(), Type: "user", Content: userMessage})

	req := &llm.ChatRequest{
		System:   a.systemPrompt,
		Messages: a.conversation,
		Tools:    a.toolRegistry.GetTools(),
	}

	response, err := a.provider.Chat(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to get response: %w", err)
	}

	var events []ChatEvent
	for len(response.ToolCalls) > 0 {
		toolCalls := response.ToolCalls
		toolResults, toolEvents := a.executeToolCalls(ctx, toolCalls)
		events = append(events, toolEvents...)

		req.ToolTurn = &llm.ToolTurn{Calls: toolCalls, Results: toolResults}
		response, err = a.provider.Chat(ctx, req)
		if err != nil {
			return nil, fmt.Errorf("failed to continue conversation: %w", err)
		}
	}

	if response.Content != "" {
		a.conversation = append(a.conversation, llm.Message{
			Role:    "assistant",
			Content: response.Content,
		})
		a.logSession(sessionRecord{
			TS:       nowTS(),
			Type:     "assistant",
			Provider: string(a.provider.ID()),
			Model:    a.provider.DefaultModel(),
			Content:  response.Content,
		})

		events = append(events, ChatEvent{
			Type:    "content",
			Content: response.Content,
		})
	}

	return events, nil
}

// executeToolCalls runs one batch of tool calls concurrently. Results and
// events stay in call order regardless of completion order.
func (a *Agent) executeToolCalls(ctx context.Context, toolCalls []llm.ToolCall) ([]llm.ToolResult, []ChatEvent) {
	results := make([]llm.ToolResult, len(toolCalls))
	outputs := make([]*ToolOutput, len(toolCalls))

	g, gctx := errgroup.WithContext(ctx)
	for i, tc := range toolCalls {
		g.Go(func() error {
			out, err := a.toolRegistry.ExecuteTool(gctx, tc.Name, tc.Input)
			if err != nil {
				results[i] = llm.ToolResult{
					ToolUseID: tc.ID,
					Content:   fmt.Sprintf("Error: %v", err),
					IsError:   true,
				}
				return nil
			}
			outputs[i] = out
			results[i] = llm.ToolResult{ToolUseID: tc.ID, Content: out.Text}
			return nil
		})
	}
	// Handlers report failures through ToolResult, never through the group.
	_ = g.Wait()

	events := make([]ChatEvent, 0, len(toolCalls)*2)
	for i, tc := range toolCalls {
		args := RedactJSONArgs(string(tc.Input))
		events = append(events, ChatEvent{Type: "tool_call", Tool: tc.Name, Args: args})
		a.logSession(sessionRecord{TS: nowTS(), Type: "tool_call", ToolName: tc.Name, Args: args})

		ev := ChatEvent{
			Type:    "tool_result",
			Tool:    tc.Name,
			Content: results[i].Content,
			IsError: results[i].IsError,
		}
		if outputs[i] != nil {
			ev.Result = outputs[i].Result
		}
		events = append(events, ev)
		a.logSession(sessionRecord{
			TS:       nowTS(),
			Type:     "tool_result",
			ToolName: tc.Name,
			Result:   ev.Result,
			IsError:  ev.IsError,
		})
	}
	return results, events
}

func (a *Agent) logSession(rec sessionRecord) {
	if a.sessionLog != nil {
		a.sessionLog.logRecord(rec)
	}
}

// GetProvider returns the current provider
func (a *Agent) GetProvider() llm.Provider {
	return a.provider
}

// SetModel switches the active model on the current provider.
// Clears conversation history since prior messages may be incompatible.
func (a *Agent) SetModel(modelID string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.provider.SetModel(modelID); err != nil {
		return err
	}
	a.conversation = make([]llm.Message, 0)
	return nil
}

// CurrentModel returns the active model ID for the current provider.
func (a *Agent) CurrentModel() string {
	return a.provider.DefaultModel()
}

// ListModels returns the available models for the current provider.
func (a *Agent) ListModels() []llm.Model {
	return a.provider.Models()
}

// ProviderName returns the human-readable name of the current provider.
func (a *Agent) ProviderName() string {
	return a.provider.Name()
}

// CurrentProviderID returns the provider identifier for the active provider.
func (a *Agent) CurrentProviderID() llm.ProviderID {
	return a.provider.ID()
}

// SetProvider switches to a new provider and clears conversation history.
// If initialization fails, the current provider remains unchanged.
func (a *Agent) SetProvider(providerID llm.ProviderID) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if a.authManager == nil {
		return fmt.Errorf("auth manager not initialized")
	}

	newProvider, err := CreateProvider(a.authManager, providerID)
	if err != nil {
		return err
	}

	a.provider = newProvider
	a.conversation = make([]llm.Message, 0)
	return nil
}

// Reset clears the conversation history. Safe to call concurrently with Chat().
func (a *Agent) Reset() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.conversation = make([]llm.Message, 0)
}

// Close cleans up agent resources
func (a *Agent) Close() {
	if a.toolRegistry != nil {
		a.toolRegistry.Close()
	}
	if a.sessionLog != nil {
		a.sessionLog.Close()
	}
	if gemini, ok := a.provider.(*llm.GeminiProvider); ok {
		_ = gemini.Close()
	}
}
