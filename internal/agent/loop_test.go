package agent

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatolabs/minato/internal/feeds"
	"github.com/minatolabs/minato/internal/llm"
	"github.com/minatolabs/minato/internal/remind"
)

// testProvider is a minimal Provider for unit tests. When toolCalls is
// set, the first Chat returns them and the follow-up (with a ToolTurn)
// returns the final content.
type testProvider struct {
	model     string
	models    []llm.Model
	toolCalls []llm.ToolCall
}

func newTestProvider() *testProvider {
	return &testProvider{
		model: "test-model-a",
		models: []llm.Model{
			{ID: "test-model-a", Name: "Test Model A", SupportsTools: true},
			{ID: "test-model-b", Name: "Test Model B", SupportsTools: true},
			{ID: "test-model-c", Name: "Test Model C", SupportsTools: false},
		},
	}
}

func (p *testProvider) ID() llm.ProviderID   { return "test" }
func (p *testProvider) Name() string         { return "Test Provider" }
func (p *testProvider) Models() []llm.Model  { return p.models }
func (p *testProvider) DefaultModel() string { return p.model }
func (p *testProvider) Chat(_ context.Context, req *llm.ChatRequest) (*llm.ChatResponse, error) {
	if len(p.toolCalls) > 0 && req.ToolTurn == nil {
		return &llm.ChatResponse{ToolCalls: p.toolCalls}, nil
	}
	return &llm.ChatResponse{Content: "ok"}, nil
}
func (p *testProvider) SetModel(modelID string) error {
	if err := llm.ValidateModelID(modelID, p.models); err != nil {
		return err
	}
	p.model = modelID
	return nil
}

func newTestAgent(t *testing.T) *Agent {
	t.Helper()
	store, err := remind.OpenStoreDSN(":memory:")
	require.NoError(t, err)
	ag := &Agent{
		provider:     newTestProvider(),
		toolRegistry: NewToolRegistry(feeds.NewClient(feeds.Config{}), store),
		systemPrompt: "test",
		conversation: make([]llm.Message, 0),
	}
	t.Cleanup(ag.Close)
	return ag
}

func TestAgent_CurrentModel(t *testing.T) {
	t.Run("returns provider default model", func(t *testing.T) {
		ag := newTestAgent(t)
		assert.Equal(t, "test-model-a", ag.CurrentModel())
	})
}

func TestAgent_ListModels(t *testing.T) {
	t.Run("returns all provider models", func(t *testing.T) {
		ag := newTestAgent(t)
		models := ag.ListModels()
		require.Len(t, models, 3)
		assert.Equal(t, "test-model-a", models[0].ID)
		assert.Equal(t, "test-model-b", models[1].ID)
		assert.Equal(t, "test-model-c", models[2].ID)
	})
}

func TestAgent_ProviderName(t *testing.T) {
	t.Run("returns provider name", func(t *testing.T) {
		ag := newTestAgent(t)
		assert.Equal(t, "Test Provider", ag.ProviderName())
	})
}

func TestAgent_SetModel(t *testing.T) {
	t.Run("switches to valid model", func(t *testing.T) {
		ag := newTestAgent(t)
		err := ag.SetModel("test-model-b")
		require.NoError(t, err)
		assert.Equal(t, "test-model-b", ag.CurrentModel())
	})

	t.Run("rejects invalid model", func(t *testing.T) {
		ag := newTestAgent(t)
		err := ag.SetModel("nonexistent")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
		// Model should remain unchanged
		assert.Equal(t, "test-model-a", ag.CurrentModel())
	})

	t.Run("clears conversation on switch", func(t *testing.T) {
		ag := newTestAgent(t)
		ag.conversation = append(ag.conversation, llm.Message{
			Role:    "user",
			Content: "hello",
		})
		require.Len(t, ag.conversation, 1)

		err := ag.SetModel("test-model-b")
		require.NoError(t, err)
		assert.Empty(t, ag.conversation)
	})

	t.Run("does not clear conversation on failed switch", func(t *testing.T) {
		ag := newTestAgent(t)
		ag.conversation = append(ag.conversation, llm.Message{
			Role:    "user",
			Content: "hello",
		})

		err := ag.SetModel("nonexistent")
		require.Error(t, err)
		assert.Len(t, ag.conversation, 1)
	})
}

func TestAgent_ChatWithEvents(t *testing.T) {
	t.Run("plain reply yields one content event", func(t *testing.T) {
		ag := newTestAgent(t)

		events, err := ag.ChatWithEvents(context.Background(), "hello")
		require.NoError(t, err)
		require.Len(t, events, 1)
		assert.Equal(t, "content", events[0].Type)
		assert.Equal(t, "ok", events[0].Content)
	})

	t.Run("tool round emits call, result, then content", func(t *testing.T) {
		ag := newTestAgent(t)
		ag.provider.(*testProvider).toolCalls = []llm.ToolCall{
			{ID: "call_1", Name: "list_reminders", Input: json.RawMessage(`{}`)},
		}

		events, err := ag.ChatWithEvents(context.Background(), "what's on my list?")
		require.NoError(t, err)
		require.Len(t, events, 3)

		assert.Equal(t, "tool_call", events[0].Type)
		assert.Equal(t, "list_reminders", events[0].Tool)

		assert.Equal(t, "tool_result", events[1].Type)
		assert.False(t, events[1].IsError)
		var doc map[string]any
		require.NoError(t, json.Unmarshal(events[1].Result, &doc))
		assert.Equal(t, "reminders", doc["result_type"])

		assert.Equal(t, "content", events[2].Type)
	})

	t.Run("unknown tool becomes an error result, not a failure", func(t *testing.T) {
		ag := newTestAgent(t)
		ag.provider.(*testProvider).toolCalls = []llm.ToolCall{
			{ID: "call_1", Name: "launch_rockets", Input: json.RawMessage(`{}`)},
		}

		events, err := ag.ChatWithEvents(context.Background(), "do it")
		require.NoError(t, err)
		require.Len(t, events, 3)
		assert.Equal(t, "tool_result", events[1].Type)
		assert.True(t, events[1].IsError)
		assert.Contains(t, events[1].Content, "unknown tool")
	})

	t.Run("batch results keep call order", func(t *testing.T) {
		ag := newTestAgent(t)
		ag.provider.(*testProvider).toolCalls = []llm.ToolCall{
			{ID: "c1", Name: "list_reminders", Input: json.RawMessage(`{}`)},
			{ID: "c2", Name: "create_reminder", Input: json.RawMessage(`{"text": "later"}`)},
		}

		events, err := ag.ChatWithEvents(context.Background(), "both")
		require.NoError(t, err)
		require.Len(t, events, 5)
		assert.Equal(t, "list_reminders", events[0].Tool)
		assert.Equal(t, "list_reminders", events[1].Tool)
		assert.Equal(t, "create_reminder", events[2].Tool)
		assert.Equal(t, "create_reminder", events[3].Tool)
	})
}

func TestAgent_Reset(t *testing.T) {
	ag := newTestAgent(t)
	_, err := ag.ChatWithEvents(context.Background(), "hello")
	require.NoError(t, err)
	require.NotEmpty(t, ag.conversation)

	ag.Reset()
	assert.Empty(t, ag.conversation)
}
