package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvVarForProvider(t *testing.T) {
	tests := []struct {
		provider ProviderID
		expected string
	}{
		{ProviderAnthropic, "ANTHROPIC_API_KEY"},
		{ProviderOpenAI, "OPENAI_API_KEY"},
		{ProviderGemini, "GOOGLE_API_KEY"},
		{ProviderID("unknown"), ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.provider), func(t *testing.T) {
			assert.Equal(t, tt.expected, EnvVarForProvider(tt.provider))
		})
	}
}

func TestAllProviderIDs(t *testing.T) {
	ids := AllProviderIDs()

	assert.Len(t, ids, 3)
	assert.Equal(t, ProviderAnthropic, ids[0], "anthropic has priority")
	assert.Contains(t, ids, ProviderOpenAI)
	assert.Contains(t, ids, ProviderGemini)
}

func TestValidateModelID(t *testing.T) {
	models := []Model{{ID: "m1"}, {ID: "m2"}}

	t.Run("known model", func(t *testing.T) {
		assert.NoError(t, ValidateModelID("m1", models))
	})

	t.Run("unknown model", func(t *testing.T) {
		err := ValidateModelID("nope", models)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown model")
	})
}

func TestResolveRequest(t *testing.T) {
	t.Run("defaults applied", func(t *testing.T) {
		model, maxTokens := resolveRequest(&ChatRequest{}, "fallback")
		assert.Equal(t, "fallback", model)
		assert.Equal(t, defaultMaxTokens, maxTokens)
	})

	t.Run("explicit values win", func(t *testing.T) {
		model, maxTokens := resolveRequest(&ChatRequest{Model: "m", MaxTokens: 99}, "fallback")
		assert.Equal(t, "m", model)
		assert.Equal(t, 99, maxTokens)
	})
}

func TestProviderConstructors_RequireKey(t *testing.T) {
	t.Run("anthropic", func(t *testing.T) {
		_, err := NewAnthropicProvider("", "")
		require.Error(t, err)
	})

	t.Run("openai", func(t *testing.T) {
		_, err := NewOpenAIProvider("", "")
		require.Error(t, err)
	})
}

func TestProviderSetModel(t *testing.T) {
	p, err := NewAnthropicProvider("test-key", "")
	require.NoError(t, err)

	t.Run("valid model", func(t *testing.T) {
		require.NoError(t, p.SetModel("claude-3-5-haiku-20241022"))
		assert.Equal(t, "claude-3-5-haiku-20241022", p.DefaultModel())
	})

	t.Run("invalid model rejected", func(t *testing.T) {
		err := p.SetModel("not-a-model")
		require.Error(t, err)
	})
}

func TestAssistantTools(t *testing.T) {
	tools := AssistantTools()
	require.NotEmpty(t, tools)

	names := make(map[string]bool, len(tools))
	for _, tool := range tools {
		t.Run(tool.Name, func(t *testing.T) {
			assert.NotEmpty(t, tool.Description)

			// Every schema must be a valid JSON object schema.
			var schema map[string]any
			require.NoError(t, json.Unmarshal(tool.InputSchema, &schema))
			assert.Equal(t, "object", schema["type"])
		})
		names[tool.Name] = true
	}

	for _, expected := range []string{
		"search_web", "get_weather", "find_recipes", "get_news",
		"get_reddit_feed", "get_hackernews_feed", "search_photos",
		"search_videos", "get_video_insights", "create_payment_link",
		"find_leads", "list_reminders", "create_reminder", "complete_reminder",
		"search_products",
	} {
		assert.True(t, names[expected], "missing tool %s", expected)
	}
}
