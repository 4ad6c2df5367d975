package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Every card must degrade to a frame with placeholders when the payload has
// nothing but its discriminator, and must surface the payload error field.

func TestCards_DegradeGracefully(t *testing.T) {
	renderers := map[string]RenderFunc{
		"weather":        renderWeather,
		"news":           renderNews,
		"recipe":         renderRecipe,
		"recipe_list":    renderRecipeList,
		"reddit":         renderReddit,
		"hackernews":     renderHackerNews,
		"reminders":      renderReminders,
		"calendar":       renderCalendar,
		"email":          renderEmail,
		"leads":          renderLeads,
		"payment":        renderPayment,
		"photo_gallery":  renderPhotoGallery,
		"youtube":        renderYouTubeGallery,
		"tiktok":         renderTikTokGallery,
		"products":       renderProducts,
		"web_snippet":    renderWebSnippet,
		"answerbox":      renderAnswerBox,
		"knowledgegraph": renderKnowledgeGraph,
		"video_insights": renderVideoInsights,
		"generic":        renderGeneric,
	}

	for name, fn := range renderers {
		t.Run(name+" empty payload", func(t *testing.T) {
			assert.NotPanics(t, func() {
				fn(NewResult(map[string]any{"result_type": name}))
			})
		})

		t.Run(name+" surfaces error", func(t *testing.T) {
			card := fn(NewResult(map[string]any{
				"result_type": name,
				"error":       "backend exploded",
			}))
			assert.Contains(t, card.Body, "backend exploded")
		})
	}
}

func TestRenderWeather(t *testing.T) {
	card := renderWeather(NewResult(map[string]any{
		"result_type": "weather",
		"location":    "Osaka",
		"current": map[string]any{
			"conditions": "Clear",
			"temp_c":     float64(21),
			"humidity":   float64(40),
		},
		"forecast": []any{
			map[string]any{"day": "Mon", "conditions": "Rain", "high_c": float64(18), "low_c": float64(12)},
		},
	}))

	assert.Equal(t, KindWeather, card.Kind)
	assert.Contains(t, card.Title, "Osaka")
	assert.Contains(t, card.Body, "Clear")
	assert.Contains(t, card.Body, "21°C")
	assert.Contains(t, card.Body, "Rain")
}

func TestRenderRecipe(t *testing.T) {
	t.Run("nested recipe object", func(t *testing.T) {
		card := renderRecipe(NewResult(map[string]any{
			"result_type": "recipe",
			"recipe": map[string]any{
				"title":       "Soup",
				"ingredients": []any{"water", "salt"},
				"steps":       []any{"boil", "season"},
			},
		}))
		assert.Contains(t, card.Title, "Soup")
		assert.Contains(t, card.Body, "water")
		assert.Contains(t, card.Body, "1. boil")
	})

	t.Run("flattened payload", func(t *testing.T) {
		card := renderRecipe(NewResult(map[string]any{
			"result_type": "recipe",
			"title":       "Stew",
		}))
		assert.Contains(t, card.Title, "Stew")
	})
}

func TestRenderReminders(t *testing.T) {
	card := renderReminders(NewResult(map[string]any{
		"result_type": "reminders",
		"reminders": []any{
			map[string]any{"text": "water plants", "due": "tomorrow 9am"},
			map[string]any{"text": "file taxes", "done": true},
		},
	}))

	assert.Contains(t, card.Body, "water plants")
	assert.Contains(t, card.Body, "tomorrow 9am")
	assert.Contains(t, card.Body, "☑")
	assert.Contains(t, card.Body, "☐")
}

func TestRenderGeneric(t *testing.T) {
	card := renderGeneric(NewResult(map[string]any{
		"result_type": "totally_new_kind",
		"foo":         float64(1),
		"bar":         "baz",
		"nested":      map[string]any{"a": 1, "b": 2},
		"list":        []any{1, 2, 3},
	}))

	assert.Equal(t, KindGeneric, card.Kind)
	assert.Contains(t, card.Title, "totally_new_kind")
	assert.Contains(t, card.Body, "foo")
	assert.Contains(t, card.Body, "1")
	assert.Contains(t, card.Body, "baz")
	assert.Contains(t, card.Body, "[3 items]")
	assert.Contains(t, card.Body, "{a, b}")
}

func TestRenderHackerNews(t *testing.T) {
	card := renderHackerNews(NewResult(map[string]any{
		"result_type": "hackernews_list",
		"stories": []any{
			map[string]any{"title": "Show HN: a thing", "score": float64(120), "comments": float64(45), "by": "pg"},
		},
	}))

	assert.Contains(t, card.Body, "Show HN: a thing")
	assert.Contains(t, card.Body, "120 points")
	assert.Contains(t, card.Body, "45 comments")
}
