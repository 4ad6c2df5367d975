package render

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestDispatch_EmptyInput(t *testing.T) {
	d := New()

	t.Run("zero input renders nothing", func(t *testing.T) {
		assert.Nil(t, d.Dispatch(Input{}))
	})

	t.Run("nil value renders nothing", func(t *testing.T) {
		assert.Nil(t, d.Dispatch(Value(nil)))
	})

	t.Run("blank string renders nothing", func(t *testing.T) {
		assert.Nil(t, d.Dispatch(Text("   \n")))
	})
}

func TestDispatch_Totality(t *testing.T) {
	// No input below may panic or produce more than one card.
	d := New()

	inputs := []Input{
		{},
		Text(""),
		Text("plain prose"),
		Text("{not json"),
		Text(`{"foo":1}`),
		Text(`[1,2,3]`),
		Text(`"just a json string"`),
		Text(`null`),
		Text(`{"result_type":"weather"}`),
		Text(`{"result_type":""}`),
		Text(`{"result_type":42}`),
		Value(map[string]any{}),
		Value(map[string]any{"result_type": "recipe"}),
		Value(map[string]any{"result_type": 42}),
		Value(map[string]any{"result_type": "weather", "current": "not-an-object"}),
		Value(map[string]any{"result_type": "news_list", "articles": []any{"bare string", nil, 7}}),
	}

	for i, in := range inputs {
		t.Run(fmt.Sprintf("input_%d", i), func(t *testing.T) {
			assert.NotPanics(t, func() {
				d.Dispatch(in)
			})
		})
	}
}

func TestDispatch_Idempotence(t *testing.T) {
	d := New()
	in := Value(map[string]any{"result_type": "weather", "location": "Osaka"})

	first := d.Dispatch(in)
	second := d.Dispatch(in)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.Kind, second.Kind)
	assert.Equal(t, first.Body, second.Body)
}

func TestDispatch_UnknownKind(t *testing.T) {
	t.Run("routes to catch-all", func(t *testing.T) {
		d := New()
		card := d.Dispatch(Value(map[string]any{
			"result_type": "totally_new_kind",
			"foo":         float64(1),
		}))
		require.NotNil(t, card)
		assert.Equal(t, KindGeneric, card.Kind)
		assert.Contains(t, card.Body, "foo")
	})

	t.Run("logs an advisory", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		d := New(WithLogger(zap.New(core)))

		d.Dispatch(Value(map[string]any{"result_type": "totally_new_kind"}))

		require.Equal(t, 1, logs.Len())
		entry := logs.All()[0]
		assert.Contains(t, entry.Message, "catch-all")
		assert.Equal(t, "totally_new_kind", entry.ContextMap()["result_type"])
	})

	t.Run("known kind logs nothing", func(t *testing.T) {
		core, logs := observer.New(zap.InfoLevel)
		d := New(WithLogger(zap.New(core)))

		d.Dispatch(Value(map[string]any{"result_type": "weather"}))
		assert.Zero(t, logs.Len())
	})
}

func TestDispatch_StringFallback(t *testing.T) {
	d := New()

	t.Run("prose returned verbatim", func(t *testing.T) {
		card := d.Dispatch(Text("Just a plain assistant reply."))
		require.NotNil(t, card)
		assert.Equal(t, KindText, card.Kind)
		assert.Equal(t, "Just a plain assistant reply.", card.Body)
	})

	t.Run("valid JSON without result shape is prose", func(t *testing.T) {
		card := d.Dispatch(Text(`{"foo":1}`))
		require.NotNil(t, card)
		assert.Equal(t, KindText, card.Kind)
		assert.Equal(t, `{"foo":1}`, card.Body)
	})

	t.Run("JSON array is prose", func(t *testing.T) {
		card := d.Dispatch(Text(`[1,2,3]`))
		require.NotNil(t, card)
		assert.Equal(t, KindText, card.Kind)
	})

	t.Run("object input without result shape renders nothing", func(t *testing.T) {
		assert.Nil(t, d.Dispatch(Value(map[string]any{"foo": 1})))
	})
}

func TestDispatch_MalformedJSON(t *testing.T) {
	d := New()

	card := d.Dispatch(Text("{not json"))
	require.NotNil(t, card)
	assert.Equal(t, KindParseError, card.Kind)
	assert.NotContains(t, card.Body, "{not json")
}

func TestDispatch_SourceDisambiguation(t *testing.T) {
	d := New()

	videoList := func(source string) Input {
		return Value(map[string]any{
			"result_type": "video_list",
			"source_api":  source,
		})
	}

	t.Run("youtube", func(t *testing.T) {
		card := d.Dispatch(videoList("youtube"))
		require.NotNil(t, card)
		assert.Equal(t, KindYouTubeGallery, card.Kind)
	})

	t.Run("tiktok", func(t *testing.T) {
		card := d.Dispatch(videoList("serper_tiktok"))
		require.NotNil(t, card)
		assert.Equal(t, KindTikTokGallery, card.Kind)
	})

	t.Run("unknown source falls back", func(t *testing.T) {
		card := d.Dispatch(videoList("unknown_x"))
		require.NotNil(t, card)
		assert.Equal(t, KindGeneric, card.Kind)
	})

	t.Run("absent source falls back", func(t *testing.T) {
		card := d.Dispatch(Value(map[string]any{"result_type": "video_list"}))
		require.NotNil(t, card)
		assert.Equal(t, KindGeneric, card.Kind)
	})

	t.Run("pexels photos", func(t *testing.T) {
		card := d.Dispatch(Value(map[string]any{
			"result_type": "image_list",
			"source_api":  "pexels_photo",
		}))
		require.NotNil(t, card)
		assert.Equal(t, KindPhotoGallery, card.Kind)
	})

	t.Run("other image source falls back", func(t *testing.T) {
		card := d.Dispatch(Value(map[string]any{
			"result_type": "image_list",
			"source_api":  "some_cdn",
		}))
		require.NotNil(t, card)
		assert.Equal(t, KindGeneric, card.Kind)
	})
}

func TestDispatch_KindNormalization(t *testing.T) {
	d := New()

	messy := d.Dispatch(Value(map[string]any{"result_type": "  Reminders "}))
	clean := d.Dispatch(Value(map[string]any{"result_type": "reminders"}))

	require.NotNil(t, messy)
	require.NotNil(t, clean)
	assert.Equal(t, clean.Kind, messy.Kind)
	assert.Equal(t, KindReminders, messy.Kind)
}

func TestDispatch_ErrorPassthrough(t *testing.T) {
	d := New()

	card := d.Dispatch(Value(map[string]any{
		"result_type": "weather",
		"error":       "upstream timed out",
	}))

	require.NotNil(t, card)
	assert.Equal(t, KindWeather, card.Kind, "payload errors route to the normal renderer")
	assert.Contains(t, card.Body, "upstream timed out")
}

func TestDispatch_PaymentLinks(t *testing.T) {
	payment := Value(map[string]any{
		"result_type": "payment_link",
		"source_api":  "stripe",
		"url":         "https://pay.example.com/x",
	})

	t.Run("enabled by default", func(t *testing.T) {
		card := New().Dispatch(payment)
		require.NotNil(t, card)
		assert.Equal(t, KindPayment, card.Kind)
		assert.Contains(t, card.Body, "https://pay.example.com/x")
	})

	t.Run("disabled by policy", func(t *testing.T) {
		card := New(WithPaymentLinks(false)).Dispatch(payment)
		require.NotNil(t, card)
		assert.Equal(t, KindPaymentDisabled, card.Kind)
		assert.NotContains(t, card.Body, "https://pay.example.com/x")
	})

	t.Run("disabled by payload flag", func(t *testing.T) {
		card := New().Dispatch(Value(map[string]any{
			"result_type":       "payment_link",
			"payments_disabled": true,
		}))
		require.NotNil(t, card)
		assert.Equal(t, KindPaymentDisabled, card.Kind)
	})
}

func TestDispatch_RecipeScenario(t *testing.T) {
	d := New()

	card := d.Dispatch(Text(`{"result_type":"recipe","recipe":{"title":"Soup"}}`))
	require.NotNil(t, card)
	assert.Equal(t, KindRecipe, card.Kind)
	assert.Contains(t, card.Body, "Soup")
}

func TestDispatch_DoesNotMutatePayload(t *testing.T) {
	d := New()

	payload := map[string]any{
		"result_type": "  Weather ",
		"location":    "Kyoto",
	}
	before, err := json.Marshal(payload)
	require.NoError(t, err)

	d.Dispatch(Value(payload))

	after, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, string(before), string(after))
}

func TestDispatch_CustomRegistry(t *testing.T) {
	reg := NewRegistry()
	reg.Register("custom_kind", func(r Result) Card {
		return Card{Kind: "custom", Body: "custom body"}
	})
	d := New(WithRegistry(reg))

	t.Run("routes registered kind", func(t *testing.T) {
		card := d.Dispatch(Value(map[string]any{"result_type": "custom_kind"}))
		require.NotNil(t, card)
		assert.Equal(t, "custom", card.Kind)
	})

	t.Run("everything else hits the catch-all", func(t *testing.T) {
		card := d.Dispatch(Value(map[string]any{"result_type": "weather"}))
		require.NotNil(t, card)
		assert.Equal(t, KindGeneric, card.Kind)
	})
}

func TestDispatch_EnvelopeApplied(t *testing.T) {
	d := New(WithWidth(40))

	card := d.Dispatch(Value(map[string]any{"result_type": "weather", "location": "Nara"}))
	require.NotNil(t, card)
	// Rounded border corners from the envelope container.
	assert.Contains(t, card.Body, "╭")
	assert.Contains(t, card.Body, "╰")
}
