package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsStructuredResult(t *testing.T) {
	tests := []struct {
		name string
		in   map[string]any
		want bool
	}{
		{"nil map", nil, false},
		{"empty map", map[string]any{}, false},
		{"missing discriminator", map[string]any{"foo": 1}, false},
		{"discriminator not a string", map[string]any{"result_type": 42}, false},
		{"blank discriminator", map[string]any{"result_type": "  "}, false},
		{"minimal valid", map[string]any{"result_type": "weather"}, true},
		{"valid with extras", map[string]any{"result_type": "recipe", "recipe": map[string]any{}}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsStructuredResult(tt.in))
		})
	}
}

func TestResult_TolerantAccessors(t *testing.T) {
	r := NewResult(map[string]any{
		"result_type": " Video_List ",
		"source_api":  "YouTube",
		"count":       float64(3),
		"videos": []any{
			map[string]any{"title": "one"},
			"not an object",
			map[string]any{"title": "two"},
		},
		"tags": []any{"a", float64(2), nil},
	})

	t.Run("discriminators normalized", func(t *testing.T) {
		assert.Equal(t, "video_list", r.Type())
		assert.Equal(t, "youtube", r.Source())
	})

	t.Run("list skips non-objects", func(t *testing.T) {
		videos := r.List("videos")
		assert.Len(t, videos, 2)
		assert.Equal(t, "one", videos[0].Str("title"))
	})

	t.Run("strings stringifies mixed elements", func(t *testing.T) {
		assert.Equal(t, []string{"a", "2"}, r.Strings("tags"))
	})

	t.Run("missing fields are zero values", func(t *testing.T) {
		assert.Equal(t, "", r.Str("nope"))
		assert.Zero(t, r.Sub("nope").Len())
		assert.Nil(t, r.List("nope"))
		_, ok := r.Num("nope")
		assert.False(t, ok)
	})

	t.Run("num accepts json numbers", func(t *testing.T) {
		n, ok := r.Num("count")
		assert.True(t, ok)
		assert.Equal(t, float64(3), n)
	})
}

func TestNormalizeKind(t *testing.T) {
	assert.Equal(t, "reminders", NormalizeKind("  Reminders "))
	assert.Equal(t, "", NormalizeKind("   "))
}
