package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/minatolabs/minato/internal/render"
)

func TestSamplePayloadsDispatch(t *testing.T) {
	dispatcher := render.New()

	for kind, payload := range samplePayloads {
		t.Run(kind, func(t *testing.T) {
			card := dispatcher.DispatchJSON(payload)
			require.NotNil(t, card, "sample for %s must produce a card", kind)
			assert.NotEqual(t, render.KindText, card.Kind,
				"sample for %s must validate as a structured result", kind)
			assert.NotEmpty(t, card.Body)
		})
	}
}

func TestSamplePayloadsRouting(t *testing.T) {
	dispatcher := render.New()

	t.Run("tiktok sample routes by source", func(t *testing.T) {
		card := dispatcher.DispatchJSON(samplePayloads["tiktok_list"])
		require.NotNil(t, card)
		assert.Equal(t, render.KindTikTokGallery, card.Kind)
	})

	t.Run("generic sample hits the catch-all", func(t *testing.T) {
		card := dispatcher.DispatchJSON(samplePayloads["generic"])
		require.NotNil(t, card)
		assert.Equal(t, render.KindGeneric, card.Kind)
	})

	t.Run("payment sample respects the policy toggle", func(t *testing.T) {
		off := render.New(render.WithPaymentLinks(false))
		card := off.DispatchJSON(samplePayloads["payment_link"])
		require.NotNil(t, card)
		assert.Equal(t, render.KindPaymentDisabled, card.Kind)
	})
}
