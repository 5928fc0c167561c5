package helper

import (
	"encoding/json"
	"testing"

	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/catalog/catalogtest"
	"VoiceMart/app/assistant/directive"
	"VoiceMart/app/assistant/intent"
	"VoiceMart/app/assistant/reply"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToProductItemsNeverNil(t *testing.T) {
	items := ToProductItems(nil)
	require.NotNil(t, items)
	assert.Empty(t, items)
}

func TestToVoiceCommandResponse(t *testing.T) {
	env := reply.Envelope{
		Intent:     intent.KindSearchByPriceRange,
		Confidence: intent.ConfidenceHigh,
		Resolution: reply.ResolutionRule,
		Message:    "Searching for products between $10 and $20.",
		Action:     directive.SearchPriceRange,
		MinPrice:   reply.Bound(10),
		MaxPrice:   reply.Bound(20),
		Products:   catalogtest.Sample(2),
	}

	resp := ToVoiceCommandResponse(env)
	assert.Equal(t, "SEARCH_BY_PRICE_RANGE", resp.Intent)
	assert.Equal(t, "SEARCH_PRICE_RANGE", resp.Action)
	assert.Equal(t, "rule", resp.Resolution)
	assert.Equal(t, int64(10), *resp.MinPrice)
	assert.Equal(t, int64(20), *resp.MaxPrice)
	require.Len(t, resp.Products, 2)
	assert.Equal(t, "Product 1", resp.Products[0].Name)

	informational := ToVoiceCommandResponse(reply.Envelope{Intent: intent.KindHelp, Message: "hi"})
	assert.Equal(t, "", informational.Action)
	assert.Nil(t, informational.Products)

	empty := ToVoiceCommandResponse(reply.Envelope{Intent: intent.KindSearchCategory, Products: []catalog.ProductSummary{}})
	require.NotNil(t, empty.Products)

	raw, err := json.Marshal(empty)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"products":[]`)
}
