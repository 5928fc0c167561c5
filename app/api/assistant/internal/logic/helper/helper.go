package helper

import (
	"VoiceMart/app/api/assistant/internal/types"
	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/reply"
)

// ToProductItems never returns nil so empty lists encode as [].
func ToProductItems(products []catalog.ProductSummary) []types.ProductItem {
	items := make([]types.ProductItem, 0, len(products))
	for _, p := range products {
		items = append(items, types.ProductItem{
			Id:         p.ID,
			Name:       p.Name,
			Price:      p.Price,
			Rating:     p.Rating,
			NumReviews: p.NumReviews,
			Brand:      p.Brand,
			Category:   p.Category,
			Image:      p.Image,
		})
	}
	return items
}

// ToVoiceCommandResponse leaves Products nil, encoded as null, for replies
// without a result set; an empty result set encodes as [].
func ToVoiceCommandResponse(env reply.Envelope) *types.VoiceCommandResponse {
	resp := &types.VoiceCommandResponse{
		Intent:     env.Intent.String(),
		Resolution: string(env.Resolution),
		Response:   env.Message,
		Action:     env.Action.String(),
		Category:   env.Category,
		MinPrice:   env.MinPrice,
		MaxPrice:   env.MaxPrice,
		Url:        env.URL,
	}
	if env.Products != nil {
		resp.Products = ToProductItems(env.Products)
	}
	return resp
}
