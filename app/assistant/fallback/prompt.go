package fallback

import (
	"encoding/json"
	"fmt"
	"strings"

	"VoiceMart/app/assistant/catalog"
	"VoiceMart/app/assistant/reply"
)

const PromptProductLimit = 10

type promptProduct struct {
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Rating   float64 `json:"rating"`
	Category string  `json:"category,omitempty"`
	Brand    string  `json:"brand,omitempty"`
}

// BuildPrompt renders the shopping assistant prompt for one utterance.
func BuildPrompt(utterance string, products []catalog.ProductSummary, categories []catalog.Category, page reply.PageContext) (string, error) {
	if len(products) > PromptProductLimit {
		products = products[:PromptProductLimit]
	}
	sample := make([]promptProduct, 0, len(products))
	for _, p := range products {
		sample = append(sample, promptProduct{
			Name:     p.Name,
			Price:    p.Price,
			Rating:   p.Rating,
			Category: p.Category,
			Brand:    p.Brand,
		})
	}

	productJSON, err := json.MarshalIndent(sample, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode prompt products: %w", err)
	}
	pageJSON, err := json.Marshal(page)
	if err != nil {
		return "", fmt.Errorf("encode page context: %w", err)
	}

	names := make([]string, 0, len(categories))
	for _, c := range categories {
		names = append(names, c.Name)
	}

	var b strings.Builder
	b.WriteString("You are a helpful shopping assistant for an e-commerce store.\n\n")
	fmt.Fprintf(&b, "User command: %q\n\n", utterance)
	b.WriteString("Available products (sample):\n")
	b.Write(productJSON)
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Available categories: %s\n\n", strings.Join(names, ", "))
	fmt.Fprintf(&b, "Context: %s\n\n", pageJSON)
	b.WriteString("Provide a helpful, concise response (2-3 sentences max). ")
	b.WriteString("If recommending products, mention specific product names and why they're good choices. ")
	b.WriteString("If the user is asking for price comparisons or searches, suggest relevant filters.\n\n")
	b.WriteString("Response:")
	return b.String(), nil
}
