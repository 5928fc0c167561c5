// Package catalog is the read-only product lookup the interpreter consumes.
package catalog

import (
	"context"
	"strings"
)

// Field is a product text field a keyword may match.
type Field string

const (
	FieldName        Field = "name"
	FieldDescription Field = "description"
	FieldBrand       Field = "brand"
)

type SortKey int

const (
	SortRatingDesc SortKey = iota + 1
	SortReviewsDesc
	SortPriceAsc
	SortPriceDesc
	SortNewest
)

type (
	// Service finds products and lists categories. Implementations must be
	// safe for concurrent use.
	Service interface {
		Find(ctx context.Context, p Predicate) ([]ProductSummary, error)
		ActiveCategories(ctx context.Context) ([]Category, error)
	}

	// Predicate selects products. Keywords are OR-matched, case-insensitively,
	// against Fields; every other set constraint must hold.
	Predicate struct {
		ActiveOnly bool
		CategoryID int64
		MinPrice   *float64
		MaxPrice   *float64
		Keywords   []string
		Fields     []Field
		Sort       []SortKey
		Limit      int
	}

	ProductSummary struct {
		ID         int64   `json:"id"`
		Name       string  `json:"name"`
		Price      float64 `json:"price"`
		Rating     float64 `json:"rating"`
		NumReviews int64   `json:"numReviews"`
		Brand      string  `json:"brand,omitempty"`
		Category   string  `json:"category,omitempty"`
		Image      string  `json:"image,omitempty"`
	}

	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	}
)

// TextFields is the default keyword search surface.
var TextFields = []Field{FieldName, FieldDescription, FieldBrand}

func Price(v float64) *float64 {
	return &v
}

// FindCategory returns the first category whose name contains keyword,
// ignoring case.
func FindCategory(categories []Category, keyword string) (Category, bool) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return Category{}, false
	}
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), keyword) {
			return c, true
		}
	}
	return Category{}, false
}

// MentionedCategory returns the first category whose name occurs in text,
// ignoring case.
func MentionedCategory(categories []Category, text string) (Category, bool) {
	text = strings.ToLower(text)
	for _, c := range categories {
		name := strings.ToLower(strings.TrimSpace(c.Name))
		if name != "" && strings.Contains(text, name) {
			return c, true
		}
	}
	return Category{}, false
}
