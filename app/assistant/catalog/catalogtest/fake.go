// Package catalogtest provides an in-memory catalog.Service for tests.
package catalogtest

import (
	"context"
	"strconv"
	"sync"

	"VoiceMart/app/assistant/catalog"
)

var _ catalog.Service = (*Fake)(nil)

// Fake returns Products, truncated to the predicate limit, for every Find.
type Fake struct {
	Products      []catalog.ProductSummary
	Categories    []catalog.Category
	FindErr       error
	CategoriesErr error

	mu         sync.Mutex
	predicates []catalog.Predicate
}

func (f *Fake) Find(_ context.Context, p catalog.Predicate) ([]catalog.ProductSummary, error) {
	f.mu.Lock()
	f.predicates = append(f.predicates, p)
	f.mu.Unlock()

	if f.FindErr != nil {
		return nil, f.FindErr
	}
	out := append([]catalog.ProductSummary(nil), f.Products...)
	if p.Limit > 0 && len(out) > p.Limit {
		out = out[:p.Limit]
	}
	return out, nil
}

func (f *Fake) ActiveCategories(context.Context) ([]catalog.Category, error) {
	if f.CategoriesErr != nil {
		return nil, f.CategoriesErr
	}
	return append([]catalog.Category(nil), f.Categories...), nil
}

// Predicates returns every predicate passed to Find, in call order.
func (f *Fake) Predicates() []catalog.Predicate {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]catalog.Predicate(nil), f.predicates...)
}

// Sample builds n distinct products named "Product 1".."Product n".
func Sample(n int) []catalog.ProductSummary {
	out := make([]catalog.ProductSummary, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, catalog.ProductSummary{
			ID:     int64(i),
			Name:   "Product " + strconv.Itoa(i),
			Price:  float64(i * 100),
			Rating: 5 - float64(i%5)/2,
		})
	}
	return out
}
