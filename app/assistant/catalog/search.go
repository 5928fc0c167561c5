package catalog

import (
	"context"

	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"
)

// SearchCatalog serves product lookups from the Elasticsearch projection kept
// by the indexer. Categories still come from MySQL through the Redis cache.
type SearchCatalog struct {
	index      *search.Client
	categories product.CategoriesModel
}

func NewSearchCatalog(index *search.Client, categories product.CategoriesModel) *SearchCatalog {
	return &SearchCatalog{index: index, categories: categories}
}

func (c *SearchCatalog) Find(ctx context.Context, p Predicate) ([]ProductSummary, error) {
	docs, err := c.index.Search(ctx, toQuery(p))
	if err != nil {
		return nil, err
	}

	out := make([]ProductSummary, 0, len(docs))
	for _, doc := range docs {
		out = append(out, ProductSummary{
			ID:         doc.ProductID,
			Name:       doc.Name,
			Price:      doc.Price,
			Rating:     doc.Rating,
			NumReviews: doc.NumReviews,
			Brand:      doc.Brand,
			Category:   doc.Category,
			Image:      doc.Image,
		})
	}
	return out, nil
}

func (c *SearchCatalog) ActiveCategories(ctx context.Context) ([]Category, error) {
	return activeCategories(ctx, c.categories)
}

func toQuery(p Predicate) search.Query {
	q := search.Query{
		ActiveOnly: p.ActiveOnly,
		CategoryID: p.CategoryID,
		MinPrice:   p.MinPrice,
		MaxPrice:   p.MaxPrice,
		Keywords:   p.Keywords,
		Size:       p.Limit,
	}
	for _, field := range p.Fields {
		q.Fields = append(q.Fields, string(field))
	}
	for _, key := range p.Sort {
		column, desc := sortColumn(key)
		q.Sort = append(q.Sort, search.SortField{Field: column, Desc: desc})
	}
	return q
}
