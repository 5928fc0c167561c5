package catalog

import (
	"context"

	"VoiceMart/app/dal/product"
)

// SQLCatalog serves lookups straight from the MySQL catalog tables.
type SQLCatalog struct {
	products   product.ProductsModel
	categories product.CategoriesModel
}

func NewSQLCatalog(products product.ProductsModel, categories product.CategoriesModel) *SQLCatalog {
	return &SQLCatalog{products: products, categories: categories}
}

func (c *SQLCatalog) Find(ctx context.Context, p Predicate) ([]ProductSummary, error) {
	rows, err := c.products.FindByFilter(ctx, toFilter(p))
	if err != nil {
		return nil, err
	}

	out := make([]ProductSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, ProductSummary{
			ID:         row.Id,
			Name:       row.Name,
			Price:      row.Price,
			Rating:     row.Rating,
			NumReviews: row.NumReviews,
			Brand:      row.Brand,
			Category:   row.CategoryName,
			Image:      row.Image.String,
		})
	}
	return out, nil
}

func (c *SQLCatalog) ActiveCategories(ctx context.Context) ([]Category, error) {
	return activeCategories(ctx, c.categories)
}

func activeCategories(ctx context.Context, model product.CategoriesModel) ([]Category, error) {
	rows, err := model.FindAllActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]Category, 0, len(rows))
	for _, row := range rows {
		out = append(out, Category{ID: row.Id, Name: row.Name})
	}
	return out, nil
}

func toFilter(p Predicate) product.ProductFilter {
	f := product.ProductFilter{
		ActiveOnly: p.ActiveOnly,
		CategoryId: p.CategoryID,
		MinPrice:   p.MinPrice,
		MaxPrice:   p.MaxPrice,
		Keywords:   p.Keywords,
		Limit:      p.Limit,
	}
	for _, field := range p.Fields {
		f.Fields = append(f.Fields, string(field))
	}
	for _, key := range p.Sort {
		column, desc := sortColumn(key)
		f.OrderBy = append(f.OrderBy, product.Order{Column: column, Desc: desc})
	}
	return f
}

// sortColumn maps a sort key onto the column name shared by the SQL and
// search backends. Unknown keys map to "" which both backends reject.
func sortColumn(key SortKey) (string, bool) {
	switch key {
	case SortRatingDesc:
		return "rating", true
	case SortReviewsDesc:
		return "num_reviews", true
	case SortPriceAsc:
		return "price", false
	case SortPriceDesc:
		return "price", true
	case SortNewest:
		return "created_at", true
	default:
		return "", false
	}
}
