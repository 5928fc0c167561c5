package mq

import (
	"strings"
	"time"

	"VoiceMart/app/dal/product"
	"VoiceMart/app/dal/search"
)

const (
	QueueIndexer = "indexer"

	canalInsert = "INSERT"
	canalUpdate = "UPDATE"
	canalDelete = "DELETE"
)

// canalEnvelope holds the fields every canal flat message carries.
type canalEnvelope struct {
	Database string   `json:"database"`
	Table    string   `json:"table"`
	IsDdl    bool     `json:"isDdl"`
	PkNames  []string `json:"pkNames"`
	Es       int64    `json:"es"`
	Ts       int64    `json:"ts"`
	Type     string   `json:"type"`
}

// ProductRow is a products row as canal encodes it: every column is a string
// and NULL columns decode to zero values.
type ProductRow struct {
	ID          int64   `json:"id,string"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price,string"`
	CategoryID  int64   `json:"category_id,string"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image"`
	Stock       int64   `json:"stock,string"`
	Rating      float64 `json:"rating,string"`
	NumReviews  int64   `json:"num_reviews,string"`
	IsActive    string  `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

type CanalProductsMessage struct {
	canalEnvelope
	Data []ProductRow `json:"data"`
}

type CategoryRow struct {
	ID       int64  `json:"id,string"`
	Name     string `json:"name"`
	IsActive string `json:"is_active"`
}

type CanalCategoriesMessage struct {
	canalEnvelope
	Data []CategoryRow `json:"data"`
}

type ReindexCategoryPayload struct {
	CategoryID int64 `json:"category_id"`
}

// Document projects the row; category is the resolved category name.
func (r ProductRow) Document(category string) search.Document {
	return search.Document{
		ProductID:   r.ID,
		Name:        r.Name,
		Description: r.Description,
		Brand:       r.Brand,
		Image:       r.Image,
		Price:       r.Price,
		Rating:      r.Rating,
		NumReviews:  r.NumReviews,
		CategoryID:  r.CategoryID,
		Category:    category,
		IsActive:    canalBool(r.IsActive),
		CreatedAt:   normalizeTimestamp(r.CreatedAt),
		UpdatedAt:   normalizeTimestamp(r.UpdatedAt),
	}
}

func summaryDocument(p *product.ProductSummary) search.Document {
	return search.Document{
		ProductID:   p.Id,
		Name:        p.Name,
		Description: p.Description,
		Brand:       p.Brand,
		Image:       p.Image.String,
		Price:       p.Price,
		Rating:      p.Rating,
		NumReviews:  p.NumReviews,
		CategoryID:  p.CategoryId.Int64,
		Category:    p.CategoryName,
		IsActive:    p.IsActive,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339Nano),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339Nano),
	}
}

// canalBool reads a tinyint(1) column.
func canalBool(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true":
		return true
	default:
		return false
	}
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

// normalizeTimestamp converts a MySQL datetime to RFC 3339. Unparseable
// values pass through unchanged.
func normalizeTimestamp(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.ParseInLocation(layout, raw, time.Local); err == nil {
			return parsed.Format(time.RFC3339Nano)
		}
	}
	return raw
}
