package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
)

var ErrInvalidQuery = errors.New("invalid search query")

var (
	searchFields = map[string]string{
		"name":        "name",
		"description": "description",
		"brand":       "brand",
	}
	sortFields = map[string]string{
		"rating":      "rating",
		"num_reviews": "num_reviews",
		"price":       "price",
		"created_at":  "created_at",
		"id":          "product_id",
	}
)

type (
	// Query mirrors the SQL product filter: every set constraint must hold and
	// any keyword may match any of Fields.
	Query struct {
		ActiveOnly bool
		CategoryID int64
		MinPrice   *float64
		MaxPrice   *float64
		Keywords   []string
		Fields     []string
		Sort       []SortField
		Size       int
	}

	SortField struct {
		Field string
		Desc  bool
	}
)

func (q Query) body() ([]byte, error) {
	if q.Size <= 0 {
		return nil, ErrInvalidQuery
	}

	var filter []any
	if q.ActiveOnly {
		filter = append(filter, map[string]any{"term": map[string]any{"is_active": true}})
	}
	if q.CategoryID > 0 {
		filter = append(filter, map[string]any{"term": map[string]any{"category_id": q.CategoryID}})
	}
	if q.MinPrice != nil || q.MaxPrice != nil {
		bounds := map[string]any{}
		if q.MinPrice != nil {
			bounds["gte"] = *q.MinPrice
		}
		if q.MaxPrice != nil {
			bounds["lte"] = *q.MaxPrice
		}
		filter = append(filter, map[string]any{"range": map[string]any{"price": bounds}})
	}

	var should []any
	for _, kw := range q.Keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" {
			continue
		}
		if len(q.Fields) == 0 {
			return nil, ErrInvalidQuery
		}
		fields := make([]string, 0, len(q.Fields))
		for _, f := range q.Fields {
			name, ok := searchFields[f]
			if !ok {
				return nil, ErrInvalidQuery
			}
			fields = append(fields, name)
		}
		should = append(should, map[string]any{
			"multi_match": map[string]any{
				"query":  kw,
				"fields": fields,
			},
		})
	}

	boolQuery := map[string]any{}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}
	if len(should) > 0 {
		boolQuery["should"] = should
		boolQuery["minimum_should_match"] = 1
	}

	sorts := make([]any, 0, len(q.Sort)+1)
	seenID := false
	for _, s := range q.Sort {
		field, ok := sortFields[s.Field]
		if !ok {
			return nil, ErrInvalidQuery
		}
		order := "asc"
		if s.Desc {
			order = "desc"
		}
		sorts = append(sorts, map[string]any{field: map[string]any{"order": order}})
		seenID = seenID || s.Field == "id"
	}
	if !seenID {
		sorts = append(sorts, map[string]any{"product_id": map[string]any{"order": "asc"}})
	}

	payload := map[string]any{
		"size":  q.Size,
		"query": map[string]any{"bool": boolQuery},
		"sort":  sorts,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode search query: %w", err)
	}
	return body, nil
}

// Search runs the query and returns the matching documents in ranked order.
func (c *Client) Search(ctx context.Context, q Query) ([]Document, error) {
	body, err := q.body()
	if err != nil {
		return nil, err
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(c.index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("es search call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return nil, fmt.Errorf("es search status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}

	var payload struct {
		Hits struct {
			Hits []struct {
				Source Document `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	docs := make([]Document, 0, len(payload.Hits.Hits))
	for _, hit := range payload.Hits.Hits {
		docs = append(docs, hit.Source)
	}
	return docs, nil
}
