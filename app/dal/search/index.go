package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// IndexParams describes the product index settings.
type IndexParams struct {
	NumberOfShards   int
	NumberOfReplicas int
}

// EnsureIndex creates the product index when missing. It reports whether the
// index was created by this call, so callers can schedule a backfill.
func (c *Client) EnsureIndex(ctx context.Context, params IndexParams) (bool, error) {
	shards := params.NumberOfShards
	if shards <= 0 {
		shards = 1
	}
	replicas := params.NumberOfReplicas
	if replicas < 0 {
		replicas = 0
	}

	existsRes, err := c.es.Indices.Exists(
		[]string{c.index},
		c.es.Indices.Exists.WithContext(ctx),
	)
	if err != nil {
		return false, fmt.Errorf("check index existence: %w", err)
	}
	defer existsRes.Body.Close()

	if existsRes.StatusCode != http.StatusNotFound {
		if existsRes.IsError() {
			resp, _ := io.ReadAll(existsRes.Body)
			return false, fmt.Errorf("index existence status %s: %s", existsRes.Status(), strings.TrimSpace(string(resp)))
		}
		return false, nil
	}

	body, err := buildIndexDefinition(shards, replicas)
	if err != nil {
		return false, err
	}

	createRes, err := c.es.Indices.Create(
		c.index,
		c.es.Indices.Create.WithContext(ctx),
		c.es.Indices.Create.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return false, fmt.Errorf("create index: %w", err)
	}
	defer createRes.Body.Close()

	if createRes.IsError() {
		resp, _ := io.ReadAll(createRes.Body)
		// another indexer replica won the race
		if strings.Contains(string(resp), "resource_already_exists_exception") {
			return false, nil
		}
		return false, fmt.Errorf("create index status %s: %s", createRes.Status(), strings.TrimSpace(string(resp)))
	}

	return true, nil
}

func buildIndexDefinition(shards, replicas int) ([]byte, error) {
	dateField := map[string]any{
		"type":   "date",
		"format": "strict_date_optional_time||epoch_millis",
	}
	definition := map[string]any{
		"settings": map[string]any{
			"number_of_shards":   shards,
			"number_of_replicas": replicas,
		},
		"mappings": map[string]any{
			"properties": map[string]any{
				"product_id": map[string]any{"type": "long"},
				"name": map[string]any{
					"type": "text",
					"fields": map[string]any{
						"keyword": map[string]any{
							"type":         "keyword",
							"ignore_above": 256,
						},
					},
				},
				"description": map[string]any{"type": "text"},
				"brand": map[string]any{
					"type": "text",
					"fields": map[string]any{
						"keyword": map[string]any{"type": "keyword"},
					},
				},
				"image":       map[string]any{"type": "keyword", "index": false},
				"price":       map[string]any{"type": "double"},
				"rating":      map[string]any{"type": "float"},
				"num_reviews": map[string]any{"type": "integer"},
				"category_id": map[string]any{"type": "long"},
				"category":    map[string]any{"type": "keyword"},
				"is_active":   map[string]any{"type": "boolean"},
				"created_at":  dateField,
				"updated_at":  dateField,
			},
		},
	}

	payload, err := json.Marshal(definition)
	if err != nil {
		return nil, fmt.Errorf("encode index definition: %w", err)
	}
	return payload, nil
}
