// Package search is the Elasticsearch projection of the product catalog.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esutil"
)

const DefaultIndex = "products"

type Client struct {
	es    *elasticsearch.Client
	index string
}

func NewClient(es *elasticsearch.Client, index string) *Client {
	if idx := strings.TrimSpace(index); idx != "" {
		index = idx
	} else {
		index = DefaultIndex
	}
	return &Client{es: es, index: index}
}

func (c *Client) Index() string {
	return c.index
}

// Document is one product as stored in the index.
type Document struct {
	ProductID   int64   `json:"product_id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Brand       string  `json:"brand"`
	Image       string  `json:"image,omitempty"`
	Price       float64 `json:"price"`
	Rating      float64 `json:"rating"`
	NumReviews  int64   `json:"num_reviews"`
	CategoryID  int64   `json:"category_id,omitempty"`
	Category    string  `json:"category,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at,omitempty"`
	UpdatedAt   string  `json:"updated_at,omitempty"`
}

func (d Document) ID() string {
	return strconv.FormatInt(d.ProductID, 10)
}

// Upsert writes the document, creating it when absent.
func (c *Client) Upsert(ctx context.Context, doc Document) error {
	payload := map[string]any{
		"doc":           doc,
		"doc_as_upsert": true,
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode product document: %w", err)
	}

	res, err := c.es.Update(c.index, doc.ID(), bytes.NewReader(body), c.es.Update.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es update call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() {
		return fmt.Errorf("es update status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}
	return nil
}

// Delete removes a product document. A missing document is not an error.
func (c *Client) Delete(ctx context.Context, productID int64) error {
	res, err := c.es.Delete(c.index, strconv.FormatInt(productID, 10), c.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("es delete call: %w", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("es delete status %s: %s", res.Status(), strings.TrimSpace(string(respBody)))
	}
	return nil
}

type BulkStats struct {
	Indexed uint64
	Failed  uint64
}

// BulkIndex replaces the given documents through the bulk API.
func (c *Client) BulkIndex(ctx context.Context, docs []Document) (BulkStats, error) {
	if len(docs) == 0 {
		return BulkStats{}, nil
	}

	bi, err := esutil.NewBulkIndexer(esutil.BulkIndexerConfig{
		Client:        c.es,
		Index:         c.index,
		NumWorkers:    1,
		FlushInterval: time.Second,
	})
	if err != nil {
		return BulkStats{}, fmt.Errorf("create bulk indexer: %w", err)
	}

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			_ = bi.Close(ctx)
			return BulkStats{}, fmt.Errorf("encode product %d: %w", doc.ProductID, err)
		}
		if err := bi.Add(ctx, esutil.BulkIndexerItem{
			Action:     "index",
			DocumentID: doc.ID(),
			Body:       bytes.NewReader(body),
		}); err != nil {
			_ = bi.Close(ctx)
			return BulkStats{}, fmt.Errorf("add product %d: %w", doc.ProductID, err)
		}
	}

	if err := bi.Close(ctx); err != nil {
		return BulkStats{}, fmt.Errorf("flush bulk indexer: %w", err)
	}

	stats := bi.Stats()
	out := BulkStats{Indexed: stats.NumIndexed, Failed: stats.NumFailed}
	if out.Failed > 0 {
		return out, fmt.Errorf("bulk index: %d of %d documents failed", out.Failed, len(docs))
	}
	return out, nil
}
