/*-------------------------------------------------------------------------
 *
 * qdrant.go
 *    Qdrant vector store client for product search
 *
 * Minimal REST client against Qdrant's collections API. Products are
 * stored as points whose payload carries the catalog fields needed to
 * render a search result. Cosine distance throughout.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/vectorstore/qdrant.go
 *
 *-------------------------------------------------------------------------
 */

package vectorstore

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

/* ErrUnavailable is returned when Qdrant cannot be reached */
var ErrUnavailable = errors.New("vector store unavailable")

/* ProductPoint is one product to index */
type ProductPoint struct {
	ID          string
	Vector      []float32
	Name        string
	Description string
	Price       float64
	Category    string
}

/* Hit is one scored product search result */
type Hit struct {
	ID          string
	Score       float64
	Name        string
	Description string
	Price       float64
	Category    string
}

/* Config configures the Qdrant client */
type Config struct {
	URL        string
	APIKeyEnv  string
	Collection string
	Timeout    time.Duration
}

/* Store is a REST client to one Qdrant collection */
type Store struct {
	url        string
	apiKey     string
	collection string
	client     *http.Client
}

func NewStore(cfg Config) *Store {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Store{
		url:        cfg.URL,
		apiKey:     os.Getenv(cfg.APIKeyEnv),
		collection: cfg.Collection,
		client:     &http.Client{Timeout: timeout},
	}
}

/* Collection returns the configured collection name */
func (s *Store) Collection() string { return s.collection }

/* EnsureCollection creates the collection with cosine distance if it
 * does not already exist. Qdrant returns 200 when the collection
 * exists with the same schema. */
func (s *Store) EnsureCollection(ctx context.Context, dimension int) error {
	if dimension <= 0 {
		return fmt.Errorf("invalid vector dimension: value=%d", dimension)
	}
	body := map[string]interface{}{
		"vectors": map[string]interface{}{
			"size":     dimension,
			"distance": "Cosine",
		},
	}
	url := fmt.Sprintf("%s/collections/%s", s.url, s.collection)
	if err := s.putJSON(ctx, url, body); err != nil {
		return fmt.Errorf("failed to ensure collection: collection='%s', error=%w", s.collection, err)
	}
	return nil
}

/* Upsert writes product points, waiting for the write to be applied */
func (s *Store) Upsert(ctx context.Context, points []ProductPoint) error {
	if len(points) == 0 {
		return nil
	}
	raw := make([]map[string]interface{}, len(points))
	for i, p := range points {
		raw[i] = map[string]interface{}{
			"id":     p.ID,
			"vector": p.Vector,
			"payload": map[string]interface{}{
				"name":        p.Name,
				"description": p.Description,
				"price":       p.Price,
				"category":    p.Category,
			},
		}
	}
	url := fmt.Sprintf("%s/collections/%s/points?wait=true", s.url, s.collection)
	if err := s.putJSON(ctx, url, map[string]interface{}{"points": raw}); err != nil {
		return fmt.Errorf("failed to upsert points: collection='%s', count=%d, error=%w", s.collection, len(points), err)
	}
	return nil
}

/* Search runs a nearest-neighbor query and returns scored hits in
 * descending score order, as Qdrant returns them */
func (s *Store) Search(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	if topK <= 0 {
		topK = 3
	}
	start := time.Now()
	hits, err := s.search(ctx, vector, topK)
	if err != nil {
		metrics.RecordVectorSearch(s.collection, "error", time.Since(start))
		return nil, err
	}
	metrics.RecordVectorSearch(s.collection, "success", time.Since(start))
	return hits, nil
}

func (s *Store) search(ctx context.Context, vector []float32, topK int) ([]Hit, error) {
	req := map[string]interface{}{
		"vector":       vector,
		"limit":        topK,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      interface{}            `json:"id"`
			Score   float64                `json:"score"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", s.url, s.collection)
	if err := s.postJSON(ctx, url, req, &resp); err != nil {
		return nil, fmt.Errorf("failed to search: collection='%s', error=%w", s.collection, err)
	}

	hits := make([]Hit, 0, len(resp.Result))
	for _, r := range resp.Result {
		h := Hit{Score: r.Score}
		if v, ok := r.ID.(string); ok {
			h.ID = v
		}
		if v, ok := r.Payload["name"].(string); ok {
			h.Name = v
		}
		if v, ok := r.Payload["description"].(string); ok {
			h.Description = v
		}
		if v, ok := r.Payload["price"].(float64); ok {
			h.Price = v
		}
		if v, ok := r.Payload["category"].(string); ok {
			h.Category = v
		}
		hits = append(hits, h)
	}
	return hits, nil
}

func (s *Store) putJSON(ctx context.Context, url string, body interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return s.do(req, nil)
}

func (s *Store) postJSON(ctx context.Context, url string, body interface{}, out interface{}) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	return s.do(req, out)
}

func (s *Store) do(req *http.Request, out interface{}) error {
	req.Header.Set("Content-Type", "application/json")
	if s.apiKey != "" {
		req.Header.Set("api-key", s.apiKey)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: error=%v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: status='%s', body='%s'", ErrUnavailable, resp.Status, string(body))
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
