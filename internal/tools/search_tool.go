/*-------------------------------------------------------------------------
 *
 * search_tool.go
 *    Semantic product search tool
 *
 * Embeds the query and searches the product collection in Qdrant.
 * Hits below the score threshold are dropped; at most topK results
 * are returned, best match first.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/search_tool.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/vinovator/shopsmart-retail-agent/internal/embedding"
	"github.com/vinovator/shopsmart-retail-agent/internal/vectorstore"
)

/* ProductSearcher is the slice of the vector store the tool needs */
type ProductSearcher interface {
	Search(ctx context.Context, vector []float32, topK int) ([]vectorstore.Hit, error)
}

/* SearchProductsTool performs semantic search over the product catalog */
type SearchProductsTool struct {
	embedder       embedding.Embedder
	store          ProductSearcher
	topK           int
	scoreThreshold float64
}

func NewSearchProductsTool(embedder embedding.Embedder, store ProductSearcher, topK int, scoreThreshold float64) *SearchProductsTool {
	if topK <= 0 {
		topK = 3
	}
	return &SearchProductsTool{
		embedder:       embedder,
		store:          store,
		topK:           topK,
		scoreThreshold: scoreThreshold,
	}
}

func (t *SearchProductsTool) Name() string { return "search_products" }

func (t *SearchProductsTool) Description() string {
	return "Search for products by concept (semantic search). Use for recommendations, vague descriptions, or gift ideas."
}

func (t *SearchProductsTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"query": map[string]interface{}{
				"type":        "string",
				"description": "What the customer is looking for, in natural language",
			},
		},
		"required": []interface{}{"query"},
	}
}

func (t *SearchProductsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	query, _ := args["query"].(string)
	if query == "" {
		return "Error: Empty search query", nil
	}

	vector, err := t.embedder.Embed(ctx, query)
	if err != nil {
		return "", fmt.Errorf("failed to embed search query: error=%w", err)
	}

	hits, err := t.store.Search(ctx, vector, t.topK)
	if err != nil {
		return "", fmt.Errorf("failed to search products: error=%w", err)
	}

	var report []string
	for _, hit := range hits {
		if hit.Score <= t.scoreThreshold {
			continue
		}
		report = append(report, fmt.Sprintf("Product: %s ($%.2f) - %s",
			hit.Name, hit.Price, hit.Description))
	}
	if len(report) == 0 {
		return "No relevant products found.", nil
	}
	return strings.Join(report, "\n"), nil
}
