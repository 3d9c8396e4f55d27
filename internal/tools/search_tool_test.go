/*-------------------------------------------------------------------------
 *
 * search_tool_test.go
 *    Tests for the semantic product search tool
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/search_tool_test.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/vinovator/shopsmart-retail-agent/internal/vectorstore"
)

type fakeEmbedder struct {
	vector []float32
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return f.vector, nil
}

func (f *fakeEmbedder) Dimension() int { return len(f.vector) }

type fakeSearcher struct {
	hits []vectorstore.Hit
	topK int
}

func (f *fakeSearcher) Search(ctx context.Context, vector []float32, topK int) ([]vectorstore.Hit, error) {
	f.topK = topK
	if len(f.hits) > topK {
		return f.hits[:topK], nil
	}
	return f.hits, nil
}

/* TestSearchProductsFiltersByScore tests the relevance cutoff */
func TestSearchProductsFiltersByScore(t *testing.T) {
	searcher := &fakeSearcher{hits: []vectorstore.Hit{
		{Name: "Arctic Parka", Price: 129.99, Description: "Warm winter jacket", Score: 0.91},
		{Name: "Merino Wool Scarf", Price: 34.00, Description: "Soft warm scarf", Score: 0.55},
		{Name: "Espresso Travel Mug", Price: 24.95, Description: "Keeps coffee hot", Score: 0.31},
	}}
	tool := NewSearchProductsTool(&fakeEmbedder{vector: []float32{0.1, 0.2}}, searcher, 3, 0.4)

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "winter clothes"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}

	if !strings.Contains(out, "Arctic Parka") || !strings.Contains(out, "Merino Wool Scarf") {
		t.Errorf("high-scoring products missing from output: %q", out)
	}
	if strings.Contains(out, "Espresso Travel Mug") {
		t.Errorf("low-scoring product should be filtered: %q", out)
	}
	if searcher.topK != 3 {
		t.Errorf("topK = %d, want 3", searcher.topK)
	}

	/* Best match first */
	lines := strings.Split(out, "\n")
	if len(lines) != 2 || !strings.Contains(lines[0], "Arctic Parka") {
		t.Errorf("expected best match first, got %v", lines)
	}
}

/* TestSearchProductsNoHits tests the empty-result message */
func TestSearchProductsNoHits(t *testing.T) {
	tool := NewSearchProductsTool(&fakeEmbedder{vector: []float32{0.1}}, &fakeSearcher{}, 3, 0.4)

	out, err := tool.Execute(context.Background(), map[string]interface{}{"query": "submarine"})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "No relevant products found." {
		t.Errorf("out = %q", out)
	}
}

/* TestSearchProductsEmptyQuery tests query validation */
func TestSearchProductsEmptyQuery(t *testing.T) {
	tool := NewSearchProductsTool(&fakeEmbedder{}, &fakeSearcher{}, 3, 0.4)

	out, err := tool.Execute(context.Background(), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.HasPrefix(out, "Error:") {
		t.Errorf("out = %q, want error text", out)
	}
}

/* TestRegistryExecute tests dispatch, validation and unknown tools */
func TestRegistryExecute(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewSearchProductsTool(
		&fakeEmbedder{vector: []float32{0.5}},
		&fakeSearcher{hits: []vectorstore.Hit{{Name: "Yoga Mat Pro", Price: 48, Description: "Non-slip mat", Score: 0.8}}},
		3, 0.4))

	out, err := registry.Execute(context.Background(), "search_products", `{"query":"fitness"}`)
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "Yoga Mat Pro") {
		t.Errorf("out = %q", out)
	}

	if _, err := registry.Execute(context.Background(), "no_such_tool", "{}"); err == nil {
		t.Error("expected error for unknown tool")
	}
	if _, err := registry.Execute(context.Background(), "search_products", `{"query":`); err == nil {
		t.Error("expected error for malformed arguments")
	}
	if _, err := registry.Execute(context.Background(), "search_products", `{}`); err == nil {
		t.Error("expected error for missing required query")
	}
}

/* TestRegistrySpecs tests schema advertisement ordering */
func TestRegistrySpecs(t *testing.T) {
	registry := NewRegistry()
	registry.Register(NewSearchProductsTool(&fakeEmbedder{}, &fakeSearcher{}, 3, 0.4))

	specs := registry.Specs()
	if len(specs) != 1 {
		t.Fatalf("len(specs) = %d, want 1", len(specs))
	}
	if specs[0].Type != "function" || specs[0].Function.Name != "search_products" {
		t.Errorf("spec = %+v", specs[0])
	}
	if len(specs[0].Function.Parameters) == 0 {
		t.Error("expected JSON schema in parameters")
	}
}
