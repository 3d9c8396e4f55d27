/*-------------------------------------------------------------------------
 *
 * qdrant_test.go
 *    Tests for the Qdrant REST client
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/vectorstore/qdrant_test.go
 *
 *-------------------------------------------------------------------------
 */

package vectorstore

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

/* TestEnsureCollection tests the collection PUT request */
func TestEnsureCollection(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewStore(Config{URL: srv.URL, Collection: "shop_products"})
	if err := store.EnsureCollection(context.Background(), 768); err != nil {
		t.Fatalf("EnsureCollection failed: %v", err)
	}

	if gotPath != "PUT /collections/shop_products" {
		t.Errorf("request = %s", gotPath)
	}
	vectors, _ := gotBody["vectors"].(map[string]interface{})
	if vectors["size"] != float64(768) || vectors["distance"] != "Cosine" {
		t.Errorf("vectors config = %v", vectors)
	}

	if err := store.EnsureCollection(context.Background(), 0); err == nil {
		t.Error("expected error for zero dimension")
	}
}

/* TestUpsert tests the points payload */
func TestUpsert(t *testing.T) {
	var gotQuery string
	var gotBody struct {
		Points []struct {
			ID      string                 `json:"id"`
			Payload map[string]interface{} `json:"payload"`
		} `json:"points"`
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store := NewStore(Config{URL: srv.URL, Collection: "shop_products"})
	err := store.Upsert(context.Background(), []ProductPoint{{
		ID:          "p1",
		Vector:      []float32{0.1, 0.2},
		Name:        "Arctic Parka",
		Description: "Warm winter jacket",
		Price:       129.99,
		Category:    "Outerwear",
	}})
	if err != nil {
		t.Fatalf("Upsert failed: %v", err)
	}

	if gotQuery != "wait=true" {
		t.Errorf("query = %q, want wait=true", gotQuery)
	}
	if len(gotBody.Points) != 1 {
		t.Fatalf("points = %d, want 1", len(gotBody.Points))
	}
	p := gotBody.Points[0]
	if p.ID != "p1" || p.Payload["name"] != "Arctic Parka" || p.Payload["price"] != 129.99 {
		t.Errorf("point = %+v", p)
	}
}

/* TestSearch tests hit decoding and ordering */
func TestSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/collections/shop_products/points/search" {
			t.Errorf("path = %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"result": []map[string]interface{}{
				{"id": "p1", "score": 0.91, "payload": map[string]interface{}{
					"name": "Arctic Parka", "price": 129.99, "category": "Outerwear", "description": "Warm",
				}},
				{"id": "p2", "score": 0.42, "payload": map[string]interface{}{
					"name": "Merino Wool Scarf", "price": 34.0, "category": "Accessories", "description": "Soft",
				}},
			},
		})
	}))
	defer srv.Close()

	store := NewStore(Config{URL: srv.URL, Collection: "shop_products"})
	hits, err := store.Search(context.Background(), []float32{0.1}, 3)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}

	if len(hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(hits))
	}
	if hits[0].Name != "Arctic Parka" || hits[0].Score != 0.91 || hits[0].Price != 129.99 {
		t.Errorf("hit[0] = %+v", hits[0])
	}
	if hits[1].ID != "p2" || hits[1].Category != "Accessories" {
		t.Errorf("hit[1] = %+v", hits[1])
	}
}

/* TestSearchUnavailable tests error classification on 5xx */
func TestSearchUnavailable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	store := NewStore(Config{URL: srv.URL, Collection: "shop_products"})
	_, err := store.Search(context.Background(), []float32{0.1}, 3)
	if !errors.Is(err, ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
