/*-------------------------------------------------------------------------
 *
 * client_test.go
 *    Tests for the embeddings client
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/embedding/client_test.go
 *
 *-------------------------------------------------------------------------
 */

package embedding

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()
	t.Setenv("TEST_EMBED_KEY", "sk-test")
	client, err := NewClient(Config{
		BaseURL:   baseURL,
		APIKeyEnv: "TEST_EMBED_KEY",
		Model:     "text-embedding-3-small",
		Timeout:   5 * time.Second,
	})
	if err != nil {
		t.Fatalf("NewClient failed: %v", err)
	}
	return client
}

/* TestEmbed tests a successful embedding call */
func TestEmbed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("auth header = %q", got)
		}
		var req struct {
			Input string `json:"input"`
			Model string `json:"model"`
		}
		json.NewDecoder(r.Body).Decode(&req)
		if req.Input != "warm jacket" || req.Model != "text-embedding-3-small" {
			t.Errorf("request = %+v", req)
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.1, 0.2, 0.3}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	vec, err := client.Embed(context.Background(), "warm jacket")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if len(vec) != 3 || vec[0] != 0.1 {
		t.Errorf("vec = %v", vec)
	}
	if client.Dimension() != 3 {
		t.Errorf("Dimension = %d, want 3", client.Dimension())
	}
}

/* TestEmbedRetriesOn429 tests retry with Retry-After */
func TestEmbedRetriesOn429(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{
			"data": []map[string]interface{}{
				{"embedding": []float32{0.5}},
			},
		})
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	vec, err := client.Embed(context.Background(), "retry me")
	if err != nil {
		t.Fatalf("Embed failed: %v", err)
	}
	if attempts != 2 {
		t.Errorf("attempts = %d, want 2", attempts)
	}
	if len(vec) != 1 {
		t.Errorf("vec = %v", vec)
	}
}

/* TestEmbedClientErrorNoRetry tests that 4xx (other than 429) fails fast */
func TestEmbedClientErrorNoRetry(t *testing.T) {
	attempts := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)
	if _, err := client.Embed(context.Background(), "bad"); err == nil {
		t.Error("expected error on 400")
	}
	if attempts != 1 {
		t.Errorf("attempts = %d, want 1", attempts)
	}
}

/* TestNewClientMissingKey tests API key requirement */
func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("TEST_EMBED_MISSING", "")
	if _, err := NewClient(Config{APIKeyEnv: "TEST_EMBED_MISSING"}); err == nil {
		t.Error("expected error for missing API key")
	}
}
