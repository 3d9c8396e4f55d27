/*-------------------------------------------------------------------------
 *
 * prometheus.go
 *    Prometheus metrics for the ShopSmart support agent
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/metrics/prometheus.go
 *
 *-------------------------------------------------------------------------
 */

package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	/* Request metrics */
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsmart_support_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	/* LLM metrics */
	llmCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_llm_calls_total",
			Help: "Total number of LLM calls",
		},
		[]string{"model", "status"},
	)

	llmTokensTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_llm_tokens_total",
			Help: "Total number of LLM tokens",
		},
		[]string{"model", "type"},
	)

	/* Tool metrics */
	toolExecutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_tool_executions_total",
			Help: "Total number of tool executions",
		},
		[]string{"tool_name", "status"},
	)

	toolExecutionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsmart_support_tool_execution_duration_seconds",
			Help:    "Tool execution duration in seconds",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
		[]string{"tool_name"},
	)

	/* Refund workflow metrics */
	refundDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_refund_decisions_total",
			Help: "Total number of refund workflow outcomes",
		},
		[]string{"outcome"},
	)

	/* Embedding metrics */
	embeddingGenerationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsmart_support_embedding_generation_duration_seconds",
			Help:    "Embedding generation duration in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5},
		},
		[]string{"model"},
	)

	embeddingGenerationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_embedding_generation_total",
			Help: "Total number of embedding generations",
		},
		[]string{"model", "status"},
	)

	/* Vector search metrics */
	vectorSearchDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "shopsmart_support_vector_search_duration_seconds",
			Help:    "Vector search duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
		[]string{"collection"},
	)

	vectorSearchTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "shopsmart_support_vector_search_total",
			Help: "Total number of vector searches",
		},
		[]string{"collection", "status"},
	)

	/* Database connection pool metrics */
	dbPoolOpenConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsmart_support_db_pool_open_connections",
			Help: "Number of open database connections",
		},
		[]string{"database"},
	)

	dbPoolIdleConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsmart_support_db_pool_idle_connections",
			Help: "Number of idle database connections",
		},
		[]string{"database"},
	)

	dbPoolInUseConns = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "shopsmart_support_db_pool_in_use_connections",
			Help: "Number of database connections in use",
		},
		[]string{"database"},
	)
)

/* RecordHTTPRequest records an HTTP request */
func RecordHTTPRequest(method, endpoint string, status int, duration time.Duration) {
	/* Convert status code to status class for better PromQL queries */
	statusClass := "unknown"
	if status >= 200 && status < 300 {
		statusClass = "2xx"
	} else if status >= 300 && status < 400 {
		statusClass = "3xx"
	} else if status >= 400 && status < 500 {
		statusClass = "4xx"
	} else if status >= 500 {
		statusClass = "5xx"
	}

	httpRequestsTotal.WithLabelValues(method, endpoint, statusClass).Inc()
	httpRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

/* RecordLLMCall records an LLM call */
func RecordLLMCall(model, status string, promptTokens, completionTokens int) {
	llmCallsTotal.WithLabelValues(model, status).Inc()
	llmTokensTotal.WithLabelValues(model, "prompt").Add(float64(promptTokens))
	llmTokensTotal.WithLabelValues(model, "completion").Add(float64(completionTokens))
}

/* RecordToolExecution records a tool execution */
func RecordToolExecution(toolName, status string, duration time.Duration) {
	toolExecutionsTotal.WithLabelValues(toolName, status).Inc()
	toolExecutionDuration.WithLabelValues(toolName).Observe(duration.Seconds())
}

/* RecordRefundDecision records a refund workflow outcome.
 * outcome: auto_refunded, ticketed, approved, rejected */
func RecordRefundDecision(outcome string) {
	refundDecisionsTotal.WithLabelValues(outcome).Inc()
}

/* RecordEmbeddingGeneration records embedding generation metrics */
func RecordEmbeddingGeneration(model, status string, duration time.Duration) {
	embeddingGenerationTotal.WithLabelValues(model, status).Inc()
	embeddingGenerationDuration.WithLabelValues(model).Observe(duration.Seconds())
}

/* RecordVectorSearch records vector search metrics */
func RecordVectorSearch(collection, status string, duration time.Duration) {
	vectorSearchTotal.WithLabelValues(collection, status).Inc()
	vectorSearchDuration.WithLabelValues(collection).Observe(duration.Seconds())
}

/* RecordDBPoolStats records database connection pool statistics */
func RecordDBPoolStats(database string, openConns, idleConns, inUse int) {
	dbPoolOpenConns.WithLabelValues(database).Set(float64(openConns))
	dbPoolIdleConns.WithLabelValues(database).Set(float64(idleConns))
	dbPoolInUseConns.WithLabelValues(database).Set(float64(inUse))
}

/* Handler returns the Prometheus metrics handler */
func Handler() http.Handler {
	return promhttp.Handler()
}
