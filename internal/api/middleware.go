/*-------------------------------------------------------------------------
 *
 * middleware.go
 *    HTTP middleware for the support API
 *
 * Provides customer authentication, CORS, security headers, and
 * request logging middleware for the HTTP server.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/api/middleware.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
)

type contextKey string

const customerContextKey contextKey = "customer"

/* CustomerResolver loads a customer by ID for authentication */
type CustomerResolver interface {
	GetCustomerByID(ctx context.Context, id uuid.UUID) (*db.Customer, error)
}

/* CustomerAuthMiddleware resolves the User-ID header into a customer.
 * Requests without a known customer are rejected with 401. Health and
 * metrics endpoints and the admin surface are exempt; admin routes
 * identify the operator separately. */
func CustomerAuthMiddleware(resolver CustomerResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			requestID := GetRequestID(r.Context())

			rawID := r.Header.Get("User-ID")
			if rawID == "" {
				respondError(w, WrapError(ErrUnauthorized, requestID))
				return
			}

			customerID, err := uuid.Parse(rawID)
			if err != nil {
				respondError(w, WrapError(ErrUnauthorized, requestID))
				return
			}

			customer, err := resolver.GetCustomerByID(r.Context(), customerID)
			if err != nil {
				metrics.WarnWithContext(r.Context(), "customer resolution failed", map[string]interface{}{
					"customer_id": rawID,
					"error":       err.Error(),
				})
				respondError(w, WrapError(ErrUnauthorized, requestID))
				return
			}

			ctx := context.WithValue(r.Context(), customerContextKey, customer)
			ctx = metrics.WithCustomerIDLogContext(ctx, customer.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

/* GetCustomer gets the authenticated customer from context */
func GetCustomer(ctx context.Context) (*db.Customer, bool) {
	customer, ok := ctx.Value(customerContextKey).(*db.Customer)
	return customer, ok
}

/* SecurityHeadersMiddleware adds security headers to all HTTP responses */
func SecurityHeadersMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")
		if r.TLS != nil {
			w.Header().Set("Strict-Transport-Security", "max-age=31536000; includeSubDomains")
		}
		next.ServeHTTP(w, r)
	})
}

/* CORSMiddleware adds CORS headers */
func CORSMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, User-ID, X-Request-ID")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

/* LoggingMiddleware logs requests with structured logging and metrics */
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)

		metrics.RecordHTTPRequest(r.Method, r.URL.Path, wrapped.statusCode, duration)
		metrics.InfoWithContext(r.Context(), "request completed", map[string]interface{}{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      wrapped.statusCode,
			"duration_ms": duration.Milliseconds(),
		})
	})
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
