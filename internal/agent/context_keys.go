/*-------------------------------------------------------------------------
 *
 * context_keys.go
 *    Context keys for agent runtime
 *
 * Provides context keys for passing the authenticated customer
 * identity through context to tool handlers.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/agent/context_keys.go
 *
 *-------------------------------------------------------------------------
 */

package agent

import (
	"context"

	"github.com/google/uuid"
)

type contextKey string

const customerIDContextKey contextKey = "customer_id"

/* WithCustomerID adds the customer ID to context */
func WithCustomerID(ctx context.Context, customerID uuid.UUID) context.Context {
	return context.WithValue(ctx, customerIDContextKey, customerID)
}

/* GetCustomerIDFromContext gets the customer ID from context */
func GetCustomerIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	customerID, ok := ctx.Value(customerIDContextKey).(uuid.UUID)
	return customerID, ok
}
