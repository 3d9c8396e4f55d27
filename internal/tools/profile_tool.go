/*-------------------------------------------------------------------------
 *
 * profile_tool.go
 *    Customer profile lookup tool
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/profile_tool.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/vinovator/shopsmart-retail-agent/internal/agent"
	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

/* ProfileTool fetches the profile of the customer talking to the agent */
type ProfileTool struct {
	queries *db.Queries
}

func NewProfileTool(queries *db.Queries) *ProfileTool {
	return &ProfileTool{queries: queries}
}

func (t *ProfileTool) Name() string { return "get_customer_profile" }

func (t *ProfileTool) Description() string {
	return "Fetch the profile of the current customer. Returns their name, email and VIP status."
}

func (t *ProfileTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *ProfileTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customerID, ok := agent.GetCustomerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("customer ID missing from context")
	}

	customer, err := t.queries.GetCustomerByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "Error: Customer not found", nil
		}
		return "", err
	}

	return fmt.Sprintf("Customer Name: %s, VIP Status: %t, Email: %s",
		customer.Name, customer.IsVIP, customer.Email), nil
}
