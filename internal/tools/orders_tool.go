/*-------------------------------------------------------------------------
 *
 * orders_tool.go
 *    Order history and order detail tools
 *
 * Both tools scope their queries to the calling customer. An order
 * belonging to another customer is reported as not found; the tool
 * output never reveals that the order exists.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/orders_tool.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/agent"
	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

const recentOrderLimit = 5

/* RecentOrdersTool lists the customer's most recent orders */
type RecentOrdersTool struct {
	queries *db.Queries
}

func NewRecentOrdersTool(queries *db.Queries) *RecentOrdersTool {
	return &RecentOrdersTool{queries: queries}
}

func (t *RecentOrdersTool) Name() string { return "list_recent_orders" }

func (t *RecentOrdersTool) Description() string {
	return "Get a list of the customer's most recent orders. Use this when the customer asks about their order history."
}

func (t *RecentOrdersTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type":       "object",
		"properties": map[string]interface{}{},
	}
}

func (t *RecentOrdersTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customerID, ok := agent.GetCustomerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("customer ID missing from context")
	}

	orders, err := t.queries.ListRecentOrders(ctx, customerID, recentOrderLimit)
	if err != nil {
		return "", err
	}
	if len(orders) == 0 {
		return "No recent orders found", nil
	}

	var report []string
	for _, order := range orders {
		report = append(report, fmt.Sprintf("Order ID: %s, Date: %s, Total: %.2f, Status: %s",
			order.ID, order.OrderDate.Format("2006-01-02"), order.TotalPrice, order.Status))
	}
	return strings.Join(report, "\n"), nil
}

/* OrderDetailsTool fetches the details of one specific order */
type OrderDetailsTool struct {
	queries *db.Queries
}

func NewOrderDetailsTool(queries *db.Queries) *OrderDetailsTool {
	return &OrderDetailsTool{queries: queries}
}

func (t *OrderDetailsTool) Name() string { return "get_order_details" }

func (t *OrderDetailsTool) Description() string {
	return "Get the details of a specific order. Use this when the customer asks about the status of an order."
}

func (t *OrderDetailsTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"order_id": map[string]interface{}{
				"type":        "string",
				"description": "The UUID of the order to look up",
			},
		},
		"required": []interface{}{"order_id"},
	}
}

func (t *OrderDetailsTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customerID, ok := agent.GetCustomerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("customer ID missing from context")
	}

	rawID, _ := args["order_id"].(string)
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		return "Error: Invalid order ID", nil
	}

	order, err := t.queries.GetOrderForCustomer(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "Error: Order not found", nil
		}
		return "", err
	}

	return fmt.Sprintf("Order %s details: Status: %s, Items Qty: %d, Total: %.2f, Order Date: %s",
		order.ID, order.Status, order.Quantity, order.TotalPrice, order.OrderDate.Format("2006-01-02")), nil
}
