/*-------------------------------------------------------------------------
 *
 * refund_tool.go
 *    Refund status and refund request tools
 *
 * request_refund applies the approval policy: amounts at or under the
 * threshold refund the order immediately, anything above opens a
 * pending ticket for a human agent.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/refund_tool.go
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
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
	"github.com/vinovator/shopsmart-retail-agent/internal/refund"
)

/* TicketReader lists a customer's refund tickets. *db.Queries satisfies it. */
type TicketReader interface {
	ListTicketsByCustomer(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID) ([]db.RefundTicket, error)
}

/* OrderRefunder loads and refunds a customer's orders. *db.Queries
 * satisfies it. */
type OrderRefunder interface {
	GetOrderForCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*db.Order, error)
	MarkOrderRefunded(ctx context.Context, id uuid.UUID) error
}

/* TicketCreator opens pending refund tickets. *humanloop.TicketManager
 * satisfies it. */
type TicketCreator interface {
	CreateTicket(ctx context.Context, customerID, orderID uuid.UUID, amount float64, reason string) (*db.RefundTicket, error)
}

/* RefundStatusTool checks the status of the customer's refund tickets */
type RefundStatusTool struct {
	queries TicketReader
}

func NewRefundStatusTool(queries TicketReader) *RefundStatusTool {
	return &RefundStatusTool{queries: queries}
}

func (t *RefundStatusTool) Name() string { return "check_refund_status" }

func (t *RefundStatusTool) Description() string {
	return "Check the status of refund requests. If order_id is provided, checks that specific order; otherwise lists all of the customer's refund tickets."
}

func (t *RefundStatusTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"order_id": map[string]interface{}{
				"type":        "string",
				"description": "Optional UUID of the order to check",
			},
		},
	}
}

func (t *RefundStatusTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customerID, ok := agent.GetCustomerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("customer ID missing from context")
	}

	var orderID *uuid.UUID
	if rawID, ok := args["order_id"].(string); ok && rawID != "" {
		parsed, err := uuid.Parse(rawID)
		if err != nil {
			return "Error: Invalid order ID", nil
		}
		orderID = &parsed
	}

	tickets, err := t.queries.ListTicketsByCustomer(ctx, customerID, orderID)
	if err != nil {
		return "", err
	}
	if len(tickets) == 0 {
		return "No active refund tickets found.", nil
	}

	var report []string
	for _, ticket := range tickets {
		report = append(report, fmt.Sprintf("Ticket %s for Order %s: Status = %s",
			ticket.ID, ticket.OrderID, ticket.Status))
	}
	return strings.Join(report, "\n"), nil
}

/* RequestRefundTool submits a refund request for an order */
type RequestRefundTool struct {
	queries OrderRefunder
	tickets TicketCreator
	policy  refund.Policy
}

func NewRequestRefundTool(queries OrderRefunder, tickets TicketCreator, policy refund.Policy) *RequestRefundTool {
	return &RequestRefundTool{
		queries: queries,
		tickets: tickets,
		policy:  policy,
	}
}

func (t *RequestRefundTool) Name() string { return "request_refund" }

func (t *RequestRefundTool) Description() string {
	return fmt.Sprintf("Submit a refund request for an order. Amounts up to $%.0f are refunded immediately; larger amounts require manual approval.", t.policy.Threshold)
}

func (t *RequestRefundTool) Schema() map[string]interface{} {
	return map[string]interface{}{
		"type": "object",
		"properties": map[string]interface{}{
			"order_id": map[string]interface{}{
				"type":        "string",
				"description": "The UUID of the order to refund",
			},
			"reason": map[string]interface{}{
				"type":        "string",
				"description": "Why the customer wants the refund",
			},
		},
		"required": []interface{}{"order_id", "reason"},
	}
}

func (t *RequestRefundTool) Execute(ctx context.Context, args map[string]interface{}) (string, error) {
	customerID, ok := agent.GetCustomerIDFromContext(ctx)
	if !ok {
		return "", fmt.Errorf("customer ID missing from context")
	}

	rawID, _ := args["order_id"].(string)
	orderID, err := uuid.Parse(rawID)
	if err != nil {
		return "Error: Invalid order ID", nil
	}
	reason, _ := args["reason"].(string)

	order, err := t.queries.GetOrderForCustomer(ctx, orderID, customerID)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return "Error: Order not found", nil
		}
		return "", err
	}

	if err := refund.CanRefund(order.Status); err != nil {
		return "Order is already refunded", nil
	}

	if t.policy.Evaluate(order.TotalPrice) == refund.ImmediateRefund {
		if err := t.queries.MarkOrderRefunded(ctx, order.ID); err != nil {
			if errors.Is(err, db.ErrOrderRefunded) {
				return "Order is already refunded", nil
			}
			return "", err
		}
		metrics.RecordRefundDecision("auto_refunded")
		metrics.InfoWithContext(ctx, "refund auto-approved", map[string]interface{}{
			"customer_id": customerID.String(),
			"order_id":    order.ID.String(),
			"amount":      order.TotalPrice,
		})
		return fmt.Sprintf("Refund of $%.2f for order %s has been processed immediately.",
			order.TotalPrice, order.ID), nil
	}

	ticket, err := t.tickets.CreateTicket(ctx, customerID, order.ID, order.TotalPrice, reason)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("Request Received: Since the amount $%.2f is greater than $%.0f, refund of $%.2f for order %s has been submitted for approval (ticket %s).",
		order.TotalPrice, t.policy.Threshold, order.TotalPrice, order.ID, ticket.ID), nil
}
