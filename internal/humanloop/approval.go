/*-------------------------------------------------------------------------
 *
 * approval.go
 *    Human-in-the-loop refund approvals
 *
 * Refund requests above the policy threshold are parked as pending
 * tickets. A human agent later approves or rejects each ticket; an
 * approval refunds the linked order in the same transaction. Both
 * decisions notify the customer.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/humanloop/approval.go
 *
 *-------------------------------------------------------------------------
 */

package humanloop

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
	"github.com/vinovator/shopsmart-retail-agent/internal/notifications"
	"github.com/vinovator/shopsmart-retail-agent/internal/refund"
)

/* TicketManager owns the lifecycle of refund tickets */
type TicketManager struct {
	queries  *db.Queries
	notifier notifications.Notifier
}

func NewTicketManager(queries *db.Queries, notifier notifications.Notifier) *TicketManager {
	return &TicketManager{
		queries:  queries,
		notifier: notifier,
	}
}

/* CreateTicket opens a pending ticket for a refund that needs manual
 * review */
func (m *TicketManager) CreateTicket(ctx context.Context, customerID, orderID uuid.UUID, amount float64, reason string) (*db.RefundTicket, error) {
	ticket := &db.RefundTicket{
		ID:         uuid.New(),
		CustomerID: customerID,
		OrderID:    orderID,
		Amount:     amount,
		Reason:     reason,
		Status:     db.TicketStatusPending,
		Metadata:   db.JSONBMap{},
	}

	if err := m.queries.CreateRefundTicket(ctx, ticket); err != nil {
		return nil, fmt.Errorf("failed to create refund ticket: order_id='%s', error=%w", orderID, err)
	}

	metrics.RecordRefundDecision("ticketed")
	metrics.InfoWithContext(ctx, "refund ticket created", map[string]interface{}{
		"ticket_id":   ticket.ID.String(),
		"customer_id": customerID.String(),
		"order_id":    orderID.String(),
		"amount":      amount,
	})

	return ticket, nil
}

/* GetTicket loads a single ticket */
func (m *TicketManager) GetTicket(ctx context.Context, id uuid.UUID) (*db.RefundTicket, error) {
	return m.queries.GetRefundTicket(ctx, id)
}

/* ListPending returns tickets awaiting a decision */
func (m *TicketManager) ListPending(ctx context.Context, limit, offset int) ([]db.RefundTicket, error) {
	status := db.TicketStatusPending
	return m.queries.ListRefundTickets(ctx, &status, limit, offset)
}

/* ListAll returns tickets in any state */
func (m *TicketManager) ListAll(ctx context.Context, limit, offset int) ([]db.RefundTicket, error) {
	return m.queries.ListRefundTickets(ctx, nil, limit, offset)
}

/* ListForCustomer returns a customer's tickets, optionally narrowed to
 * one order */
func (m *TicketManager) ListForCustomer(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID) ([]db.RefundTicket, error) {
	return m.queries.ListTicketsByCustomer(ctx, customerID, orderID)
}

/* Decide applies a human decision to a pending ticket. Approval also
 * marks the linked order refunded; the ticket and order updates commit
 * atomically. Returns the updated ticket and, on approval, the updated
 * order. */
func (m *TicketManager) Decide(ctx context.Context, id uuid.UUID, d refund.Decision, decidedBy string) (*db.RefundTicket, *db.Order, error) {
	switch d {
	case refund.DecisionApprove:
		return m.approve(ctx, id, decidedBy)
	case refund.DecisionReject:
		ticket, err := m.reject(ctx, id, decidedBy)
		return ticket, nil, err
	default:
		return nil, nil, fmt.Errorf("invalid decision: value='%s'", d)
	}
}

func (m *TicketManager) approve(ctx context.Context, id uuid.UUID, decidedBy string) (*db.RefundTicket, *db.Order, error) {
	ticket, order, err := m.queries.ApproveTicketAndRefundOrder(ctx, id, decidedBy)
	if err != nil {
		return nil, nil, err
	}

	metrics.RecordRefundDecision("approved")
	metrics.InfoWithContext(ctx, "refund ticket approved", map[string]interface{}{
		"ticket_id":  ticket.ID.String(),
		"order_id":   order.ID.String(),
		"amount":     ticket.Amount,
		"decided_by": decidedBy,
	})

	m.notifyDecision(ctx, ticket, true)
	return ticket, order, nil
}

func (m *TicketManager) reject(ctx context.Context, id uuid.UUID, decidedBy string) (*db.RefundTicket, error) {
	ticket, err := m.queries.DecideRefundTicket(ctx, id, db.TicketStatusRejected, decidedBy)
	if err != nil {
		return nil, err
	}

	metrics.RecordRefundDecision("rejected")
	metrics.InfoWithContext(ctx, "refund ticket rejected", map[string]interface{}{
		"ticket_id":  ticket.ID.String(),
		"order_id":   ticket.OrderID.String(),
		"decided_by": decidedBy,
	})

	m.notifyDecision(ctx, ticket, false)
	return ticket, nil
}

/* notifyDecision emails the customer about the outcome. Notification
 * failure does not fail the decision; the ticket is already committed. */
func (m *TicketManager) notifyDecision(ctx context.Context, ticket *db.RefundTicket, approved bool) {
	if m.notifier == nil {
		return
	}

	customer, err := m.queries.GetCustomerByID(ctx, ticket.CustomerID)
	if err != nil {
		metrics.WarnWithContext(ctx, "failed to load customer for notification", map[string]interface{}{
			"ticket_id":   ticket.ID.String(),
			"customer_id": ticket.CustomerID.String(),
			"error":       err.Error(),
		})
		return
	}

	var subject, body string
	if approved {
		subject = notifications.RefundApprovedSubject(ticket.OrderID.String())
		body = notifications.RefundApprovedBody(customer.Name, ticket.Amount)
	} else {
		subject = notifications.RefundRejectedSubject(ticket.OrderID.String())
		body = notifications.RefundRejectedBody(customer.Name)
	}

	if err := m.notifier.Notify(ctx, customer.Email, subject, body); err != nil {
		metrics.WarnWithContext(ctx, "failed to send notification", map[string]interface{}{
			"ticket_id": ticket.ID.String(),
			"error":     err.Error(),
		})
	}
}
