/*-------------------------------------------------------------------------
 *
 * ticket_queries.go
 *    Database queries for refund tickets
 *
 * Provides database query functions for the refund ticket approval
 * workflow, including the atomic approve-and-refund transaction.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/db/ticket_queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
)

/* Refund ticket queries */
const (
	createTicketQuery = `
		INSERT INTO shopsmart.refund_tickets
		(customer_id, order_id, amount, reason, status, metadata)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		RETURNING id, created_at`

	getTicketQuery = `SELECT * FROM shopsmart.refund_tickets WHERE id = $1`

	listTicketsQuery = `
		SELECT * FROM shopsmart.refund_tickets
		WHERE ($1::text IS NULL OR status = $1)
		ORDER BY created_at ASC
		LIMIT $2 OFFSET $3`

	listTicketsByCustomerQuery = `
		SELECT * FROM shopsmart.refund_tickets
		WHERE customer_id = $1
		AND ($2::uuid IS NULL OR order_id = $2)
		ORDER BY created_at DESC`

	/* The pending guard enforces the terminal invariant: a decided
	 * ticket can never be re-decided. */
	decideTicketQuery = `
		UPDATE shopsmart.refund_tickets
		SET status = $2, decided_at = NOW(), decided_by = $3
		WHERE id = $1 AND status = 'pending'
		RETURNING *`
)

/* Refund ticket methods */

func (q *Queries) CreateRefundTicket(ctx context.Context, ticket *RefundTicket) error {
	metadataValue, err := ticket.Metadata.Value()
	if err != nil {
		return fmt.Errorf("failed to convert ticket metadata: %w", err)
	}

	params := []interface{}{
		ticket.CustomerID, ticket.OrderID, ticket.Amount, ticket.Reason,
		ticket.Status, metadataValue,
	}
	err = q.DB.GetContext(ctx, ticket, createTicketQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", "shopsmart.refund_tickets", len(params), err)
	}
	return nil
}

func (q *Queries) GetRefundTicket(ctx context.Context, id uuid.UUID) (*RefundTicket, error) {
	var ticket RefundTicket
	err := q.DB.GetContext(ctx, &ticket, getTicketQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("refund ticket not found on %s: ticket_id='%s', table='shopsmart.refund_tickets': %w",
			q.getConnInfoString(), id.String(), ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.refund_tickets", 1, err)
	}
	return &ticket, nil
}

func (q *Queries) ListRefundTickets(ctx context.Context, status *TicketStatus, limit, offset int) ([]RefundTicket, error) {
	var tickets []RefundTicket
	var statusParam interface{}
	if status != nil {
		statusParam = string(*status)
	}
	err := q.DB.SelectContext(ctx, &tickets, listTicketsQuery, statusParam, limit, offset)
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.refund_tickets", 3, err)
	}
	return tickets, nil
}

func (q *Queries) ListTicketsByCustomer(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID) ([]RefundTicket, error) {
	var tickets []RefundTicket
	err := q.DB.SelectContext(ctx, &tickets, listTicketsByCustomerQuery, customerID, orderID)
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.refund_tickets", 2, err)
	}
	return tickets, nil
}

/* DecideRefundTicket transitions a pending ticket to the given terminal
 * status. Returns ErrTicketDecided if the ticket exists but was already
 * decided, ErrNotFound if it does not exist. */
func (q *Queries) DecideRefundTicket(ctx context.Context, id uuid.UUID, status TicketStatus, decidedBy string) (*RefundTicket, error) {
	var ticket RefundTicket
	err := q.DB.GetContext(ctx, &ticket, decideTicketQuery, id, status, decidedBy)
	if err == sql.ErrNoRows {
		if _, getErr := q.GetRefundTicket(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, fmt.Errorf("ticket decision rejected on %s: ticket_id='%s', requested_status='%s', table='shopsmart.refund_tickets': %w",
			q.getConnInfoString(), id.String(), status, ErrTicketDecided)
	}
	if err != nil {
		return nil, q.formatQueryError("UPDATE", "shopsmart.refund_tickets", 3, err)
	}
	return &ticket, nil
}

/* ApproveTicketAndRefundOrder approves a pending ticket and marks its
 * order refunded in a single transaction. No partial state is visible to
 * readers: either both rows move or neither does. */
func (q *Queries) ApproveTicketAndRefundOrder(ctx context.Context, id uuid.UUID, decidedBy string) (*RefundTicket, *Order, error) {
	tx, err := q.DB.BeginTxx(ctx, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to begin approval transaction on %s: ticket_id='%s', error=%w",
			q.getConnInfoString(), id.String(), err)
	}
	defer tx.Rollback()

	var ticket RefundTicket
	err = tx.GetContext(ctx, &ticket, decideTicketQuery, id, TicketStatusApproved, decidedBy)
	if err == sql.ErrNoRows {
		if _, getErr := q.GetRefundTicket(ctx, id); getErr != nil {
			return nil, nil, getErr
		}
		return nil, nil, fmt.Errorf("ticket approval rejected on %s: ticket_id='%s', table='shopsmart.refund_tickets': %w",
			q.getConnInfoString(), id.String(), ErrTicketDecided)
	}
	if err != nil {
		return nil, nil, q.formatQueryError("UPDATE", "shopsmart.refund_tickets", 3, err)
	}

	/* The refunded guard is a backstop only: the approved ticket was
	 * pending, so its order cannot have been refunded through the
	 * immediate path. */
	if _, err := tx.ExecContext(ctx, markOrderRefundedQuery, ticket.OrderID); err != nil {
		return nil, nil, q.formatQueryError("UPDATE", "shopsmart.orders", 1, err)
	}

	var order Order
	if err := tx.GetContext(ctx, &order, getOrderQuery, ticket.OrderID); err != nil {
		return nil, nil, q.formatQueryError("SELECT", "shopsmart.orders", 1, err)
	}

	if err := tx.Commit(); err != nil {
		return nil, nil, fmt.Errorf("failed to commit approval transaction on %s: ticket_id='%s', order_id='%s', error=%w",
			q.getConnInfoString(), id.String(), ticket.OrderID.String(), err)
	}
	return &ticket, &order, nil
}
