/*-------------------------------------------------------------------------
 *
 * refund_tool_test.go
 *    Tests for the refund request and refund status tools
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/tools/refund_tool_test.go
 *
 *-------------------------------------------------------------------------
 */

package tools

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/agent"
	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/refund"
)

type fakeOrderStore struct {
	order    *db.Order
	refunded []uuid.UUID
}

func (f *fakeOrderStore) GetOrderForCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*db.Order, error) {
	if f.order == nil || f.order.ID != orderID || f.order.CustomerID != customerID {
		return nil, db.ErrNotFound
	}
	return f.order, nil
}

func (f *fakeOrderStore) MarkOrderRefunded(ctx context.Context, id uuid.UUID) error {
	if f.order != nil && f.order.ID == id && f.order.Status == db.OrderStatusRefunded {
		return db.ErrOrderRefunded
	}
	f.refunded = append(f.refunded, id)
	return nil
}

type fakeTicketCreator struct {
	created []*db.RefundTicket
}

func (f *fakeTicketCreator) CreateTicket(ctx context.Context, customerID, orderID uuid.UUID, amount float64, reason string) (*db.RefundTicket, error) {
	ticket := &db.RefundTicket{
		ID:         uuid.New(),
		CustomerID: customerID,
		OrderID:    orderID,
		Amount:     amount,
		Reason:     reason,
		Status:     db.TicketStatusPending,
	}
	f.created = append(f.created, ticket)
	return ticket, nil
}

type fakeTicketReader struct {
	tickets []db.RefundTicket
}

func (f *fakeTicketReader) ListTicketsByCustomer(ctx context.Context, customerID uuid.UUID, orderID *uuid.UUID) ([]db.RefundTicket, error) {
	return f.tickets, nil
}

func refundTestContext(customerID uuid.UUID) context.Context {
	return agent.WithCustomerID(context.Background(), customerID)
}

/* TestRequestRefundBelowThreshold tests the immediate refund path */
func TestRequestRefundBelowThreshold(t *testing.T) {
	customerID := uuid.New()
	order := &db.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: 30.00,
		Status:     db.OrderStatusDelivered,
	}
	store := &fakeOrderStore{order: order}
	creator := &fakeTicketCreator{}
	tool := NewRequestRefundTool(store, creator, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{
		"order_id": order.ID.String(),
		"reason":   "arrived damaged",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "processed immediately") {
		t.Errorf("output = %q, want immediate refund message", out)
	}
	if len(store.refunded) != 1 || store.refunded[0] != order.ID {
		t.Errorf("refunded orders = %v, want [%s]", store.refunded, order.ID)
	}
	if len(creator.created) != 0 {
		t.Errorf("created %d tickets, want none for a below-threshold refund", len(creator.created))
	}
}

/* TestRequestRefundAboveThreshold tests the approval ticket path */
func TestRequestRefundAboveThreshold(t *testing.T) {
	customerID := uuid.New()
	order := &db.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: 75.00,
		Status:     db.OrderStatusPlaced,
	}
	store := &fakeOrderStore{order: order}
	creator := &fakeTicketCreator{}
	tool := NewRequestRefundTool(store, creator, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{
		"order_id": order.ID.String(),
		"reason":   "changed my mind",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "submitted for approval") {
		t.Errorf("output = %q, want approval message", out)
	}
	if len(store.refunded) != 0 {
		t.Errorf("order was refunded, want it untouched until a decision")
	}
	if len(creator.created) != 1 {
		t.Fatalf("created %d tickets, want 1", len(creator.created))
	}
	ticket := creator.created[0]
	if ticket.Amount != 75.00 || ticket.OrderID != order.ID || ticket.Status != db.TicketStatusPending {
		t.Errorf("ticket = %+v, want pending $75 ticket for order %s", ticket, order.ID)
	}
}

/* TestRequestRefundThresholdBoundary tests that exactly the threshold
 * amount still refunds immediately */
func TestRequestRefundThresholdBoundary(t *testing.T) {
	customerID := uuid.New()
	order := &db.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: 50.00,
		Status:     db.OrderStatusDelivered,
	}
	store := &fakeOrderStore{order: order}
	creator := &fakeTicketCreator{}
	tool := NewRequestRefundTool(store, creator, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{
		"order_id": order.ID.String(),
		"reason":   "wrong size",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, "processed immediately") {
		t.Errorf("output = %q, want immediate refund at the threshold", out)
	}
	if len(creator.created) != 0 {
		t.Errorf("created a ticket for an at-threshold refund")
	}
}

/* TestRequestRefundOrderNotFound tests missing and wrong-owner orders */
func TestRequestRefundOrderNotFound(t *testing.T) {
	customerID := uuid.New()
	order := &db.Order{
		ID:         uuid.New(),
		CustomerID: uuid.New(), /* someone else's order */
		TotalPrice: 30.00,
		Status:     db.OrderStatusDelivered,
	}
	store := &fakeOrderStore{order: order}
	tool := NewRequestRefundTool(store, &fakeTicketCreator{}, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{
		"order_id": order.ID.String(),
		"reason":   "not mine",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "Error: Order not found" {
		t.Errorf("output = %q, want order-not-found text", out)
	}
	if len(store.refunded) != 0 {
		t.Errorf("refunded an order the customer does not own")
	}
}

/* TestRequestRefundAlreadyRefunded tests the terminal order state */
func TestRequestRefundAlreadyRefunded(t *testing.T) {
	customerID := uuid.New()
	order := &db.Order{
		ID:         uuid.New(),
		CustomerID: customerID,
		TotalPrice: 30.00,
		Status:     db.OrderStatusRefunded,
	}
	store := &fakeOrderStore{order: order}
	creator := &fakeTicketCreator{}
	tool := NewRequestRefundTool(store, creator, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{
		"order_id": order.ID.String(),
		"reason":   "double dip",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "Order is already refunded" {
		t.Errorf("output = %q, want already-refunded text", out)
	}
	if len(store.refunded) != 0 || len(creator.created) != 0 {
		t.Errorf("refunded or ticketed an already refunded order")
	}
}

/* TestRequestRefundInvalidOrderID tests malformed order IDs */
func TestRequestRefundInvalidOrderID(t *testing.T) {
	tool := NewRequestRefundTool(&fakeOrderStore{}, &fakeTicketCreator{}, refund.NewPolicy(50))

	out, err := tool.Execute(refundTestContext(uuid.New()), map[string]interface{}{
		"order_id": "not-a-uuid",
		"reason":   "whatever",
	})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "Error: Invalid order ID" {
		t.Errorf("output = %q, want invalid-id text", out)
	}
}

/* TestCheckRefundStatus tests the ticket status report */
func TestCheckRefundStatus(t *testing.T) {
	customerID := uuid.New()
	orderID := uuid.New()
	reader := &fakeTicketReader{tickets: []db.RefundTicket{
		{ID: uuid.New(), OrderID: orderID, Status: db.TicketStatusPending},
	}}
	tool := NewRefundStatusTool(reader)

	out, err := tool.Execute(refundTestContext(customerID), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if !strings.Contains(out, orderID.String()) || !strings.Contains(out, "pending") {
		t.Errorf("output = %q, want pending ticket for order %s", out, orderID)
	}

	empty := NewRefundStatusTool(&fakeTicketReader{})
	out, err = empty.Execute(refundTestContext(customerID), map[string]interface{}{})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if out != "No active refund tickets found." {
		t.Errorf("output = %q, want empty-state text", out)
	}
}
