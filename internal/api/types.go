/*-------------------------------------------------------------------------
 *
 * types.go
 *    Request and response types for the support API
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/api/types.go
 *
 *-------------------------------------------------------------------------
 */

package api

import (
	"time"

	"github.com/google/uuid"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

/* ChatRequest is a customer message to the support agent */
type ChatRequest struct {
	Message string `json:"message"`
}

/* ChatResponse is the agent's reply to one chat turn */
type ChatResponse struct {
	Reply      string `json:"reply"`
	ToolRounds int    `json:"tool_rounds"`
	TokensUsed int    `json:"tokens_used"`
}

/* TicketResponse is one refund ticket */
type TicketResponse struct {
	ID         uuid.UUID  `json:"id"`
	CustomerID uuid.UUID  `json:"customer_id"`
	OrderID    uuid.UUID  `json:"order_id"`
	Amount     float64    `json:"amount"`
	Reason     string     `json:"reason"`
	Status     string     `json:"status"`
	CreatedAt  time.Time  `json:"created_at"`
	DecidedAt  *time.Time `json:"decided_at,omitempty"`
	DecidedBy  *string    `json:"decided_by,omitempty"`
}

/* OrderResponse is the order state reflected back after a decision */
type OrderResponse struct {
	ID         uuid.UUID `json:"id"`
	Status     string    `json:"status"`
	TotalPrice float64   `json:"total_price"`
}

/* DecisionRequest is an admin verdict on a pending ticket */
type DecisionRequest struct {
	Decision  string `json:"decision"`
	DecidedBy string `json:"decided_by"`
}

/* DecisionResponse reflects the ticket and, on approval, the order
 * after the decision was applied */
type DecisionResponse struct {
	Ticket TicketResponse `json:"ticket"`
	Order  *OrderResponse `json:"order,omitempty"`
}

/* TicketListResponse is a page of tickets */
type TicketListResponse struct {
	Tickets []TicketResponse `json:"tickets"`
	Count   int              `json:"count"`
}

func ticketToResponse(t *db.RefundTicket) TicketResponse {
	return TicketResponse{
		ID:         t.ID,
		CustomerID: t.CustomerID,
		OrderID:    t.OrderID,
		Amount:     t.Amount,
		Reason:     t.Reason,
		Status:     string(t.Status),
		CreatedAt:  t.CreatedAt,
		DecidedAt:  t.DecidedAt,
		DecidedBy:  t.DecidedBy,
	}
}

func orderToResponse(o *db.Order) *OrderResponse {
	if o == nil {
		return nil
	}
	return &OrderResponse{
		ID:         o.ID,
		Status:     string(o.Status),
		TotalPrice: o.TotalPrice,
	}
}
