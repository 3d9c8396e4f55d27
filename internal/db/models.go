/*-------------------------------------------------------------------------
 *
 * models.go
 *    Database models for the ShopSmart support agent
 *
 * Defines data structures for customers, products, orders, and refund
 * tickets.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/db/models.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"time"

	"github.com/google/uuid"
)

/* OrderStatus is the lifecycle state of an order */
type OrderStatus string

const (
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusRefunded  OrderStatus = "refunded"
)

/* TicketStatus is the lifecycle state of a refund ticket */
type TicketStatus string

const (
	TicketStatusPending  TicketStatus = "pending"
	TicketStatusApproved TicketStatus = "approved"
	TicketStatusRejected TicketStatus = "rejected"
)

type Customer struct {
	ID        uuid.UUID `db:"id"`
	Name      string    `db:"name"`
	Email     string    `db:"email"`
	IsVIP     bool      `db:"is_vip"`
	CreatedAt time.Time `db:"created_at"`
}

type Product struct {
	ID          uuid.UUID `db:"id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	Price       float64   `db:"price"`
	StockLevel  int       `db:"stock_level"`
	Category    string    `db:"category"`
	CreatedAt   time.Time `db:"created_at"`
}

type Order struct {
	ID         uuid.UUID   `db:"id"`
	CustomerID uuid.UUID   `db:"customer_id"`
	ProductID  uuid.UUID   `db:"product_id"`
	Quantity   int         `db:"quantity"`
	TotalPrice float64     `db:"total_price"`
	Status     OrderStatus `db:"status"`
	OrderDate  time.Time   `db:"order_date"`
}

/* RefundTicket is the human-in-the-loop record for high-value refunds.
 * A ticket is created instead of refunding immediately whenever the
 * requested amount exceeds the approval threshold; a decided ticket is
 * terminal. */
type RefundTicket struct {
	ID         uuid.UUID    `db:"id"`
	CustomerID uuid.UUID    `db:"customer_id"`
	OrderID    uuid.UUID    `db:"order_id"`
	Amount     float64      `db:"amount"`
	Reason     string       `db:"reason"`
	Status     TicketStatus `db:"status"`
	Metadata   JSONBMap     `db:"metadata"`
	CreatedAt  time.Time    `db:"created_at"`
	DecidedAt  *time.Time   `db:"decided_at"`
	DecidedBy  *string      `db:"decided_by"`
}
