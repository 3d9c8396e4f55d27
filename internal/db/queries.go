/*-------------------------------------------------------------------------
 *
 * queries.go
 *    Database queries for the ShopSmart support agent
 *
 * Provides database query functions for customers, products, and orders.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/internal/db/queries.go
 *
 *-------------------------------------------------------------------------
 */

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

/* Sentinel errors for callers to match with errors.Is */
var (
	ErrNotFound      = errors.New("record not found")
	ErrOrderRefunded = errors.New("order already refunded")
	ErrTicketDecided = errors.New("refund ticket already decided")
)

/* Customer queries */
const (
	createCustomerQuery = `
		INSERT INTO shopsmart.customers (name, email, is_vip)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	getCustomerByIDQuery = `SELECT * FROM shopsmart.customers WHERE id = $1`

	getCustomerByEmailQuery = `SELECT * FROM shopsmart.customers WHERE email = $1`

	listCustomersQuery = `SELECT * FROM shopsmart.customers ORDER BY created_at ASC`
)

/* Product queries */
const (
	createProductQuery = `
		INSERT INTO shopsmart.products (name, description, price, stock_level, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	getProductQuery = `SELECT * FROM shopsmart.products WHERE id = $1`

	listProductsQuery = `SELECT * FROM shopsmart.products ORDER BY name ASC`
)

/* Order queries */
const (
	createOrderQuery = `
		INSERT INTO shopsmart.orders (customer_id, product_id, quantity, total_price, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, order_date`

	getOrderQuery = `SELECT * FROM shopsmart.orders WHERE id = $1`

	getOrderForCustomerQuery = `SELECT * FROM shopsmart.orders WHERE id = $1 AND customer_id = $2`

	listRecentOrdersQuery = `
		SELECT * FROM shopsmart.orders
		WHERE customer_id = $1
		ORDER BY order_date DESC
		LIMIT $2`

	/* The status guard makes the refund transition idempotent at the
	 * storage layer: a second attempt affects zero rows. */
	markOrderRefundedQuery = `
		UPDATE shopsmart.orders
		SET status = 'refunded'
		WHERE id = $1 AND status <> 'refunded'`
)

type Queries struct {
	DB       *sqlx.DB
	connInfo func() string
}

func NewQueries(db *sqlx.DB) *Queries {
	return &Queries{
		DB: db,
		connInfo: func() string {
			return "unknown database connection"
		},
	}
}

/* GetDB returns the database connection (for compatibility) */
func (q *Queries) GetDB() *sqlx.DB {
	return q.DB
}

/* SetConnInfoFunc sets a function to retrieve connection info for error messages */
func (q *Queries) SetConnInfoFunc(fn func() string) {
	q.connInfo = fn
}

/* getConnInfoString returns connection info string */
func (q *Queries) getConnInfoString() string {
	if q.connInfo != nil {
		return q.connInfo()
	}
	return "unknown database connection"
}

/* formatQueryError formats a detailed query error message */
func (q *Queries) formatQueryError(operation string, table string, paramCount int, err error) error {
	return fmt.Errorf("query execution failed on %s: operation=%s, table=%s, param_count=%d, error=%w",
		q.getConnInfoString(), operation, table, paramCount, err)
}

/* Customer methods */

func (q *Queries) CreateCustomer(ctx context.Context, customer *Customer) error {
	params := []interface{}{customer.Name, customer.Email, customer.IsVIP}
	err := q.DB.GetContext(ctx, customer, createCustomerQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", "shopsmart.customers", len(params), err)
	}
	return nil
}

func (q *Queries) GetCustomerByID(ctx context.Context, id uuid.UUID) (*Customer, error) {
	var customer Customer
	err := q.DB.GetContext(ctx, &customer, getCustomerByIDQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found on %s: customer_id='%s', table='shopsmart.customers': %w",
			q.getConnInfoString(), id.String(), ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.customers", 1, err)
	}
	return &customer, nil
}

func (q *Queries) GetCustomerByEmail(ctx context.Context, email string) (*Customer, error) {
	var customer Customer
	err := q.DB.GetContext(ctx, &customer, getCustomerByEmailQuery, email)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("customer not found on %s: email='%s', table='shopsmart.customers': %w",
			q.getConnInfoString(), email, ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.customers", 1, err)
	}
	return &customer, nil
}

func (q *Queries) ListCustomers(ctx context.Context) ([]Customer, error) {
	var customers []Customer
	err := q.DB.SelectContext(ctx, &customers, listCustomersQuery)
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.customers", 0, err)
	}
	return customers, nil
}

/* Product methods */

func (q *Queries) CreateProduct(ctx context.Context, product *Product) error {
	params := []interface{}{product.Name, product.Description, product.Price, product.StockLevel, product.Category}
	err := q.DB.GetContext(ctx, product, createProductQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", "shopsmart.products", len(params), err)
	}
	return nil
}

func (q *Queries) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	var product Product
	err := q.DB.GetContext(ctx, &product, getProductQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("product not found on %s: product_id='%s', table='shopsmart.products': %w",
			q.getConnInfoString(), id.String(), ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.products", 1, err)
	}
	return &product, nil
}

func (q *Queries) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	err := q.DB.SelectContext(ctx, &products, listProductsQuery)
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.products", 0, err)
	}
	return products, nil
}

/* Order methods */

func (q *Queries) CreateOrder(ctx context.Context, order *Order) error {
	params := []interface{}{order.CustomerID, order.ProductID, order.Quantity, order.TotalPrice, order.Status}
	err := q.DB.GetContext(ctx, order, createOrderQuery, params...)
	if err != nil {
		return q.formatQueryError("INSERT", "shopsmart.orders", len(params), err)
	}
	return nil
}

func (q *Queries) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	var order Order
	err := q.DB.GetContext(ctx, &order, getOrderQuery, id)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found on %s: order_id='%s', table='shopsmart.orders': %w",
			q.getConnInfoString(), id.String(), ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.orders", 1, err)
	}
	return &order, nil
}

/* GetOrderForCustomer loads an order only if it belongs to the given
 * customer. A foreign order is indistinguishable from a missing one. */
func (q *Queries) GetOrderForCustomer(ctx context.Context, orderID, customerID uuid.UUID) (*Order, error) {
	var order Order
	err := q.DB.GetContext(ctx, &order, getOrderForCustomerQuery, orderID, customerID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("order not found on %s: order_id='%s', customer_id='%s', table='shopsmart.orders': %w",
			q.getConnInfoString(), orderID.String(), customerID.String(), ErrNotFound)
	}
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.orders", 2, err)
	}
	return &order, nil
}

func (q *Queries) ListRecentOrders(ctx context.Context, customerID uuid.UUID, limit int) ([]Order, error) {
	var orders []Order
	err := q.DB.SelectContext(ctx, &orders, listRecentOrdersQuery, customerID, limit)
	if err != nil {
		return nil, q.formatQueryError("SELECT", "shopsmart.orders", 2, err)
	}
	return orders, nil
}

/* MarkOrderRefunded transitions an order to refunded. Returns
 * ErrOrderRefunded if the order was already refunded and ErrNotFound if
 * it does not exist. */
func (q *Queries) MarkOrderRefunded(ctx context.Context, id uuid.UUID) error {
	result, err := q.DB.ExecContext(ctx, markOrderRefundedQuery, id)
	if err != nil {
		return q.formatQueryError("UPDATE", "shopsmart.orders", 1, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return q.formatQueryError("UPDATE", "shopsmart.orders", 1, err)
	}
	if rowsAffected == 0 {
		/* Distinguish a missing order from an already-refunded one */
		if _, getErr := q.GetOrder(ctx, id); getErr != nil {
			return getErr
		}
		return fmt.Errorf("refund transition rejected on %s: order_id='%s', table='shopsmart.orders': %w",
			q.getConnInfoString(), id.String(), ErrOrderRefunded)
	}
	return nil
}
