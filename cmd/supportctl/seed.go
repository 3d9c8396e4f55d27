/*-------------------------------------------------------------------------
 *
 * seed.go
 *    Seed command: demo customers, products and orders
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/cmd/supportctl/seed.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with demo data",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runSeed(cmd.Context())
	},
}

type seedProduct struct {
	name        string
	description string
	price       float64
	stock       int
	category    string
}

var seedProducts = []seedProduct{
	{"Arctic Parka", "Heavy insulated winter jacket with a waterproof shell and fleece lining.", 129.99, 25, "Outerwear"},
	{"Trail Runner Sneakers", "Lightweight running shoes with aggressive grip for muddy trails.", 89.50, 40, "Footwear"},
	{"Merino Wool Scarf", "Soft merino scarf that keeps you warm without the itch.", 34.00, 60, "Accessories"},
	{"Canvas Weekend Bag", "Roomy duffel with leather straps, fits in any overhead bin.", 75.00, 18, "Bags"},
	{"Thermal Base Layer", "Moisture-wicking long-sleeve base layer for cold-weather sports.", 42.99, 55, "Activewear"},
	{"Espresso Travel Mug", "Double-walled steel mug that keeps coffee hot for six hours.", 24.95, 80, "Kitchen"},
	{"Yoga Mat Pro", "Extra-thick non-slip mat with alignment markings.", 48.00, 35, "Fitness"},
	{"Noise-Cancelling Earbuds", "Wireless earbuds with active noise cancellation and 30h battery.", 149.00, 22, "Electronics"},
}

func runSeed(ctx context.Context) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	queries := db.NewQueries(database.DB)

	customers := []db.Customer{
		{ID: uuid.New(), Name: "Alice Hartman", Email: "alice@example.com", IsVIP: true},
		{ID: uuid.New(), Name: "Ben Okafor", Email: "ben@example.com", IsVIP: false},
		{ID: uuid.New(), Name: "Chloe Vance", Email: "chloe@example.com", IsVIP: false},
	}
	for i := range customers {
		if err := queries.CreateCustomer(ctx, &customers[i]); err != nil {
			return fmt.Errorf("failed to seed customer: email='%s', error=%w", customers[i].Email, err)
		}
		fmt.Printf("Created customer %s (%s)\n", customers[i].Name, customers[i].ID)
	}

	products := make([]db.Product, 0, len(seedProducts))
	for _, p := range seedProducts {
		product := db.Product{
			ID:          uuid.New(),
			Name:        p.name,
			Description: p.description,
			Price:       p.price,
			StockLevel:  p.stock,
			Category:    p.category,
		}
		if err := queries.CreateProduct(ctx, &product); err != nil {
			return fmt.Errorf("failed to seed product: name='%s', error=%w", p.name, err)
		}
		products = append(products, product)
		fmt.Printf("Created product %s ($%.2f)\n", product.Name, product.Price)
	}

	/* A mix of order sizes so both refund paths are exercised:
	 * the $30 range auto-refunds, the $100+ range needs approval */
	orders := []db.Order{
		{ID: uuid.New(), CustomerID: customers[0].ID, ProductID: products[5].ID, Quantity: 1, TotalPrice: 24.95, Status: db.OrderStatusDelivered, OrderDate: time.Now().AddDate(0, 0, -12)},
		{ID: uuid.New(), CustomerID: customers[0].ID, ProductID: products[0].ID, Quantity: 1, TotalPrice: 129.99, Status: db.OrderStatusDelivered, OrderDate: time.Now().AddDate(0, 0, -5)},
		{ID: uuid.New(), CustomerID: customers[1].ID, ProductID: products[2].ID, Quantity: 1, TotalPrice: 34.00, Status: db.OrderStatusShipped, OrderDate: time.Now().AddDate(0, 0, -2)},
		{ID: uuid.New(), CustomerID: customers[1].ID, ProductID: products[7].ID, Quantity: 1, TotalPrice: 149.00, Status: db.OrderStatusPlaced, OrderDate: time.Now().AddDate(0, 0, -1)},
		{ID: uuid.New(), CustomerID: customers[2].ID, ProductID: products[4].ID, Quantity: 2, TotalPrice: 85.98, Status: db.OrderStatusDelivered, OrderDate: time.Now().AddDate(0, 0, -20)},
	}
	for i := range orders {
		if err := queries.CreateOrder(ctx, &orders[i]); err != nil {
			return fmt.Errorf("failed to seed order: order_id='%s', error=%w", orders[i].ID, err)
		}
		fmt.Printf("Created order %s for %s ($%.2f, %s)\n",
			orders[i].ID, orders[i].CustomerID, orders[i].TotalPrice, orders[i].Status)
	}

	fmt.Println("Seed complete")
	return nil
}

func openDatabase(ctx context.Context) (*db.DB, error) {
	database, err := db.NewDBWithRetry(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime(),
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime(),
	}, 3, 2*time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: error=%w", err)
	}

	runner, err := db.NewMigrationRunner(database.DB, "./migrations")
	if err == nil {
		if err := runner.Run(ctx); err != nil {
			fmt.Printf("Warning: Migration failed: %v\n", err)
		}
	}
	return database, nil
}
