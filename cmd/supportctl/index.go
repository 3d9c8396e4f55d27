/*-------------------------------------------------------------------------
 *
 * index.go
 *    Index command: embed the product catalog into the vector store
 *
 * Reads every product from the database, embeds a composite text of
 * name, category and description, and upserts the vectors into the
 * Qdrant collection the search_products tool queries.
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/cmd/supportctl/index.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/embedding"
	"github.com/vinovator/shopsmart-retail-agent/internal/vectorstore"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed the product catalog into the vector store",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runIndex(cmd.Context())
	},
}

func runIndex(ctx context.Context) error {
	database, err := openDatabase(ctx)
	if err != nil {
		return err
	}
	defer database.Close()

	queries := db.NewQueries(database.DB)

	embedClient, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Model:     cfg.Embedding.Model,
		Timeout:   cfg.Embedding.Timeout(),
	})
	if err != nil {
		return fmt.Errorf("failed to initialize embedding client: error=%w", err)
	}

	store := vectorstore.NewStore(vectorstore.Config{
		URL:        cfg.VectorStore.URL,
		APIKeyEnv:  cfg.VectorStore.APIKeyEnv,
		Collection: cfg.VectorStore.Collection,
		Timeout:    cfg.VectorStore.Timeout(),
	})

	products, err := queries.ListProducts(ctx)
	if err != nil {
		return fmt.Errorf("failed to list products: error=%w", err)
	}
	if len(products) == 0 {
		fmt.Println("No products to index; run 'supportctl seed' first")
		return nil
	}

	points := make([]vectorstore.ProductPoint, 0, len(products))
	for _, product := range products {
		text := fmt.Sprintf("Product: %s. Category: %s. Description: %s",
			product.Name, product.Category, product.Description)

		vector, err := embedClient.Embed(ctx, text)
		if err != nil {
			return fmt.Errorf("failed to embed product: name='%s', error=%w", product.Name, err)
		}

		points = append(points, vectorstore.ProductPoint{
			ID:          product.ID.String(),
			Vector:      vector,
			Name:        product.Name,
			Description: product.Description,
			Price:       product.Price,
			Category:    product.Category,
		})
		fmt.Printf("Embedded %s (dim=%d)\n", product.Name, len(vector))
	}

	dimension := cfg.VectorStore.Dimension
	if d := embedClient.Dimension(); d > 0 {
		dimension = d
	}
	if err := store.EnsureCollection(ctx, dimension); err != nil {
		return err
	}
	if err := store.Upsert(ctx, points); err != nil {
		return err
	}

	fmt.Printf("Indexed %d products into collection %s\n", len(points), store.Collection())
	return nil
}
