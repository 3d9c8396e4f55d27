/*-------------------------------------------------------------------------
 *
 * main.go
 *    Operator CLI for the ShopSmart support agent
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/cmd/supportctl/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/vinovator/shopsmart-retail-agent/internal/config"
)

var (
	configPath string
	cfg        *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "supportctl",
	Short: "ShopSmart support agent operations",
	Long: `supportctl manages the ShopSmart support agent installation.

Examples:
  # Seed the database with demo customers, products and orders
  supportctl seed

  # Embed the product catalog into the vector store
  supportctl index

  # Chat with the agent from the terminal
  supportctl chat --user <customer-uuid>
`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		_ = godotenv.Load()
		if configPath != "" {
			loaded, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Failed to load config: %v, using defaults\n", err)
				loaded = config.DefaultConfig()
				config.LoadFromEnv(loaded)
			}
			cfg = loaded
		} else {
			cfg = config.DefaultConfig()
			config.LoadFromEnv(cfg)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to configuration file")
	rootCmd.AddCommand(seedCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(chatCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
