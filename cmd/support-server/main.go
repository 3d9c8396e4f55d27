/*-------------------------------------------------------------------------
 *
 * main.go
 *    Main entry point for the ShopSmart support agent server
 *
 * Copyright (c) 2024-2026, ShopSmart, Inc. <platform@shopsmart.dev>
 *
 * IDENTIFICATION
 *    shopsmart-retail-agent/cmd/support-server/main.go
 *
 *-------------------------------------------------------------------------
 */

package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/vinovator/shopsmart-retail-agent/internal/agent"
	"github.com/vinovator/shopsmart-retail-agent/internal/api"
	"github.com/vinovator/shopsmart-retail-agent/internal/config"
	"github.com/vinovator/shopsmart-retail-agent/internal/db"
	"github.com/vinovator/shopsmart-retail-agent/internal/embedding"
	"github.com/vinovator/shopsmart-retail-agent/internal/humanloop"
	"github.com/vinovator/shopsmart-retail-agent/internal/llm"
	"github.com/vinovator/shopsmart-retail-agent/internal/metrics"
	"github.com/vinovator/shopsmart-retail-agent/internal/notifications"
	"github.com/vinovator/shopsmart-retail-agent/internal/refund"
	"github.com/vinovator/shopsmart-retail-agent/internal/tools"
	"github.com/vinovator/shopsmart-retail-agent/internal/vectorstore"
)

var (
	version   = "dev"
	buildDate = "unknown"
	gitCommit = "unknown"
)

func main() {
	var (
		showVersion      = flag.Bool("version", false, "Show version information")
		showVersionShort = flag.Bool("v", false, "Show version information (short)")
		configPath       = flag.String("c", "", "Path to configuration file")
		configPathLong   = flag.String("config", "", "Path to configuration file")
		showHelp         = flag.Bool("help", false, "Show help message")
		showHelpShort    = flag.Bool("h", false, "Show help message (short)")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [OPTIONS]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "ShopSmart Support Server - LLM customer support agent\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  %s                    Start server with default configuration\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s -c config.yaml     Start server with custom config file\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "  %s --version          Show version information\n", os.Args[0])
	}
	flag.Parse()

	if *showVersion || *showVersionShort {
		fmt.Printf("support-server version %s\n", version)
		fmt.Printf("Build date: %s\n", buildDate)
		fmt.Printf("Git commit: %s\n", gitCommit)
		os.Exit(0)
	}
	if *showHelp || *showHelpShort {
		flag.Usage()
		os.Exit(0)
	}

	/* Secrets come from the environment; .env is a dev convenience */
	_ = godotenv.Load()

	/* Load configuration */
	cfg := config.DefaultConfig()
	cfgPath := *configPath
	if cfgPath == "" {
		cfgPath = *configPathLong
	}
	if cfgPath == "" {
		cfgPath = os.Getenv("CONFIG_PATH")
	}
	if cfgPath != "" {
		var err error
		cfg, err = config.LoadConfig(cfgPath)
		if err != nil {
			fmt.Printf("Failed to load config: %v, using defaults\n", err)
			cfg = config.DefaultConfig()
		}
	} else {
		config.LoadFromEnv(cfg)
	}

	/* Initialize logging */
	metrics.InitLogging(cfg.Logging.Level, cfg.Logging.Format)

	/* Connect to database */
	database, err := db.NewDBWithRetry(cfg.Database.ConnString(), db.PoolConfig{
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: cfg.Database.ConnMaxLifetime(),
		ConnMaxIdleTime: cfg.Database.ConnMaxIdleTime(),
	}, 3, 2*time.Second)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to connect to database: %v\n", err)
		fmt.Fprintf(os.Stderr, "Connection: host=%s port=%d user=%s dbname=%s\n",
			cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Database)
		os.Exit(1)
	}
	defer database.Close()

	/* Run migrations */
	migrationRunner, err := db.NewMigrationRunner(database.DB, "./migrations")
	if err != nil {
		fmt.Printf("Warning: Migration runner init failed: %v\n", err)
	} else if err := migrationRunner.Run(context.Background()); err != nil {
		fmt.Printf("Warning: Migration failed: %v\n", err)
	}

	/* Initialize store components */
	queries := db.NewQueries(database.DB)
	queries.SetConnInfoFunc(database.GetConnInfoString)

	notifier := notifications.NewEmailNotifier("")
	ticketManager := humanloop.NewTicketManager(queries, notifier)
	policy := refund.NewPolicy(cfg.Refund.ApprovalThreshold)

	/* Initialize model and search clients */
	chatClient, err := llm.NewClient(llm.Config{
		BaseURL:   cfg.LLM.BaseURL,
		APIKeyEnv: cfg.LLM.APIKeyEnv,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize LLM client: %v\n", err)
		os.Exit(1)
	}

	embedClient, err := embedding.NewClient(embedding.Config{
		BaseURL:   cfg.Embedding.BaseURL,
		APIKeyEnv: cfg.Embedding.APIKeyEnv,
		Model:     cfg.Embedding.Model,
		Timeout:   cfg.Embedding.Timeout(),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize embedding client: %v\n", err)
		os.Exit(1)
	}

	store := vectorstore.NewStore(vectorstore.Config{
		URL:        cfg.VectorStore.URL,
		APIKeyEnv:  cfg.VectorStore.APIKeyEnv,
		Collection: cfg.VectorStore.Collection,
		Timeout:    cfg.VectorStore.Timeout(),
	})

	/* Register support tools */
	registry := tools.NewRegistry()
	registry.Register(tools.NewProfileTool(queries))
	registry.Register(tools.NewRecentOrdersTool(queries))
	registry.Register(tools.NewOrderDetailsTool(queries))
	registry.Register(tools.NewRefundStatusTool(queries))
	registry.Register(tools.NewRequestRefundTool(queries, ticketManager, policy))
	registry.Register(tools.NewSearchProductsTool(embedClient, store, cfg.VectorStore.TopK, cfg.VectorStore.ScoreThreshold))

	runtime := agent.NewRuntime(chatClient, registry, cfg.LLM.MaxToolRounds)

	/* Initialize API */
	handlers := api.NewHandlers(runtime, ticketManager)
	router := api.NewRouter(handlers, queries)

	/* Health check */
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := database.HealthCheck(r.Context()); err != nil {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
	}).Methods("GET")

	/* Metrics endpoint (no auth required) */
	router.Handle("/metrics", metrics.Handler()).Methods("GET")

	/* Export pool stats while the server runs */
	poolTicker := time.NewTicker(30 * time.Second)
	defer poolTicker.Stop()
	go func() {
		for range poolTicker.C {
			open, idle, inUse := database.GetPoolStats()
			metrics.RecordDBPoolStats(cfg.Database.Database, open, idle, inUse)
		}
	}()

	/* Start server */
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout(),
		WriteTimeout: cfg.Server.WriteTimeout(),
	}

	go func() {
		fmt.Printf("Server starting on %s\n", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Fprintf(os.Stderr, "FATAL: Server failed to start on %s: %v\n", addr, err)
			os.Exit(1)
		}
	}()

	/* Wait for interrupt signal */
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	fmt.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		fmt.Printf("Server forced to shutdown: %v\n", err)
	}

	fmt.Println("Server exited")
}
