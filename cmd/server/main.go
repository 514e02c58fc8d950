package main

import (
	"fmt"
	"log"
	"os"

	"github.com/YK12321/Budgeteer/config"
	httpDelivery "github.com/YK12321/Budgeteer/internal/delivery/http"
	"github.com/YK12321/Budgeteer/internal/infrastructure/cache"
	"github.com/YK12321/Budgeteer/internal/infrastructure/catalog"
	"github.com/YK12321/Budgeteer/internal/infrastructure/llm"
	"github.com/YK12321/Budgeteer/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Budgeteer Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the catalog snapshot
	store := catalog.NewStore()
	if err := store.LoadCSV(cfg.Catalog.CSVPath); err != nil {
		log.Fatalf("Failed to load catalog from %s: %v", cfg.Catalog.CSVPath, err)
	}
	log.Printf("Catalog loaded: %d items from %s", store.Count(), cfg.Catalog.CSVPath)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	budget := llm.NewBudget(cfg.LLM.DailyLimit)
	completer := llm.NewClient(llm.ClientConfig{
		APIKey:    cfg.LLM.APIKey,
		Model:     cfg.LLM.Model,
		Timeout:   cfg.LLM.Timeout,
		MaxTokens: cfg.LLM.MaxTokens,
	}, budget)

	if cfg.LLM.APIKey != "" {
		log.Printf("Completion service configured: model=%s, daily limit=%d", cfg.LLM.Model, cfg.LLM.DailyLimit)
	} else {
		log.Printf("WARNING: no completion API key configured, running in local-only mode")
	}

	// Initialize usecase layer
	shopper := usecase.NewShopper(
		store,
		completer,
		memoryCache,
		usecase.ShopperConfig{
			CacheTTL:           cfg.Cache.TTL,
			MaxIterations:      cfg.LLM.MaxIterations,
			CategoryExpansions: cfg.Catalog.Expansions,
		},
	)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(store, shopper)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
