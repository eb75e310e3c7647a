package main

import (
	"encoding/json"
	"fmt"
	"log"
	"os"

	"github.com/wortquiz/progression/data"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/database"
	"github.com/wortquiz/progression/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Load the catalog the same way the server does
	var cat *catalog.Catalog
	if cfg.CatalogDir != "" {
		cat, err = catalog.Load(os.DirFS(cfg.CatalogDir), ".", cfg.CatalogDefaultLevel)
	} else {
		cat, err = catalog.Load(data.CatalogFS, data.CatalogDir, cfg.CatalogDefaultLevel)
	}
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Perform health check
	result := services.HealthCheck(cfg, db, cat)

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.Fatalf("Failed to marshal health check result: %v", err)
	}

	fmt.Println(string(output))

	// Exit with appropriate code
	if result.Status != "healthy" {
		os.Exit(1)
	}
	os.Exit(0)
}
