package services

import (
	"fmt"
	"log"
	"strconv"

	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/utils"
	"gorm.io/gorm"
)

// HealthCheckResult represents the result of a health check
type HealthCheckResult struct {
	Status       string            `json:"status"`
	Database     string            `json:"database"`
	Catalog      string            `json:"catalog"`
	Details      map[string]string `json:"details,omitempty"`
	ErrorMessage string            `json:"error,omitempty"`
}

// HealthCheck verifies database connectivity, catalog state, and, when auth
// is configured, reachability of the authorizer.
func HealthCheck(cfg *config.Config, db *gorm.DB, cat *catalog.Catalog) HealthCheckResult {
	result := HealthCheckResult{
		Status:  "healthy",
		Details: make(map[string]string),
	}

	sqlDB, err := db.DB()
	if err != nil {
		result.Status = "unhealthy"
		result.Database = "error"
		result.Details["database_error"] = err.Error()
		result.ErrorMessage = fmt.Sprintf("Database connection error: %v", err)
		log.Printf("Health check failed - database connection: %v", err)
	} else {
		if err := sqlDB.Ping(); err != nil {
			result.Status = "unhealthy"
			result.Database = "unreachable"
			result.Details["database_ping_error"] = err.Error()
			result.ErrorMessage = fmt.Sprintf("Database ping failed: %v", err)
			log.Printf("Health check failed - database ping: %v", err)
		} else {
			result.Database = "ok"
			result.Details["database_type"] = cfg.DBType
			result.Details["database_name"] = cfg.DBDatabase
		}
	}

	if cat == nil || cat.Len() == 0 {
		result.Status = "unhealthy"
		result.Catalog = "empty"
		if result.ErrorMessage == "" {
			result.ErrorMessage = "Catalog has no categories"
		}
		log.Println("Health check failed - catalog empty")
	} else {
		result.Catalog = "ok"
		result.Details["catalog_categories"] = strconv.Itoa(cat.Len())
	}

	if cfg.AuthzURL != "" {
		if err := utils.PingAuthorizer(cfg.AuthzURL); err != nil {
			result.Status = "unhealthy"
			result.Details["authorizer_error"] = err.Error()
			if result.ErrorMessage == "" {
				result.ErrorMessage = fmt.Sprintf("Authorizer ping failed: %v", err)
			}
			log.Printf("Health check failed - authorizer ping: %v", err)
		} else {
			result.Details["authorizer_url"] = cfg.AuthzURL
		}
	}

	if result.Status == "healthy" {
		log.Println("Health check passed - all systems operational")
	}

	return result
}
