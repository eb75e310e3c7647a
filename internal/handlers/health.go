package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/wortquiz/progression/internal/catalog"
	"github.com/wortquiz/progression/internal/config"
	"github.com/wortquiz/progression/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the health route
type HealthHandler struct {
	Config  *config.Config
	DB      *gorm.DB
	Catalog *catalog.Catalog
}

// Check handles GET /api/health
// @Summary Service health
// @Description Database, catalog, and authorizer status
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB, h.Catalog)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}
