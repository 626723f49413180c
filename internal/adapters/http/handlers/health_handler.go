package handlers

import (
	"vetcare-api/internal/config"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	db  *gorm.DB
	cfg *config.Config
	log zerolog.Logger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *gorm.DB, cfg *config.Config, log zerolog.Logger) *HealthHandler {
	return &HealthHandler{db: db, cfg: cfg, log: log}
}

// Root handles root endpoint
// @Summary Root endpoint
// @Description Returns API status
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "running",
		"message": "VetCare API is running",
		"mode":    h.cfg.AppMode,
		"docs":    "/swagger/index.html",
	})
}

// HealthCheck is the liveness probe
// @Summary Health check
// @Description Liveness probe, does not touch the database
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (h *HealthHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"ok":      true,
		"message": "API running",
	})
}

// Ready is the readiness probe
// @Summary Readiness check
// @Description Pings the database
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} response.ErrorBody
// @Router /health/ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	if err := config.HealthCheck(c.UserContext(), h.db); err != nil {
		h.log.Warn().Err(err).Msg("readiness check failed")
		return response.ServiceUnavailable(c, "Database unavailable")
	}

	return c.JSON(fiber.Map{
		"ok": true,
		"checks": fiber.Map{
			"api":      "healthy",
			"database": "healthy",
		},
	})
}
