package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/database"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
)

type HealthHandler struct {
	cfg *config.Config
}

func NewHealthHandler(cfg *config.Config) *HealthHandler {
	return &HealthHandler{cfg: cfg}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "disabled"
	if !h.cfg.LocalOnly() {
		dbStatus = "ok"
		if err := database.Ping(); err != nil {
			dbStatus = "unhealthy: " + err.Error()
		}
	}

	return c.JSON(dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Mode:      h.cfg.SessionBackend,
	})
}
