package apps

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/session"
	"gorm.io/gorm"
)

// Deps is everything a feature plugin may need at registration time.
type Deps struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Sessions *session.Service
}

// Plugin defines the interface every feature area must implement.
type Plugin interface {
	// ID returns the unique feature identifier.
	ID() string

	// Models returns the list of GORM model pointers for AutoMigrate.
	Models() []interface{}

	// RegisterRoutes mounts feature routes on the given Fiber group.
	// The group is already prefixed with /api and has JWT and session
	// middleware applied.
	RegisterRoutes(router fiber.Router, deps *Deps)
}
