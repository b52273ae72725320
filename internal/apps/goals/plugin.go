package goals

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type GoalsPlugin struct{}

func New() *GoalsPlugin {
	return &GoalsPlugin{}
}

func (p *GoalsPlugin) ID() string { return "goals" }

func (p *GoalsPlugin) Models() []interface{} {
	return []interface{}{
		&Goal{},
	}
}

func (p *GoalsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewGoalService(deps.DB)
	handler := NewGoalHandler(svc)

	router.Get("/goals", handler.List)
	router.Post("/goals", handler.Create)
	router.Put("/goals/:id", handler.Update)
	router.Delete("/goals/:id", handler.Delete)
}
