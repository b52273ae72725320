package habits

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type HabitsPlugin struct{}

func New() *HabitsPlugin {
	return &HabitsPlugin{}
}

func (p *HabitsPlugin) ID() string { return "habits" }

func (p *HabitsPlugin) Models() []interface{} {
	return []interface{}{
		&Habit{},
	}
}

func (p *HabitsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewHabitService(deps.DB)
	handler := NewHabitHandler(svc, deps.Sessions)

	router.Get("/habits", handler.List)
	router.Post("/habits", handler.Create)
	router.Post("/habits/:id/toggle", handler.Toggle)
	router.Delete("/habits/:id", handler.Delete)
}
