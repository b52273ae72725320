package achievements

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type AchievementsPlugin struct{}

func New() *AchievementsPlugin {
	return &AchievementsPlugin{}
}

func (p *AchievementsPlugin) ID() string { return "achievements" }

func (p *AchievementsPlugin) Models() []interface{} {
	return []interface{}{
		&Achievement{},
	}
}

func (p *AchievementsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewAchievementService(deps.DB)
	handler := NewAchievementHandler(svc)

	router.Get("/achievements", handler.List)
	router.Post("/achievements", handler.Create)
	router.Delete("/achievements/:id", handler.Delete)
}
