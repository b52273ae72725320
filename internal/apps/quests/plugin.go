package quests

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type QuestsPlugin struct{}

func New() *QuestsPlugin {
	return &QuestsPlugin{}
}

func (p *QuestsPlugin) ID() string { return "quests" }

func (p *QuestsPlugin) Models() []interface{} {
	return []interface{}{
		&DailyQuest{},
	}
}

func (p *QuestsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewQuestService(deps.DB)
	handler := NewQuestHandler(svc, deps.Sessions)

	router.Get("/quests", handler.List)
	router.Post("/quests", handler.Create)
	router.Post("/quests/:id/complete", handler.Complete)
	router.Post("/quests/:id/uncomplete", handler.Uncomplete)
	router.Delete("/quests/:id", handler.Delete)
}
