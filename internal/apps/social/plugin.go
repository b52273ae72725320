package social

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type SocialPlugin struct{}

func New() *SocialPlugin {
	return &SocialPlugin{}
}

func (p *SocialPlugin) ID() string { return "social" }

func (p *SocialPlugin) Models() []interface{} {
	return []interface{}{
		&Friendship{},
	}
}

func (p *SocialPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewSocialService(deps.DB)
	handler := NewSocialHandler(svc)

	router.Get("/friends", handler.Friends)
	router.Get("/friends/requests", handler.PendingRequests)
	router.Post("/friends/requests", handler.SendRequest)
	router.Post("/friends/requests/:id/accept", handler.Accept)
	router.Post("/friends/requests/:id/reject", handler.Reject)
	router.Get("/users/directory", handler.Directory)
}
