package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/handlers"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
	"github.com/soulquest-app/soulquest-backend/internal/session"
)

func Setup(
	app *fiber.App,
	cfg *config.Config,
	sessions *session.Service,
	authHandler *handlers.AuthHandler,
	healthHandler *handlers.HealthHandler,
	userHandler *handlers.UserHandler,
	localHabitHandler *handlers.LocalHabitHandler,
	deps *apps.Deps,
	plugins []apps.Plugin,
) {
	api := app.Group("/api")

	// General API rate limiter: 60 req/min per IP
	api.Use(limiter.New(limiter.Config{
		Max:               60,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))

	api.Get("/health", healthHandler.Check)

	// Auth-specific rate limit: 10 req/min per IP (stricter)
	auth := api.Group("/auth")
	auth.Use(limiter.New(limiter.Config{
		Max:               10,
		Expiration:        1 * time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator:      func(c *fiber.Ctx) string { return c.IP() },
	}))
	auth.Post("/telegram", authHandler.TelegramSignIn)
	auth.Post("/refresh", authHandler.Refresh)

	api.Post("/auth/logout", middleware.JWTProtected(cfg), authHandler.Logout)

	// Session routes rebuild the user's session from the token on every
	// request before the handler runs.
	me := api.Group("/me", middleware.JWTProtected(cfg), middleware.LoadSession(sessions))
	me.Get("/", userHandler.Me)
	me.Patch("/", userHandler.UpdateMe)
	me.Post("/xp", userHandler.AddXP)
	me.Post("/streak", userHandler.IncrementStreak)
	me.Put("/avatar", userHandler.UpdateAvatar)
	me.Get("/profile", userHandler.GetProfile)
	me.Patch("/profile", userHandler.UpdateProfile)

	protected := api.Group("/p", middleware.JWTProtected(cfg), middleware.LoadSession(sessions))

	if cfg.LocalOnly() {
		// The fully local variant keeps habits inside the session record
		// and has no relational collections to serve.
		protected.Get("/habits", localHabitHandler.List)
		protected.Post("/habits", localHabitHandler.Create)
		protected.Post("/habits/:id/toggle", localHabitHandler.Toggle)
		return
	}

	for _, p := range plugins {
		p.RegisterRoutes(protected, deps)
	}
}
