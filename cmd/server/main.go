package main

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentryfiber "github.com/getsentry/sentry-go/fiber"

	"github.com/gofiber/fiber/v2"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
	"github.com/soulquest-app/soulquest-backend/internal/apps/achievements"
	"github.com/soulquest-app/soulquest-backend/internal/apps/goals"
	"github.com/soulquest-app/soulquest-backend/internal/apps/habits"
	"github.com/soulquest-app/soulquest-backend/internal/apps/projects"
	"github.com/soulquest-app/soulquest-backend/internal/apps/quests"
	"github.com/soulquest-app/soulquest-backend/internal/apps/social"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/database"
	"github.com/soulquest-app/soulquest-backend/internal/handlers"
	"github.com/soulquest-app/soulquest-backend/internal/identity"
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"github.com/soulquest-app/soulquest-backend/internal/logging"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
	"github.com/soulquest-app/soulquest-backend/internal/routes"
	"github.com/soulquest-app/soulquest-backend/internal/services"
	"github.com/soulquest-app/soulquest-backend/internal/session"
	"github.com/soulquest-app/soulquest-backend/internal/store"
)

func main() {
	// Structured logging (JSON to stdout)
	logging.Setup()

	cfg := config.Load()

	if cfg.JWTSecret == "" {
		slog.Error("JWT_SECRET environment variable is required")
		os.Exit(1)
	}
	if !cfg.LocalOnly() && cfg.DBPassword == "" {
		slog.Error("DB_PASSWORD environment variable is required")
		os.Exit(1)
	}

	// Local record store. The remote variant keeps it as the fallback
	// target; the local variant runs on it exclusively.
	local, err := localstore.Open(cfg.LocalStorePath)
	if err != nil {
		slog.Error("local store open failed", "path", cfg.LocalStorePath, "error", err)
		os.Exit(1)
	}
	defer local.Close()

	var (
		sessions     *session.Service
		plugins      []apps.Plugin
		pgLogHandler *logging.PGHandler
		cleanupDone  chan struct{}
	)

	if cfg.LocalOnly() {
		slog.Info("running with local session backend, database disabled")
		sessions = session.NewLocal(local)
	} else {
		if err := database.Connect(cfg); err != nil {
			slog.Error("database connection failed", "error", err)
			os.Exit(1)
		}
		if err := database.MigrateShared(); err != nil {
			slog.Error("shared migration failed", "error", err)
			os.Exit(1)
		}

		// PostgreSQL log handler (ERROR+ async batch)
		pgLogHandler = logging.NewPGHandler(database.DB)
		slog.SetDefault(slog.New(logging.NewMultiHandler(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}),
			pgLogHandler,
		)))

		// Log cleanup (30-day retention)
		cleanupDone = make(chan struct{})
		logging.StartCleanup(database.DB, cleanupDone)

		sessions = session.New(store.NewGorm(database.DB), local)

		plugins = []apps.Plugin{
			habits.New(),
			quests.New(),
			projects.New(),
			goals.New(),
			achievements.New(),
			social.New(),
		}
		for _, p := range plugins {
			if models := p.Models(); len(models) > 0 {
				if err := database.MigrateModels(models); err != nil {
					slog.Error("plugin migration failed", "plugin", p.ID(), "error", err)
					os.Exit(1)
				}
				slog.Info("plugin migrated", "plugin", p.ID(), "models", len(models))
			}
		}
	}

	// Services
	verifier := identity.NewVerifier(cfg.TelegramBotToken, cfg.TelegramAuthMaxAge)
	authService := services.NewAuthService(database.DB, cfg, verifier, sessions)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	healthHandler := handlers.NewHealthHandler(cfg)
	userHandler := handlers.NewUserHandler(sessions)
	localHabitHandler := handlers.NewLocalHabitHandler(sessions)

	// Sentry error tracking
	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              dsn,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      os.Getenv("APP_ENV"),
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	// Fiber app
	app := fiber.New(fiber.Config{
		BodyLimit:    4 * 1024 * 1024,
		ErrorHandler: customErrorHandler,
	})

	// Sentry middleware
	app.Use(sentryfiber.New(sentryfiber.Options{
		Repanic:         true,
		WaitForDelivery: false,
	}))

	// Global middleware
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} | ${status} | ${latency} | ${ip} | ${method} | ${path}\n",
	}))
	app.Use(middleware.CORS(cfg))
	app.Use(func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("X-XSS-Protection", "1; mode=block")
		return c.Next()
	})

	// Routes
	deps := &apps.Deps{DB: database.DB, Cfg: cfg, Sessions: sessions}
	routes.Setup(app, cfg, sessions, authHandler, healthHandler, userHandler, localHabitHandler, deps, plugins)

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "port", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	<-quit
	slog.Info("shutting down server...")

	if cleanupDone != nil {
		close(cleanupDone)
	}
	if pgLogHandler != nil {
		pgLogHandler.Stop()
	}
	sentry.Flush(2 * time.Second)

	if err := app.Shutdown(); err != nil {
		slog.Error("server shutdown error", "error", err)
	}

	if database.DB != nil {
		if sqlDB, err := database.DB.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				slog.Error("database close error", "error", err)
			}
		}
	}

	slog.Info("server stopped")
}

func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	// Only expose error details for client errors (4xx), not server errors (5xx)
	if code >= 500 {
		slog.Error("unhandled server error", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}

	return c.Status(code).JSON(fiber.Map{
		"error":   true,
		"message": message,
	})
}
