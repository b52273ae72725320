package projects

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/apps"
)

type ProjectsPlugin struct{}

func New() *ProjectsPlugin {
	return &ProjectsPlugin{}
}

func (p *ProjectsPlugin) ID() string { return "projects" }

func (p *ProjectsPlugin) Models() []interface{} {
	return []interface{}{
		&Project{},
		&Task{},
	}
}

func (p *ProjectsPlugin) RegisterRoutes(router fiber.Router, deps *apps.Deps) {
	svc := NewProjectService(deps.DB)
	handler := NewProjectHandler(svc)

	router.Get("/projects", handler.List)
	router.Post("/projects", handler.Create)
	router.Put("/projects/:id", handler.Update)
	router.Delete("/projects/:id", handler.Delete)
	router.Get("/projects/:id/progress", handler.Progress)
	router.Get("/projects/:id/tasks", handler.ListTasks)
	router.Post("/projects/:id/tasks", handler.CreateTask)
	router.Post("/tasks/:task_id/toggle", handler.ToggleTask)
	router.Delete("/tasks/:task_id", handler.DeleteTask)
}
