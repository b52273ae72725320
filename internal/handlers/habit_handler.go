package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
	"github.com/soulquest-app/soulquest-backend/internal/session"
)

// LocalHabitHandler serves the embedded habit list of the fully local
// variant. The remote variant serves habits from their own collection via
// the habits plugin instead.
type LocalHabitHandler struct {
	sessions *session.Service
}

func NewLocalHabitHandler(sessions *session.Service) *LocalHabitHandler {
	return &LocalHabitHandler{sessions: sessions}
}

type createLocalHabitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xp_reward"`
}

func (h *LocalHabitHandler) List(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	return c.JSON(fiber.Map{"habits": sess.Habits})
}

func (h *LocalHabitHandler) Create(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	var req createLocalHabitRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}
	if req.Title == "" || req.XPReward <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "title and a positive xp_reward are required",
		})
	}

	habit, err := h.sessions.AddHabit(c.UserContext(), sess, req.Title, req.Description, req.Icon, req.XPReward)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create habit",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(habit)
}

func (h *LocalHabitHandler) Toggle(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	result, err := h.sessions.ToggleHabit(c.UserContext(), sess, c.Params("id"))
	if err != nil {
		if errors.Is(err, session.ErrLocalOnly) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Not available in remote mode",
			})
		}
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: err.Error(),
		})
	}

	return c.JSON(result)
}
