package goals

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
)

type GoalHandler struct {
	service *GoalService
}

func NewGoalHandler(service *GoalService) *GoalHandler {
	return &GoalHandler{service: service}
}

func (h *GoalHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goals, err := h.service.GetGoals(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch goals",
		})
	}

	return c.JSON(GoalListResponse{Goals: goals})
}

func (h *GoalHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" {
		return badRequest(c, "title is required")
	}

	goal, err := h.service.CreateGoal(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create goal",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(goal)
}

func (h *GoalHandler) Update(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal ID")
	}

	var req UpdateGoalRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	goal, err := h.service.UpdateGoal(userID, goalID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrGoalNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrInvalidStatus):
			return badRequest(c, err.Error())
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update goal",
		})
	}

	return c.JSON(goal)
}

func (h *GoalHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	goalID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid goal ID")
	}

	if err := h.service.DeleteGoal(userID, goalID); err != nil {
		if errors.Is(err, ErrGoalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete goal",
		})
	}

	return c.JSON(fiber.Map{"message": "Goal deleted successfully"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
		Error: true, Message: "Unauthorized",
	})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Error: true, Message: msg,
	})
}
