package quests

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
	"github.com/soulquest-app/soulquest-backend/internal/session"
)

type QuestHandler struct {
	service  *QuestService
	sessions *session.Service
}

func NewQuestHandler(service *QuestService, sessions *session.Service) *QuestHandler {
	return &QuestHandler{service: service, sessions: sessions}
}

func (h *QuestHandler) List(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	quests, err := h.service.GetQuests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch quests",
		})
	}

	return c.JSON(QuestListResponse{Quests: quests})
}

func (h *QuestHandler) Create(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req CreateQuestRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.Title == "" || req.XPReward <= 0 {
		return badRequest(c, "title and a positive xp_reward are required")
	}

	quest, err := h.service.CreateQuest(userID, req)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to create quest",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(quest)
}

func (h *QuestHandler) Complete(c *fiber.Ctx) error {
	return h.setCompleted(c, true)
}

func (h *QuestHandler) Uncomplete(c *fiber.Ctx) error {
	return h.setCompleted(c, false)
}

func (h *QuestHandler) setCompleted(c *fiber.Ctx, completed bool) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	questID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid quest ID")
	}

	var quest *DailyQuest
	if completed {
		quest, err = h.service.CompleteQuest(userID, questID)
	} else {
		quest, err = h.service.UncompleteQuest(userID, questID)
	}
	if err != nil {
		switch {
		case errors.Is(err, ErrQuestNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrAlreadyCompleted), errors.Is(err, ErrNotCompleted):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update quest",
		})
	}

	delta := quest.XPReward
	if !completed {
		delta = -delta
	}

	sess := middleware.GetSession(c)
	result, err := h.sessions.AddXP(c.UserContext(), sess, delta)
	if err != nil || result == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to apply XP",
		})
	}

	return c.JSON(CompleteResponse{
		Quest:     quest,
		TotalXP:   result.TotalXP,
		Level:     result.Level,
		LeveledUp: result.LeveledUp,
	})
}

func (h *QuestHandler) Delete(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	questID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid quest ID")
	}

	if err := h.service.DeleteQuest(userID, questID); err != nil {
		if errors.Is(err, ErrQuestNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to delete quest",
		})
	}

	return c.JSON(fiber.Map{"message": "Quest deleted successfully"})
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
