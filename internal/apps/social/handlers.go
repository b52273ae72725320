package social

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
)

type SocialHandler struct {
	service *SocialService
}

func NewSocialHandler(service *SocialService) *SocialHandler {
	return &SocialHandler{service: service}
}

func (h *SocialHandler) SendRequest(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var body FriendRequestBody
	if err := c.BodyParser(&body); err != nil {
		return badRequest(c, "Invalid request body")
	}
	addresseeID, err := uuid.Parse(body.AddresseeID)
	if err != nil {
		return badRequest(c, "Invalid addressee ID")
	}

	friendship, err := h.service.SendRequest(userID, addresseeID)
	if err != nil {
		switch {
		case errors.Is(err, ErrSelfFriendship), errors.Is(err, ErrDuplicateRequest):
			return badRequest(c, err.Error())
		case errors.Is(err, ErrUserNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to send friend request",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(friendship)
}

func (h *SocialHandler) PendingRequests(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	requests, err := h.service.PendingRequests(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch friend requests",
		})
	}

	return c.JSON(FriendshipListResponse{Requests: requests})
}

func (h *SocialHandler) Accept(c *fiber.Ctx) error {
	return h.respond(c, true)
}

func (h *SocialHandler) Reject(c *fiber.Ctx) error {
	return h.respond(c, false)
}

func (h *SocialHandler) respond(c *fiber.Ctx, accept bool) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	friendshipID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid request ID")
	}

	friendship, err := h.service.Respond(userID, friendshipID, accept)
	if err != nil {
		switch {
		case errors.Is(err, ErrFriendshipNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		case errors.Is(err, ErrNotAddressee):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to respond to friend request",
		})
	}

	return c.JSON(friendship)
}

func (h *SocialHandler) Friends(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	friends, err := h.service.Friends(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch friends",
		})
	}

	return c.JSON(FriendListResponse{Friends: friends})
}

func (h *SocialHandler) Directory(c *fiber.Ctx) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	users, err := h.service.Directory(userID, c.QueryInt("limit"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to fetch users",
		})
	}

	return c.JSON(DirectoryResponse{Users: users})
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
