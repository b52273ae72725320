package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/middleware"
	"github.com/soulquest-app/soulquest-backend/internal/session"
	"github.com/soulquest-app/soulquest-backend/internal/store"
)

// UserHandler exposes the reconciled session state and its mutation
// operations under /me.
type UserHandler struct {
	sessions *session.Service
}

func NewUserHandler(sessions *session.Service) *UserHandler {
	return &UserHandler{sessions: sessions}
}

func (h *UserHandler) Me(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	return c.JSON(dto.MeResponse{
		User:    sess.User,
		Profile: sess.Profile,
		Mode:    string(sess.Mode),
	})
}

func (h *UserHandler) UpdateMe(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	patch := store.UserPatch{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		AvatarURL: req.AvatarURL,
	}
	if err := h.sessions.UpdateUser(c.UserContext(), sess, patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update user",
		})
	}

	return c.JSON(sess.User)
}

func (h *UserHandler) AddXP(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	var req dto.AddXPRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	result, err := h.sessions.AddXP(c.UserContext(), sess, req.Amount)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to add XP",
		})
	}

	return c.JSON(result)
}

func (h *UserHandler) IncrementStreak(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	if err := h.sessions.IncrementStreak(c.UserContext(), sess); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update streak",
		})
	}

	return c.JSON(dto.StreakResponse{StreakDays: sess.User.StreakDays})
}

func (h *UserHandler) UpdateAvatar(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	var req dto.UpdateAvatarRequest
	if err := c.BodyParser(&req); err != nil || req.AvatarURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "avatar_url is required",
		})
	}

	if err := h.sessions.UpdateAvatar(c.UserContext(), sess, req.AvatarURL); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update avatar",
		})
	}

	return c.JSON(sess.User)
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)
	return c.JSON(sess.Profile)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	sess := middleware.GetSession(c)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	patch := store.ProfilePatch{
		Bio:                req.Bio,
		City:               req.City,
		BirthDate:          req.BirthDate,
		ZodiacSign:         req.ZodiacSign,
		Profession:         req.Profession,
		MBTIType:           req.MBTIType,
		HumanDesignType:    req.HumanDesignType,
		HumanDesignProfile: req.HumanDesignProfile,
	}
	if err := h.sessions.UpdateProfile(c.UserContext(), sess, patch); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to update profile",
		})
	}

	return c.JSON(sess.Profile)
}
