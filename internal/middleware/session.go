package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/session"
)

const sessionKey = "session"

// LoadSession rebuilds the reconciled session from the JWT claims and stores
// it in the request context. Runs after JWTProtected. The operating mode is
// taken from the token, where it was fixed at sign-in; it is never re-probed
// here.
func LoadSession(sessions *session.Service) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, mode, err := claimsFromContext(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		sess, err := sessions.Resume(c.UserContext(), userID, mode)
		if err != nil {
			if errors.Is(err, session.ErrSessionNotFound) {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Error: true, Message: "Session no longer exists",
				})
			}
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Error: true, Message: "Session state unavailable",
			})
		}

		c.Locals(sessionKey, sess)
		return c.Next()
	}
}

// GetSession returns the session placed by LoadSession, or nil.
func GetSession(c *fiber.Ctx) *session.Session {
	sess, _ := c.Locals(sessionKey).(*session.Session)
	return sess
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	userID, _, err := claimsFromContext(c)
	return userID, err
}

func claimsFromContext(c *fiber.Ctx) (uuid.UUID, session.Mode, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return uuid.Nil, "", errors.New("invalid token in context")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errors.New("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", err
	}

	mode, ok := claims["mode"].(string)
	if !ok {
		return uuid.Nil, "", errors.New("missing mode claim")
	}
	return userID, session.Mode(mode), nil
}
