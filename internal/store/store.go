// Package store defines the remote-store contract the session reconciler
// depends on, and its GORM/PostgreSQL implementation. "Not found" is a
// distinct condition from a transport or store failure: the reconciler
// creates records on the former and falls back to local mode on the latter.
package store

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/models"
)

// ErrNotFound reports that no row matched. Any other error from a Store is a
// transport/store failure.
var ErrNotFound = errors.New("record not found")

type Store interface {
	GetUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	CreateUser(ctx context.Context, user *models.User) error
	// UpdateUser applies a partial update and returns the stored row, which
	// is the source of truth after the write.
	UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error)

	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	CreateProfile(ctx context.Context, profile *models.UserProfile) error
	UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.UserProfile, error)
}
