package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"gorm.io/gorm"
)

// Gorm implements Store on a GORM connection.
type Gorm struct {
	db *gorm.DB
}

func NewGorm(db *gorm.DB) *Gorm {
	return &Gorm{db: db}
}

func (s *Gorm) GetUserByTelegramID(ctx context.Context, telegramID string) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *Gorm) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	return &user, nil
}

func (s *Gorm) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateUser(ctx context.Context, id uuid.UUID, patch UserPatch) (*models.User, error) {
	if !patch.IsEmpty() {
		result := s.db.WithContext(ctx).Model(&models.User{}).
			Where("id = ?", id).
			Updates(patch.Fields())
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetUserByID(ctx, id)
}

func (s *Gorm) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up profile: %w", err)
	}
	return &profile, nil
}

func (s *Gorm) CreateProfile(ctx context.Context, profile *models.UserProfile) error {
	if err := s.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (s *Gorm) UpdateProfile(ctx context.Context, userID uuid.UUID, patch ProfilePatch) (*models.UserProfile, error) {
	if !patch.IsEmpty() {
		result := s.db.WithContext(ctx).Model(&models.UserProfile{}).
			Where("user_id = ?", userID).
			Updates(patch.Fields())
		if result.Error != nil {
			return nil, fmt.Errorf("failed to update profile: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetProfileByUserID(ctx, userID)
}
