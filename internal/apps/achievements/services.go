package achievements

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrAchievementNotFound = errors.New("achievement not found")

type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// GetAchievements returns the user's achievements, newest first.
func (s *AchievementService) GetAchievements(userID uuid.UUID) ([]Achievement, error) {
	var achievements []Achievement
	err := s.db.Where("user_id = ?", userID).Order("date_achieved DESC").Find(&achievements).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list achievements: %w", err)
	}
	return achievements, nil
}

func (s *AchievementService) CreateAchievement(userID uuid.UUID, req CreateAchievementRequest) (*Achievement, error) {
	achieved := time.Now()
	if req.DateAchieved != nil {
		achieved = *req.DateAchieved
	}

	achievement := Achievement{
		ID:           uuid.New(),
		UserID:       userID,
		Title:        req.Title,
		Description:  req.Description,
		Category:     req.Category,
		DateAchieved: achieved,
	}
	if err := s.db.Create(&achievement).Error; err != nil {
		return nil, fmt.Errorf("failed to create achievement: %w", err)
	}
	return &achievement, nil
}

func (s *AchievementService) DeleteAchievement(userID uuid.UUID, achievementID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", achievementID, userID).Delete(&Achievement{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete achievement: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAchievementNotFound
	}
	return nil
}
