package goals

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrGoalNotFound  = errors.New("goal not found")
	ErrInvalidStatus = errors.New("invalid goal status")
)

type GoalService struct {
	db *gorm.DB
}

func NewGoalService(db *gorm.DB) *GoalService {
	return &GoalService{db: db}
}

func (s *GoalService) GetGoals(userID uuid.UUID) ([]Goal, error) {
	var goals []Goal
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&goals).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

func (s *GoalService) CreateGoal(userID uuid.UUID, req CreateGoalRequest) (*Goal, error) {
	goal := Goal{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		AIPlan:      req.AIPlan,
		Status:      "active",
		TargetDate:  req.TargetDate,
	}
	if err := s.db.Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return &goal, nil
}

func (s *GoalService) UpdateGoal(userID uuid.UUID, goalID uuid.UUID, req UpdateGoalRequest) (*Goal, error) {
	goal, err := s.getOwned(userID, goalID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		goal.Title = *req.Title
	}
	if req.Description != nil {
		goal.Description = *req.Description
	}
	if req.AIPlan != nil {
		goal.AIPlan = *req.AIPlan
	}
	if req.Status != nil {
		if !validStatus(*req.Status) {
			return nil, ErrInvalidStatus
		}
		goal.Status = *req.Status
	}
	if req.TargetDate != nil {
		goal.TargetDate = req.TargetDate
	}

	if err := s.db.Save(goal).Error; err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return goal, nil
}

func (s *GoalService) DeleteGoal(userID uuid.UUID, goalID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", goalID, userID).Delete(&Goal{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete goal: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *GoalService) getOwned(userID uuid.UUID, goalID uuid.UUID) (*Goal, error) {
	var goal Goal
	err := s.db.Where("id = ? AND user_id = ?", goalID, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrGoalNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find goal: %w", err)
	}
	return &goal, nil
}

func validStatus(v string) bool {
	for _, s := range GoalStatuses {
		if s == v {
			return true
		}
	}
	return false
}
