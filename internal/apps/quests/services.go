package quests

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrQuestNotFound    = errors.New("quest not found")
	ErrAlreadyCompleted = errors.New("quest already completed")
	ErrNotCompleted     = errors.New("quest is not completed")
)

type QuestService struct {
	db *gorm.DB
}

func NewQuestService(db *gorm.DB) *QuestService {
	return &QuestService{db: db}
}

func (s *QuestService) GetQuests(userID uuid.UUID) ([]DailyQuest, error) {
	var quests []DailyQuest
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&quests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list quests: %w", err)
	}
	return quests, nil
}

func (s *QuestService) CreateQuest(userID uuid.UUID, req CreateQuestRequest) (*DailyQuest, error) {
	quest := DailyQuest{
		ID:          uuid.New(),
		UserID:      userID,
		QuestType:   req.QuestType,
		Title:       req.Title,
		Description: req.Description,
		XPReward:    req.XPReward,
	}
	if err := s.db.Create(&quest).Error; err != nil {
		return nil, fmt.Errorf("failed to create quest: %w", err)
	}
	return &quest, nil
}

// CompleteQuest marks the quest done and returns it; the caller awards the
// XP. Completing twice is rejected so a reward cannot be double-counted.
func (s *QuestService) CompleteQuest(userID uuid.UUID, questID uuid.UUID) (*DailyQuest, error) {
	quest, err := s.getOwned(userID, questID)
	if err != nil {
		return nil, err
	}
	if quest.Completed {
		return nil, ErrAlreadyCompleted
	}

	quest.Completed = true
	if err := s.db.Save(quest).Error; err != nil {
		return nil, fmt.Errorf("failed to complete quest: %w", err)
	}
	return quest, nil
}

// UncompleteQuest reverts a completed quest; the caller revokes the XP.
func (s *QuestService) UncompleteQuest(userID uuid.UUID, questID uuid.UUID) (*DailyQuest, error) {
	quest, err := s.getOwned(userID, questID)
	if err != nil {
		return nil, err
	}
	if !quest.Completed {
		return nil, ErrNotCompleted
	}

	quest.Completed = false
	if err := s.db.Save(quest).Error; err != nil {
		return nil, fmt.Errorf("failed to revert quest: %w", err)
	}
	return quest, nil
}

func (s *QuestService) DeleteQuest(userID uuid.UUID, questID uuid.UUID) error {
	result := s.db.Where("id = ? AND user_id = ?", questID, userID).Delete(&DailyQuest{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete quest: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrQuestNotFound
	}
	return nil
}

func (s *QuestService) getOwned(userID uuid.UUID, questID uuid.UUID) (*DailyQuest, error) {
	var quest DailyQuest
	err := s.db.Where("id = ? AND user_id = ?", questID, userID).First(&quest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrQuestNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find quest: %w", err)
	}
	return &quest, nil
}
