package quests

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type DailyQuest struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	QuestType   string         `gorm:"size:50;not null" json:"quest_type"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Completed   bool           `gorm:"default:false" json:"completed"`
	XPReward    int            `gorm:"column:xp_reward;not null" json:"xp_reward"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateQuestRequest struct {
	QuestType   string `json:"quest_type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	XPReward    int    `json:"xp_reward"`
}

type QuestListResponse struct {
	Quests []DailyQuest `json:"quests"`
}

// CompleteResponse pairs the quest with the resulting XP state.
type CompleteResponse struct {
	Quest     *DailyQuest `json:"quest"`
	TotalXP   int         `json:"total_xp"`
	Level     int         `json:"level"`
	LeveledUp bool        `json:"leveled_up"`
}
