package habits

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Habit struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	Icon        string         `gorm:"size:16" json:"icon"`
	XPReward    int            `gorm:"column:xp_reward;not null" json:"xp_reward"`
	Completed   bool           `gorm:"default:false" json:"completed"`
	IsCustom    bool           `gorm:"default:false" json:"is_custom"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateHabitRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	XPReward    int    `json:"xp_reward"`
}

type HabitListResponse struct {
	Habits []Habit `json:"habits"`
}

// ToggleResponse pairs the flipped habit with the resulting XP state.
type ToggleResponse struct {
	Habit     *Habit `json:"habit"`
	TotalXP   int    `json:"total_xp"`
	Level     int    `json:"level"`
	LeveledUp bool   `json:"leveled_up"`
}
