package goals

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GoalStatuses lists the accepted status values.
var GoalStatuses = []string{"active", "completed", "abandoned"}

type Goal struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	Title       string         `gorm:"size:255;not null" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	AIPlan      string         `gorm:"column:ai_plan;type:text" json:"ai_plan"`
	Status      string         `gorm:"size:50;not null;default:'active'" json:"status"`
	TargetDate  *time.Time     `json:"target_date"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// --- DTOs ---

type CreateGoalRequest struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	AIPlan      string     `json:"ai_plan"`
	TargetDate  *time.Time `json:"target_date"`
}

type UpdateGoalRequest struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	AIPlan      *string    `json:"ai_plan"`
	Status      *string    `json:"status"`
	TargetDate  *time.Time `json:"target_date"`
}

type GoalListResponse struct {
	Goals []Goal `json:"goals"`
}
