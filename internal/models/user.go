package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the authoritative profile record. Exactly one row exists per
// telegram_id; the row is created by the first successful reconciliation
// and never deleted.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	TelegramID string         `gorm:"size:64;not null;uniqueIndex" json:"telegram_id"`
	Username   *string        `gorm:"size:255" json:"username,omitempty"`
	FirstName  string         `gorm:"size:255;not null" json:"first_name"`
	LastName   *string        `gorm:"size:255" json:"last_name,omitempty"`
	AvatarURL  *string        `gorm:"type:text" json:"avatar_url,omitempty"`
	Level      int            `gorm:"not null;default:1" json:"level"`
	TotalXP    int            `gorm:"column:total_xp;not null;default:0" json:"total_xp"`
	StreakDays int            `gorm:"not null;default:0" json:"streak_days"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// LevelForXP derives the tier from total experience points.
// Level 1 covers 0-99 XP, level 2 covers 100-199, and so on.
func LevelForXP(totalXP int) int {
	if totalXP < 0 {
		totalXP = 0
	}
	return totalXP/100 + 1
}

// UserProfile holds the free-form descriptive fields, one-to-one with User.
// Created lazily the first time it is requested and absent.
type UserProfile struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	Bio                *string    `gorm:"type:text" json:"bio,omitempty"`
	City               *string    `gorm:"size:255" json:"city,omitempty"`
	BirthDate          *time.Time `gorm:"type:date" json:"birth_date,omitempty"`
	ZodiacSign         *string    `gorm:"size:50" json:"zodiac_sign,omitempty"`
	Profession         *string    `gorm:"size:255" json:"profession,omitempty"`
	MBTIType           *string    `gorm:"column:mbti_type;size:10" json:"mbti_type,omitempty"`
	HumanDesignType    *string    `gorm:"size:50" json:"human_design_type,omitempty"`
	HumanDesignProfile *string    `gorm:"size:50" json:"human_design_profile,omitempty"`
	CreatedAt          time.Time  `json:"created_at"`
	UpdatedAt          time.Time  `json:"updated_at"`
}
