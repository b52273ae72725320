package dto

import (
	"time"

	"github.com/soulquest-app/soulquest-backend/internal/models"
)

type UpdateUserRequest struct {
	Username  *string `json:"username"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	AvatarURL *string `json:"avatar_url"`
}

type UpdateProfileRequest struct {
	Bio                *string    `json:"bio"`
	City               *string    `json:"city"`
	BirthDate          *time.Time `json:"birth_date"`
	ZodiacSign         *string    `json:"zodiac_sign"`
	Profession         *string    `json:"profession"`
	MBTIType           *string    `json:"mbti_type"`
	HumanDesignType    *string    `json:"human_design_type"`
	HumanDesignProfile *string    `json:"human_design_profile"`
}

type AddXPRequest struct {
	Amount int `json:"amount"`
}

type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url"`
}

type MeResponse struct {
	User    *models.User        `json:"user"`
	Profile *models.UserProfile `json:"profile,omitempty"`
	Mode    string              `json:"mode"`
}

type StreakResponse struct {
	StreakDays int `json:"streak_days"`
}
