package dto

import "github.com/soulquest-app/soulquest-backend/internal/models"

type TelegramSignInRequest struct {
	// InitData is the raw window.Telegram.WebApp.initData query string.
	// Empty when the client runs outside the Telegram host.
	InitData string `json:"init_data"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type LogoutRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type AuthResponse struct {
	AccessToken  string              `json:"access_token"`
	RefreshToken string              `json:"refresh_token,omitempty"`
	Mode         string              `json:"mode"`
	User         *models.User        `json:"user"`
	Profile      *models.UserProfile `json:"profile,omitempty"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
	Mode      string `json:"mode"`
}
