package social

import (
	"time"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"gorm.io/gorm"
)

// Friendship links two users. The requester initiates, the addressee
// accepts or rejects. A pair appears at most once regardless of
// direction.
type Friendship struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	RequesterID uuid.UUID      `gorm:"type:uuid;not null;index" json:"requester_id"`
	AddresseeID uuid.UUID      `gorm:"type:uuid;not null;index" json:"addressee_id"`
	Status      string         `gorm:"size:20;not null;default:'pending'" json:"status"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

const (
	StatusPending  = "pending"
	StatusAccepted = "accepted"
	StatusRejected = "rejected"
)

// --- DTOs ---

type FriendRequestBody struct {
	AddresseeID string `json:"addressee_id"`
}

type FriendshipListResponse struct {
	Requests []Friendship `json:"requests"`
}

type FriendListResponse struct {
	Friends []models.User `json:"friends"`
}

type DirectoryResponse struct {
	Users []models.User `json:"users"`
}
