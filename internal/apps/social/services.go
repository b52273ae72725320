package social

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"gorm.io/gorm"
)

var (
	ErrFriendshipNotFound = errors.New("friend request not found")
	ErrSelfFriendship     = errors.New("cannot send a friend request to yourself")
	ErrDuplicateRequest   = errors.New("friend request already exists")
	ErrNotAddressee       = errors.New("only the addressee can respond to a request")
	ErrUserNotFound       = errors.New("user not found")
)

type SocialService struct {
	db *gorm.DB
}

func NewSocialService(db *gorm.DB) *SocialService {
	return &SocialService{db: db}
}

// SendRequest creates a pending friendship. Requests to oneself and
// duplicates in either direction are rejected.
func (s *SocialService) SendRequest(requesterID, addresseeID uuid.UUID) (*Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfFriendship
	}

	var addressee models.User
	err := s.db.Where("id = ?", addresseeID).First(&addressee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find addressee: %w", err)
	}

	var count int64
	err = s.db.Model(&Friendship{}).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
			requesterID, addresseeID, addresseeID, requesterID).
		Count(&count).Error
	if err != nil {
		return nil, fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateRequest
	}

	friendship := Friendship{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      StatusPending,
	}
	if err := s.db.Create(&friendship).Error; err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}
	return &friendship, nil
}

// PendingRequests lists requests waiting on the user's answer.
func (s *SocialService) PendingRequests(userID uuid.UUID) ([]Friendship, error) {
	var requests []Friendship
	err := s.db.Where("addressee_id = ? AND status = ?", userID, StatusPending).
		Order("created_at DESC").Find(&requests).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friend requests: %w", err)
	}
	return requests, nil
}

func (s *SocialService) Respond(userID uuid.UUID, friendshipID uuid.UUID, accept bool) (*Friendship, error) {
	var friendship Friendship
	err := s.db.Where("id = ? AND status = ?", friendshipID, StatusPending).First(&friendship).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFriendshipNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find friend request: %w", err)
	}
	if friendship.AddresseeID != userID {
		return nil, ErrNotAddressee
	}

	if accept {
		friendship.Status = StatusAccepted
	} else {
		friendship.Status = StatusRejected
	}
	if err := s.db.Save(&friendship).Error; err != nil {
		return nil, fmt.Errorf("failed to update friend request: %w", err)
	}
	return &friendship, nil
}

// Friends returns the users on the other end of accepted friendships,
// whichever direction the request went.
func (s *SocialService) Friends(userID uuid.UUID) ([]models.User, error) {
	var friendships []Friendship
	err := s.db.Where("(requester_id = ? OR addressee_id = ?) AND status = ?",
		userID, userID, StatusAccepted).Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friendships: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(friendships))
	for _, f := range friendships {
		if f.RequesterID == userID {
			ids = append(ids, f.AddresseeID)
		} else {
			ids = append(ids, f.RequesterID)
		}
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var friends []models.User
	if err := s.db.Where("id IN ?", ids).Find(&friends).Error; err != nil {
		return nil, fmt.Errorf("failed to load friends: %w", err)
	}
	return friends, nil
}

// Directory lists other users, for finding people to befriend.
func (s *SocialService) Directory(userID uuid.UUID, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	var users []models.User
	err := s.db.Where("id <> ?", userID).
		Order("total_xp DESC").Limit(limit).Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}
