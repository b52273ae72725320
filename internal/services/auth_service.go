package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/identity"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/soulquest-app/soulquest-backend/internal/session"
	"gorm.io/gorm"
)

var (
	ErrInvalidInitData  = errors.New("invalid or expired telegram init data")
	ErrIdentityRequired = errors.New("telegram identity required")
	ErrInvalidToken     = errors.New("invalid or expired refresh token")
)

type AuthService struct {
	db       *gorm.DB // nil in the fully local variant
	cfg      *config.Config
	verifier *identity.Verifier
	sessions *session.Service
}

func NewAuthService(db *gorm.DB, cfg *config.Config, verifier *identity.Verifier, sessions *session.Service) *AuthService {
	return &AuthService{
		db:       db,
		cfg:      cfg,
		verifier: verifier,
		sessions: sessions,
	}
}

// TelegramSignIn verifies the WebApp init data and runs session
// reconciliation. Absent identity is only accepted when guest sign-in is
// enabled; a tampered payload is always rejected.
func (s *AuthService) TelegramSignIn(ctx context.Context, req *dto.TelegramSignInRequest) (*dto.AuthResponse, error) {
	ident, err := s.verifier.Resolve(req.InitData)
	if err != nil {
		return nil, ErrInvalidInitData
	}
	if ident == nil && !s.cfg.AllowGuest {
		return nil, ErrIdentityRequired
	}

	sess := s.sessions.Reconcile(ctx, ident)
	return s.buildAuthResponse(sess)
}

// Refresh rotates a refresh token. Refresh tokens only exist for
// remote-mode sessions; local-fallback sessions re-run sign-in instead.
func (s *AuthService) Refresh(ctx context.Context, req *dto.RefreshRequest) (*dto.AuthResponse, error) {
	if s.db == nil {
		return nil, ErrInvalidToken
	}

	tokenHash := hashToken(req.RefreshToken)

	var stored models.RefreshToken
	if err := s.db.WithContext(ctx).Where("token_hash = ? AND revoked = false", tokenHash).First(&stored).Error; err != nil {
		return nil, ErrInvalidToken
	}

	if time.Now().After(stored.ExpiresAt) {
		s.db.Model(&stored).Update("revoked", true)
		return nil, ErrInvalidToken
	}

	s.db.Model(&stored).Update("revoked", true)

	sess, err := s.sessions.Resume(ctx, stored.UserID, session.ModeRemote)
	if err != nil {
		return nil, fmt.Errorf("failed to resume session: %w", err)
	}
	return s.buildAuthResponse(sess)
}

func (s *AuthService) Logout(ctx context.Context, req *dto.LogoutRequest) error {
	if s.db == nil {
		return nil
	}
	tokenHash := hashToken(req.RefreshToken)
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", tokenHash).
		Update("revoked", true).Error
}

func (s *AuthService) buildAuthResponse(sess *session.Session) (*dto.AuthResponse, error) {
	accessToken, err := s.generateAccessToken(sess)
	if err != nil {
		return nil, err
	}

	resp := &dto.AuthResponse{
		AccessToken: accessToken,
		Mode:        string(sess.Mode),
		User:        sess.User,
		Profile:     sess.Profile,
	}

	// No refresh token for local sessions: there is no row store to hold it.
	if sess.Mode == session.ModeRemote && s.db != nil {
		refreshToken, err := s.generateRefreshToken(sess.User)
		if err != nil {
			return nil, err
		}
		resp.RefreshToken = refreshToken
	}
	return resp, nil
}

func (s *AuthService) generateAccessToken(sess *session.Session) (string, error) {
	claims := jwt.MapClaims{
		"sub":  sess.User.ID.String(),
		"tid":  sess.User.TelegramID,
		"mode": string(sess.Mode),
		"iat":  time.Now().Unix(),
		"exp":  time.Now().Add(s.cfg.JWTAccessExpiry).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

func (s *AuthService) generateRefreshToken(user *models.User) (string, error) {
	rawBytes := make([]byte, 32)
	if _, err := rand.Read(rawBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	rawToken := base64.URLEncoding.EncodeToString(rawBytes)
	tokenHash := hashToken(rawToken)

	record := models.RefreshToken{
		ID:        uuid.New(),
		UserID:    user.ID,
		TokenHash: tokenHash,
		ExpiresAt: time.Now().Add(s.cfg.JWTRefreshExpiry),
	}

	if err := s.db.Create(&record).Error; err != nil {
		return "", fmt.Errorf("failed to store refresh token: %w", err)
	}

	return rawToken, nil
}

func hashToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return fmt.Sprintf("%x", h)
}
