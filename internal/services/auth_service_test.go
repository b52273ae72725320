package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/soulquest-app/soulquest-backend/internal/config"
	"github.com/soulquest-app/soulquest-backend/internal/dto"
	"github.com/soulquest-app/soulquest-backend/internal/identity"
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/soulquest-app/soulquest-backend/internal/session"
	"github.com/soulquest-app/soulquest-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBotToken = "12345:test-bot-token"

func newTestAuthService(t *testing.T, allowGuest bool) (*AuthService, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.UserProfile{}, &models.RefreshToken{}))

	local, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	cfg := &config.Config{
		JWTSecret:        "test-secret",
		JWTAccessExpiry:  15 * time.Minute,
		JWTRefreshExpiry: 24 * time.Hour,
		AllowGuest:       allowGuest,
	}
	verifier := identity.NewVerifier(testBotToken, 24*time.Hour)
	sessions := session.New(store.NewGorm(db), local)

	return NewAuthService(db, cfg, verifier, sessions), db
}

func signedInitData(t *testing.T) string {
	t.Helper()

	values := url.Values{}
	values.Set("user", `{"id":123456,"first_name":"Luna","username":"luna_s"}`)
	values.Set("auth_date", strconv.FormatInt(time.Now().Unix(), 10))

	pairs := make([]string, 0, len(values))
	for key := range values {
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(testBotToken))
	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))

	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func parseClaims(t *testing.T, tokenStr string) jwt.MapClaims {
	t.Helper()
	token, err := jwt.Parse(tokenStr, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	return claims
}

func TestTelegramSignIn(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	resp, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{
		InitData: signedInitData(t),
	})
	require.NoError(t, err)
	assert.Equal(t, "remote", resp.Mode)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	require.NotNil(t, resp.User)
	assert.Equal(t, "123456", resp.User.TelegramID)

	claims := parseClaims(t, resp.AccessToken)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])
	assert.Equal(t, "123456", claims["tid"])
	assert.Equal(t, "remote", claims["mode"])
}

func TestTelegramSignInRejectsTamperedInitData(t *testing.T) {
	svc, _ := newTestAuthService(t, true)

	tampered := strings.Replace(signedInitData(t), "Luna", "Eve", 1)
	_, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{InitData: tampered})
	assert.ErrorIs(t, err, ErrInvalidInitData)
}

func TestTelegramSignInGuestGated(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	_, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{InitData: ""})
	assert.ErrorIs(t, err, ErrIdentityRequired)
}

func TestTelegramSignInGuestAllowed(t *testing.T) {
	svc, _ := newTestAuthService(t, true)

	resp, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{InitData: ""})
	require.NoError(t, err)
	assert.Equal(t, "local-fallback", resp.Mode)
	// Local sessions carry no refresh token.
	assert.Empty(t, resp.RefreshToken)
	assert.Equal(t, "Emma", resp.User.FirstName)

	claims := parseClaims(t, resp.AccessToken)
	assert.Equal(t, "local-fallback", claims["mode"])
}

func TestRefreshRotatesToken(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	signIn, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{
		InitData: signedInitData(t),
	})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: signIn.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, signIn.RefreshToken, refreshed.RefreshToken)

	// The old token was revoked by the rotation.
	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: signIn.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshUnknownToken(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	_, err := svc.Refresh(context.Background(), &dto.RefreshRequest{RefreshToken: "bogus"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	svc, _ := newTestAuthService(t, false)

	signIn, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{
		InitData: signedInitData(t),
	})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), &dto.LogoutRequest{
		RefreshToken: signIn.RefreshToken,
	}))

	_, err = svc.Refresh(context.Background(), &dto.RefreshRequest{
		RefreshToken: signIn.RefreshToken,
	})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSignInTwiceSameUser(t *testing.T) {
	svc, db := newTestAuthService(t, false)

	first, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{
		InitData: signedInitData(t),
	})
	require.NoError(t, err)

	second, err := svc.TelegramSignIn(context.Background(), &dto.TelegramSignInRequest{
		InitData: signedInitData(t),
	})
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}
