package store

import (
	"testing"
	"time"

	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestUserPatchIsEmpty(t *testing.T) {
	assert.True(t, UserPatch{}.IsEmpty())
	assert.False(t, UserPatch{FirstName: strPtr("Luna")}.IsEmpty())
	assert.False(t, UserPatch{TotalXP: intPtr(0)}.IsEmpty())
}

func TestUserPatchFields(t *testing.T) {
	patch := UserPatch{
		FirstName: strPtr("Luna"),
		Username:  strPtr("luna_s"),
		TotalXP:   intPtr(150),
		Level:     intPtr(2),
	}

	fields := patch.Fields()
	assert.Equal(t, "Luna", fields["first_name"])
	assert.Equal(t, 150, fields["total_xp"])
	assert.Equal(t, 2, fields["level"])
	require.Contains(t, fields, "username")
	assert.NotContains(t, fields, "last_name")
	assert.NotContains(t, fields, "streak_days")
}

func TestUserPatchFieldsClearsNullableOnEmptyString(t *testing.T) {
	fields := UserPatch{Username: strPtr("")}.Fields()

	require.Contains(t, fields, "username")
	assert.Nil(t, fields["username"])
}

func TestUserPatchApply(t *testing.T) {
	user := &models.User{FirstName: "Luna", TotalXP: 10, Level: 1}
	now := time.Now()

	UserPatch{
		FirstName: strPtr("Selene"),
		LastName:  strPtr(""),
		TotalXP:   intPtr(120),
		Level:     intPtr(2),
	}.Apply(user, now)

	assert.Equal(t, "Selene", user.FirstName)
	assert.Nil(t, user.LastName)
	assert.Equal(t, 120, user.TotalXP)
	assert.Equal(t, 2, user.Level)
	assert.Equal(t, now, user.UpdatedAt)
}

func TestUserPatchApplyLeavesUnsetFields(t *testing.T) {
	user := &models.User{FirstName: "Luna", TotalXP: 90, StreakDays: 3}

	UserPatch{TotalXP: intPtr(115)}.Apply(user, time.Now())

	assert.Equal(t, "Luna", user.FirstName)
	assert.Equal(t, 115, user.TotalXP)
	assert.Equal(t, 3, user.StreakDays)
}

func TestProfilePatchApply(t *testing.T) {
	profile := &models.UserProfile{}
	birth := time.Date(1995, 6, 15, 0, 0, 0, 0, time.UTC)

	ProfilePatch{
		Bio:       strPtr("Stargazer"),
		City:      strPtr("Lisbon"),
		BirthDate: &birth,
		MBTIType:  strPtr("INFJ"),
	}.Apply(profile, time.Now())

	require.NotNil(t, profile.Bio)
	assert.Equal(t, "Stargazer", *profile.Bio)
	require.NotNil(t, profile.City)
	assert.Equal(t, "Lisbon", *profile.City)
	require.NotNil(t, profile.BirthDate)
	assert.Equal(t, birth, *profile.BirthDate)
	require.NotNil(t, profile.MBTIType)
	assert.Equal(t, "INFJ", *profile.MBTIType)
	assert.Nil(t, profile.ZodiacSign)
}

func TestProfilePatchIsEmpty(t *testing.T) {
	assert.True(t, ProfilePatch{}.IsEmpty())
	assert.False(t, ProfilePatch{Bio: strPtr("hi")}.IsEmpty())
}
