package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/identity"
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/soulquest-app/soulquest-backend/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory store.Store with switchable failures.
type fakeStore struct {
	users    map[string]*models.User
	profiles map[uuid.UUID]*models.UserProfile

	failReads   bool
	failWrites  bool
	updateCalls []store.UserPatch
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		users:    make(map[string]*models.User),
		profiles: make(map[uuid.UUID]*models.UserProfile),
	}
}

var errStoreDown = errors.New("store unreachable")

func (f *fakeStore) GetUserByTelegramID(_ context.Context, telegramID string) (*models.User, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	user, ok := f.users[telegramID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *user
	return &copied, nil
}

func (f *fakeStore) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) CreateUser(_ context.Context, user *models.User) error {
	if f.failWrites {
		return errStoreDown
	}
	copied := *user
	f.users[user.TelegramID] = &copied
	return nil
}

func (f *fakeStore) UpdateUser(_ context.Context, id uuid.UUID, patch store.UserPatch) (*models.User, error) {
	if f.failWrites {
		return nil, errStoreDown
	}
	f.updateCalls = append(f.updateCalls, patch)
	for _, user := range f.users {
		if user.ID == id {
			patch.Apply(user, time.Now())
			copied := *user
			return &copied, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	if f.failReads {
		return nil, errStoreDown
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *profile
	return &copied, nil
}

func (f *fakeStore) CreateProfile(_ context.Context, profile *models.UserProfile) error {
	if f.failWrites {
		return errStoreDown
	}
	copied := *profile
	f.profiles[profile.UserID] = &copied
	return nil
}

func (f *fakeStore) UpdateProfile(_ context.Context, userID uuid.UUID, patch store.ProfilePatch) (*models.UserProfile, error) {
	if f.failWrites {
		return nil, errStoreDown
	}
	profile, ok := f.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	patch.Apply(profile, time.Now())
	copied := *profile
	return &copied, nil
}

func newTestService(t *testing.T) (*Service, *fakeStore) {
	t.Helper()
	local, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	remote := newFakeStore()
	return New(remote, local), remote
}

func testIdentity() *identity.Identity {
	return &identity.Identity{
		TelegramID: "123456",
		FirstName:  "Luna",
		LastName:   "Starling",
		Username:   "luna_s",
		PhotoURL:   "https://t.me/i/userpic/luna.jpg",
	}
}

func TestReconcileCreatesUser(t *testing.T) {
	svc, remote := newTestService(t)

	sess := svc.Reconcile(context.Background(), testIdentity())

	require.NotNil(t, sess)
	assert.Equal(t, ModeRemote, sess.Mode)
	assert.Equal(t, "123456", sess.User.TelegramID)
	assert.Equal(t, "Luna", sess.User.FirstName)
	assert.Equal(t, 1, sess.User.Level)
	assert.Equal(t, 0, sess.User.TotalXP)
	require.NotNil(t, sess.Profile)
	assert.Equal(t, sess.User.ID, sess.Profile.UserID)
	assert.Len(t, remote.users, 1)
}

func TestReconcileIdempotent(t *testing.T) {
	svc, remote := newTestService(t)
	ident := testIdentity()

	first := svc.Reconcile(context.Background(), ident)
	second := svc.Reconcile(context.Background(), ident)

	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Len(t, remote.users, 1)
	// Nothing changed between the two sign-ins, so no update was issued.
	assert.Empty(t, remote.updateCalls)
}

func TestReconcileRefreshesChangedDisplayFields(t *testing.T) {
	svc, remote := newTestService(t)
	ident := testIdentity()
	svc.Reconcile(context.Background(), ident)

	ident.FirstName = "Selene"
	sess := svc.Reconcile(context.Background(), ident)

	assert.Equal(t, "Selene", sess.User.FirstName)
	require.Len(t, remote.updateCalls, 1)
	patch := remote.updateCalls[0]
	require.NotNil(t, patch.FirstName)
	assert.Equal(t, "Selene", *patch.FirstName)
	assert.Nil(t, patch.LastName)
	assert.Nil(t, patch.Username)
	assert.Nil(t, patch.AvatarURL)
	assert.Nil(t, patch.TotalXP)
}

func TestReconcileKeepsAvatarWhenHostReportsNoPhoto(t *testing.T) {
	svc, remote := newTestService(t)
	ident := testIdentity()
	svc.Reconcile(context.Background(), ident)

	ident.PhotoURL = ""
	sess := svc.Reconcile(context.Background(), ident)

	require.NotNil(t, sess.User.AvatarURL)
	assert.Equal(t, "https://t.me/i/userpic/luna.jpg", *sess.User.AvatarURL)
	assert.Empty(t, remote.updateCalls)
}

func TestReconcileFallsBackOnStoreFailure(t *testing.T) {
	svc, remote := newTestService(t)
	remote.failReads = true

	sess := svc.Reconcile(context.Background(), testIdentity())

	require.NotNil(t, sess)
	assert.Equal(t, ModeLocalFallback, sess.Mode)
	assert.Equal(t, "123456", sess.User.TelegramID)
	assert.Equal(t, "Luna", sess.User.FirstName)
	require.NotNil(t, sess.Profile)
}

func TestReconcileFallsBackOnCreateFailure(t *testing.T) {
	svc, remote := newTestService(t)
	remote.failWrites = true

	sess := svc.Reconcile(context.Background(), testIdentity())

	require.NotNil(t, sess)
	assert.Equal(t, ModeLocalFallback, sess.Mode)
}

func TestReconcileWithoutIdentityUsesPlaceholder(t *testing.T) {
	svc, _ := newTestService(t)

	sess := svc.Reconcile(context.Background(), nil)

	require.NotNil(t, sess)
	assert.Equal(t, ModeLocalFallback, sess.Mode)
	assert.Equal(t, "999999999", sess.User.TelegramID)
	assert.Equal(t, "Emma", sess.User.FirstName)
	require.NotNil(t, sess.User.LastName)
	assert.Equal(t, "Mystic", *sess.User.LastName)
	require.NotNil(t, sess.User.Username)
	assert.Equal(t, "emma_mystic", *sess.User.Username)
}

func TestFallbackIDStableAcrossRestarts(t *testing.T) {
	svc, remote := newTestService(t)
	remote.failReads = true
	ident := testIdentity()

	first := svc.Reconcile(context.Background(), ident)
	second := svc.Reconcile(context.Background(), ident)

	assert.Equal(t, first.User.ID, second.User.ID)
}

func TestFallbackDiscardsForeignRecord(t *testing.T) {
	svc, remote := newTestService(t)
	remote.failReads = true

	other := testIdentity()
	other.TelegramID = "777"
	stale := svc.Reconcile(context.Background(), other)

	sess := svc.Reconcile(context.Background(), testIdentity())

	assert.NotEqual(t, stale.User.ID, sess.User.ID)
	assert.Equal(t, "123456", sess.User.TelegramID)
}

func TestAddXPCrossesLevelBoundary(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())
	require.Equal(t, ModeRemote, sess.Mode)

	result, err := svc.AddXP(context.Background(), sess, 90)
	require.NoError(t, err)
	assert.Equal(t, 90, result.TotalXP)
	assert.Equal(t, 1, result.Level)
	assert.False(t, result.LeveledUp)

	result, err = svc.AddXP(context.Background(), sess, 25)
	require.NoError(t, err)
	assert.Equal(t, 115, result.TotalXP)
	assert.Equal(t, 2, result.Level)
	assert.True(t, result.LeveledUp)

	result, err = svc.AddXP(context.Background(), sess, 25)
	require.NoError(t, err)
	assert.Equal(t, 140, result.TotalXP)
	assert.Equal(t, 2, result.Level)
	assert.False(t, result.LeveledUp)
}

func TestAddXPRevertKeepsLevelConsistent(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	_, err := svc.AddXP(context.Background(), sess, 140)
	require.NoError(t, err)

	result, err := svc.AddXP(context.Background(), sess, -40)
	require.NoError(t, err)
	assert.Equal(t, 100, result.TotalXP)
	assert.Equal(t, 2, result.Level)
	assert.False(t, result.LeveledUp)
}

func TestAddXPClampsAtZero(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	_, err := svc.AddXP(context.Background(), sess, 10)
	require.NoError(t, err)

	result, err := svc.AddXP(context.Background(), sess, -50)
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalXP)
	assert.Equal(t, 1, result.Level)
}

func TestAddXPWritesLevelAndTotalTogether(t *testing.T) {
	svc, remote := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	_, err := svc.AddXP(context.Background(), sess, 150)
	require.NoError(t, err)

	require.Len(t, remote.updateCalls, 1)
	patch := remote.updateCalls[0]
	require.NotNil(t, patch.TotalXP)
	require.NotNil(t, patch.Level)
	assert.Equal(t, 150, *patch.TotalXP)
	assert.Equal(t, 2, *patch.Level)
}

func TestUpdateUserDegradesToLocalPatch(t *testing.T) {
	svc, remote := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())
	before := sess.User.UpdatedAt

	remote.failWrites = true
	name := "Nova"
	err := svc.UpdateUser(context.Background(), sess, store.UserPatch{FirstName: &name})

	require.NoError(t, err)
	assert.Equal(t, "Nova", sess.User.FirstName)
	assert.True(t, sess.User.UpdatedAt.After(before))
}

func TestUpdateProfileDegradesToLocalPatch(t *testing.T) {
	svc, remote := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	remote.failWrites = true
	bio := "Stargazer"
	err := svc.UpdateProfile(context.Background(), sess, store.ProfilePatch{Bio: &bio})

	require.NoError(t, err)
	require.NotNil(t, sess.Profile.Bio)
	assert.Equal(t, "Stargazer", *sess.Profile.Bio)
}

func TestIncrementStreak(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	require.NoError(t, svc.IncrementStreak(context.Background(), sess))
	require.NoError(t, svc.IncrementStreak(context.Background(), sess))

	assert.Equal(t, 2, sess.User.StreakDays)
}

func TestResumeRemote(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	resumed, err := svc.Resume(context.Background(), sess.User.ID, ModeRemote)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, resumed.User.ID)
	assert.Equal(t, ModeRemote, resumed.Mode)
}

func TestResumeUnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Resume(context.Background(), uuid.New(), ModeRemote)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestResumeLocalFallback(t *testing.T) {
	svc, remote := newTestService(t)
	remote.failReads = true
	sess := svc.Reconcile(context.Background(), testIdentity())

	resumed, err := svc.Resume(context.Background(), sess.User.ID, ModeLocalFallback)
	require.NoError(t, err)
	assert.Equal(t, sess.User.ID, resumed.User.ID)
	assert.Equal(t, ModeLocalFallback, resumed.Mode)
}

// --- fully local variant ---

func newLocalService(t *testing.T) *Service {
	t.Helper()
	local, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })
	return NewLocal(local)
}

func TestLocalReconcileSeedsDefaultHabits(t *testing.T) {
	svc := newLocalService(t)

	sess := svc.Reconcile(context.Background(), testIdentity())

	assert.Equal(t, ModeLocalFallback, sess.Mode)
	require.Len(t, sess.Habits, 4)
	assert.Equal(t, "default-0", sess.Habits[0].ID)
	assert.Equal(t, "Morning Planning", sess.Habits[0].Title)
	assert.Equal(t, 25, sess.Habits[0].XPReward)
	assert.Equal(t, "default-3", sess.Habits[3].ID)
	require.NotNil(t, sess.Profile.Bio)
}

func TestLocalReconcileRecomputesLevel(t *testing.T) {
	svc := newLocalService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	// Corrupt the derived level, then reconcile again.
	sess.User.TotalXP = 250
	sess.User.Level = 1
	svc.saveLocal(sess)

	again := svc.Reconcile(context.Background(), testIdentity())
	assert.Equal(t, 250, again.User.TotalXP)
	assert.Equal(t, 3, again.User.Level)
}

func TestLocalToggleHabitAwardsAndRevertsXP(t *testing.T) {
	svc := newLocalService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	result, err := svc.ToggleHabit(context.Background(), sess, "default-1")
	require.NoError(t, err)
	assert.Equal(t, 50, result.TotalXP)
	assert.True(t, sess.Habits[1].Completed)

	result, err = svc.ToggleHabit(context.Background(), sess, "default-1")
	require.NoError(t, err)
	assert.Equal(t, 0, result.TotalXP)
	assert.False(t, sess.Habits[1].Completed)
}

func TestLocalToggleUnknownHabit(t *testing.T) {
	svc := newLocalService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	_, err := svc.ToggleHabit(context.Background(), sess, "missing")
	assert.Error(t, err)
}

func TestLocalAddHabit(t *testing.T) {
	svc := newLocalService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	habit, err := svc.AddHabit(context.Background(), sess, "Evening Walk", "Take a stroll", "🚶", 20)
	require.NoError(t, err)
	assert.True(t, habit.IsCustom)
	assert.Contains(t, habit.ID, "custom-")
	assert.Len(t, sess.Habits, 5)
}

func TestToggleHabitRejectedInRemoteMode(t *testing.T) {
	svc, _ := newTestService(t)
	sess := svc.Reconcile(context.Background(), testIdentity())

	_, err := svc.ToggleHabit(context.Background(), sess, "default-0")
	assert.ErrorIs(t, err, ErrLocalOnly)
}

func TestLocalStatePersistsAcrossServices(t *testing.T) {
	local, err := localstore.OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = local.Close() })

	svc := NewLocal(local)
	sess := svc.Reconcile(context.Background(), testIdentity())
	_, err = svc.AddXP(context.Background(), sess, 75)
	require.NoError(t, err)

	reopened := NewLocal(local)
	again := reopened.Reconcile(context.Background(), testIdentity())
	assert.Equal(t, sess.User.ID, again.User.ID)
	assert.Equal(t, 75, again.User.TotalXP)
}
