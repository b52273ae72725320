package habits

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *HabitService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Habit{}))
	return NewHabitService(db)
}

func TestGetHabitsSeedsDefaults(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	habits, err := svc.GetHabits(userID)
	require.NoError(t, err)
	require.Len(t, habits, 4)
	assert.Equal(t, "Morning Planning", habits[0].Title)
	assert.Equal(t, 25, habits[0].XPReward)
	assert.False(t, habits[0].IsCustom)

	// Second call must not seed again.
	again, err := svc.GetHabits(userID)
	require.NoError(t, err)
	assert.Len(t, again, 4)
}

func TestCreateHabitIsCustom(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()

	habit, err := svc.CreateHabit(userID, CreateHabitRequest{
		Title: "Evening Walk", Icon: "🚶", XPReward: 20,
	})
	require.NoError(t, err)
	assert.True(t, habit.IsCustom)
	assert.Equal(t, 20, habit.XPReward)
}

func TestToggleHabitReturnsXPDelta(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	habits, err := svc.GetHabits(userID)
	require.NoError(t, err)

	habit, delta, err := svc.ToggleHabit(userID, habits[1].ID)
	require.NoError(t, err)
	assert.True(t, habit.Completed)
	assert.Equal(t, 50, delta)

	habit, delta, err = svc.ToggleHabit(userID, habits[1].ID)
	require.NoError(t, err)
	assert.False(t, habit.Completed)
	assert.Equal(t, -50, delta)
}

func TestToggleHabitScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	owner := uuid.New()
	habits, err := svc.GetHabits(owner)
	require.NoError(t, err)

	_, _, err = svc.ToggleHabit(uuid.New(), habits[0].ID)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestDeleteHabitRejectsDefaults(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	habits, err := svc.GetHabits(userID)
	require.NoError(t, err)

	err = svc.DeleteHabit(userID, habits[0].ID)
	assert.ErrorIs(t, err, ErrNotCustom)

	custom, err := svc.CreateHabit(userID, CreateHabitRequest{Title: "Stretch", XPReward: 10})
	require.NoError(t, err)
	require.NoError(t, svc.DeleteHabit(userID, custom.ID))

	remaining, err := svc.GetHabits(userID)
	require.NoError(t, err)
	assert.Len(t, remaining, 4)
}
