package localstore

import (
	"testing"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := OpenInMemory()
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestLoadFirstRun(t *testing.T) {
	store := newTestStore(t)

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestSaveLoadRoundtrip(t *testing.T) {
	store := newTestStore(t)

	userID := uuid.New()
	username := "luna_s"
	doc := &Document{
		User: models.User{
			ID:         userID,
			TelegramID: "123456",
			FirstName:  "Luna",
			Username:   &username,
			Level:      2,
			TotalXP:    150,
		},
		Profile: models.UserProfile{ID: uuid.New(), UserID: userID},
		Habits: []Habit{
			{ID: "default-0", Title: "Morning Planning", XPReward: 25, Completed: true},
		},
	}
	require.NoError(t, store.Save(doc))

	loaded, err := store.Load()
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, userID, loaded.User.ID)
	assert.Equal(t, "Luna", loaded.User.FirstName)
	require.NotNil(t, loaded.User.Username)
	assert.Equal(t, "luna_s", *loaded.User.Username)
	assert.Equal(t, 150, loaded.User.TotalXP)
	require.Len(t, loaded.Habits, 1)
	assert.True(t, loaded.Habits[0].Completed)
}

func TestSaveReplacesDocument(t *testing.T) {
	store := newTestStore(t)

	first := &Document{User: models.User{ID: uuid.New(), FirstName: "Luna", TotalXP: 10}}
	require.NoError(t, store.Save(first))

	second := &Document{User: models.User{ID: first.User.ID, FirstName: "Luna", TotalXP: 35}}
	require.NoError(t, store.Save(second))

	loaded, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, 35, loaded.User.TotalXP)
}

func TestLoadCorruptRecordReadsAsAbsent(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.putRaw([]byte("{not json")))

	doc, err := store.Load()
	require.NoError(t, err)
	assert.Nil(t, doc)
}

func TestDefaultHabitsSeedSet(t *testing.T) {
	require.GreaterOrEqual(t, len(DefaultHabits), 4)
	assert.Equal(t, "Morning Planning", DefaultHabits[0].Title)
	assert.Equal(t, 25, DefaultHabits[0].XPReward)
	assert.Equal(t, "Morning Exercise", DefaultHabits[1].Title)
	assert.Equal(t, 50, DefaultHabits[1].XPReward)
	assert.Equal(t, "Meditation", DefaultHabits[2].Title)
	assert.Equal(t, "Goal Visualization", DefaultHabits[3].Title)
}
