package quests

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestService(t *testing.T) *QuestService {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&DailyQuest{}))
	return NewQuestService(db)
}

func createQuest(t *testing.T, svc *QuestService, userID uuid.UUID) *DailyQuest {
	t.Helper()
	quest, err := svc.CreateQuest(userID, CreateQuestRequest{
		QuestType: "daily", Title: "Drink water", XPReward: 15,
	})
	require.NoError(t, err)
	return quest
}

func TestCompleteQuest(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	quest := createQuest(t, svc, userID)

	completed, err := svc.CompleteQuest(userID, quest.ID)
	require.NoError(t, err)
	assert.True(t, completed.Completed)
}

func TestCompleteQuestTwiceRejected(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	quest := createQuest(t, svc, userID)

	_, err := svc.CompleteQuest(userID, quest.ID)
	require.NoError(t, err)

	_, err = svc.CompleteQuest(userID, quest.ID)
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
}

func TestUncompleteQuest(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	quest := createQuest(t, svc, userID)

	_, err := svc.UncompleteQuest(userID, quest.ID)
	assert.ErrorIs(t, err, ErrNotCompleted)

	_, err = svc.CompleteQuest(userID, quest.ID)
	require.NoError(t, err)

	reverted, err := svc.UncompleteQuest(userID, quest.ID)
	require.NoError(t, err)
	assert.False(t, reverted.Completed)
}

func TestQuestScopedToOwner(t *testing.T) {
	svc := newTestService(t)
	quest := createQuest(t, svc, uuid.New())

	_, err := svc.CompleteQuest(uuid.New(), quest.ID)
	assert.ErrorIs(t, err, ErrQuestNotFound)
}

func TestDeleteQuest(t *testing.T) {
	svc := newTestService(t)
	userID := uuid.New()
	quest := createQuest(t, svc, userID)

	require.NoError(t, svc.DeleteQuest(userID, quest.ID))
	assert.ErrorIs(t, svc.DeleteQuest(userID, quest.ID), ErrQuestNotFound)

	quests, err := svc.GetQuests(userID)
	require.NoError(t, err)
	assert.Empty(t, quests)
}
