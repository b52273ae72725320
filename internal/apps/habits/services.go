package habits

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"gorm.io/gorm"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrNotCustom     = errors.New("only custom habits can be deleted")
)

type HabitService struct {
	db *gorm.DB
}

func NewHabitService(db *gorm.DB) *HabitService {
	return &HabitService{db: db}
}

// GetHabits returns the user's habits, seeding the default library on first
// access so a fresh user starts with something to do.
func (s *HabitService) GetHabits(userID uuid.UUID) ([]Habit, error) {
	var habits []Habit
	err := s.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&habits).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	if len(habits) == 0 {
		habits, err = s.seedDefaults(userID)
		if err != nil {
			return nil, err
		}
	}
	return habits, nil
}

func (s *HabitService) seedDefaults(userID uuid.UUID) ([]Habit, error) {
	seeded := make([]Habit, 0, 4)
	for _, d := range localstore.DefaultHabits[:4] {
		seeded = append(seeded, Habit{
			ID:          uuid.New(),
			UserID:      userID,
			Title:       d.Title,
			Description: d.Description,
			Icon:        d.Icon,
			XPReward:    d.XPReward,
		})
	}
	if err := s.db.Create(&seeded).Error; err != nil {
		return nil, fmt.Errorf("failed to seed default habits: %w", err)
	}
	return seeded, nil
}

func (s *HabitService) CreateHabit(userID uuid.UUID, req CreateHabitRequest) (*Habit, error) {
	habit := Habit{
		ID:          uuid.New(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		XPReward:    req.XPReward,
		IsCustom:    true,
	}
	if err := s.db.Create(&habit).Error; err != nil {
		return nil, fmt.Errorf("failed to create habit: %w", err)
	}
	return &habit, nil
}

// ToggleHabit flips completion and returns the habit together with the XP
// delta the caller must apply: positive on completion, negative on revert.
func (s *HabitService) ToggleHabit(userID uuid.UUID, habitID uuid.UUID) (*Habit, int, error) {
	var habit Habit
	err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, 0, ErrHabitNotFound
	}
	if err != nil {
		return nil, 0, fmt.Errorf("failed to find habit: %w", err)
	}

	habit.Completed = !habit.Completed
	if err := s.db.Save(&habit).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to toggle habit: %w", err)
	}

	delta := habit.XPReward
	if !habit.Completed {
		delta = -delta
	}
	return &habit, delta, nil
}

func (s *HabitService) DeleteHabit(userID uuid.UUID, habitID uuid.UUID) error {
	var habit Habit
	err := s.db.Where("id = ? AND user_id = ?", habitID, userID).First(&habit).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrHabitNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to find habit: %w", err)
	}
	if !habit.IsCustom {
		return ErrNotCustom
	}
	return s.db.Delete(&habit).Error
}
