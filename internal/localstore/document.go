package localstore

import (
	"time"

	"github.com/soulquest-app/soulquest-backend/internal/models"
)

// Document is the full user-state record kept under StorageKey: the User and
// UserProfile pair plus, in the fully local variant, the embedded habit list.
type Document struct {
	User    models.User        `json:"user"`
	Profile models.UserProfile `json:"profile"`
	Habits  []Habit            `json:"habits,omitempty"`
}

// Habit is the embedded habit shape of the local variant. The remote variant
// stores habits as their own collection instead.
type Habit struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
	XPReward    int       `json:"xp_reward"`
	Completed   bool      `json:"completed"`
	IsCustom    bool      `json:"is_custom"`
	CreatedAt   time.Time `json:"created_at"`
}

// DefaultHabits is the built-in habit library. The first four seed a fresh
// local document.
var DefaultHabits = []Habit{
	{Title: "Morning Planning", Description: "Plan your day ahead", Icon: "📋", XPReward: 25},
	{Title: "Morning Exercise", Description: "Start your day with movement", Icon: "🏋️", XPReward: 50},
	{Title: "Meditation", Description: "Find inner peace and focus", Icon: "🧘", XPReward: 30},
	{Title: "Goal Visualization", Description: "Visualize your success", Icon: "🎯", XPReward: 40},
	{Title: "Reading", Description: "Expand your knowledge", Icon: "📚", XPReward: 35},
	{Title: "Healthy Eating", Description: "Nourish your body", Icon: "🥗", XPReward: 20},
	{Title: "Water Intake", Description: "Stay hydrated", Icon: "💧", XPReward: 15},
	{Title: "Journaling", Description: "Reflect on your day", Icon: "✍️", XPReward: 25},
}
