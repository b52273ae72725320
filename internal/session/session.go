// Package session owns the user/session lifecycle: reconciling the platform
// identity against the remote store on sign-in, degrading to a locally
// synthesized session when the store or identity is unavailable, and routing
// every later mutation by the operating mode fixed at reconciliation time.
package session

import (
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"github.com/soulquest-app/soulquest-backend/internal/models"
)

// Mode is the operating mode of a session. It is decided once, during
// reconciliation, and carried with the session token; it is never re-derived
// from the shape of an id or re-probed mid-session.
type Mode string

const (
	// ModeRemote: the PostgreSQL store holds the authoritative record.
	ModeRemote Mode = "remote"
	// ModeLocalFallback: the session runs on a synthesized or locally
	// persisted record, either because the identity/store was unavailable at
	// startup or because the service runs in the fully local variant.
	ModeLocalFallback Mode = "local-fallback"
)

// Session is the reconciled user state for one signed-in client.
type Session struct {
	User    *models.User
	Profile *models.UserProfile
	// Habits is populated only in the fully local variant, where the habit
	// list is embedded in the local record instead of its own collection.
	Habits []localstore.Habit
	Mode   Mode
}

// XPResult reports the outcome of an XP mutation.
type XPResult struct {
	TotalXP   int  `json:"total_xp"`
	Level     int  `json:"level"`
	LeveledUp bool `json:"leveled_up"`
}

// Placeholder identity used when no platform identity is available at all
// (standalone browser, development).
const (
	guestTelegramID = "999999999"
	guestFirstName  = "Emma"
	guestLastName   = "Mystic"
	guestUsername   = "emma_mystic"
)

const defaultBio = "Welcome to my mystical journey! I'm on a quest to become " +
	"the best version of myself through daily challenges and personal growth."
