package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/soulquest-app/soulquest-backend/internal/identity"
	"github.com/soulquest-app/soulquest-backend/internal/localstore"
	"github.com/soulquest-app/soulquest-backend/internal/models"
	"github.com/soulquest-app/soulquest-backend/internal/store"
)

var (
	ErrSessionNotFound = errors.New("no session state for user")
	ErrLocalOnly       = errors.New("operation only available in the local variant")
)

// Service reconciles and mutates session state. The same reconciler serves
// both variants: remote-backed with local fallback, and fully local with an
// embedded habit list.
type Service struct {
	remote store.Store // nil in the fully local variant
	local  *localstore.Store
	logger *slog.Logger
	now    func() time.Time
}

// New returns a reconciler backed by the remote store, degrading to the
// local record store on failure.
func New(remote store.Store, local *localstore.Store) *Service {
	return &Service{
		remote: remote,
		local:  local,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// NewLocal returns the fully local variant: no remote store, user state and
// habits live in the local record store.
func NewLocal(local *localstore.Store) *Service {
	return &Service{
		local:  local,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// Reconcile produces exactly one authoritative session for the supplied
// identity. ident is nil when the host platform supplied no identity. It
// always terminates in a usable session; every store failure degrades to
// local-fallback mode instead of propagating.
func (s *Service) Reconcile(ctx context.Context, ident *identity.Identity) *Session {
	if s.remote == nil {
		return s.reconcileLocal(ident)
	}
	if ident == nil {
		return s.fallback(nil, errors.New("identity unavailable"))
	}

	user, err := s.remote.GetUserByTelegramID(ctx, ident.TelegramID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		user = newUserFromIdentity(ident, s.now())
		if err := s.remote.CreateUser(ctx, user); err != nil {
			return s.fallback(ident, err)
		}
		s.logger.Info("user created", "user_id", user.ID.String(), "telegram_id", ident.TelegramID)
	case err != nil:
		return s.fallback(ident, err)
	default:
		// Refresh display fields the host reported differently; an empty
		// diff must not issue a write.
		patch := displayDiff(user, ident)
		if !patch.IsEmpty() {
			updated, err := s.remote.UpdateUser(ctx, user.ID, patch)
			if err != nil {
				return s.fallback(ident, err)
			}
			user = updated
		}
	}

	profile, err := s.remote.GetProfileByUserID(ctx, user.ID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.UserProfile{ID: uuid.New(), UserID: user.ID, CreatedAt: s.now(), UpdatedAt: s.now()}
		if err := s.remote.CreateProfile(ctx, profile); err != nil {
			return s.fallback(ident, err)
		}
	} else if err != nil {
		return s.fallback(ident, err)
	}

	return &Session{User: user, Profile: profile, Mode: ModeRemote}
}

// Resume rebuilds the session for an already reconciled user, using the mode
// fixed at sign-in.
func (s *Service) Resume(ctx context.Context, userID uuid.UUID, mode Mode) (*Session, error) {
	if mode == ModeLocalFallback || s.remote == nil {
		doc, err := s.local.Load()
		if err != nil {
			return nil, err
		}
		if doc == nil || doc.User.ID != userID {
			return nil, ErrSessionNotFound
		}
		return &Session{User: &doc.User, Profile: &doc.Profile, Habits: doc.Habits, Mode: ModeLocalFallback}, nil
	}

	user, err := s.remote.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	profile, err := s.remote.GetProfileByUserID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		profile = &models.UserProfile{ID: uuid.New(), UserID: userID, CreatedAt: s.now(), UpdatedAt: s.now()}
		if err := s.remote.CreateProfile(ctx, profile); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, err
	}
	return &Session{User: user, Profile: profile, Mode: ModeRemote}, nil
}

// UpdateUser applies a partial update, adopting the stored row as the source
// of truth after a successful remote write. A failed remote write degrades
// to an optimistic in-memory patch with a fresh updated_at; the discrepancy
// is logged so a background reconciliation pass could repair it later.
func (s *Service) UpdateUser(ctx context.Context, sess *Session, patch store.UserPatch) error {
	if sess == nil || sess.User == nil {
		return nil
	}

	if sess.Mode == ModeRemote {
		updated, err := s.remote.UpdateUser(ctx, sess.User.ID, patch)
		if err == nil {
			sess.User = updated
			return nil
		}
		s.logger.Warn("remote user update failed, applying local patch",
			"user_id", sess.User.ID.String(), "error", err)
	}

	patch.Apply(sess.User, s.now())
	s.saveLocal(sess)
	return nil
}

// UpdateProfile is symmetric to UpdateUser for the profile record, matched
// by user id.
func (s *Service) UpdateProfile(ctx context.Context, sess *Session, patch store.ProfilePatch) error {
	if sess == nil || sess.User == nil || sess.Profile == nil {
		return nil
	}

	if sess.Mode == ModeRemote {
		updated, err := s.remote.UpdateProfile(ctx, sess.User.ID, patch)
		if err == nil {
			sess.Profile = updated
			return nil
		}
		s.logger.Warn("remote profile update failed, applying local patch",
			"user_id", sess.User.ID.String(), "error", err)
	}

	patch.Apply(sess.Profile, s.now())
	s.saveLocal(sess)
	return nil
}

// AddXP adjusts total XP by amount (negative when reverting a completed
// habit or quest), clamped at zero, and writes the derived level in the same
// update so the level invariant never observes a transient violation.
func (s *Service) AddXP(ctx context.Context, sess *Session, amount int) (*XPResult, error) {
	if sess == nil || sess.User == nil {
		return nil, nil
	}

	newTotal := sess.User.TotalXP + amount
	if newTotal < 0 {
		newTotal = 0
	}
	newLevel := models.LevelForXP(newTotal)
	leveledUp := newLevel > sess.User.Level

	if err := s.UpdateUser(ctx, sess, store.UserPatch{TotalXP: &newTotal, Level: &newLevel}); err != nil {
		return nil, err
	}
	if leveledUp {
		s.logger.Info("level up", "user_id", sess.User.ID.String(), "level", newLevel)
	}
	return &XPResult{TotalXP: sess.User.TotalXP, Level: sess.User.Level, LeveledUp: leveledUp}, nil
}

// IncrementStreak bumps the daily streak counter by one.
func (s *Service) IncrementStreak(ctx context.Context, sess *Session) error {
	if sess == nil || sess.User == nil {
		return nil
	}
	next := sess.User.StreakDays + 1
	return s.UpdateUser(ctx, sess, store.UserPatch{StreakDays: &next})
}

// UpdateAvatar points the user at a new avatar reference. Encoding a raw
// upload into the reference is the caller's concern.
func (s *Service) UpdateAvatar(ctx context.Context, sess *Session, avatarURL string) error {
	if sess == nil || sess.User == nil {
		return nil
	}
	return s.UpdateUser(ctx, sess, store.UserPatch{AvatarURL: &avatarURL})
}

// ToggleHabit flips a habit in the embedded list of the local variant,
// awarding its XP on completion and reverting it on un-completion.
func (s *Service) ToggleHabit(ctx context.Context, sess *Session, habitID string) (*XPResult, error) {
	if sess == nil || sess.User == nil {
		return nil, nil
	}
	if s.remote != nil {
		return nil, ErrLocalOnly
	}

	for i := range sess.Habits {
		if sess.Habits[i].ID != habitID {
			continue
		}
		sess.Habits[i].Completed = !sess.Habits[i].Completed
		amount := sess.Habits[i].XPReward
		if !sess.Habits[i].Completed {
			amount = -amount
		}
		// AddXP persists the whole document, habit list included.
		return s.AddXP(ctx, sess, amount)
	}
	return nil, fmt.Errorf("habit %s not found", habitID)
}

// AddHabit appends a custom habit to the embedded list of the local variant.
func (s *Service) AddHabit(ctx context.Context, sess *Session, title, description, icon string, xpReward int) (*localstore.Habit, error) {
	if sess == nil || sess.User == nil {
		return nil, nil
	}
	if s.remote != nil {
		return nil, ErrLocalOnly
	}

	habit := localstore.Habit{
		ID:          fmt.Sprintf("custom-%d", s.now().UnixMilli()),
		Title:       title,
		Description: description,
		Icon:        icon,
		XPReward:    xpReward,
		IsCustom:    true,
		CreatedAt:   s.now(),
	}
	sess.Habits = append(sess.Habits, habit)
	s.saveLocal(sess)
	return &habit, nil
}

// fallback synthesizes a local session (spec step 5). An existing local
// record for the same identity is reused so the synthesized id stays stable
// across restarts; otherwise a fresh id is generated.
func (s *Service) fallback(ident *identity.Identity, cause error) *Session {
	s.logger.Warn("falling back to local session", "error", cause)

	if doc, err := s.local.Load(); err == nil && doc != nil {
		if ident == nil || doc.User.TelegramID == ident.TelegramID {
			if ident != nil {
				displayDiff(&doc.User, ident).Apply(&doc.User, s.now())
			}
			sess := &Session{User: &doc.User, Profile: &doc.Profile, Habits: doc.Habits, Mode: ModeLocalFallback}
			s.saveLocal(sess)
			return sess
		}
	}

	user := newUserFromIdentity(ident, s.now())
	profile := &models.UserProfile{ID: uuid.New(), UserID: user.ID, CreatedAt: s.now(), UpdatedAt: s.now()}
	sess := &Session{User: user, Profile: profile, Mode: ModeLocalFallback}
	s.saveLocal(sess)
	return sess
}

// reconcileLocal is the fully local variant: the document is the only store.
func (s *Service) reconcileLocal(ident *identity.Identity) *Session {
	doc, err := s.local.Load()
	if err != nil {
		s.logger.Warn("local record unreadable, starting fresh", "error", err)
		doc = nil
	}

	if doc == nil {
		user := newUserFromIdentity(ident, s.now())
		bio := defaultBio
		profile := &models.UserProfile{ID: uuid.New(), UserID: user.ID, Bio: &bio, CreatedAt: s.now(), UpdatedAt: s.now()}
		sess := &Session{User: user, Profile: profile, Habits: seedHabits(s.now()), Mode: ModeLocalFallback}
		s.saveLocal(sess)
		return sess
	}

	if ident != nil {
		displayDiff(&doc.User, ident).Apply(&doc.User, s.now())
	}
	// Stored level may predate an XP write that never recomputed it.
	doc.User.Level = models.LevelForXP(doc.User.TotalXP)

	sess := &Session{User: &doc.User, Profile: &doc.Profile, Habits: doc.Habits, Mode: ModeLocalFallback}
	s.saveLocal(sess)
	return sess
}

func (s *Service) saveLocal(sess *Session) {
	doc := &localstore.Document{User: *sess.User, Habits: sess.Habits}
	if sess.Profile != nil {
		doc.Profile = *sess.Profile
	}
	if err := s.local.Save(doc); err != nil {
		s.logger.Error("failed to persist local session record", "error", err)
	}
}

// newUserFromIdentity synthesizes a fresh User. A nil identity yields the
// fixed placeholder user.
func newUserFromIdentity(ident *identity.Identity, now time.Time) *models.User {
	user := &models.User{
		ID:         uuid.New(),
		Level:      1,
		TotalXP:    0,
		StreakDays: 0,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if ident == nil {
		user.TelegramID = guestTelegramID
		user.FirstName = guestFirstName
		last, username := guestLastName, guestUsername
		user.LastName = &last
		user.Username = &username
		return user
	}

	user.TelegramID = ident.TelegramID
	user.FirstName = ident.FirstName
	if ident.LastName != "" {
		last := ident.LastName
		user.LastName = &last
	}
	if ident.Username != "" {
		username := ident.Username
		user.Username = &username
	}
	if ident.PhotoURL != "" {
		photo := ident.PhotoURL
		user.AvatarURL = &photo
	}
	return user
}

// displayDiff compares the stored display fields against the freshly
// supplied identity and returns a patch containing only the changed ones.
// The avatar is only refreshed when the host reports a photo.
func displayDiff(user *models.User, ident *identity.Identity) store.UserPatch {
	var patch store.UserPatch
	if user.FirstName != ident.FirstName {
		patch.FirstName = &ident.FirstName
	}
	if strVal(user.LastName) != ident.LastName {
		patch.LastName = &ident.LastName
	}
	if strVal(user.Username) != ident.Username {
		patch.Username = &ident.Username
	}
	if ident.PhotoURL != "" && strVal(user.AvatarURL) != ident.PhotoURL {
		patch.AvatarURL = &ident.PhotoURL
	}
	return patch
}

func strVal(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func seedHabits(now time.Time) []localstore.Habit {
	habits := make([]localstore.Habit, 0, 4)
	for i, h := range localstore.DefaultHabits[:4] {
		h.ID = fmt.Sprintf("default-%d", i)
		h.CreatedAt = now
		habits = append(habits, h)
	}
	return habits
}
