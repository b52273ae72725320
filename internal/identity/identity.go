// Package identity resolves the platform identity supplied by the Telegram
// WebApp host. An absent identity is a recognized operating condition, not
// an error: callers fall back to a synthesized local user.
package identity

// Identity is the ephemeral identity payload extracted from verified
// Telegram WebApp init data. It is never persisted directly; the session
// reconciler derives the authoritative User record from it.
type Identity struct {
	TelegramID   string
	FirstName    string
	LastName     string
	Username     string
	PhotoURL     string
	LanguageCode string
	IsPremium    bool
}
