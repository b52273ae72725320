package identity

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"
)

var (
	ErrInvalidInitData = errors.New("invalid telegram init data")
	ErrExpiredInitData = errors.New("telegram init data expired")
)

// Verifier validates Telegram WebApp init data against the bot token.
//
// Algorithm (per Telegram's Mini App docs): the data-check-string is every
// query field except "hash", sorted, joined with newlines; the secret key is
// HMAC-SHA256 of the bot token keyed with the constant "WebAppData"; the
// reported hash must equal the hex HMAC-SHA256 of the data-check-string
// under that secret key.
type Verifier struct {
	botToken string
	maxAge   time.Duration
	now      func() time.Time
}

func NewVerifier(botToken string, maxAge time.Duration) *Verifier {
	return &Verifier{
		botToken: botToken,
		maxAge:   maxAge,
		now:      time.Now,
	}
}

type webAppUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	PhotoURL     string `json:"photo_url"`
	LanguageCode string `json:"language_code"`
	IsPremium    bool   `json:"is_premium"`
}

// Resolve verifies initData and extracts the identity. An empty initData
// string yields (nil, nil): the host did not supply an identity. A tampered
// or stale payload is rejected with an error.
func (v *Verifier) Resolve(initData string) (*Identity, error) {
	if initData == "" {
		return nil, nil
	}

	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, ErrInvalidInitData
	}

	reported := values.Get("hash")
	if reported == "" {
		return nil, ErrInvalidInitData
	}

	if !hmac.Equal([]byte(reported), []byte(v.computeHash(values))) {
		return nil, ErrInvalidInitData
	}

	if v.maxAge > 0 {
		authDate, err := strconv.ParseInt(values.Get("auth_date"), 10, 64)
		if err != nil {
			return nil, ErrInvalidInitData
		}
		if v.now().Sub(time.Unix(authDate, 0)) > v.maxAge {
			return nil, ErrExpiredInitData
		}
	}

	rawUser := values.Get("user")
	if rawUser == "" {
		return nil, nil
	}

	var u webAppUser
	if err := json.Unmarshal([]byte(rawUser), &u); err != nil {
		return nil, ErrInvalidInitData
	}
	if u.ID == 0 || u.FirstName == "" {
		return nil, ErrInvalidInitData
	}

	return &Identity{
		TelegramID:   strconv.FormatInt(u.ID, 10),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		Username:     u.Username,
		PhotoURL:     u.PhotoURL,
		LanguageCode: u.LanguageCode,
		IsPremium:    u.IsPremium,
	}, nil
}

func (v *Verifier) computeHash(values url.Values) string {
	pairs := make([]string, 0, len(values))
	for key := range values {
		if key == "hash" {
			continue
		}
		pairs = append(pairs, key+"="+values.Get(key))
	}
	sort.Strings(pairs)

	secret := hmac.New(sha256.New, []byte("WebAppData"))
	secret.Write([]byte(v.botToken))

	mac := hmac.New(sha256.New, secret.Sum(nil))
	mac.Write([]byte(strings.Join(pairs, "\n")))
	return hex.EncodeToString(mac.Sum(nil))
}
