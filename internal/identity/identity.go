// Package identity gives every browser a stable participant id and display
// name, persisted in cookies and created once on first visit.
package identity

import (
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
)

const (
	UserIDCookie      = "vault_user_id"
	UsernameCookie    = "vault_username"
	MaxUsernameLength = 16

	cookieTTL = 365 * 24 * time.Hour
)

var (
	ErrUsernameEmpty   = errors.New("username is required")
	ErrUsernameTooLong = errors.New("username must be 16 characters or less")
	ErrUsernameInvalid = errors.New("username must contain only letters and numbers")
)

var (
	adjectives = []string{"Happy", "Clever", "Brave", "Swift", "Bright", "Witty", "Calm", "Eager", "Fierce", "Gentle"}
	nouns      = []string{"Panda", "Tiger", "Eagle", "Dolphin", "Fox", "Lion", "Wolf", "Bear", "Hawk", "Dragon"}
)

// User is the participant behind a browser.
type User struct {
	UUID     string
	Username string
}

// Provider resolves the participant for a request.
type Provider interface {
	// Identify returns the caller's identity, creating and persisting one
	// when the request carries none.
	Identify(w http.ResponseWriter, r *http.Request) User
	// Register replaces the caller's identity with a fresh id and the
	// chosen username.
	Register(w http.ResponseWriter, username string) (User, error)
}

// IntRand is the random source for generated usernames.
type IntRand interface {
	Intn(n int) int
}

// NewUsername builds an adjective+noun+number name, e.g. "BraveFox42".
func NewUsername(rng IntRand) string {
	return adjectives[rng.Intn(len(adjectives))] + nouns[rng.Intn(len(nouns))] + strconv.Itoa(rng.Intn(1000))
}

// ValidateUsername checks a user-chosen name.
func ValidateUsername(name string) error {
	if name == "" {
		return ErrUsernameEmpty
	}
	if len(name) > MaxUsernameLength {
		return ErrUsernameTooLong
	}
	for _, c := range name {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return ErrUsernameInvalid
		}
	}
	return nil
}

// CookieProvider keeps identities in two long-lived cookies.
type CookieProvider struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewCookieProvider creates a provider generating names from seed.
func NewCookieProvider(seed int64) *CookieProvider {
	return &CookieProvider{rng: rand.New(rand.NewSource(seed))}
}

func (p *CookieProvider) Identify(w http.ResponseWriter, r *http.Request) User {
	user, complete := FromRequest(r)
	if complete {
		return user
	}
	if user.UUID == "" {
		user.UUID = uuid.NewString()
	}
	if user.Username == "" {
		p.mu.Lock()
		user.Username = NewUsername(p.rng)
		p.mu.Unlock()
	}
	setCookies(w, user)
	return user
}

func (p *CookieProvider) Register(w http.ResponseWriter, username string) (User, error) {
	if err := ValidateUsername(username); err != nil {
		return User{}, err
	}
	user := User{UUID: uuid.NewString(), Username: username}
	setCookies(w, user)
	return user, nil
}

// FromRequest reads the identity cookies without creating anything. Values
// that fail validation are treated as missing. complete is true when both the
// id and the name were present and valid.
func FromRequest(r *http.Request) (User, bool) {
	var user User
	if c, err := r.Cookie(UserIDCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			user.UUID = id.String()
		}
	}
	if c, err := r.Cookie(UsernameCookie); err == nil && ValidateUsername(c.Value) == nil {
		user.Username = c.Value
	}
	return user, user.UUID != "" && user.Username != ""
}

func setCookies(w http.ResponseWriter, user User) {
	expires := time.Now().Add(cookieTTL)
	for name, value := range map[string]string{UserIDCookie: user.UUID, UsernameCookie: user.Username} {
		http.SetCookie(w, &http.Cookie{
			Name:     name,
			Value:    value,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
			Expires:  expires,
		})
	}
}
