package identity

import (
	"errors"
	"math/rand"
	"net/http"
	"net/http/httptest"
	"regexp"
	"testing"
)

var generated = regexp.MustCompile(`^[A-Z][a-z]+[A-Z][a-z]+[0-9]{1,3}$`)

func TestNewUsername(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		name := NewUsername(rng)
		if !generated.MatchString(name) {
			t.Fatalf("generated %q does not match template", name)
		}
		if err := ValidateUsername(name); err != nil {
			t.Fatalf("generated %q fails validation: %v", name, err)
		}
	}
}

func TestValidateUsername(t *testing.T) {
	tests := []struct {
		name string
		want error
	}{
		{"Dragon42", nil},
		{"abcdefghijklmnop", nil},
		{"", ErrUsernameEmpty},
		{"abcdefghijklmnopq", ErrUsernameTooLong},
		{"bad name", ErrUsernameInvalid},
		{"émile", ErrUsernameInvalid},
	}
	for _, tt := range tests {
		if err := ValidateUsername(tt.name); !errors.Is(err, tt.want) {
			t.Errorf("ValidateUsername(%q) = %v, want %v", tt.name, err, tt.want)
		}
	}
}

func cookiesFrom(rec *httptest.ResponseRecorder) map[string]string {
	out := make(map[string]string)
	for _, c := range rec.Result().Cookies() {
		out[c.Name] = c.Value
	}
	return out
}

func TestCookieProvider_IdentifyCreatesOnce(t *testing.T) {
	p := NewCookieProvider(7)

	rec := httptest.NewRecorder()
	user := p.Identify(rec, httptest.NewRequest(http.MethodGet, "/game", nil))
	if user.UUID == "" || user.Username == "" {
		t.Fatalf("Identify returned incomplete user %+v", user)
	}
	cookies := cookiesFrom(rec)
	if cookies[UserIDCookie] != user.UUID || cookies[UsernameCookie] != user.Username {
		t.Fatalf("cookies %v do not persist %+v", cookies, user)
	}

	req := httptest.NewRequest(http.MethodGet, "/game", nil)
	req.AddCookie(&http.Cookie{Name: UserIDCookie, Value: user.UUID})
	req.AddCookie(&http.Cookie{Name: UsernameCookie, Value: user.Username})
	rec = httptest.NewRecorder()
	again := p.Identify(rec, req)
	if again != user {
		t.Errorf("second visit got %+v, want %+v", again, user)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("known identity should not be rewritten")
	}
}

func TestCookieProvider_IdentifyKeepsPartialIdentity(t *testing.T) {
	p := NewCookieProvider(7)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UsernameCookie, Value: "Keeper1"})
	req.AddCookie(&http.Cookie{Name: UserIDCookie, Value: "not-a-uuid"})

	user := p.Identify(httptest.NewRecorder(), req)
	if user.Username != "Keeper1" {
		t.Errorf("username %q, want Keeper1", user.Username)
	}
	if user.UUID == "" || user.UUID == "not-a-uuid" {
		t.Errorf("invalid uuid should be replaced, got %q", user.UUID)
	}
}

func TestCookieProvider_Register(t *testing.T) {
	p := NewCookieProvider(7)
	rec := httptest.NewRecorder()
	user, err := p.Register(rec, "Chosen1")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Username != "Chosen1" || user.UUID == "" {
		t.Errorf("user %+v", user)
	}
	if cookiesFrom(rec)[UsernameCookie] != "Chosen1" {
		t.Error("username cookie not set")
	}

	rec = httptest.NewRecorder()
	if _, err := p.Register(rec, "no spaces"); !errors.Is(err, ErrUsernameInvalid) {
		t.Errorf("err %v, want ErrUsernameInvalid", err)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Error("rejected signup must not set cookies")
	}
}
