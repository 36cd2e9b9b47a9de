package handlers

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"vault/internal/game"
	"vault/internal/identity"
	"vault/internal/spawner"
	"vault/pkg/realtime"
)

type testApp struct {
	bus       *realtime.Bus
	store     *game.Store
	standings *game.Standings
	router    chi.Router
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	bus := realtime.NewBus()
	variant := game.GameVariant()
	store := game.NewStore(bus, variant, spawner.DefaultConfig())
	standings := game.NewStandings(variant.ScoreTopic)
	standings.Follow(ctx, bus)
	t.Cleanup(func() {
		cancel()
		store.Shutdown()
	})

	provider := identity.NewCookieProvider(1)
	r := chi.NewRouter()
	NewHomeHandler(store, provider).RegisterRoutes(r)
	gh := NewGameHandler(store, provider)
	gh.RegisterRoutes(r)
	gh.RegisterStreams(r)
	lh := NewLeaderboardHandler(standings, bus, variant.Title)
	lh.RegisterRoutes(r)
	lh.RegisterStreams(r)
	NewChannelHandler(bus).RegisterRoutes(r)

	return &testApp{bus: bus, store: store, standings: standings, router: r}
}

func testUser() identity.User {
	return identity.User{UUID: uuid.NewString(), Username: "BraveFox42"}
}

func withUser(req *http.Request, user identity.User) *http.Request {
	req.AddCookie(&http.Cookie{Name: identity.UserIDCookie, Value: user.UUID})
	req.AddCookie(&http.Cookie{Name: identity.UsernameCookie, Value: user.Username})
	return req
}

type sseEvent struct {
	name string
	data string
}

// readEvent reads one SSE event, skipping keepalive comments.
func readEvent(t *testing.T, rd *bufio.Reader) sseEvent {
	t.Helper()
	var ev sseEvent
	var data []string
	for {
		line, err := rd.ReadString('\n')
		if err != nil {
			t.Fatalf("read event: %v", err)
		}
		line = strings.TrimRight(line, "\n")
		switch {
		case line == "":
			if ev.name == "" && len(data) == 0 {
				continue
			}
			ev.data = strings.Join(data, "\n")
			return ev
		case strings.HasPrefix(line, ":"):
		case strings.HasPrefix(line, "event: "):
			ev.name = strings.TrimPrefix(line, "event: ")
		case strings.HasPrefix(line, "data: "):
			data = append(data, strings.TrimPrefix(line, "data: "))
		}
	}
}

// waitEvent reads events until one named name arrives.
func waitEvent(t *testing.T, rd *bufio.Reader, name string) sseEvent {
	t.Helper()
	for i := 0; i < 200; i++ {
		ev := readEvent(t, rd)
		if ev.name == name {
			return ev
		}
	}
	t.Fatalf("event %q never arrived", name)
	return sseEvent{}
}

func openStream(t *testing.T, srv *httptest.Server, path string, user *identity.User) (*bufio.Reader, func()) {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+path, nil)
	if err != nil {
		cancel()
		t.Fatalf("new request: %v", err)
	}
	if user != nil {
		withUser(req, *user)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		cancel()
		t.Fatalf("open stream: %v", err)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/event-stream" {
		t.Fatalf("content type %q", ct)
	}
	return bufio.NewReader(resp.Body), func() {
		cancel()
		resp.Body.Close()
	}
}
