package pages

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"vault/internal/viewmodel"
)

func TestGamePage(t *testing.T) {
	var buf bytes.Buffer
	err := GamePage(viewmodel.GamePage{
		Title:      "Dragon's Vault",
		Username:   "BraveFox42",
		Score:      "1,200",
		Width:      1280,
		Height:     720,
		SpriteSize: 200,
		MaxComment: 60,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{
		"<title>Dragon&#39;s Vault</title>",
		`data-width="1280"`,
		`<span id="score">1,200</span>`,
		`maxlength="60"`,
		"/static/game.js",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestLeaderboardPage_WiresStream(t *testing.T) {
	var buf bytes.Buffer
	err := LeaderboardPage(viewmodel.LeaderboardPage{
		Title:  "Leaderboard",
		Scores: viewmodel.ScoresFragment{Title: "Top players"},
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	for _, want := range []string{`sse-connect="/leaderboard/stream"`, `sse-swap="scores"`, `sse-swap="comments"`, `sse-swap="notification"`} {
		if !strings.Contains(html, want) {
			t.Errorf("missing %q", want)
		}
	}
}

func TestSignupPage_ShowsError(t *testing.T) {
	var buf bytes.Buffer
	err := SignupPage(viewmodel.SignupPage{Title: "Sign up", Username: `a"b`, Error: "bad name", MaxLen: 16}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()
	if !strings.Contains(html, "bad name") || !strings.Contains(html, `value="a&#34;b"`) {
		t.Fatalf("unexpected signup page: %s", html)
	}
}
