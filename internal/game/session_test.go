package game

import (
	"encoding/json"
	"errors"
	"math/rand"
	"testing"
	"time"

	"vault/internal/comments"
	"vault/internal/identity"
	"vault/internal/leaderboard"
	"vault/internal/spawner"
	"vault/pkg/realtime"
)

var testNow = time.Now().UTC()

func newTestSession(t *testing.T, bus *realtime.Bus) *Session {
	t.Helper()
	user := identity.User{UUID: "user-1", Username: "BraveFox7"}
	sess := NewSession(user, GameVariant(), spawner.DefaultConfig(), bus, rand.New(rand.NewSource(5)))
	t.Cleanup(sess.Stop)
	return sess
}

func TestSession_AttachFillsAndStartsTimers(t *testing.T) {
	sess := newTestSession(t, realtime.NewBus())
	if sess.Active() {
		t.Fatal("new session should be idle")
	}
	sess.Attach(testNow)
	if !sess.Active() {
		t.Fatal("Attach should start timers")
	}
	if got := len(sess.Widgets()); got != spawner.MinWidgets {
		t.Errorf("widgets %d, want %d after mount", got, spawner.MinWidgets)
	}

	sess.Attach(testNow)
	sess.Detach()
	if !sess.Active() {
		t.Error("session should keep running while a view is attached")
	}
	sess.Detach()
	if sess.Active() {
		t.Error("last Detach should stop timers")
	}
	sess.Detach()
}

func TestSession_CollectPublishesScore(t *testing.T) {
	bus := realtime.NewBus()
	scores := bus.Subscribe(TopicScores)
	defer bus.Unsubscribe(TopicScores, scores)

	sess := newTestSession(t, bus)
	sess.Attach(testNow)
	updates := sess.Updates().Subscribe()
	defer sess.Updates().Unsubscribe(updates)

	target := sess.Widgets()[0]
	got, ok := sess.Collect(target.ID, testNow)
	if !ok {
		t.Fatal("Collect failed for an active widget")
	}
	if got.TotalScore != int64(target.Value) || sess.Score() != int64(target.Value) {
		t.Errorf("total %d, score %d, want %d", got.TotalScore, sess.Score(), target.Value)
	}

	msg := <-scores
	var ev leaderboard.ScoreEvent
	if err := json.Unmarshal(msg.Data, &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.UUID != "user-1" || ev.Username != "BraveFox7" || ev.Value != target.Value || ev.TotalScore != int64(target.Value) {
		t.Errorf("published %+v", ev)
	}
	if !ev.Timestamp.Equal(testNow) {
		t.Errorf("timestamp %v, want %v", ev.Timestamp, testNow)
	}

	sawScore := false
	for len(updates) > 0 {
		if <-updates == EventScore {
			sawScore = true
		}
	}
	if !sawScore {
		t.Error("session did not announce the score change")
	}
}

func TestSession_DoubleCollectIsNoop(t *testing.T) {
	bus := realtime.NewBus()
	scores := bus.Subscribe(TopicScores)
	defer bus.Unsubscribe(TopicScores, scores)

	sess := newTestSession(t, bus)
	sess.Attach(testNow)
	id := sess.Widgets()[0].ID

	first, _ := sess.Collect(id, testNow)
	if _, ok := sess.Collect(id, testNow); ok {
		t.Error("second Collect should be a no-op")
	}
	if sess.Score() != first.TotalScore {
		t.Errorf("score %d changed after double collect, want %d", sess.Score(), first.TotalScore)
	}
	<-scores
	if len(scores) != 0 {
		t.Error("double collect published a second score event")
	}
}

func TestSession_CollectAfterTeardownIsNoop(t *testing.T) {
	bus := realtime.NewBus()
	scores := bus.Subscribe(TopicScores)
	defer bus.Unsubscribe(TopicScores, scores)

	sess := newTestSession(t, bus)
	sess.Attach(testNow)
	id := sess.Widgets()[0].ID
	sess.Detach()

	if _, ok := sess.Collect(id, testNow); ok {
		t.Error("a stopped session must not collect")
	}
	if len(scores) != 0 {
		t.Error("a stopped session emitted a score event")
	}
}

func TestSession_ScoreAccumulates(t *testing.T) {
	sess := newTestSession(t, realtime.NewBus())
	sess.Attach(testNow)
	var want int64
	for _, w := range sess.Widgets() {
		want += int64(w.Value)
		sess.Collect(w.ID, testNow)
	}
	if sess.Score() != want {
		t.Errorf("score %d, want %d", sess.Score(), want)
	}
}

func TestSession_Comment(t *testing.T) {
	bus := realtime.NewBus()
	feed := bus.Subscribe(TopicComments)
	defer bus.Unsubscribe(TopicComments, feed)
	sess := newTestSession(t, bus)

	c, err := sess.Comment("  love the genie  ", testNow)
	if err != nil {
		t.Fatalf("Comment: %v", err)
	}
	if c.Comment != "love the genie" || c.Username != "BraveFox7" {
		t.Errorf("comment %+v", c)
	}
	got, err := DecodeComment((<-feed).Data)
	if err != nil {
		t.Fatalf("DecodeComment: %v", err)
	}
	if got.Comment != "love the genie" || !got.Timestamp.Equal(testNow) {
		t.Errorf("published %+v", got)
	}

	if _, err := sess.Comment("", testNow); !errors.Is(err, comments.ErrEmpty) {
		t.Errorf("empty comment err %v, want ErrEmpty", err)
	}
	if len(feed) != 0 {
		t.Error("rejected comment was published")
	}
}
