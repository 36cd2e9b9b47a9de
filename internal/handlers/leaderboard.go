package handlers

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"vault/internal/comments"
	"vault/internal/game"
	"vault/internal/leaderboard"
	"vault/internal/viewmodel"
	"vault/pkg/realtime"
	"vault/views/components"
	"vault/views/pages"
)

type LeaderboardHandler struct {
	standings *game.Standings
	bus       *realtime.Bus
	title     string
}

func NewLeaderboardHandler(standings *game.Standings, bus *realtime.Bus, title string) *LeaderboardHandler {
	return &LeaderboardHandler{standings: standings, bus: bus, title: title}
}

func (h *LeaderboardHandler) RegisterRoutes(r chi.Router) {
	r.Get("/leaderboard", h.page)
}

// RegisterStreams mounts the leaderboard stream outside request timeouts.
func (h *LeaderboardHandler) RegisterStreams(r chi.Router) {
	r.Get("/leaderboard/stream", h.stream)
}

func (h *LeaderboardHandler) page(w http.ResponseWriter, r *http.Request) {
	render(w, r, pages.LeaderboardPage(viewmodel.LeaderboardPage{
		Title:    h.title,
		Scores:   h.scoresFragment(h.standings.Entries()),
		Comments: commentsFragment(h.standings.Comments()),
	}))
}

// stream gives each connection its own viewer seeded from the server-wide
// standings. Subscribing happens before seeding so no message is missed.
func (h *LeaderboardHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := startSSE(w)
	if !ok {
		return
	}

	scoreTopic := h.standings.ScoreTopic()
	scores := h.bus.Subscribe(scoreTopic)
	defer h.bus.Unsubscribe(scoreTopic, scores)
	feed := h.bus.Subscribe(game.TopicComments)
	defer h.bus.Unsubscribe(game.TopicComments, feed)

	viewer := h.standings.NewViewer()

	sendScores := func() {
		writeSSE(w, "scores", renderToString(r, components.ScoresFragment(h.scoresFragment(viewer.Board.Entries()))))
	}
	sendComments := func() {
		writeSSE(w, "comments", renderToString(r, components.CommentsFragment(commentsFragment(viewer.Feed.Items()))))
	}
	sendNotification := func(n *viewmodel.Notification) {
		writeSSE(w, "notification", renderToString(r, components.NotificationFragment(n)))
	}

	sendScores()
	sendComments()
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	var (
		expiry  *time.Timer
		expired <-chan time.Time
		shownID string
	)
	defer func() {
		if expiry != nil {
			expiry.Stop()
		}
	}()

	handle := func(msg realtime.Message) {
		up, err := viewer.Handle(msg, time.Now().UTC())
		if err != nil {
			log.Printf("leaderboard dropped message topic=%s err=%v", msg.Topic, err)
			return
		}
		if up.Scores {
			sendScores()
		}
		if up.Comments {
			sendComments()
		}
		if up.Notification != nil {
			if expiry != nil {
				expiry.Stop()
			}
			expiry = time.NewTimer(leaderboard.DisplayLifetime)
			expired = expiry.C
			shownID = up.Notification.ID
			sendNotification(toNotification(*up.Notification))
		}
		flusher.Flush()
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case msg := <-scores:
			handle(msg)
		case msg := <-feed:
			handle(msg)
		case <-expired:
			expired = nil
			if viewer.Slot.Clear(shownID) {
				sendNotification(nil)
				flusher.Flush()
			}
		case <-keepAlive.C:
			writeKeepAlive(w, flusher)
		}
	}
}

func (h *LeaderboardHandler) scoresFragment(entries []leaderboard.Entry) viewmodel.ScoresFragment {
	out := make([]viewmodel.LeaderboardEntry, 0, len(entries))
	for _, e := range entries {
		out = append(out, viewmodel.LeaderboardEntry{
			Rank:     e.Rank,
			Username: e.Username,
			Score:    formatScore(e.TotalScore),
		})
	}
	return viewmodel.ScoresFragment{Title: h.title, Entries: out}
}

func commentsFragment(items []comments.Comment) viewmodel.CommentsFragment {
	out := make([]viewmodel.CommentItem, 0, len(items))
	for _, c := range items {
		out = append(out, viewmodel.CommentItem{Username: c.Username, Comment: c.Comment})
	}
	return viewmodel.CommentsFragment{Comments: out}
}

func toNotification(n leaderboard.Notification) *viewmodel.Notification {
	return &viewmodel.Notification{
		ID:        n.ID,
		Message:   n.Message,
		ExpiresMs: n.ExpiresAt().UnixMilli(),
	}
}
