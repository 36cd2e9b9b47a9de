package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"vault/internal/comments"
	"vault/internal/game"
	"vault/internal/identity"
	"vault/internal/motion"
	"vault/internal/spawner"
	"vault/internal/viewmodel"
	"vault/views/pages"
)

const keepAliveInterval = 25 * time.Second

type GameHandler struct {
	store    *game.Store
	identity identity.Provider
}

func NewGameHandler(store *game.Store, provider identity.Provider) *GameHandler {
	return &GameHandler{store: store, identity: provider}
}

func (h *GameHandler) RegisterRoutes(r chi.Router) {
	r.Get("/game", h.gamePage)
	r.Post("/game/collect/{id}", h.collect)
	r.Post("/game/comment", h.comment)
	r.Post("/game/viewport", h.viewport)
}

// RegisterStreams mounts the long-lived game stream. It must sit outside any
// request timeout middleware.
func (h *GameHandler) RegisterStreams(r chi.Router) {
	r.Get("/game/stream", h.stream)
}

func (h *GameHandler) gamePage(w http.ResponseWriter, r *http.Request) {
	user := h.identity.Identify(w, r)
	sess := h.store.Session(user)
	bounds := sess.Bounds()
	sprite := sess.SpriteSize()

	render(w, r, pages.GamePage(viewmodel.GamePage{
		Title:      h.store.Variant().Title,
		Username:   user.Username,
		Score:      formatScore(sess.Score()),
		Width:      int(bounds.Width),
		Height:     int(bounds.Height),
		SpriteSize: int(sprite.X),
		MaxComment: comments.MaxLength,
	}))
}

func (h *GameHandler) stream(w http.ResponseWriter, r *http.Request) {
	flusher, ok := startSSE(w)
	if !ok {
		return
	}
	user := h.identity.Identify(w, r)
	sess := h.store.Session(user)

	hub := sess.Updates()
	sub := hub.Subscribe()
	defer hub.Unsubscribe(sub)

	sess.Attach(time.Now().UTC())
	defer sess.Detach()

	sendWidgets := func() {
		writeSSE(w, game.EventWidgets, widgetsJSON(sess.Widgets()))
	}
	sendScore := func() {
		total := sess.Score()
		payload, _ := json.Marshal(viewmodel.ScoreUpdate{Total: total, Formatted: formatScore(total)})
		writeSSE(w, game.EventScore, string(payload))
	}

	sendScore()
	sendWidgets()
	flusher.Flush()

	keepAlive := time.NewTicker(keepAliveInterval)
	defer keepAlive.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case event := <-sub:
			switch event {
			case game.EventWidgets:
				sendWidgets()
			case game.EventScore:
				sendScore()
			}
			flusher.Flush()
		case <-keepAlive.C:
			writeKeepAlive(w, flusher)
		}
	}
}

func (h *GameHandler) collect(w http.ResponseWriter, r *http.Request) {
	widgetID := chi.URLParam(r, "id")
	user, _ := identity.FromRequest(r)
	if user.UUID == "" {
		http.Error(w, "unknown participant", http.StatusUnauthorized)
		return
	}
	sess, ok := h.store.GetSession(user.UUID)
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	got, ok := sess.Collect(widgetID, time.Now().UTC())
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	log.Printf("collect user=%s widget=%s kind=%s value=%d total=%d", user.UUID, got.Widget.ID, got.Widget.Kind, got.Widget.Value, got.TotalScore)
	writeJSON(w, viewmodel.CollectResult{
		ID:         got.Widget.ID,
		Value:      got.Widget.Value,
		TotalScore: got.TotalScore,
		Formatted:  formatScore(got.TotalScore),
		X:          got.Widget.Body.Position.X,
		Y:          got.Widget.Body.Position.Y,
	})
}

func (h *GameHandler) comment(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	user := h.identity.Identify(w, r)
	sess := h.store.Session(user)
	if _, err := sess.Comment(r.FormValue("comment"), time.Now().UTC()); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if isHTMX(r) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

func (h *GameHandler) viewport(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	width, errW := strconv.ParseFloat(r.FormValue("width"), 64)
	height, errH := strconv.ParseFloat(r.FormValue("height"), 64)
	if errW != nil || errH != nil || width <= 0 || height <= 0 {
		http.Error(w, "invalid viewport", http.StatusBadRequest)
		return
	}
	user, _ := identity.FromRequest(r)
	if sess, ok := h.store.GetSession(user.UUID); ok {
		sess.Resize(motion.Bounds{Width: width, Height: height})
	}
	w.WriteHeader(http.StatusNoContent)
}

func widgetsJSON(widgets []spawner.Widget) string {
	out := make([]viewmodel.Widget, 0, len(widgets))
	for _, wd := range widgets {
		out = append(out, viewmodel.Widget{
			ID:       wd.ID,
			Kind:     string(wd.Kind),
			ImageRef: wd.ImageRef,
			Value:    wd.Value,
			X:        wd.Body.Position.X,
			Y:        wd.Body.Position.Y,
		})
	}
	payload, err := json.Marshal(out)
	if err != nil {
		log.Printf("encode widgets error err=%v", err)
		return "[]"
	}
	return string(payload)
}
