package handlers

import (
	"log"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"vault/internal/game"
	"vault/internal/identity"
	"vault/internal/viewmodel"
	"vault/views/pages"
)

type HomeHandler struct {
	store    *game.Store
	identity identity.Provider
}

func NewHomeHandler(store *game.Store, provider identity.Provider) *HomeHandler {
	return &HomeHandler{store: store, identity: provider}
}

func (h *HomeHandler) RegisterRoutes(r chi.Router) {
	r.Get("/", h.home)
	r.Get("/signup", h.signupPage)
	r.Post("/signup", h.signup)
	r.Get("/healthz", h.healthz)
}

func (h *HomeHandler) home(w http.ResponseWriter, r *http.Request) {
	user := h.identity.Identify(w, r)
	render(w, r, pages.HomePage(viewmodel.HomePage{
		Title:    h.store.Variant().Title,
		Username: user.Username,
	}))
}

func (h *HomeHandler) signupPage(w http.ResponseWriter, r *http.Request) {
	user, _ := identity.FromRequest(r)
	render(w, r, pages.SignupPage(viewmodel.SignupPage{
		Title:    h.store.Variant().Title,
		Username: user.Username,
		MaxLen:   identity.MaxUsernameLength,
	}))
}

func (h *HomeHandler) signup(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	user, err := h.identity.Register(w, username)
	if err != nil {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusBadRequest)
		_ = pages.SignupPage(viewmodel.SignupPage{
			Title:    h.store.Variant().Title,
			Username: username,
			Error:    err.Error(),
			MaxLen:   identity.MaxUsernameLength,
		}).Render(r.Context(), w)
		return
	}
	log.Printf("signup user=%s username=%s", user.UUID, user.Username)
	http.Redirect(w, r, "/game", http.StatusSeeOther)
}

func (h *HomeHandler) healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, map[string]any{
		"status":   "ok",
		"variant":  h.store.Variant().Name,
		"sessions": h.store.Len(),
	})
}
