package main

import (
	"context"
	"embed"
	"errors"
	"io/fs"
	"log"
	"mime"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"vault/internal/config"
	"vault/internal/game"
	"vault/internal/handlers"
	"vault/internal/identity"
	"vault/pkg/realtime"
)

func main() {
	_ = mime.AddExtensionType(".js", "application/javascript")
	_ = mime.AddExtensionType(".css", "text/css")
	_ = mime.AddExtensionType(".svg", "image/svg+xml")

	cfg := config.Load()
	variant, err := game.VariantByName(cfg.Variant)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	bus := realtime.NewBus()
	standings := game.NewStandings(variant.ScoreTopic)
	standings.Follow(ctx, bus)
	store := game.NewStore(bus, variant, cfg.Spawner())
	provider := identity.NewCookieProvider(time.Now().UnixNano())

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	staticFS, err := fs.Sub(embeddedStatic, "static")
	if err != nil {
		log.Fatal(err)
	}

	r.Mount("/static", http.StripPrefix("/static", http.FileServer(http.FS(staticFS))))

	homeHandler := handlers.NewHomeHandler(store, provider)
	gameHandler := handlers.NewGameHandler(store, provider)
	leaderboardHandler := handlers.NewLeaderboardHandler(standings, bus, variant.Title)
	channelHandler := handlers.NewChannelHandler(bus)

	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		homeHandler.RegisterRoutes(r)
		gameHandler.RegisterRoutes(r)
		leaderboardHandler.RegisterRoutes(r)
	})
	gameHandler.RegisterStreams(r)
	leaderboardHandler.RegisterStreams(r)
	channelHandler.RegisterRoutes(r)

	// No WriteTimeout: the event streams stay open indefinitely.
	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       60 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Printf("shutdown error err=%v", err)
		}
	}()

	log.Printf("listening on http://localhost%s variant=%s", cfg.Addr(), variant.Name)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal(err)
	}
	store.Shutdown()
	log.Printf("stopped")
}

//go:embed static/*
var embeddedStatic embed.FS
