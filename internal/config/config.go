// Package config loads runtime settings from the environment.
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"vault/internal/motion"
	"vault/internal/spawner"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port          string
	Variant       string
	FrameInterval time.Duration
	Viewport      motion.Bounds
	SpriteSize    float64
}

const (
	defaultPort           = "8080"
	defaultVariant        = "game"
	defaultFrameMillis    = 50
	defaultViewportWidth  = 1280
	defaultViewportHeight = 720
)

// Load builds a Config using environment variables when present.
func Load() Config {
	return Config{
		Port:          strings.TrimPrefix(getEnv("PORT", defaultPort), ":"),
		Variant:       getEnv("VARIANT", defaultVariant),
		FrameInterval: time.Duration(getInt("FRAME_INTERVAL_MS", defaultFrameMillis)) * time.Millisecond,
		Viewport: motion.Bounds{
			Width:  float64(getInt("VIEWPORT_WIDTH", defaultViewportWidth)),
			Height: float64(getInt("VIEWPORT_HEIGHT", defaultViewportHeight)),
		},
		SpriteSize: float64(getInt("SPRITE_SIZE", spawner.DefaultSpriteSize)),
	}
}

// Addr is the listen address.
func (c Config) Addr() string {
	return ":" + c.Port
}

// Spawner returns the spawner settings for this configuration.
func (c Config) Spawner() spawner.Config {
	cfg := spawner.DefaultConfig()
	cfg.FrameInterval = c.FrameInterval
	cfg.Bounds = c.Viewport
	cfg.SpriteSize = motion.Vec{X: c.SpriteSize, Y: c.SpriteSize}
	return cfg
}

func getEnv(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
