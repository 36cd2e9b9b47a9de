// Package spawner keeps a bounded population of collectible reward widgets
// alive: it spawns them on a timer, expires them after a fixed lifetime and
// removes them exactly once when they are collected.
package spawner

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"vault/internal/motion"
	"vault/pkg/realtime"
)

const (
	MaxWidgets      = 15
	MinWidgets      = 3
	Lifetime        = 60 * time.Second
	SpawnInterval   = 8 * time.Second
	CleanupInterval = time.Second
	FrameInterval   = 50 * time.Millisecond
)

// DefaultSpriteSize matches the rendered widget box.
const DefaultSpriteSize = 200

// Config tunes population bounds, timers and the playfield.
type Config struct {
	Max             int
	Min             int
	Lifetime        time.Duration
	SpawnInterval   time.Duration
	CleanupInterval time.Duration
	FrameInterval   time.Duration
	Bounds          motion.Bounds
	SpriteSize      motion.Vec
}

// DefaultConfig returns the standard game settings on a 1280x720 playfield.
func DefaultConfig() Config {
	return Config{
		Max:             MaxWidgets,
		Min:             MinWidgets,
		Lifetime:        Lifetime,
		SpawnInterval:   SpawnInterval,
		CleanupInterval: CleanupInterval,
		FrameInterval:   FrameInterval,
		Bounds:          motion.Bounds{Width: 1280, Height: 720},
		SpriteSize:      motion.Vec{X: DefaultSpriteSize, Y: DefaultSpriteSize},
	}
}

// Widget is one spawned reward on the playfield.
type Widget struct {
	ID        string
	Kind      Kind
	Value     int
	ImageRef  string
	CreatedAt time.Time
	Body      motion.Body
}

// Age is how long the widget has existed at now.
func (w Widget) Age(now time.Time) time.Duration {
	return now.Sub(w.CreatedAt)
}

// TickResult reports what a cleanup pass changed.
type TickResult struct {
	Expired []Widget
	Spawned []Widget
}

// Changed reports whether the pass altered the active set.
func (r TickResult) Changed() bool {
	return len(r.Expired) > 0 || len(r.Spawned) > 0
}

// Spawner owns the active widget collection. All methods are safe for
// concurrent use; timer callbacks and request handlers share one lock.
type Spawner struct {
	mu      sync.Mutex
	cfg     Config
	catalog *Catalog
	rng     Rand
	newID   func() string
	active  []*Widget
}

// New creates a spawner drawing from catalog with rng. Zero config fields
// fall back to DefaultConfig.
func New(cfg Config, catalog *Catalog, rng Rand) *Spawner {
	return &Spawner{
		cfg:     withDefaults(cfg),
		catalog: catalog,
		rng:     rng,
		newID:   uuid.NewString,
	}
}

func withDefaults(cfg Config) Config {
	def := DefaultConfig()
	if cfg.Max <= 0 {
		cfg.Max = def.Max
	}
	if cfg.Min <= 0 {
		cfg.Min = def.Min
	}
	if cfg.Lifetime <= 0 {
		cfg.Lifetime = def.Lifetime
	}
	if cfg.SpawnInterval <= 0 {
		cfg.SpawnInterval = def.SpawnInterval
	}
	if cfg.CleanupInterval <= 0 {
		cfg.CleanupInterval = def.CleanupInterval
	}
	if cfg.FrameInterval <= 0 {
		cfg.FrameInterval = def.FrameInterval
	}
	if cfg.Bounds.Width <= 0 || cfg.Bounds.Height <= 0 {
		cfg.Bounds = def.Bounds
	}
	if cfg.SpriteSize.X <= 0 || cfg.SpriteSize.Y <= 0 {
		cfg.SpriteSize = def.SpriteSize
	}
	return cfg
}

// Config returns the effective configuration.
func (s *Spawner) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// Spawn adds one widget if the population is below Max.
func (s *Spawner) Spawn(now time.Time) (Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.active) >= s.cfg.Max {
		return Widget{}, false
	}
	return *s.spawnLocked(now), true
}

// Fill spawns widgets until the population reaches Min (capped by Max) and
// returns how many were added.
func (s *Spawner) Fill(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	added := 0
	for len(s.active) < s.cfg.Min && len(s.active) < s.cfg.Max {
		s.spawnLocked(now)
		added++
	}
	return added
}

// Tick expires every widget whose age has reached Lifetime, then refills the
// population up to Min. Refills ignore Max so the floor always holds.
func (s *Spawner) Tick(now time.Time) TickResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	var res TickResult
	kept := s.active[:0]
	for _, w := range s.active {
		if w.Age(now) >= s.cfg.Lifetime {
			w.Body.Stop()
			res.Expired = append(res.Expired, *w)
			continue
		}
		kept = append(kept, w)
	}
	for i := len(kept); i < len(s.active); i++ {
		s.active[i] = nil
	}
	s.active = kept
	for len(s.active) < s.cfg.Min {
		res.Spawned = append(res.Spawned, *s.spawnLocked(now))
	}
	return res
}

// Collect removes the widget with id. A missing id is a no-op that returns
// false, so a repeated click cannot collect twice.
func (s *Spawner) Collect(id string) (Widget, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.active {
		if w.ID != id {
			continue
		}
		w.Body.Stop()
		copy(s.active[i:], s.active[i+1:])
		s.active[len(s.active)-1] = nil
		s.active = s.active[:len(s.active)-1]
		return *w, true
	}
	return Widget{}, false
}

// Step advances every active widget by one animation frame.
func (s *Spawner) Step() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, w := range s.active {
		w.Body.Step(s.cfg.Bounds)
	}
}

// Resize changes the playfield and pulls every widget back inside it.
func (s *Spawner) Resize(bounds motion.Bounds) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.Bounds = bounds
	for _, w := range s.active {
		w.Body.Clamp(bounds)
	}
}

// Snapshot returns copies of the active widgets in spawn order.
func (s *Spawner) Snapshot() []Widget {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Widget, 0, len(s.active))
	for _, w := range s.active {
		out = append(out, *w)
	}
	return out
}

// Len is the number of active widgets.
func (s *Spawner) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// Run registers the spawn, cleanup and frame timers on sched. changed is
// called after any timer altered the playfield. Stopping sched stops all
// three together.
func (s *Spawner) Run(sched *realtime.Schedule, changed func()) {
	if changed == nil {
		changed = func() {}
	}
	cfg := s.Config()
	sched.Every(cfg.SpawnInterval, func(now time.Time) {
		if _, ok := s.Spawn(now); ok {
			changed()
		}
	})
	sched.Every(cfg.CleanupInterval, func(now time.Time) {
		if s.Tick(now).Changed() {
			changed()
		}
	})
	sched.Every(cfg.FrameInterval, func(time.Time) {
		s.Step()
		changed()
	})
}

func (s *Spawner) spawnLocked(now time.Time) *Widget {
	reward := s.catalog.Pick(s.rng)
	w := &Widget{
		ID:        s.newID(),
		Kind:      reward.Kind,
		Value:     reward.Value,
		ImageRef:  reward.ImageRef,
		CreatedAt: now,
		Body:      motion.Launch(s.rng, s.cfg.Bounds, s.cfg.SpriteSize),
	}
	s.active = append(s.active, w)
	return w
}
