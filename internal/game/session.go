package game

import (
	"context"
	"log"
	"math/rand"
	"sync"
	"time"

	"vault/internal/comments"
	"vault/internal/identity"
	"vault/internal/leaderboard"
	"vault/internal/motion"
	"vault/internal/spawner"
	"vault/pkg/realtime"
)

// Events published on a session's broadcaster.
const (
	EventWidgets = "widgets"
	EventScore   = "score"
)

// Publisher is the outbound side of the event channel.
type Publisher interface {
	PublishJSON(topic string, v any) error
}

// Collected is the outcome of a successful click.
type Collected struct {
	Widget     spawner.Widget
	TotalScore int64
}

// Session is one participant's running game: their widgets, timers and
// score. Timers run only while at least one game stream is attached.
type Session struct {
	mu       sync.Mutex
	user     identity.User
	score    int64
	variant  Variant
	spawner  *spawner.Spawner
	bus      Publisher
	hub      *realtime.Broadcaster[string]
	sched    *realtime.Schedule
	attached int
}

// NewSession builds an idle session for user.
func NewSession(user identity.User, variant Variant, cfg spawner.Config, bus Publisher, rng spawner.Rand) *Session {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Session{
		user:    user,
		variant: variant,
		spawner: spawner.New(cfg, variant.Catalog, rng),
		bus:     bus,
		hub:     realtime.NewBroadcaster[string](),
	}
}

// User returns the session's participant.
func (s *Session) User() identity.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// Rename updates the display name used in future events.
func (s *Session) Rename(username string) {
	s.mu.Lock()
	s.user.Username = username
	s.mu.Unlock()
}

// Score is the participant's running total.
func (s *Session) Score() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.score
}

// Widgets returns the current playfield.
func (s *Session) Widgets() []spawner.Widget {
	return s.spawner.Snapshot()
}

// Bounds is the playfield size.
func (s *Session) Bounds() motion.Bounds {
	return s.spawner.Config().Bounds
}

// SpriteSize is the rendered widget box.
func (s *Session) SpriteSize() motion.Vec {
	return s.spawner.Config().SpriteSize
}

// Updates is the broadcaster for this session's change events.
func (s *Session) Updates() *realtime.Broadcaster[string] {
	return s.hub
}

// Attach marks a game view as mounted. The first attach fills the floor and
// starts the spawn, cleanup and frame timers.
func (s *Session) Attach(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attached++
	if s.attached > 1 {
		return
	}
	s.spawner.Fill(now)
	s.sched = realtime.NewSchedule(context.Background())
	s.spawner.Run(s.sched, func() { s.hub.Publish(EventWidgets) })
	log.Printf("session started user=%s", s.user.UUID)
}

// Detach marks a game view as unmounted. The last detach cancels all timers
// and waits for them, so nothing mutates the session afterwards.
func (s *Session) Detach() {
	s.mu.Lock()
	if s.attached == 0 {
		s.mu.Unlock()
		return
	}
	s.attached--
	if s.attached > 0 {
		s.mu.Unlock()
		return
	}
	sched := s.sched
	s.sched = nil
	id := s.user.UUID
	s.mu.Unlock()

	sched.Stop()
	log.Printf("session stopped user=%s", id)
}

// Active reports whether the session's timers are running.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sched != nil
}

// Stop tears the session down regardless of attached views.
func (s *Session) Stop() {
	s.mu.Lock()
	sched := s.sched
	s.sched = nil
	s.attached = 0
	s.mu.Unlock()
	if sched != nil {
		sched.Stop()
	}
}

// Resize applies the viewport size reported by the browser.
func (s *Session) Resize(bounds motion.Bounds) {
	s.spawner.Resize(bounds)
	s.hub.Publish(EventWidgets)
}

// Collect removes widget id, credits its value and publishes the new total.
// It returns false for an unknown or already collected widget and for a
// session that is not running.
func (s *Session) Collect(id string, now time.Time) (Collected, bool) {
	if !s.Active() {
		return Collected{}, false
	}
	w, ok := s.spawner.Collect(id)
	if !ok {
		return Collected{}, false
	}

	s.mu.Lock()
	s.score += int64(w.Value)
	ev := leaderboard.ScoreEvent{
		UUID:       s.user.UUID,
		Username:   s.user.Username,
		Value:      w.Value,
		Timestamp:  now,
		TotalScore: s.score,
	}
	s.mu.Unlock()

	if err := s.bus.PublishJSON(s.variant.ScoreTopic, ev); err != nil {
		log.Printf("publish score error user=%s err=%v", ev.UUID, err)
	}
	s.hub.Publish(EventScore)
	s.hub.Publish(EventWidgets)
	return Collected{Widget: w, TotalScore: ev.TotalScore}, true
}

// Comment validates text and publishes it on the comments channel.
func (s *Session) Comment(text string, now time.Time) (comments.Comment, error) {
	text, err := comments.Validate(text)
	if err != nil {
		return comments.Comment{}, err
	}
	user := s.User()
	c := comments.Comment{UUID: user.UUID, Username: user.Username, Comment: text, Timestamp: now}
	if err := s.bus.PublishJSON(TopicComments, c); err != nil {
		log.Printf("publish comment error user=%s err=%v", user.UUID, err)
	}
	return c, nil
}
