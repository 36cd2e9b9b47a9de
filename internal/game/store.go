package game

import (
	"math/rand"
	"sync/atomic"
	"time"

	"vault/internal/identity"
	"vault/internal/spawner"
	"vault/pkg/realtime"
)

// Store holds one session per participant and the shared event bus.
type Store struct {
	sessions *realtime.Registry[*Session]
	bus      *realtime.Bus
	variant  Variant
	cfg      spawner.Config
	seed     atomic.Int64
}

// NewStore creates an empty session store publishing on bus.
func NewStore(bus *realtime.Bus, variant Variant, cfg spawner.Config) *Store {
	s := &Store{
		sessions: realtime.NewRegistry[*Session](),
		bus:      bus,
		variant:  variant,
		cfg:      cfg,
	}
	s.seed.Store(time.Now().UnixNano())
	return s
}

// Bus returns the event channel.
func (s *Store) Bus() *realtime.Bus {
	return s.bus
}

// Variant returns the configured game variant.
func (s *Store) Variant() Variant {
	return s.variant
}

// Session returns the participant's session, creating it on first visit.
func (s *Store) Session(user identity.User) *Session {
	sess, created := s.sessions.GetOrCreate(user.UUID, func() *Session {
		rng := rand.New(rand.NewSource(s.seed.Add(1)))
		return NewSession(user, s.variant, s.cfg, s.bus, rng)
	})
	if !created && sess.User().Username != user.Username {
		sess.Rename(user.Username)
	}
	return sess
}

// GetSession returns an existing session by participant id.
func (s *Store) GetSession(id string) (*Session, bool) {
	return s.sessions.Get(id)
}

// Len is the number of known sessions.
func (s *Store) Len() int {
	return s.sessions.Len()
}

// Shutdown stops every session's timers.
func (s *Store) Shutdown() {
	for _, sess := range s.sessions.Values() {
		sess.Stop()
	}
}
