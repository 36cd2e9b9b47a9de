package leaderboard

import (
	"sync"
	"time"
)

// DisplayLifetime is how long a notification stays visible.
const DisplayLifetime = 2000 * time.Millisecond

// Notification is a transient message about a rank change.
type Notification struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// ExpiresAt is when the notification stops being shown.
func (n Notification) ExpiresAt() time.Time {
	return n.Timestamp.Add(DisplayLifetime)
}

// Expired reports whether the notification is past its display lifetime.
func (n Notification) Expired(now time.Time) bool {
	return !now.Before(n.ExpiresAt())
}

var scoreTiers = []struct {
	min    int64
	suffix string
}{
	{5_000_000, " is a legendary dragon!"},
	{2_000_000, " is guarding a mountain of treasure!"},
	{1_000_000, " just became a millionaire!"},
	{500_000, " is halfway to a million!"},
	{200_000, " is climbing fast!"},
	{100_000, " has broken six figures!"},
	{50_000, " is heating up!"},
}

// RankMessage builds the text for a move from oldRank to newRank. oldRank 0
// means the participant was not on the board before.
func RankMessage(username string, totalScore int64, oldRank, newRank int) string {
	switch {
	case oldRank == 0:
		return username + " has joined the leaderboard!"
	case newRank < oldRank:
		for _, tier := range scoreTiers {
			if totalScore >= tier.min {
				return username + tier.suffix
			}
		}
		return username + " is moving up the rankings!"
	case newRank > oldRank:
		return username + " has been overtaken!"
	}
	// Apply only asks for a message when the rank changed, so equal ranks
	// never get here.
	return ""
}

// Slot holds at most one notification. A new one replaces the old and
// restarts the display lifetime.
type Slot struct {
	mu      sync.Mutex
	current Notification
	set     bool
}

// Show replaces the current notification.
func (s *Slot) Show(n Notification) {
	s.mu.Lock()
	s.current = n
	s.set = true
	s.mu.Unlock()
}

// Current returns the shown notification if it has not expired at now.
func (s *Slot) Current(now time.Time) (Notification, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set {
		return Notification{}, false
	}
	if s.current.Expired(now) {
		s.current = Notification{}
		s.set = false
		return Notification{}, false
	}
	return s.current, true
}

// Clear empties the slot only if id is still the one shown, so an expiry
// timer for a replaced notification cannot hide its successor.
func (s *Slot) Clear(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.set || s.current.ID != id {
		return false
	}
	s.current = Notification{}
	s.set = false
	return true
}

// Queue keeps every notification until it expires.
type Queue struct {
	mu    sync.Mutex
	items []Notification
}

// Push appends n.
func (q *Queue) Push(n Notification) {
	q.mu.Lock()
	q.items = append(q.items, n)
	q.mu.Unlock()
}

// Active drops expired notifications and returns the rest in arrival order.
func (q *Queue) Active(now time.Time) []Notification {
	q.mu.Lock()
	defer q.mu.Unlock()
	kept := q.items[:0]
	for _, n := range q.items {
		if !n.Expired(now) {
			kept = append(kept, n)
		}
	}
	q.items = kept
	return append([]Notification(nil), kept...)
}
