// Package leaderboard reconciles score updates into a ranked board and
// derives rank-change notifications.
package leaderboard

import (
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ScoreEvent is one message on the scores channel.
type ScoreEvent struct {
	UUID       string    `json:"uuid"`
	Username   string    `json:"username"`
	Value      int       `json:"value"`
	Timestamp  time.Time `json:"timestamp"`
	TotalScore int64     `json:"totalScore"`
}

// User is a participant known to the board.
type User struct {
	UUID       string
	Username   string
	TotalScore int64
}

// Entry is a ranked projection of a User.
type Entry struct {
	Rank       int
	UUID       string
	Username   string
	TotalScore int64
}

// Board maps participant uuid to their latest total. Order of first arrival
// breaks score ties.
type Board struct {
	mu    sync.Mutex
	users map[string]*User
	order []*User
}

// NewBoard creates an empty board.
func NewBoard() *Board {
	return &Board{users: make(map[string]*User)}
}

// Apply upserts the event's participant and re-ranks. It returns a
// notification when the participant's rank changed.
func (b *Board) Apply(ev ScoreEvent, now time.Time) (Notification, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	oldRank := 0
	user, ok := b.users[ev.UUID]
	if ok {
		oldRank = b.rankLocked(ev.UUID)
		user.TotalScore = ev.TotalScore
		if ev.Username != "" {
			user.Username = ev.Username
		}
	} else {
		user = &User{UUID: ev.UUID, Username: ev.Username, TotalScore: ev.TotalScore}
		b.users[ev.UUID] = user
		b.order = append(b.order, user)
	}
	newRank := b.rankLocked(ev.UUID)

	if oldRank == newRank {
		return Notification{}, false
	}
	return Notification{
		ID:        uuid.NewString(),
		Message:   RankMessage(user.Username, user.TotalScore, oldRank, newRank),
		Timestamp: now,
	}, true
}

// Entries returns the ranked board.
func (b *Board) Entries() []Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	sorted := b.sortedLocked()
	out := make([]Entry, 0, len(sorted))
	for i, u := range sorted {
		out = append(out, Entry{Rank: i + 1, UUID: u.UUID, Username: u.Username, TotalScore: u.TotalScore})
	}
	return out
}

// Rank is the 1-based rank of uuid, or 0 if it is not on the board.
func (b *Board) Rank(id string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.rankLocked(id)
}

// Len is the number of participants.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.order)
}

// Clone copies the board, keeping arrival order, so a new viewer can start
// from the current standings without replaying notifications.
func (b *Board) Clone() *Board {
	b.mu.Lock()
	defer b.mu.Unlock()
	c := &Board{users: make(map[string]*User, len(b.users)), order: make([]*User, 0, len(b.order))}
	for _, u := range b.order {
		cp := *u
		c.users[cp.UUID] = &cp
		c.order = append(c.order, &cp)
	}
	return c
}

// sortedLocked is a full stable re-sort by score, descending. It is the
// scaling bottleneck for very large boards.
func (b *Board) sortedLocked() []*User {
	sorted := append([]*User(nil), b.order...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].TotalScore > sorted[j].TotalScore
	})
	return sorted
}

func (b *Board) rankLocked(id string) int {
	if _, ok := b.users[id]; !ok {
		return 0
	}
	for i, u := range b.sortedLocked() {
		if u.UUID == id {
			return i + 1
		}
	}
	return 0
}
