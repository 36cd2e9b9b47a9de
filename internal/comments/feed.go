// Package comments keeps the short window of recent comments shown on the
// leaderboard.
package comments

import (
	"errors"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"
)

const (
	// WindowSize is how many comments a feed retains.
	WindowSize = 5
	// MaxLength is the longest comment accepted, in characters.
	MaxLength = 60
)

var (
	ErrEmpty   = errors.New("comment is empty")
	ErrTooLong = errors.New("comment exceeds 60 characters")
)

// Comment is one message on the comments channel.
type Comment struct {
	UUID      string    `json:"uuid"`
	Username  string    `json:"username"`
	Comment   string    `json:"comment"`
	Timestamp time.Time `json:"timestamp"`
}

// Validate trims text and checks it fits in a comment.
func Validate(text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", ErrEmpty
	}
	if utf8.RuneCountInString(text) > MaxLength {
		return "", ErrTooLong
	}
	return text, nil
}

// Feed holds the newest comments, newest first. The same participant may
// appear more than once.
type Feed struct {
	mu    sync.Mutex
	items []Comment
}

// NewFeed creates an empty feed.
func NewFeed() *Feed {
	return &Feed{}
}

// Add inserts c and drops anything beyond the window.
func (f *Feed) Add(c Comment) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items = append(f.items, c)
	sort.SliceStable(f.items, func(i, j int) bool {
		return f.items[i].Timestamp.After(f.items[j].Timestamp)
	})
	if len(f.items) > WindowSize {
		f.items = f.items[:WindowSize]
	}
}

// Items returns the retained comments, newest first.
func (f *Feed) Items() []Comment {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Comment(nil), f.items...)
}

// Clone copies the feed.
func (f *Feed) Clone() *Feed {
	return &Feed{items: f.Items()}
}
