package game

import (
	"context"
	"log"
	"sync"
	"time"

	"vault/internal/comments"
	"vault/internal/leaderboard"
	"vault/pkg/realtime"
)

// Update describes what a channel message changed for a viewer.
type Update struct {
	Scores       bool
	Comments     bool
	Notification *leaderboard.Notification
}

// Viewer is one leaderboard client's view of the channel: its own board,
// comment feed and notification slot.
type Viewer struct {
	scoreTopic string
	Board      *leaderboard.Board
	Feed       *comments.Feed
	Slot       leaderboard.Slot
}

// NewViewer creates an empty viewer listening for scores on scoreTopic.
func NewViewer(scoreTopic string) *Viewer {
	return &Viewer{scoreTopic: scoreTopic, Board: leaderboard.NewBoard(), Feed: comments.NewFeed()}
}

// Handle applies one channel message. Malformed payloads return an error and
// leave the viewer unchanged.
func (v *Viewer) Handle(msg realtime.Message, now time.Time) (Update, error) {
	switch msg.Topic {
	case v.scoreTopic:
		ev, err := DecodeScore(msg.Data)
		if err != nil {
			return Update{}, err
		}
		up := Update{Scores: true}
		if n, ok := v.Board.Apply(ev, now); ok {
			v.Slot.Show(n)
			up.Notification = &n
		}
		return up, nil
	case TopicComments:
		c, err := DecodeComment(msg.Data)
		if err != nil {
			return Update{}, err
		}
		v.Feed.Add(c)
		return Update{Comments: true}, nil
	}
	return Update{}, nil
}

// Standings follows the channel for the whole server so newly connected
// leaderboard clients start from the current board instead of empty.
type Standings struct {
	mu     sync.Mutex
	viewer *Viewer
}

// NewStandings creates standings for the given score topic.
func NewStandings(scoreTopic string) *Standings {
	return &Standings{viewer: NewViewer(scoreTopic)}
}

// ScoreTopic is the topic carrying score events.
func (s *Standings) ScoreTopic() string {
	return s.viewer.scoreTopic
}

// Follow subscribes to bus before returning and applies messages in the
// background until ctx is done.
func (s *Standings) Follow(ctx context.Context, bus *realtime.Bus) {
	scores := bus.Subscribe(s.viewer.scoreTopic)
	feed := bus.Subscribe(TopicComments)
	go func() {
		defer bus.Unsubscribe(s.viewer.scoreTopic, scores)
		defer bus.Unsubscribe(TopicComments, feed)
		for {
			select {
			case <-ctx.Done():
				return
			case msg := <-scores:
				s.apply(msg)
			case msg := <-feed:
				s.apply(msg)
			}
		}
	}()
}

func (s *Standings) apply(msg realtime.Message) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.viewer.Handle(msg, time.Now().UTC()); err != nil {
		log.Printf("standings dropped message topic=%s err=%v", msg.Topic, err)
	}
}

// NewViewer returns a viewer seeded with the current board and feed.
func (s *Standings) NewViewer() *Viewer {
	s.mu.Lock()
	defer s.mu.Unlock()
	return &Viewer{
		scoreTopic: s.viewer.scoreTopic,
		Board:      s.viewer.Board.Clone(),
		Feed:       s.viewer.Feed.Clone(),
	}
}

// Entries returns the current ranked board.
func (s *Standings) Entries() []leaderboard.Entry {
	return s.viewer.Board.Entries()
}

// Comments returns the current comment window.
func (s *Standings) Comments() []comments.Comment {
	return s.viewer.Feed.Items()
}
