package game

import (
	"encoding/json"
	"errors"
	"fmt"

	"vault/internal/comments"
	"vault/internal/leaderboard"
)

var (
	ErrMissingUUID    = errors.New("event has no uuid")
	ErrNegativeScore  = errors.New("event has a negative total score")
	ErrMissingComment = errors.New("event has no comment")
)

// DecodeScore parses and checks a score channel payload.
func DecodeScore(data []byte) (leaderboard.ScoreEvent, error) {
	var ev leaderboard.ScoreEvent
	if err := json.Unmarshal(data, &ev); err != nil {
		return leaderboard.ScoreEvent{}, fmt.Errorf("decode score: %w", err)
	}
	if ev.UUID == "" {
		return leaderboard.ScoreEvent{}, ErrMissingUUID
	}
	if ev.TotalScore < 0 {
		return leaderboard.ScoreEvent{}, ErrNegativeScore
	}
	return ev, nil
}

// DecodeComment parses and checks a comments channel payload.
func DecodeComment(data []byte) (comments.Comment, error) {
	var c comments.Comment
	if err := json.Unmarshal(data, &c); err != nil {
		return comments.Comment{}, fmt.Errorf("decode comment: %w", err)
	}
	if c.UUID == "" {
		return comments.Comment{}, ErrMissingUUID
	}
	text, err := comments.Validate(c.Comment)
	if err != nil {
		if errors.Is(err, comments.ErrEmpty) {
			return comments.Comment{}, ErrMissingComment
		}
		return comments.Comment{}, err
	}
	c.Comment = text
	return c, nil
}
