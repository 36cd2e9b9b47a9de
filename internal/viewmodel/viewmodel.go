// Package viewmodel holds the view-layer types rendered by the templ
// components. It imports no domain packages.
package viewmodel

// LeaderboardEntry is one ranked row.
type LeaderboardEntry struct {
	Rank     int
	Username string
	Score    string
}

// CommentItem is one line of the recent comments panel.
type CommentItem struct {
	Username string
	Comment  string
}

// Notification is the transient rank-change banner.
type Notification struct {
	ID        string
	Message   string
	ExpiresMs int64
}

// ScoresFragment holds data for the ranked board panel.
type ScoresFragment struct {
	Title   string
	Entries []LeaderboardEntry
}

// CommentsFragment holds data for the recent comments panel.
type CommentsFragment struct {
	Comments []CommentItem
}

// LeaderboardPage holds data for the leaderboard page template.
type LeaderboardPage struct {
	Title        string
	Scores       ScoresFragment
	Comments     CommentsFragment
	Notification *Notification
}

// GamePage holds data for the game page template.
type GamePage struct {
	Title      string
	Username   string
	Score      string
	Width      int
	Height     int
	SpriteSize int
	MaxComment int
}

// SignupPage holds data for the signup form.
type SignupPage struct {
	Title    string
	Username string
	Error    string
	MaxLen   int
}

// HomePage holds data for the landing page.
type HomePage struct {
	Title    string
	Username string
}

// Widget is a widget as streamed to the game page.
type Widget struct {
	ID       string  `json:"id"`
	Kind     string  `json:"kind"`
	ImageRef string  `json:"imageRef"`
	Value    int     `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
}

// ScoreUpdate is the running total streamed to the game page.
type ScoreUpdate struct {
	Total     int64  `json:"total"`
	Formatted string `json:"formatted"`
}

// CollectResult answers a successful click.
type CollectResult struct {
	ID         string  `json:"id"`
	Value      int     `json:"value"`
	TotalScore int64   `json:"totalScore"`
	Formatted  string  `json:"formatted"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
}
