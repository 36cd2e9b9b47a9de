package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"vault/internal/viewmodel"
	"vault/views/components"
)

func LeaderboardPage(data viewmodel.LeaderboardPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<div class="container" hx-ext="sse" sse-connect="/leaderboard/stream">`)
		out.Raw(`<div sse-swap="notification" hx-swap="outerHTML" hx-target="#notification">`)
		out.Component(ctx, components.NotificationFragment(data.Notification))
		out.Raw(`</div><div class="columns"><div class="column is-two-thirds" sse-swap="scores" hx-swap="innerHTML">`)
		out.Component(ctx, components.ScoresFragment(data.Scores))
		out.Raw(`</div><div class="column" sse-swap="comments" hx-swap="innerHTML">`)
		out.Component(ctx, components.CommentsFragment(data.Comments))
		out.Raw(`</div></div></div>`)
		return out.Err()
	})
	return Layout(data.Title, body)
}
