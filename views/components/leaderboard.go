package components

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"vault/internal/viewmodel"
)

// ScoresFragment renders the ranked board. It is swapped in on the "scores"
// stream event.
func ScoresFragment(data viewmodel.ScoresFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := NewWriter(w)
		out.Raw(`<div class="box" id="scores"><h2 class="title is-4">`)
		out.Text(data.Title)
		out.Raw(`</h2>`)
		if len(data.Entries) == 0 {
			out.Raw(`<p class="has-text-grey">No scores yet. Be the first!</p></div>`)
			return out.Err()
		}
		out.Raw(`<table class="table is-fullwidth is-striped"><thead><tr><th>#</th><th>Player</th><th class="has-text-right">Score</th></tr></thead><tbody>`)
		for _, e := range data.Entries {
			out.Raw(`<tr><td>`)
			out.Raw(strconv.Itoa(e.Rank))
			out.Raw(`</td><td>`)
			out.Text(e.Username)
			out.Raw(`</td><td class="has-text-right">`)
			out.Text(e.Score)
			out.Raw(`</td></tr>`)
		}
		out.Raw(`</tbody></table></div>`)
		return out.Err()
	})
}

// CommentsFragment renders the recent comments, newest first.
func CommentsFragment(data viewmodel.CommentsFragment) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := NewWriter(w)
		out.Raw(`<div class="box" id="comments"><h2 class="title is-5">Recent comments</h2>`)
		if len(data.Comments) == 0 {
			out.Raw(`<p class="has-text-grey">Nobody has said anything yet.</p></div>`)
			return out.Err()
		}
		out.Raw(`<ul>`)
		for _, c := range data.Comments {
			out.Raw(`<li><strong>`)
			out.Text(c.Username)
			out.Raw(`</strong>: `)
			out.Text(c.Comment)
			out.Raw(`</li>`)
		}
		out.Raw(`</ul></div>`)
		return out.Err()
	})
}

// NotificationFragment renders the rank-change banner, or an empty holder
// when n is nil.
func NotificationFragment(n *viewmodel.Notification) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := NewWriter(w)
		if n == nil {
			out.Raw(`<div id="notification"></div>`)
			return out.Err()
		}
		out.Raw(`<div id="notification"><div class="notification is-warning" data-id="`)
		out.Text(n.ID)
		out.Raw(`" data-expires="`)
		out.Raw(strconv.FormatInt(n.ExpiresMs, 10))
		out.Raw(`">`)
		out.Text(n.Message)
		out.Raw(`</div></div>`)
		return out.Err()
	})
}
