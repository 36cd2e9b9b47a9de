// Package pages renders the full HTML documents served by the app.
package pages

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"vault/views/components"
)

// Layout wraps body in the shared document shell.
func Layout(title string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8"><meta name="viewport" content="width=device-width, initial-scale=1"><title>`)
		out.Text(title)
		out.Raw(`</title>`)
		out.Raw(`<link rel="stylesheet" href="https://cdn.jsdelivr.net/npm/bulma@0.9.4/css/bulma.min.css">`)
		out.Raw(`<link rel="stylesheet" href="/static/vault.css">`)
		out.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12"></script>`)
		out.Raw(`<script src="https://unpkg.com/htmx.org@1.9.12/dist/ext/sse.js"></script>`)
		out.Raw(`</head><body><nav class="navbar is-dark"><div class="navbar-brand"><a class="navbar-item" href="/"><strong>`)
		out.Text(title)
		out.Raw(`</strong></a><a class="navbar-item" href="/game">Play</a><a class="navbar-item" href="/leaderboard">Leaderboard</a><a class="navbar-item" href="/signup">Change name</a></div></nav>`)
		out.Raw(`<section class="section">`)
		out.Component(ctx, body)
		out.Raw(`</section></body></html>`)
		return out.Err()
	})
}
