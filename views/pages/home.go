package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"vault/internal/viewmodel"
	"vault/views/components"
)

func HomePage(data viewmodel.HomePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<div class="container has-text-centered"><h1 class="title is-1">`)
		out.Text(data.Title)
		out.Raw(`</h1><p class="subtitle">Welcome, <strong>`)
		out.Text(data.Username)
		out.Raw(`</strong>. Click the treasures before they vanish.</p>`)
		out.Raw(`<div class="buttons is-centered"><a class="button is-primary is-large" href="/game">Play</a><a class="button is-link is-large" href="/leaderboard">Leaderboard</a></div></div>`)
		return out.Err()
	})
	return Layout(data.Title, body)
}

func SignupPage(data viewmodel.SignupPage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<div class="container" style="max-width: 28rem"><h1 class="title">Pick a name</h1>`)
		if data.Error != "" {
			out.Raw(`<div class="notification is-danger">`)
			out.Text(data.Error)
			out.Raw(`</div>`)
		}
		out.Raw(`<form method="post" action="/signup"><div class="field"><label class="label" for="username">Username</label><div class="control"><input class="input" id="username" name="username" required pattern="[A-Za-z0-9]+" maxlength="`)
		out.Raw(strconv.Itoa(data.MaxLen))
		out.Raw(`" value="`)
		out.Text(data.Username)
		out.Raw(`"></div><p class="help">Letters and numbers only, up to `)
		out.Raw(strconv.Itoa(data.MaxLen))
		out.Raw(` characters.</p></div><button class="button is-primary" type="submit">Save</button></form></div>`)
		return out.Err()
	})
	return Layout(data.Title, body)
}
