package pages

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"vault/internal/viewmodel"
	"vault/views/components"
)

// GamePage is the playfield. Widget positions arrive on /game/stream and are
// drawn by /static/game.js.
func GamePage(data viewmodel.GamePage) templ.Component {
	body := templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		out := components.NewWriter(w)
		out.Raw(`<div class="level"><div class="level-left"><p class="level-item">Playing as&nbsp;<strong>`)
		out.Text(data.Username)
		out.Raw(`</strong></p></div><div class="level-right"><p class="level-item title is-4">Score:&nbsp;<span id="score">`)
		out.Text(data.Score)
		out.Raw(`</span></p></div></div>`)
		out.Raw(`<div id="playfield" class="playfield" data-width="`)
		out.Raw(strconv.Itoa(data.Width))
		out.Raw(`" data-height="`)
		out.Raw(strconv.Itoa(data.Height))
		out.Raw(`" data-sprite="`)
		out.Raw(strconv.Itoa(data.SpriteSize))
		out.Raw(`"></div>`)
		out.Raw(`<form class="mt-4" hx-post="/game/comment" hx-swap="none" hx-on::after-request="if(event.detail.successful) this.reset()"><div class="field has-addons"><div class="control is-expanded"><input class="input" name="comment" placeholder="Say something" required maxlength="`)
		out.Raw(strconv.Itoa(data.MaxComment))
		out.Raw(`"></div><div class="control"><button class="button is-info" type="submit">Send</button></div></div></form>`)
		out.Raw(`<script src="/static/game.js" defer></script>`)
		return out.Err()
	})
	return Layout(data.Title, body)
}
