// Package common provides shared layout components and helpers for UI
// features.
package common

import (
	"context"
	"fmt"
	"io"

	"github.com/a-h/templ"
)

// datastarScriptURL is the client runtime powering SSE patching and
// signals.
const datastarScriptURL = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0/bundles/datastar.js"

// Layout wraps a body component in the full page shell.
func Layout(title string, isDev bool, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		ctx = templ.InitializeContext(ctx)

		if _, err := fmt.Fprintf(w,
			`<!doctype html><html lang="en"><head><meta charset="utf-8">`+
				`<meta name="viewport" content="width=device-width, initial-scale=1">`+
				`<title>%s - stree</title>`+
				`<script type="module" src="%s"></script>`+
				`<link rel="stylesheet" href="/static/css/app.css">`+
				`</head><body>`,
			templ.EscapeString(title), datastarScriptURL); err != nil {
			return err
		}

		if isDev {
			// Reconnects to the dev server and reloads the page when it
			// restarts or assets change.
			if _, err := io.WriteString(w,
				`<div id="dev-reload" data-init data-on-load="@get('/reload')"></div>`); err != nil {
				return err
			}
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err := io.WriteString(w, `</body></html>`)
		return err
	})
}

// Header renders the shared application header.
func Header(title string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		_, err := fmt.Fprintf(w,
			`<header class="app-header"><h1>%s</h1></header>`,
			templ.EscapeString(title))
		return err
	})
}
