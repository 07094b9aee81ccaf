package explorer

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/a-h/templ"

	"github.com/stree-ui/stree/internal/ui/features/common"
	"github.com/stree-ui/stree/pkg/tree"
)

// ExplorerPage is the full explorer page: shell, widget markup, initial
// tree data and any previously saved widget state.
func ExplorerPage(isDev bool, w *tree.Widget, data json.RawMessage, saved json.RawMessage) templ.Component {
	return common.Layout("Explorer", isDev, explorerBody(w, data, saved))
}

func explorerBody(w *tree.Widget, data json.RawMessage, saved json.RawMessage) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		if err := common.Header("stree explorer").Render(ctx, out); err != nil {
			return err
		}
		if _, err := io.WriteString(out, `<main class="app-main">`); err != nil {
			return err
		}

		if err := w.Render(ctx, out); err != nil {
			return err
		}
		if err := RenderCall(w.OutputID(), data).Render(ctx, out); err != nil {
			return err
		}
		if saved != nil {
			if err := restoreCall(w.OutputID(), saved).Render(ctx, out); err != nil {
				return err
			}
		}

		// Long-lived SSE subscription pushing tree updates.
		_, err := io.WriteString(out,
			`<div id="updates-listener" data-init data-on-load="@get('/updates')"></div></main>`)
		return err
	})
}

// RenderCall emits the script handing tree data to the client engine. The
// updates endpoint sends the same call over SSE when the tree changes.
func RenderCall(widgetID string, data json.RawMessage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		_, err := fmt.Fprintf(out, `<script>%s</script>`, RenderScript(widgetID, data))
		return err
	})
}

// RenderScript returns the bare render statement, suitable for
// sse.ExecuteScript. The data is escaped for inline script embedding,
// which the SSE path tolerates since the escaped form decodes to the same
// string.
func RenderScript(widgetID string, data json.RawMessage) string {
	id, _ := templ.JSONString(widgetID)
	return fmt.Sprintf(`stree.render(%s, %s);`, id, tree.SafeInlineJSON(data))
}

func restoreCall(widgetID string, saved json.RawMessage) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		id, err := templ.JSONString(widgetID)
		if err != nil {
			return err
		}
		// Saved state is client-controlled JSON; escape it so it cannot
		// close the script element.
		_, err = fmt.Fprintf(out, `<script>stree.restoreState(%s, %s);</script>`,
			id, tree.SafeInlineJSON(saved))
		return err
	})
}
