package tree

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/a-h/templ"
	"github.com/google/uuid"
)

// Client engine assets referenced by every widget. The engine and its
// integration script must be present on the serving path; this package only
// emits the markup that loads them.
const (
	engineScriptPath      = "/static/vendor/jstree/jstree.min.js"
	integrationScriptPath = "/static/js/stree.js"

	iconFontURL       = "https://cdnjs.cloudflare.com/ajax/libs/font-awesome/6.4.2/css/all.min.css"
	iconFontIntegrity = "sha512-z3gLpd7yknf1YoNbCzqRKc4qyor8gaKU1qmn+CShxbuBusANI9QpRohGBreCFkKxLhei6S9CQXFEbbKuqLg0DA=="
)

// Once handles collapse repeated head includes to a single copy per render
// context, so several widgets on one page share one stylesheet and one pair
// of script tags.
var (
	themeOnce = map[Theme]*templ.OnceHandle{
		ThemeDefault:     templ.NewOnceHandle(),
		ThemeDefaultDark: templ.NewOnceHandle(),
		ThemeProton:      templ.NewOnceHandle(),
	}
	iconFontOnce = templ.NewOnceHandle()
	scriptsOnce  = templ.NewOnceHandle()
)

var globalNameSanitizer = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Widget is one configured tree widget, ready to render. Construction is a
// pure transformation from Config to markup; a Widget is immutable and safe
// to render any number of times.
type Widget struct {
	cfg         Config
	warnings    []string
	optionsJSON string
	typesGlobal string
	typesOnce   *templ.OnceHandle
}

// New validates the configuration and builds a Widget.
//
// An unknown theme fails with an error naming the value. Requesting both
// checkbox and context-menu modes is not an error: checkboxes are forced
// off, and the correction is recorded in Warnings and logged.
func New(cfg Config) (*Widget, error) {
	if cfg.OutputID == "" {
		cfg.OutputID = "stree-" + uuid.NewString()
	}
	if cfg.Theme == "" {
		cfg.Theme = ThemeDefault
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	w := &Widget{cfg: cfg}

	if cfg.Checkbox && cfg.ContextMenu {
		w.cfg.Checkbox = false
		const msg = "checkbox and context-menu modes are mutually exclusive, disabling checkboxes"
		w.warnings = append(w.warnings, msg)
		cfg.logger().Warn(msg, "widget", cfg.OutputID)
	}

	opts, err := templ.JSONString(cfg.Globals)
	if err != nil {
		return nil, fmt.Errorf("serialize widget options: %w", err)
	}
	w.optionsJSON = opts

	if len(cfg.Types) > 0 {
		if !json.Valid(cfg.Types) {
			return nil, fmt.Errorf("types payload for widget %q is not valid JSON", cfg.OutputID)
		}
		w.typesGlobal = globalNameSanitizer.ReplaceAllString(cfg.OutputID, "_") + "_sttypes"
		w.typesOnce = templ.NewOnceHandle()
	}

	return w, nil
}

// OutputID returns the container element id.
func (w *Widget) OutputID() string {
	return w.cfg.OutputID
}

// Theme returns the effective theme.
func (w *Widget) Theme() Theme {
	return w.cfg.Theme
}

// Warnings returns corrections applied during construction.
func (w *Widget) Warnings() []string {
	return w.warnings
}

// TypesGlobal returns the script-global variable name the types payload is
// assigned to, or "" when no payload was supplied.
func (w *Widget) TypesGlobal() string {
	return w.typesGlobal
}

// Render writes the widget markup: head includes, the optional search
// input and its binding script, and the container element. Widget
// implements templ.Component, so it composes into templ pages and patches
// over SSE like any other component.
func (w *Widget) Render(ctx context.Context, out io.Writer) error {
	ctx = templ.InitializeContext(ctx)

	if err := w.renderIncludes(ctx, out); err != nil {
		return err
	}
	if err := w.renderSearch(ctx, out); err != nil {
		return err
	}
	return w.renderContainer(out)
}

func (w *Widget) renderIncludes(ctx context.Context, out io.Writer) error {
	theme := w.cfg.Theme
	stylesheet := rawComponent(fmt.Sprintf(`<link rel="stylesheet" href="%s">`, templ.EscapeString(theme.Stylesheet())))
	if err := renderOnce(ctx, out, themeOnce[theme], stylesheet); err != nil {
		return err
	}

	iconFont := rawComponent(fmt.Sprintf(`<link rel="stylesheet" href="%s" integrity="%s" crossorigin="anonymous" referrerpolicy="no-referrer">`,
		iconFontURL, iconFontIntegrity))
	if err := renderOnce(ctx, out, iconFontOnce, iconFont); err != nil {
		return err
	}

	scripts := rawComponent(fmt.Sprintf(`<script src="%s"></script><script src="%s"></script>`,
		engineScriptPath, integrationScriptPath))
	if err := renderOnce(ctx, out, scriptsOnce, scripts); err != nil {
		return err
	}

	if w.typesOnce != nil {
		types := rawComponent(fmt.Sprintf(`<script>var %s = %s;</script>`,
			w.typesGlobal, SafeInlineJSON(w.cfg.Types)))
		if err := renderOnce(ctx, out, w.typesOnce, types); err != nil {
			return err
		}
	}

	return nil
}

func (w *Widget) renderSearch(_ context.Context, out io.Writer) error {
	if !w.cfg.Search.Enabled() {
		return nil
	}

	inputID := w.cfg.Search.InputID(w.cfg.OutputID)
	if w.cfg.Search.Synthesized() {
		if _, err := fmt.Fprintf(out, `<input type="text" id="%s" class="stree-search" placeholder="%s">`,
			templ.EscapeString(inputID), templ.EscapeString(w.cfg.Search.Placeholder())); err != nil {
			return err
		}
	}

	treeID, err := templ.JSONString(w.cfg.OutputID)
	if err != nil {
		return err
	}
	fieldID, err := templ.JSONString(inputID)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, `<script>stree.bindSearch(%s, %s, %d);</script>`,
		treeID, fieldID, w.cfg.Search.Debounce().Milliseconds())
	return err
}

func (w *Widget) renderContainer(out io.Writer) error {
	if _, err := fmt.Fprintf(out, `<div id="%s" class="stree"`, templ.EscapeString(w.cfg.OutputID)); err != nil {
		return err
	}
	for _, a := range w.attributes() {
		if _, err := fmt.Fprintf(out, ` %s="%s"`, a.name, templ.EscapeString(a.value)); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, `></div>`)
	return err
}

// renderOnce renders c at most once per render context for the given
// handle.
func renderOnce(ctx context.Context, out io.Writer, h *templ.OnceHandle, c templ.Component) error {
	return h.Once().Render(templ.WithChildren(ctx, c), out)
}

// rawComponent wraps pre-escaped markup as a component.
func rawComponent(html string) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, out io.Writer) error {
		_, err := io.WriteString(out, html)
		return err
	})
}

// SafeInlineJSON makes a JSON payload safe to embed in a script element.
// "</" inside string values would otherwise terminate the script early;
// the escaped form decodes to the same string in JavaScript.
func SafeInlineJSON(payload []byte) string {
	return strings.ReplaceAll(string(payload), "</", `<\/`)
}
