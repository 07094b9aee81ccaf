// Package tree renders an interactive tree widget as server-side markup.
//
// The package turns a Config into a templ.Component: deduplicated head
// includes (theme stylesheet, icon font, client engine and integration
// scripts), an optional search input, and a container element carrying one
// data-st-* attribute per option plus a JSON options blob. The client-side
// engine reads those attributes at initialization time; nothing in this
// package manipulates tree state after render.
package tree

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// ErrInvalidTheme is returned when a theme name is outside the known set.
var ErrInvalidTheme = errors.New("invalid theme")

// Theme is a named visual style bundle applied to the widget.
type Theme string

// Known themes. Each maps to a stylesheet under the vendor assets path.
const (
	ThemeDefault     Theme = "default"
	ThemeDefaultDark Theme = "default-dark"
	ThemeProton      Theme = "proton"
)

// Themes returns the known themes in display order.
func Themes() []Theme {
	return []Theme{ThemeDefault, ThemeDefaultDark, ThemeProton}
}

// Validate checks that the theme is one of the known set.
func (t Theme) Validate() error {
	switch t {
	case ThemeDefault, ThemeDefaultDark, ThemeProton:
		return nil
	}
	names := make([]string, 0, len(Themes()))
	for _, known := range Themes() {
		names = append(names, string(known))
	}
	return fmt.Errorf("%w %q: must be one of %s", ErrInvalidTheme, string(t), strings.Join(names, ", "))
}

// Stylesheet returns the URL path of the theme's stylesheet.
func (t Theme) Stylesheet() string {
	return "/static/vendor/themes/" + string(t) + "/style.min.css"
}

// DefaultSearchDebounce is used when a search variant is constructed with a
// non-positive debounce.
const DefaultSearchDebounce = 250 * time.Millisecond

type searchMode int

const (
	searchOff searchMode = iota
	searchAuto
	searchField
)

// Search selects how the widget's search box is wired. The zero value is
// disabled. Construct values with SearchOff, SearchAuto or SearchField; the
// three variants replace the usual bool-or-string overload so a disabled
// search is always explicit.
type Search struct {
	mode        searchMode
	placeholder string
	elementID   string
	debounce    time.Duration
}

// SearchOff disables search wiring.
func SearchOff() Search {
	return Search{}
}

// SearchAuto synthesizes a text input next to the widget and binds it with
// the given debounce. A non-positive debounce falls back to
// DefaultSearchDebounce.
func SearchAuto(placeholder string, debounce time.Duration) Search {
	return Search{mode: searchAuto, placeholder: placeholder, debounce: debounce}
}

// SearchField binds search to an existing input element identified by
// elementID. No input is synthesized.
func SearchField(elementID string, debounce time.Duration) Search {
	return Search{mode: searchField, elementID: elementID, debounce: debounce}
}

// Enabled reports whether any search wiring is emitted.
func (s Search) Enabled() bool {
	return s.mode != searchOff
}

// Synthesized reports whether the widget emits its own search input.
func (s Search) Synthesized() bool {
	return s.mode == searchAuto
}

// Placeholder returns the placeholder for a synthesized input.
func (s Search) Placeholder() string {
	return s.placeholder
}

// InputID returns the element id the tree binds to: the derived
// <outputID>-search-input for a synthesized input, or the external element
// id verbatim.
func (s Search) InputID(outputID string) string {
	if s.mode == searchField {
		return s.elementID
	}
	return outputID + "-search-input"
}

// Debounce returns the effective search debounce.
func (s Search) Debounce() time.Duration {
	if s.debounce <= 0 {
		return DefaultSearchDebounce
	}
	return s.debounce
}

func (s Search) validate() error {
	if s.mode == searchField && s.elementID == "" {
		return fmt.Errorf("search: external field requires a non-empty element id")
	}
	return nil
}

// GlobalOptions are the client-side options forwarded verbatim in the
// widget's options blob. They are passed explicitly rather than read from
// process-wide state.
type GlobalOptions struct {
	// SetState restores previously saved tree state on initialization.
	SetState bool `json:"setState" koanf:"set_state"`
	// Refresh re-renders the tree in place when new data arrives instead
	// of rebuilding it.
	Refresh bool `json:"refresh" koanf:"refresh"`
}

// Config describes how one tree widget instance is rendered. It has no
// lifecycle beyond a single New call.
type Config struct {
	// OutputID is the container element id, unique within a page. If
	// empty, an id is derived from a random UUID.
	OutputID string

	// Selection behavior.
	Checkbox     bool
	Multiple     bool
	ThreeState   bool
	WholeNode    bool
	TieSelection bool

	// Search wiring. Zero value is disabled.
	Search Search

	// Interaction.
	DragAndDrop bool
	ContextMenu bool

	// Presentation. An empty Theme means ThemeDefault. Animation is the
	// open/close transition duration; zero disables animation entirely
	// and a negative value is rejected.
	Theme      Theme
	ThemeIcons bool
	ThemeDots  bool
	WholeRow   bool
	Stripes    bool
	Animation  time.Duration

	// Ordering.
	Sort   bool
	Unique bool

	// Types is an opaque node-type definition payload forwarded verbatim
	// to the client engine through a script-global variable.
	Types []byte

	// Globals are the client-side options serialized into the options
	// attribute.
	Globals GlobalOptions

	// Logger receives the conflict warning when checkbox and context-menu
	// modes are both requested. Defaults to slog.Default.
	Logger *slog.Logger
}

func (c *Config) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

// validate checks the parts of the configuration that fail fast. The
// checkbox/context-menu conflict is deliberately not here: it is corrected
// with a warning, not rejected.
func (c *Config) validate() error {
	if err := c.Theme.Validate(); err != nil {
		return err
	}
	if c.Animation < 0 {
		return fmt.Errorf("animation duration must not be negative, got %s", c.Animation)
	}
	if err := c.Search.validate(); err != nil {
		return err
	}
	return nil
}
