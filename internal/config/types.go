// Package config loads and validates stree configuration from file,
// environment and flags.
package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/stree-ui/stree/pkg/tree"
)

// SearchMode selects the widget search variant in configuration.
type SearchMode string

const (
	SearchModeOff   SearchMode = "off"
	SearchModeAuto  SearchMode = "auto"
	SearchModeField SearchMode = "field"
)

// SearchConfig configures widget search. In YAML it is either the full
// mapping or a shorthand string: "off", "auto", or any other value naming
// an external input element.
type SearchConfig struct {
	Mode        SearchMode `koanf:"mode"`
	Placeholder string     `koanf:"placeholder"`
	Field       string     `koanf:"field"`
	DebounceMS  int        `koanf:"debounce_ms"`
}

// Validate checks the search configuration.
func (s *SearchConfig) Validate() error {
	switch s.Mode {
	case "", SearchModeOff, SearchModeAuto:
	case SearchModeField:
		if s.Field == "" {
			return fmt.Errorf("search mode %q requires a field element id", s.Mode)
		}
	default:
		return fmt.Errorf("unknown search mode %q: must be one of off, auto, field", s.Mode)
	}
	if s.DebounceMS < 0 {
		return fmt.Errorf("search debounce_ms must not be negative, got %d", s.DebounceMS)
	}
	return nil
}

// ToSearch converts the configuration into the tree search variant.
func (s *SearchConfig) ToSearch() tree.Search {
	debounce := time.Duration(s.DebounceMS) * time.Millisecond
	switch s.Mode {
	case SearchModeAuto:
		return tree.SearchAuto(s.Placeholder, debounce)
	case SearchModeField:
		return tree.SearchField(s.Field, debounce)
	default:
		return tree.SearchOff()
	}
}

// WidgetConfig holds the default widget options the server renders with.
type WidgetConfig struct {
	Theme        string       `koanf:"theme"`
	Checkbox     bool         `koanf:"checkbox"`
	Multiple     bool         `koanf:"multiple"`
	ThreeState   bool         `koanf:"three_state"`
	WholeNode    bool         `koanf:"whole_node"`
	TieSelection bool         `koanf:"tie_selection"`
	DragAndDrop  bool         `koanf:"drag_and_drop"`
	ContextMenu  bool         `koanf:"context_menu"`
	ThemeIcons   bool         `koanf:"theme_icons"`
	ThemeDots    bool         `koanf:"theme_dots"`
	WholeRow     bool         `koanf:"whole_row"`
	Stripes      bool         `koanf:"stripes"`
	AnimationMS  int          `koanf:"animation_ms"`
	Sort         bool         `koanf:"sort"`
	Unique       bool         `koanf:"unique"`
	Search       SearchConfig `koanf:"search"`

	// Options is the client options blob forwarded to every widget.
	Options tree.GlobalOptions `koanf:"options"`
}

// ToTreeConfig builds the tree.Config for one widget placement.
func (w *WidgetConfig) ToTreeConfig(outputID string, logger *slog.Logger) tree.Config {
	return tree.Config{
		OutputID:     outputID,
		Checkbox:     w.Checkbox,
		Multiple:     w.Multiple,
		ThreeState:   w.ThreeState,
		WholeNode:    w.WholeNode,
		TieSelection: w.TieSelection,
		Search:       w.Search.ToSearch(),
		DragAndDrop:  w.DragAndDrop,
		ContextMenu:  w.ContextMenu,
		Theme:        tree.Theme(w.Theme),
		ThemeIcons:   w.ThemeIcons,
		ThemeDots:    w.ThemeDots,
		WholeRow:     w.WholeRow,
		Stripes:      w.Stripes,
		Animation:    time.Duration(w.AnimationMS) * time.Millisecond,
		Sort:         w.Sort,
		Unique:       w.Unique,
		Globals:      w.Options,
		Logger:       logger,
	}
}

// Validate checks the widget configuration without building a widget.
func (w *WidgetConfig) Validate() error {
	if err := tree.Theme(w.Theme).Validate(); err != nil {
		return err
	}
	if w.AnimationMS < 0 {
		return fmt.Errorf("animation_ms must not be negative, got %d", w.AnimationMS)
	}
	return w.Search.Validate()
}

// ServerConfig holds the development server configuration.
type ServerConfig struct {
	Port          int    `koanf:"port"`
	Watch         bool   `koanf:"watch"`
	AutoOpen      bool   `koanf:"auto_open"`
	SessionSecret string `koanf:"session_secret"`
}

// Validate checks the server configuration.
func (s *ServerConfig) Validate() error {
	if s.Port < 1 || s.Port > 65535 {
		return fmt.Errorf("server port %d out of range", s.Port)
	}
	return nil
}

// Config is the full stree configuration.
type Config struct {
	// TreeDir is the directory the demo explorer renders as a tree.
	TreeDir string `koanf:"tree_dir"`
	// StatePath is the sqlite database holding persisted widget state.
	// ":memory:" keeps state for the server's lifetime only.
	StatePath string `koanf:"state_path"`

	Server ServerConfig `koanf:"server"`
	Widget WidgetConfig `koanf:"widget"`

	Verbose bool `koanf:"verbose"`
}

// Validate checks the whole configuration.
func (c *Config) Validate() error {
	if c.TreeDir == "" {
		return fmt.Errorf("tree_dir is required")
	}
	if err := c.Server.Validate(); err != nil {
		return err
	}
	return c.Widget.Validate()
}
