package config

// Default configuration values, loaded below every other provider.
var defaults = map[string]any{
	"tree_dir":   ".",
	"state_path": "stree.db",

	"server.port":           8310,
	"server.watch":          true,
	"server.auto_open":      false,
	"server.session_secret": "",

	"widget.theme":              "default",
	"widget.checkbox":           false,
	"widget.multiple":           true,
	"widget.three_state":        true,
	"widget.whole_node":         true,
	"widget.tie_selection":      false,
	"widget.drag_and_drop":      false,
	"widget.context_menu":       false,
	"widget.theme_icons":        true,
	"widget.theme_dots":         true,
	"widget.whole_row":          false,
	"widget.stripes":            false,
	"widget.animation_ms":       200,
	"widget.sort":               false,
	"widget.unique":             false,
	"widget.search":             "off",
	"widget.options.set_state":  true,
	"widget.options.refresh":    true,

	"verbose": false,
}
