package tree

import (
	"strconv"
	"time"
)

// attrPrefix is the wire contract with the client engine: every
// configuration flag becomes one data-st-* attribute on the container.
const attrPrefix = "data-st-"

// attribute is one serialized container attribute.
type attribute struct {
	name  string
	value string
}

// attributes is the fixed, ordered attribute record for one widget. The
// set and order never vary with configuration, so output is
// byte-deterministic for a given Config.
func (w *Widget) attributes() []attribute {
	c := &w.cfg
	return []attribute{
		{attrPrefix + "checkbox", boolAttr(c.Checkbox)},
		{attrPrefix + "three-state", boolAttr(c.ThreeState)},
		{attrPrefix + "multiple", boolAttr(c.Multiple)},
		{attrPrefix + "whole-node", boolAttr(c.WholeNode)},
		{attrPrefix + "tie-selection", boolAttr(c.TieSelection)},
		{attrPrefix + "search", boolAttr(c.Search.Enabled())},
		{attrPrefix + "searchtime", strconv.FormatInt(c.Search.Debounce().Milliseconds(), 10)},
		{attrPrefix + "dnd", boolAttr(c.DragAndDrop)},
		{attrPrefix + "contextmenu", boolAttr(c.ContextMenu)},
		{attrPrefix + "theme", string(c.Theme)},
		{attrPrefix + "theme-icons", boolAttr(c.ThemeIcons)},
		{attrPrefix + "theme-dots", boolAttr(c.ThemeDots)},
		{attrPrefix + "wholerow", boolAttr(c.WholeRow)},
		{attrPrefix + "stripes", boolAttr(c.Stripes)},
		{attrPrefix + "animation", animationAttr(c.Animation)},
		{attrPrefix + "sort", boolAttr(c.Sort)},
		{attrPrefix + "unique", boolAttr(c.Unique)},
		{attrPrefix + "types", boolAttr(len(c.Types) > 0)},
		{attrPrefix + "options", w.optionsJSON},
	}
}

func boolAttr(v bool) string {
	return strconv.FormatBool(v)
}

// animationAttr renders a disabled animation as the literal false marker
// rather than a zero duration, matching what the client engine expects.
func animationAttr(d time.Duration) string {
	if d == 0 {
		return "false"
	}
	return strconv.FormatInt(d.Milliseconds(), 10)
}
