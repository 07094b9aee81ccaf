package tree

import (
	"encoding/json"
	"sort"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Node is one entry in the tree data shipped to the client engine. It
// serializes to the JSON shape the engine consumes.
type Node struct {
	ID   string `yaml:"id,omitempty"`
	Text string `yaml:"text"`
	Icon string `yaml:"icon,omitempty"`
	Type string `yaml:"type,omitempty"`

	Opened   bool `yaml:"opened,omitempty"`
	Selected bool `yaml:"selected,omitempty"`
	Disabled bool `yaml:"disabled,omitempty"`

	Data     map[string]any `yaml:"data,omitempty"`
	Children []*Node        `yaml:"children,omitempty"`
}

// nodeState mirrors the engine's per-node state object. It is omitted
// entirely when every flag is false.
type nodeState struct {
	Opened   bool `json:"opened,omitempty"`
	Selected bool `json:"selected,omitempty"`
	Disabled bool `json:"disabled,omitempty"`
}

type nodeJSON struct {
	ID       string         `json:"id,omitempty"`
	Text     string         `json:"text"`
	Icon     string         `json:"icon,omitempty"`
	Type     string         `json:"type,omitempty"`
	State    *nodeState     `json:"state,omitempty"`
	Data     map[string]any `json:"data,omitempty"`
	Children []*Node        `json:"children,omitempty"`
}

// MarshalJSON implements json.Marshaler in the engine's wire format.
func (n *Node) MarshalJSON() ([]byte, error) {
	out := nodeJSON{
		ID:       n.ID,
		Text:     n.Text,
		Icon:     n.Icon,
		Type:     n.Type,
		Data:     n.Data,
		Children: n.Children,
	}
	if n.Opened || n.Selected || n.Disabled {
		out.State = &nodeState{Opened: n.Opened, Selected: n.Selected, Disabled: n.Disabled}
	}
	return json.Marshal(out)
}

// MarshalNodes serializes a node list to the engine's wire format.
func MarshalNodes(nodes []*Node) ([]byte, error) {
	if nodes == nil {
		nodes = []*Node{}
	}
	return json.Marshal(nodes)
}

// SortNodes orders siblings by display text at every level, using
// locale-aware collation for the given language. Sorting is stable so
// nodes with equal text keep their input order.
func SortNodes(nodes []*Node, tag language.Tag) {
	c := collate.New(tag)
	sortNodes(nodes, c)
}

func sortNodes(nodes []*Node, c *collate.Collator) {
	sort.SliceStable(nodes, func(i, j int) bool {
		return c.CompareString(nodes[i].Text, nodes[j].Text) < 0
	})
	for _, n := range nodes {
		sortNodes(n.Children, c)
	}
}

// Walk visits every node depth-first. Returning false from fn stops the
// walk.
func Walk(nodes []*Node, fn func(*Node) bool) bool {
	for _, n := range nodes {
		if !fn(n) {
			return false
		}
		if !Walk(n.Children, fn) {
			return false
		}
	}
	return true
}

// Count returns the total number of nodes in the tree.
func Count(nodes []*Node) int {
	total := 0
	Walk(nodes, func(*Node) bool {
		total++
		return true
	})
	return total
}
