package tree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

func TestNodeMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		node *Node
		want string
	}{
		{
			name: "minimal node omits empty fields",
			node: &Node{Text: "leaf"},
			want: `{"text":"leaf"}`,
		},
		{
			name: "state object only when a flag is set",
			node: &Node{Text: "open", Opened: true},
			want: `{"text":"open","state":{"opened":true}}`,
		},
		{
			name: "full node",
			node: &Node{
				ID:       "n1",
				Text:     "docs",
				Icon:     "fa fa-folder",
				Type:     TypeFolder,
				Selected: true,
				Data:     map[string]any{"size": 3},
				Children: []*Node{{Text: "readme", Type: TypeFile}},
			},
			want: `{"id":"n1","text":"docs","icon":"fa fa-folder","type":"folder","state":{"selected":true},"data":{"size":3},"children":[{"text":"readme","type":"file"}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.node.MarshalJSON()
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestMarshalNodesEmpty(t *testing.T) {
	got, err := MarshalNodes(nil)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got), "nil tree serializes as an empty list, not null")
}

func TestSortNodes(t *testing.T) {
	nodes := []*Node{
		{Text: "zeta", Children: []*Node{
			{Text: "inner-b"},
			{Text: "inner-a"},
		}},
		{Text: "alpha"},
		{Text: "Über"},
	}

	SortNodes(nodes, language.German)

	assert.Equal(t, "alpha", nodes[0].Text)
	assert.Equal(t, "Über", nodes[1].Text, "collation places Ü before z")
	assert.Equal(t, "zeta", nodes[2].Text)
	assert.Equal(t, "inner-a", nodes[2].Children[0].Text, "children sorted recursively")
}

func TestWalkStops(t *testing.T) {
	nodes := []*Node{
		{Text: "a", Children: []*Node{{Text: "b"}}},
		{Text: "c"},
	}

	var visited []string
	Walk(nodes, func(n *Node) bool {
		visited = append(visited, n.Text)
		return n.Text != "b"
	})

	assert.Equal(t, []string{"a", "b"}, visited)
}

func TestCount(t *testing.T) {
	nodes := []*Node{
		{Text: "a", Children: []*Node{{Text: "b"}, {Text: "c", Children: []*Node{{Text: "d"}}}}},
	}
	assert.Equal(t, 4, Count(nodes))
	assert.Equal(t, 0, Count(nil))
}
