package tree

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"docs/guide.md":    {Data: []byte("g")},
		"docs/api/http.md": {Data: []byte("h")},
		"readme.md":        {Data: []byte("r")},
		".hidden":          {Data: []byte("x")},
	}

	nodes, err := FromFS(fsys, ".")
	require.NoError(t, err)
	require.Len(t, nodes, 2, "hidden entries are skipped")

	assert.Equal(t, "docs", nodes[0].Text)
	assert.Equal(t, TypeFolder, nodes[0].Type)
	assert.Equal(t, "docs", nodes[0].ID)

	require.Len(t, nodes[0].Children, 2)
	assert.Equal(t, "api", nodes[0].Children[0].Text)
	assert.Equal(t, "docs/api", nodes[0].Children[0].ID)
	require.Len(t, nodes[0].Children[0].Children, 1)
	assert.Equal(t, "docs/api/http.md", nodes[0].Children[0].Children[0].ID)
	assert.Equal(t, TypeFile, nodes[0].Children[0].Children[0].Type)

	assert.Equal(t, "readme.md", nodes[1].Text)
	assert.Equal(t, TypeFile, nodes[1].Type)
}

func TestFromFSMissingRoot(t *testing.T) {
	_, err := FromFS(fstest.MapFS{}, "nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"nope"`)
}
