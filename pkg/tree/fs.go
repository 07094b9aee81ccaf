package tree

import (
	"fmt"
	"io/fs"
	"path"
	"strings"
)

// Node types assigned by FromFS. They line up with the type definitions in
// the default types payload served by the demo.
const (
	TypeFolder = "folder"
	TypeFile   = "file"
)

// FromFS builds a node tree mirroring the directory structure under root.
// Directories become folder nodes, files become file nodes, and hidden
// entries (leading dot) are skipped. Node IDs are slash-separated paths
// relative to root, so client state recorded against an ID survives
// rebuilds.
func FromFS(fsys fs.FS, root string) ([]*Node, error) {
	entries, err := fs.ReadDir(fsys, root)
	if err != nil {
		return nil, fmt.Errorf("read tree directory %q: %w", root, err)
	}

	nodes := make([]*Node, 0, len(entries))
	for _, entry := range entries {
		if strings.HasPrefix(entry.Name(), ".") {
			continue
		}

		node := &Node{
			ID:   path.Join(root, entry.Name()),
			Text: entry.Name(),
			Type: TypeFile,
		}
		if entry.IsDir() {
			node.Type = TypeFolder
			children, err := FromFS(fsys, path.Join(root, entry.Name()))
			if err != nil {
				return nil, err
			}
			node.Children = children
		}
		nodes = append(nodes, node)
	}

	return nodes, nil
}
