package tree

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// LoadDocument reads a YAML tree document: a list of nodes, each with a
// text plus optional id, icon, type, state flags and nested children.
func LoadDocument(r io.Reader) ([]*Node, error) {
	var nodes []*Node

	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&nodes); err != nil {
		if err == io.EOF {
			return []*Node{}, nil
		}
		return nil, fmt.Errorf("decode tree document: %w", err)
	}

	for i, n := range nodes {
		if err := validateDocumentNode(n, i); err != nil {
			return nil, err
		}
	}
	return nodes, nil
}

// LoadDocumentFile reads a YAML tree document from path.
func LoadDocumentFile(path string) ([]*Node, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open tree document: %w", err)
	}
	defer func() { _ = f.Close() }()

	return LoadDocument(f)
}

func validateDocumentNode(n *Node, index int) error {
	if n == nil {
		return fmt.Errorf("tree document: node %d is empty", index)
	}
	if n.Text == "" {
		return fmt.Errorf("tree document: node %d has no text", index)
	}
	for i, child := range n.Children {
		if err := validateDocumentNode(child, i); err != nil {
			return fmt.Errorf("in children of %q: %w", n.Text, err)
		}
	}
	return nil
}
