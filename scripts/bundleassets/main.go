// Package main bundles the browser integration script into the embedded
// static asset tree.
//
// Usage:
//
//	go run ./scripts/bundleassets
//	go run ./scripts/bundleassets -minify
package main

import (
	"flag"
	"log"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

var minifyFlag = flag.Bool("minify", false, "minify the bundled output")

func main() {
	flag.Parse()

	projectRoot, err := findProjectRoot()
	if err != nil {
		log.Fatalf("failed to find project root: %v", err)
	}

	resourcesDir := filepath.Join(projectRoot, "internal", "ui", "resources")
	entry := filepath.Join(resourcesDir, "src", "stree.js")
	outFile := filepath.Join(resourcesDir, "static", "js", "stree.js")

	result := api.Build(api.BuildOptions{
		EntryPoints:       []string{entry},
		Bundle:            true,
		Write:             false,
		Format:            api.FormatIIFE,
		Target:            api.ES2017,
		MinifyWhitespace:  *minifyFlag,
		MinifyIdentifiers: *minifyFlag,
		MinifySyntax:      *minifyFlag,
	})
	if len(result.Errors) > 0 {
		for _, msg := range result.Errors {
			log.Printf("esbuild: %s", msg.Text)
		}
		os.Exit(1)
	}
	if len(result.OutputFiles) == 0 {
		log.Fatal("esbuild produced no output")
	}

	if err := os.MkdirAll(filepath.Dir(outFile), 0o755); err != nil {
		log.Fatalf("failed to create output directory: %v", err)
	}
	if err := os.WriteFile(outFile, result.OutputFiles[0].Contents, 0o644); err != nil {
		log.Fatalf("failed to write bundle: %v", err)
	}

	log.Printf("wrote %s (%d bytes)", outFile, len(result.OutputFiles[0].Contents))
}

// findProjectRoot walks up from the working directory until it finds go.mod.
func findProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
}
