package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "stree.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stree v")
}

func TestThemesCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\nwidget:\n  theme: proton\n")

	out, _, err := execute(t, "--config", cfgPath, "themes")
	require.NoError(t, err)

	assert.Contains(t, out, "default")
	assert.Contains(t, out, "default-dark")
	assert.Contains(t, out, "proton")
	assert.Contains(t, out, "/static/vendor/themes/proton/style.min.css")
}

func TestRenderCommand(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\n")

	out, _, err := execute(t, "--config", cfgPath, "render", "--id", "cli-tree")
	require.NoError(t, err)

	assert.Contains(t, out, `id="cli-tree"`)
	assert.Contains(t, out, `data-st-theme="default"`)
	assert.NotContains(t, out, "stree.render(", "no render call without a document")
}

func TestRenderCommandFlagOverrides(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\n")

	out, _, err := execute(t, "--config", cfgPath, "render",
		"--id", "cli-tree",
		"--theme", "default-dark",
		"--checkbox",
		"--search", "auto",
		"--placeholder", "Filter",
		"--debounce-ms", "400",
		"--animation-ms", "0",
	)
	require.NoError(t, err)

	assert.Contains(t, out, `data-st-theme="default-dark"`)
	assert.Contains(t, out, `data-st-checkbox="true"`)
	assert.Contains(t, out, `id="cli-tree-search-input"`)
	assert.Contains(t, out, "400")
	assert.Contains(t, out, `data-st-animation="false"`)
}

func TestRenderCommandWithDocument(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\n")
	docPath := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("- text: Projects\n  children:\n    - text: website\n"), 0600))

	out, _, err := execute(t, "--config", cfgPath, "render", "--id", "cli-tree", docPath)
	require.NoError(t, err)

	assert.Contains(t, out, `stree.render("cli-tree"`)
	assert.Contains(t, out, "Projects")
	assert.Contains(t, out, "website")
}

func TestRenderCommandDocumentEscapesScriptClose(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\n")

	docPath := filepath.Join(t.TempDir(), "sample.yaml")
	require.NoError(t, os.WriteFile(docPath, []byte("- text: a</script><b>z\n"), 0600))

	out, _, err := execute(t, "--config", cfgPath, "render", "--id", "cli-tree", docPath)
	require.NoError(t, err)

	assert.Contains(t, out, `stree.render("cli-tree"`)
	assert.NotContains(t, out, `a</script>`, "node text must not close the script element")
}

func TestRenderCommandInvalidTheme(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\n")

	_, _, err := execute(t, "--config", cfgPath, "render", "--theme", "neon")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "neon")
}

func TestRootCommandBadConfig(t *testing.T) {
	cfgPath := writeTestConfig(t, "tree_dir: .\nserver:\n  port: -1\n")

	_, _, err := execute(t, "--config", cfgPath, "themes")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "out of range")
}
