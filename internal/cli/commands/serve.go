package commands

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/stree-ui/stree/internal/cli/output"
	"github.com/stree-ui/stree/internal/state"
	"github.com/stree-ui/stree/internal/ui"
)

// ServeOptions holds options for the serve command.
type ServeOptions struct {
	Port      int
	NoBrowser bool
	Watch     bool
	TreeDir   string
}

// NewServeCommand creates the serve command.
func NewServeCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the stree development server",
		Long: `Start a local web server with a live directory explorer built on the
tree widget. The served directory is watched and changes are pushed to
connected browsers; widget state is persisted per browser session.`,
		Example: `  # Serve the current directory
  stree serve

  # Serve another directory on a custom port
  stree serve --tree-dir ./docs --port 3000`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, opts)
		},
	}

	cmd.Flags().IntVar(&opts.Port, "port", 0, "Port to serve on (default: 8310)")
	cmd.Flags().BoolVar(&opts.NoBrowser, "no-browser", false, "Don't auto-open browser")
	cmd.Flags().BoolVar(&opts.Watch, "watch", true, "Watch the served directory for changes")
	cmd.Flags().StringVar(&opts.TreeDir, "tree-dir", "", "Directory to serve as a tree (default: from config)")

	return cmd
}

func runServe(cmd *cobra.Command, opts *ServeOptions) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())
	renderer := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr())

	// CLI flags override config file.
	if opts.Port != 0 {
		cfg.Server.Port = opts.Port
	}
	if cmd.Flags().Changed("watch") {
		cfg.Server.Watch = opts.Watch
	}
	if opts.TreeDir != "" {
		cfg.TreeDir = opts.TreeDir
	}
	if cfg.Server.SessionSecret == "" {
		cfg.Server.SessionSecret = sessionSecret()
	}

	if _, err := os.Stat(cfg.TreeDir); os.IsNotExist(err) {
		return fmt.Errorf("tree directory does not exist: %s", cfg.TreeDir)
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(cfg.StatePath); err != nil {
		return err
	}
	defer func() { _ = store.Close() }()
	if err := store.Migrate(); err != nil {
		return err
	}

	server := ui.NewServer(cfg, store, logger)

	url := fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	if cfg.Server.AutoOpen && !opts.NoBrowser {
		go openBrowser(url)
	}

	renderer.Successf("Serving %s on %s", cfg.TreeDir, url)
	renderer.Infof("Press Ctrl+C to stop")

	return server.Serve(cmd.Context())
}

// sessionSecret returns the cookie secret: the environment override, or a
// random secret for this process only.
func sessionSecret() string {
	if secret := os.Getenv("STREE_SESSION_SECRET"); secret != "" {
		return secret
	}
	return uuid.NewString()
}

// openBrowser opens the default browser to the specified URL.
func openBrowser(url string) {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", url)
	case "linux":
		cmd = exec.Command("xdg-open", url)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", url)
	default:
		return
	}

	_ = cmd.Start()
}
