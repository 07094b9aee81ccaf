package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/stree-ui/stree/internal/config"
	"github.com/stree-ui/stree/pkg/tree"
)

// RenderOptions holds options for the render command.
type RenderOptions struct {
	ID          string
	Theme       string
	Checkbox    bool
	ContextMenu bool
	Search      string
	Placeholder string
	DebounceMS  int
	AnimationMS int
	TypesFile   string
}

// NewRenderCommand creates the render command.
func NewRenderCommand() *cobra.Command {
	opts := &RenderOptions{}

	cmd := &cobra.Command{
		Use:   "render [tree-document.yaml]",
		Short: "Render widget markup to stdout",
		Long: `Render the markup for one tree widget to stdout, using the configured
widget defaults overridden by flags. With a YAML tree document argument,
the render call handing the tree data to the client engine is emitted
after the widget markup.`,
		Example: `  # Markup with configured defaults
  stree render

  # A dark searchable tree seeded from a document
  stree render --theme default-dark --search auto sample.yaml`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, opts, args)
		},
	}

	cmd.Flags().StringVar(&opts.ID, "id", "", "Widget element id (default: generated)")
	cmd.Flags().StringVar(&opts.Theme, "theme", "", "Theme name")
	cmd.Flags().BoolVar(&opts.Checkbox, "checkbox", false, "Enable checkboxes")
	cmd.Flags().BoolVar(&opts.ContextMenu, "contextmenu", false, "Enable the context menu")
	cmd.Flags().StringVar(&opts.Search, "search", "", `Search mode: "off", "auto", or an external input element id`)
	cmd.Flags().StringVar(&opts.Placeholder, "placeholder", "", "Placeholder for the synthesized search input")
	cmd.Flags().IntVar(&opts.DebounceMS, "debounce-ms", 0, "Search debounce in milliseconds")
	cmd.Flags().IntVar(&opts.AnimationMS, "animation-ms", -1, "Animation duration in milliseconds (0 disables)")
	cmd.Flags().StringVar(&opts.TypesFile, "types-file", "", "JSON file with node type definitions")

	return cmd
}

func runRender(cmd *cobra.Command, opts *RenderOptions, args []string) error {
	cfg := GetConfig(cmd.Context())
	logger := GetLogger(cmd.Context())

	widgetCfg := cfg.Widget
	applyRenderFlags(cmd, &widgetCfg, opts)
	if err := widgetCfg.Validate(); err != nil {
		return err
	}

	treeCfg := widgetCfg.ToTreeConfig(opts.ID, logger)

	if opts.TypesFile != "" {
		payload, err := os.ReadFile(opts.TypesFile)
		if err != nil {
			return fmt.Errorf("read types file: %w", err)
		}
		treeCfg.Types = payload
	}

	widget, err := tree.New(treeCfg)
	if err != nil {
		return err
	}
	if err := widget.Render(cmd.Context(), cmd.OutOrStdout()); err != nil {
		return err
	}

	if len(args) == 1 {
		nodes, err := tree.LoadDocumentFile(args[0])
		if err != nil {
			return err
		}
		data, err := tree.MarshalNodes(nodes)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), `<script>stree.render(%q, %s);</script>`,
			widget.OutputID(), tree.SafeInlineJSON(data)); err != nil {
			return err
		}
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout())
	return err
}

// applyRenderFlags overlays explicitly set flags on the configured widget
// defaults.
func applyRenderFlags(cmd *cobra.Command, widgetCfg *config.WidgetConfig, opts *RenderOptions) {
	if opts.Theme != "" {
		widgetCfg.Theme = opts.Theme
	}
	if cmd.Flags().Changed("checkbox") {
		widgetCfg.Checkbox = opts.Checkbox
	}
	if cmd.Flags().Changed("contextmenu") {
		widgetCfg.ContextMenu = opts.ContextMenu
	}
	if cmd.Flags().Changed("animation-ms") {
		widgetCfg.AnimationMS = opts.AnimationMS
	}
	if opts.Search != "" {
		switch config.SearchMode(opts.Search) {
		case config.SearchModeOff:
			widgetCfg.Search = config.SearchConfig{Mode: config.SearchModeOff}
		case config.SearchModeAuto:
			widgetCfg.Search = config.SearchConfig{Mode: config.SearchModeAuto}
		default:
			widgetCfg.Search = config.SearchConfig{Mode: config.SearchModeField, Field: opts.Search}
		}
	}
	if opts.Placeholder != "" {
		widgetCfg.Search.Placeholder = opts.Placeholder
	}
	if cmd.Flags().Changed("debounce-ms") {
		widgetCfg.Search.DebounceMS = opts.DebounceMS
	}
}
