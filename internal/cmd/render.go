package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Iron-Ham/reactor/internal/app"
	"github.com/Iron-Ham/reactor/internal/config"
	"github.com/Iron-Ham/reactor/internal/demo"
	"github.com/Iron-Ham/reactor/internal/host/memdom"
	"github.com/Iron-Ham/reactor/internal/tui"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Render the first frame of the news reader",
	Long: `Render the news reader once, without a terminal, and print the result.

Formats:
  html  - the live tree as markup
  yaml  - a structured snapshot of the live tree
  text  - the terminal rendering

Read markers are not loaded or saved.`,
	Args: cobra.NoArgs,
	RunE: runRender,
}

var (
	renderFormat string
	renderWidth  int
)

// RenderFormats returns the formats render accepts
func RenderFormats() []string {
	return []string{"html", "yaml", "text"}
}

func init() {
	rootCmd.AddCommand(renderCmd)

	renderCmd.Flags().StringVarP(&renderFormat, "format", "f", "html", "output format: "+strings.Join(RenderFormats(), ", "))
	renderCmd.Flags().IntVarP(&renderWidth, "width", "w", 80, "line width for text output (0 disables truncation)")
}

func runRender(cmd *cobra.Command, args []string) error {
	if !slices.Contains(RenderFormats(), renderFormat) {
		return fmt.Errorf("unknown format %q (valid: %s)", renderFormat, strings.Join(RenderFormats(), ", "))
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	cfg.Storage = config.StorageConfig{Backend: "memory"}
	cfg.Demo.FeedCommand = ""
	env, err := setupWith(cfg)
	if err != nil {
		return err
	}
	defer env.close()

	doc := memdom.New()
	mount := doc.Element("main")
	body := doc.Element("body", mount)
	q := app.NewQueue(nil)

	a, err := app.Start(env.reader(nil, nil).AppConfig(app.Config[*demo.State]{
		Node:     mount,
		Document: doc,
		Loop:     q,
		Logger:   env.logger,
	}))
	if err != nil {
		return err
	}
	q.Drain()
	a.Stop()

	out := cmd.OutOrStdout()
	switch renderFormat {
	case "html":
		fmt.Fprintln(out, memdom.Outer(a.Node()))
	case "yaml":
		data, err := memdom.Snap(a.Node()).YAML()
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		_, _ = out.Write(data)
	case "text":
		fmt.Fprintln(out, tui.Render(body, renderWidth, env.theme))
	}
	return nil
}
