package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/dathuynh1108/rule-table-render"
	"github.com/dathuynh1108/rule-table-render/internal/cli"
	"github.com/dathuynh1108/rule-table-render/internal/logging"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

var rootCmd = &cobra.Command{
	Use:   "rule-table-render",
	Short: "rule-table-render resolves declarative table templates into payloads",
	Long: `rule-table-render loads a template of fields, formulas and table layouts,
resolves every calculated field, and emits a fully materialized payload
with display-ready cell strings.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable debug logging")
}

// newLogger builds the process logger from the persistent flags.
func newLogger(cmd *cobra.Command) *slog.Logger {
	level := slog.LevelWarn
	if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
		level = slog.LevelDebug
	}
	return logging.New(level)
}

// loadTemplate resolves the common render inputs shared by most commands:
// the template document, its parsed form, and the typed override map.
func loadTemplate(cmd *cobra.Command, path string) (*tablerender.Renderer, *domain.Template, []byte, map[string]any, error) {
	logger := newLogger(cmd)

	opts := []tablerender.Option{tablerender.WithLogger(logger)}
	if tables, _ := cmd.Flags().GetStringArray("table"); len(tables) > 0 {
		opts = append(opts, tablerender.WithTableFilter(tables...))
	}
	renderer := tablerender.New(opts...)

	doc, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("failed to read template %q: %w", path, err)
	}
	tpl, err := renderer.Load(doc)
	if err != nil {
		return nil, nil, nil, nil, fmt.Errorf("invalid template %q: %w", path, err)
	}

	rawOverrides, _ := cmd.Flags().GetStringArray("override")
	overrides, err := cli.ParseOverrides(rawOverrides)
	if err != nil {
		return nil, nil, nil, nil, err
	}
	return renderer, tpl, doc, overrides, nil
}
