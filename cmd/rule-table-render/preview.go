package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	htmlview "github.com/dathuynh1108/rule-table-render/internal/presentation/html"
	"github.com/dathuynh1108/rule-table-render/internal/presentation/markdown"
	"github.com/dathuynh1108/rule-table-render/pkg/domain"
)

var previewCmd = &cobra.Command{
	Use:   "preview <template>...",
	Short: "Render templates as a human-readable preview",
	Long: `Resolves one or more templates and renders them for reading: styled
markdown on the terminal by default, or a standalone HTML document
with --html.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		payloads := make([]*domain.Payload, 0, len(args))
		for _, path := range args {
			renderer, tpl, _, overrides, err := loadTemplate(cmd, path)
			if err != nil {
				return err
			}
			payload, err := renderer.BuildPayload(tpl, overrides)
			if err != nil {
				return fmt.Errorf("render failed for %q: %w", path, err)
			}
			payloads = append(payloads, payload)
		}

		if asHTML, _ := cmd.Flags().GetBool("html"); asHTML {
			doc := htmlview.Document(payloads)
			if path, _ := cmd.Flags().GetString("output"); path != "" {
				if err := os.WriteFile(path, []byte(doc), 0o644); err != nil {
					return fmt.Errorf("failed to write HTML preview: %w", err)
				}
				fmt.Printf("Rendered HTML preview to %s\n", path)
				return nil
			}
			fmt.Print(doc)
			return nil
		}

		styled := markdown.NewTerminalRenderer()
		for _, payload := range payloads {
			out, err := styled(markdown.Render(payload))
			if err != nil {
				out = markdown.Render(payload)
			}
			fmt.Print(out)
			fmt.Println(markdown.StatusLine(payload))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
	previewCmd.Flags().StringArrayP("override", "o", nil, "Override field values as field=value (repeatable)")
	previewCmd.Flags().StringArray("table", nil, "Render only the given table id (repeatable)")
	previewCmd.Flags().Bool("html", false, "Emit a standalone HTML document instead of terminal markdown")
	previewCmd.Flags().String("output", "", "Write the HTML preview to a file")
}
