package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dathuynh1108/rule-table-render/internal/cli"
)

var renderCmd = &cobra.Command{
	Use:   "render <template>",
	Short: "Resolve a template and print the payload as JSON",
	Long: `Loads a template document (JSON or YAML), applies any --override values,
resolves all calculated fields and prints the resulting payload.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		renderer, tpl, _, overrides, err := loadTemplate(cmd, args[0])
		if err != nil {
			return err
		}

		payload, err := renderer.BuildPayload(tpl, overrides)
		if err != nil {
			return fmt.Errorf("render failed: %w", err)
		}

		out := os.Stdout
		if path, _ := cmd.Flags().GetString("output"); path != "" {
			f, err := os.Create(path)
			if err != nil {
				return fmt.Errorf("failed to create output file: %w", err)
			}
			defer f.Close()
			out = f
		}

		compact, _ := cmd.Flags().GetBool("compact")
		return cli.WritePayload(out, payload, !compact)
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
	renderCmd.Flags().StringArrayP("override", "o", nil, "Override field values as field=value (repeatable)")
	renderCmd.Flags().StringArray("table", nil, "Render only the given table id (repeatable)")
	renderCmd.Flags().String("output", "", "Write the payload to a file instead of stdout")
	renderCmd.Flags().Bool("compact", false, "Emit compact JSON instead of indented")
}
