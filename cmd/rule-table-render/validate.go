package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dathuynh1108/rule-table-render"
	"github.com/dathuynh1108/rule-table-render/pkg/schema"
)

var validateCmd = &cobra.Command{
	Use:   "validate <template>...",
	Short: "Check template documents for structural problems",
	Long: `Parses each template and reports every structural problem found:
duplicate field ids, formulas on user fields, duplicate column keys,
over-deep row trees.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		renderer := tablerender.New(tablerender.WithLogger(newLogger(cmd)))

		failed := false
		for _, path := range args {
			if _, err := renderer.LoadFile(path); err != nil {
				failed = true
				verrs := schema.ValidationErrors(err)
				if len(verrs) == 0 {
					fmt.Printf("%s: %v\n", path, err)
					continue
				}
				fmt.Printf("%s: invalid\n", path)
				for _, verr := range verrs {
					fmt.Printf("  - %v\n", verr)
				}
				continue
			}
			fmt.Printf("%s: ok ✅\n", path)
		}
		if failed {
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
