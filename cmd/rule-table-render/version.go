package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dathuynh1108/rule-table-render"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of rule-table-render",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("rule-table-render version %s\n", strings.TrimSpace(tablerender.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
