package nutrition

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var dbPath string

var rootCmd = &cobra.Command{
	Use:   "nutrition",
	Short: "nutrition tracks foods against daily nutrient targets",
	Long:  "nutrition is a local-first nutrient tracking CLI: build a food list, scale it, and score the totals against recommended daily allowances.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to SQLite database (fallback: NUTRITION_DB)")
}
