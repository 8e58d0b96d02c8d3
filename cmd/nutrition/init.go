package nutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize the database and seed the food catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			path, err := resolveDBPath()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Initialized database at %s (%d foods in catalog)\n", path, len(s.DB))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
