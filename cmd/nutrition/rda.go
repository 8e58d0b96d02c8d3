package nutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var rdaCmd = &cobra.Command{
	Use:   "rda",
	Short: "Inspect or select the RDA target table",
}

var rdaShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the selected RDA table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			rda := s.RDA()
			fmt.Fprintf(cmd.OutOrStdout(), "RDA table: %s\n", s.RDAGender)
			fmt.Fprintln(cmd.OutOrStdout(), "NUTRIENT\tTARGET\tUNIT")
			for _, key := range model.NutrientKeys {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\t%s\n", key, rda[key], service.CanonicalNutrientUnits[key])
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%g\t\n", model.Omega36RatioKey, rda[model.Omega36RatioKey])
			return nil
		})
	},
}

var rdaGenderCmd = &cobra.Command{
	Use:   "gender <male|female>",
	Short: "Select the RDA gender variant",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.SetRDAGender(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "RDA table set to %s\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rdaCmd)
	rdaCmd.AddCommand(rdaShowCmd, rdaGenderCmd)
}
