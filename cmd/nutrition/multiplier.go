package nutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var multiplierCmd = &cobra.Command{
	Use:   "multiplier",
	Short: "Scale all consumed quantities uniformly",
}

var multiplierShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current multiplier",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			fmt.Fprintf(cmd.OutOrStdout(), "Multiplier: %.3f\n", s.Multiplier)
			if s.TargetCalories > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Derived from target: %.0f kcal/day\n", s.TargetCalories)
			}
			return nil
		})
	},
}

var multiplierSetCmd = &cobra.Command{
	Use:   "set <value>",
	Short: "Set the multiplier directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := parseQuantityArg("multiplier", args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *service.Session) error {
			if err := s.SetMultiplier(v); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Multiplier set to %.3f\n", v)
			return nil
		})
	},
}

var multiplierTargetCmd = &cobra.Command{
	Use:   "target <kcal>",
	Short: "Derive the multiplier from a daily calorie target",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := parseQuantityArg("calorie target", args[0])
		if err != nil {
			return err
		}
		return withSession(func(s *service.Session) error {
			if err := s.SetCalorieTarget(target); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Multiplier set to %.3f for %.0f kcal/day\n", s.Multiplier, target)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(multiplierCmd)
	multiplierCmd.AddCommand(multiplierShowCmd, multiplierSetCmd, multiplierTargetCmd)
}
