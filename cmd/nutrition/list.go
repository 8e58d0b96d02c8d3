package nutrition

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var (
	addUnit    string
	addAPIKey  string
	addModel   string
	listJSON   bool
	updateUnit string
)

var addCmd = &cobra.Command{
	Use:   "add <food> <quantity>",
	Short: "Add a food to the current list",
	Long:  "Add a food to the current list. Quantities in counted units (\"whole\") use learned weights and fall back to model estimation for unknown foods.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := parseQuantityArg("quantity", args[1])
		if err != nil {
			return err
		}
		est, err := newEstimator(addAPIKey, addModel)
		if err != nil {
			return err
		}
		return withSession(func(s *service.Session) error {
			var estimator service.WeightEstimator
			if est != nil {
				estimator = est
			}
			entry, err := s.AddEntry(cmd.Context(), args[0], quantity, addUnit, estimator)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %.1f g (%s)\n", entry.Name, entry.Grams, entry.ID)
			return nil
		})
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Show the current food list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if listJSON {
				b, err := json.MarshalIndent(s.Entries, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal list json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			if len(s.Entries) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "The list is empty. Use: nutrition add <food> <quantity>")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tFOOD\tGRAMS\tUNIT")
			for _, e := range s.Entries {
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%.1f\t%s\n", e.ID, e.Name, e.Grams, e.Unit)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Multiplier: %.3f\n", s.Multiplier)
			return nil
		})
	},
}

var updateCmd = &cobra.Command{
	Use:   "update <id> <quantity>",
	Short: "Update an entry's quantity in place",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		quantity, err := parseQuantityArg("quantity", args[1])
		if err != nil {
			return err
		}
		est, err := newEstimator(addAPIKey, addModel)
		if err != nil {
			return err
		}
		return withSession(func(s *service.Session) error {
			var estimator service.WeightEstimator
			if est != nil {
				estimator = est
			}
			if err := s.UpdateEntry(cmd.Context(), args[0], quantity, updateUnit, estimator); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated entry %s\n", args[0])
			return nil
		})
	},
}

var removeCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an entry from the current list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.RemoveEntry(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		})
	},
}

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove every entry from the current list",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			s.ClearEntries()
			fmt.Fprintln(cmd.OutOrStdout(), "Cleared the current list")
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(addCmd, listCmd, updateCmd, removeCmd, clearCmd)

	addCmd.Flags().StringVar(&addUnit, "unit", "g", "Quantity unit (g, oz, cup, tbsp, tsp, lb, whole, ...)")
	addCmd.Flags().StringVar(&addAPIKey, "api-key", "", "OpenAI API key for weight estimation (fallback: NUTRITION_OPENAI_API_KEY)")
	addCmd.Flags().StringVar(&addModel, "model", "", "Model name for estimation (fallback: NUTRITION_OPENAI_MODEL)")

	updateCmd.Flags().StringVar(&updateUnit, "unit", "g", "Quantity unit")
	updateCmd.Flags().StringVar(&addAPIKey, "api-key", "", "OpenAI API key for weight estimation")
	updateCmd.Flags().StringVar(&addModel, "model", "", "Model name for estimation")

	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output as JSON")
}
