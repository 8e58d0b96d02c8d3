package nutrition

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var foodJSON bool

var foodCmd = &cobra.Command{
	Use:   "food",
	Short: "Manage the food catalog",
}

var foodListCmd = &cobra.Command{
	Use:   "list",
	Short: "List foods in the catalog",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			names := make([]string, 0, len(s.DB))
			for name := range s.DB {
				names = append(names, name)
			}
			sort.Strings(names)
			if foodJSON {
				b, err := json.MarshalIndent(names, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal food list json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "FOOD\tSERVING (g)\tSOURCE")
			for _, name := range names {
				p := s.DB[name]
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.0f\t%s\n", name, p.ServingSize.Grams, p.Source)
			}
			return nil
		})
	},
}

var foodShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a food's nutrient profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			profile, ok := s.Profile(args[0])
			if !ok {
				return fmt.Errorf("food %q not found", args[0])
			}
			if foodJSON {
				b, err := json.MarshalIndent(profile, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal profile json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Serving: %g %s (%.0f g)\n",
				profile.ServingSize.AmountValue, profile.ServingSize.AmountUnit, profile.ServingSize.Grams)
			fmt.Fprintln(cmd.OutOrStdout(), "NUTRIENT\tAMOUNT\tUNIT")
			for _, key := range model.NutrientKeys {
				if amount, ok := profile.Nutrients[key]; ok {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\n", key, amount, service.CanonicalNutrientUnits[key])
				}
			}
			return nil
		})
	},
}

var foodAddFile string

var foodAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a food profile from a JSON file",
	Long:  "Add a food profile from a JSON file (or stdin with --from -). Amounts are taken as already being in each nutrient's canonical unit; unknown nutrient keys are rejected.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var raw []byte
		var err error
		if foodAddFile == "-" {
			raw, err = io.ReadAll(cmd.InOrStdin())
		} else {
			raw, err = os.ReadFile(foodAddFile)
		}
		if err != nil {
			return fmt.Errorf("read profile: %w", err)
		}
		var profile model.NutrientProfile
		if err := json.Unmarshal(raw, &profile); err != nil {
			return fmt.Errorf("decode profile: %w", err)
		}
		for key := range profile.Nutrients {
			if _, ok := service.CanonicalNutrientUnits[key]; !ok {
				return fmt.Errorf("unknown nutrient key %q", key)
			}
		}
		if profile.ServingSize.Grams <= 0 {
			profile.ServingSize = model.DefaultServingSize()
		}
		if profile.Source == "" {
			profile.Source = "manual"
		}
		return withSession(func(s *service.Session) error {
			if err := s.PutProfile(args[0], profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %d nutrients per %.0f g\n",
				args[0], len(profile.Nutrients), profile.ServingSize.Grams)
			return nil
		})
	},
}

var foodRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a food from the catalog",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			if err := s.RemoveProfile(args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %s from the catalog\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(foodCmd)
	foodCmd.AddCommand(foodListCmd, foodShowCmd, foodAddCmd, foodRemoveCmd)
	for _, c := range []*cobra.Command{foodListCmd, foodShowCmd} {
		c.Flags().BoolVar(&foodJSON, "json", false, "Output as JSON")
	}
	foodAddCmd.Flags().StringVar(&foodAddFile, "from", "-", "Profile JSON file ( - for stdin)")
}
