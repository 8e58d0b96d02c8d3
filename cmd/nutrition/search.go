package nutrition

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/provider/usda"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var (
	searchAPIKey string
	searchLimit  int
	searchSaveAs string
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search USDA FoodData Central and optionally save a result",
	Long:  "Search USDA FoodData Central for a food. With --save, the best match is translated into the catalog's nutrient schema and stored under the given name.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		apiKey := resolveUSDAKey(searchAPIKey)
		if apiKey == "" {
			return fmt.Errorf("missing USDA API key; set --api-key or NUTRITION_USDA_API_KEY")
		}
		query := strings.Join(args, " ")
		client := &usda.Client{APIKey: apiKey}

		var records []usda.FoodRecord
		err := dispatcher.Do(cmd.Context(), func(ctx context.Context) error {
			var err error
			records, err = client.Search(ctx, query, searchLimit)
			return err
		})
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return fmt.Errorf("no USDA results for %q", query)
		}

		if strings.TrimSpace(searchSaveAs) == "" {
			fmt.Fprintln(cmd.OutOrStdout(), "FDC ID\tDESCRIPTION\tSERVING")
			for _, rec := range records {
				serving := ""
				if rec.ServingSize > 0 {
					serving = fmt.Sprintf("%g %s", rec.ServingSize, rec.ServingSizeUnit)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", rec.FDCID, rec.Description, serving)
			}
			return nil
		}

		best := records[0]
		external := make([]service.ExternalNutrient, 0, len(best.Nutrients))
		for _, n := range best.Nutrients {
			external = append(external, service.ExternalNutrient{Name: n.Name, Value: n.Value, Unit: n.Unit})
		}
		serving := servingFromUSDA(best)
		profile := service.ProfileFromExternal(external, serving, "usda")
		if len(profile.Nutrients) == 0 {
			return fmt.Errorf("USDA record %d carried no recognizable nutrients", best.FDCID)
		}

		return withSession(func(s *service.Session) error {
			if err := s.PutProfile(searchSaveAs, profile); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Saved %q from USDA record %d (%s)\n", searchSaveAs, best.FDCID, best.Description)
			return nil
		})
	},
}

// servingFromUSDA converts a record's serving descriptor to grams, falling
// back to the per-100g default when the unit is not a mass.
func servingFromUSDA(rec usda.FoodRecord) model.ServingSize {
	if rec.ServingSize > 0 {
		if grams, ok := service.ConvertToGrams(rec.ServingSize, rec.ServingSizeUnit); ok && grams > 0 {
			return model.ServingSize{AmountValue: rec.ServingSize, AmountUnit: rec.ServingSizeUnit, Grams: grams}
		}
	}
	return model.DefaultServingSize()
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().StringVar(&searchAPIKey, "api-key", "", "USDA API key (fallback: NUTRITION_USDA_API_KEY)")
	searchCmd.Flags().IntVar(&searchLimit, "limit", 10, "Max results to return")
	searchCmd.Flags().StringVar(&searchSaveAs, "save", "", "Save the best match into the catalog under this name")
}
