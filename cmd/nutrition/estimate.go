package nutrition

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var (
	estimateAPIKey string
	estimateModel  string
)

var estimateCmd = &cobra.Command{
	Use:   "estimate <food> [food ...]",
	Short: "Estimate nutrient profiles for foods and add them to the catalog",
	Long:  "Estimate nutrient profiles with the configured model. Each food is fetched independently; a failure for one leaves the others intact, and invalid profiles are never committed.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := newEstimator(estimateAPIKey, estimateModel)
		if err != nil {
			return err
		}
		if est == nil {
			return fmt.Errorf("missing OpenAI API key; set --api-key or NUTRITION_OPENAI_API_KEY")
		}
		return withSession(func(s *service.Session) error {
			var failures int
			for _, name := range args {
				profile, err := est.EstimateProfile(cmd.Context(), name)
				if err != nil {
					failures++
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %v\n", name, err)
					continue
				}
				serving := model.ServingSize{
					AmountValue: profile.ServingAmount,
					AmountUnit:  profile.ServingUnit,
					Grams:       profile.ServingGrams,
				}
				mapped := service.ProfileFromEstimate(profile.Nutrients, serving, "estimate")
				if err := s.PutProfile(name, mapped); err != nil {
					failures++
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %v\n", name, err)
					continue
				}
				note := ""
				if service.ServingImpliesWhole(profile.ServingUnit) {
					note = " (counted serving)"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %d nutrients per %.0f g%s\n",
					name, len(mapped.Nutrients), mapped.ServingSize.Grams, note)
			}
			if failures == len(args) {
				return fmt.Errorf("all %d estimations failed", failures)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(estimateCmd)
	estimateCmd.Flags().StringVar(&estimateAPIKey, "api-key", "", "OpenAI API key (fallback: NUTRITION_OPENAI_API_KEY)")
	estimateCmd.Flags().StringVar(&estimateModel, "model", "", "Model name (fallback: NUTRITION_OPENAI_MODEL)")
}
