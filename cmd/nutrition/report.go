package nutrition

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/model"
	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var reportJSON bool

type reportRow struct {
	Nutrient   string   `json:"nutrient"`
	Amount     float64  `json:"amount"`
	Unit       string   `json:"unit"`
	PercentRDA *float64 `json:"percent_rda"`
	Status     string   `json:"status"`
}

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show nutrient totals scored against the selected RDA table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withSession(func(s *service.Session) error {
			totals := s.Totals()
			rda := s.RDA()

			rows := make([]reportRow, 0, len(model.NutrientKeys)+1)
			for _, key := range model.NutrientKeys {
				pct := service.PercentOfRDA(key, totals, rda)
				rows = append(rows, reportRow{
					Nutrient:   key,
					Amount:     totals.Nutrients[key],
					Unit:       service.CanonicalNutrientUnits[key],
					PercentRDA: pct,
					Status:     service.RDAStatus(pct),
				})
			}
			ratioRow := reportRow{Nutrient: model.Omega36RatioKey, Status: "n/a"}
			if totals.Omega36Ratio != nil {
				ratioRow.Amount = *totals.Omega36Ratio
				pct := service.PercentOfRDA(model.Omega36RatioKey, totals, rda)
				ratioRow.PercentRDA = pct
				ratioRow.Status = service.RDAStatus(pct)
			}
			rows = append(rows, ratioRow)

			if reportJSON {
				b, err := json.MarshalIndent(rows, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal report json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Totals (%d entries, multiplier %.3f, %s RDA)\n", len(s.Entries), s.Multiplier, s.RDAGender)
			fmt.Fprintln(cmd.OutOrStdout(), "NUTRIENT\tAMOUNT\tUNIT\t%RDA\tSTATUS")
			for _, row := range rows {
				pct := "n/a"
				if row.PercentRDA != nil {
					pct = fmt.Sprintf("%.1f", *row.PercentRDA)
				}
				if row.Nutrient == model.Omega36RatioKey && totals.Omega36Ratio == nil {
					fmt.Fprintf(cmd.OutOrStdout(), "%s\tN/A\t\t%s\t%s\n", row.Nutrient, pct, row.Status)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%.2f\t%s\t%s\t%s\n", row.Nutrient, row.Amount, row.Unit, pct, row.Status)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().BoolVar(&reportJSON, "json", false, "Output as JSON")
}
