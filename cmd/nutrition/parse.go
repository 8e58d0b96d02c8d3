package nutrition

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/captain-stacks/nutrition-gpt/internal/service"
)

var (
	parseAPIKey string
	parseModel  string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file|->",
	Short: "Parse a free-text meal description and add the items",
	Long:  "Parse a free-text meal description (a file, or stdin with \"-\") into foods with quantities, weight-resolve each, and append them to the current list. A failure on one item leaves the rest intact.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		est, err := newEstimator(parseAPIKey, parseModel)
		if err != nil {
			return err
		}
		if est == nil {
			return fmt.Errorf("missing OpenAI API key; set --api-key or NUTRITION_OPENAI_API_KEY")
		}

		var text string
		if args[0] == "-" {
			b, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read meal text from stdin: %w", err)
			}
			text = string(b)
		} else {
			b, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read meal text: %w", err)
			}
			text = string(b)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("meal description is empty")
		}

		items, err := est.ParseMealText(cmd.Context(), text)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return fmt.Errorf("no foods recognized in the meal description")
		}

		return withSession(func(s *service.Session) error {
			var added int
			for _, item := range items {
				entry, err := s.AddEntry(cmd.Context(), item.Name, item.Quantity, item.Unit, est)
				if err != nil {
					fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %v\n", item.Name, err)
					continue
				}
				added++
				fmt.Fprintf(cmd.OutOrStdout(), "Added %s: %.1f g\n", entry.Name, entry.Grams)
			}
			if added == 0 {
				return fmt.Errorf("no items could be added")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added %d of %d items\n", added, len(items))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVar(&parseAPIKey, "api-key", "", "OpenAI API key (fallback: NUTRITION_OPENAI_API_KEY)")
	parseCmd.Flags().StringVar(&parseModel, "model", "", "Model name (fallback: NUTRITION_OPENAI_MODEL)")
}
