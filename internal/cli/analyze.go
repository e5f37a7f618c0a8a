package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/types"
)

var analyzeJSON bool

var analyzeCmd = &cobra.Command{
	Use:   "analyze <image>",
	Short: "Recognize the foods in a meal photo and compute its nutrition",
	Long: `Analyze runs the full recognition pipeline on a single image file:
filename keywords first, then the color heuristic. The resolved foods
are priced against the built-in nutrition table and summed into meal
totals with macro percentages.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealService, _, err := newMealService()
		if err != nil {
			return err
		}

		input := types.ImageInput{
			Path:     args[0],
			Filename: filepath.Base(args[0]),
		}
		recognition, err := mealService.RecognizeAndAnalyze(cmd.Context(), input)
		if err != nil {
			return err
		}

		if analyzeJSON {
			return printJSON(cmd, recognition)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  (via %s)\n\n", recognition.Description, recognition.Provider)
		for _, food := range recognition.RecognizedFoods {
			fmt.Fprintf(out, "  %-24s %6.0f %-3s %7.1f kcal  (%.0f%% confident, %s)\n",
				food.FoodName, food.Quantity, food.Unit, food.Calories,
				food.Confidence*100, food.Source)
		}
		fmt.Fprintf(out, "\nTotals: %.1f kcal, %.1fg protein, %.1fg carbs, %.1fg fat\n",
			recognition.Totals.Calories, recognition.Totals.Protein,
			recognition.Totals.Carbs, recognition.Totals.Fats)
		fmt.Fprintf(out, "Macros: %.1f%% protein / %.1f%% carbs / %.1f%% fat\n",
			recognition.Macros.Protein, recognition.Macros.Carbs, recognition.Macros.Fats)
		return nil
	},
}

func init() {
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "Print the full recognition result as JSON")
	rootCmd.AddCommand(analyzeCmd)
}
