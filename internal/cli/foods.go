package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

var (
	foodsSearchLimit int
	foodsShowQty     float64
	foodsShowUnit    string
)

var foodsCmd = &cobra.Command{
	Use:   "foods",
	Short: "Search and inspect the built-in nutrition table",
}

var foodsSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search foods by name",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealService, _, err := newMealService()
		if err != nil {
			return err
		}

		query := strings.Join(args, " ")
		results := mealService.SearchFoods(query, foodsSearchLimit)
		if len(results) == 0 {
			fmt.Fprintf(cmd.OutOrStdout(), "no foods matching %q\n", query)
			return nil
		}

		out := cmd.OutOrStdout()
		for _, food := range results {
			fmt.Fprintf(out, "  %-28s %6.0f kcal/100%s  (default %.0f%s)\n",
				food.FoodName, food.CaloriesPer100g, food.DefaultUnit,
				food.DefaultServing, food.DefaultUnit)
		}
		return nil
	},
}

var foodsShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show the nutrition values for one food",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mealService, catalog, err := newMealService()
		if err != nil {
			return err
		}

		name := strings.Join(args, " ")
		food, err := mealService.FoodDetails(name)
		if err != nil {
			return err
		}

		if foodsShowQty > 0 {
			record := service.NewNutritionResolver(catalog, nil).Resolve(cmd.Context(), name, foodsShowQty, foodsShowUnit)
			return printJSON(cmd, record)
		}
		return printJSON(cmd, food)
	},
}

func init() {
	foodsSearchCmd.Flags().IntVar(&foodsSearchLimit, "limit", 0, "Maximum number of results (0 uses the server default)")
	foodsShowCmd.Flags().Float64Var(&foodsShowQty, "quantity", 0, "Scale the values to this quantity instead of reporting the table entry")
	foodsShowCmd.Flags().StringVar(&foodsShowUnit, "unit", "", "Unit for --quantity (defaults to the food's table unit)")
	foodsCmd.AddCommand(foodsSearchCmd)
	foodsCmd.AddCommand(foodsShowCmd)
	rootCmd.AddCommand(foodsCmd)
}
