package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mealscan",
	Short: "Analyze meal photos and browse the nutrition catalog from the command line",
	Long: `mealscan runs the food recognition pipeline locally, without the HTTP
server: it profiles the colors of a photo, matches the profile against
the food rules and resolves nutrition from the built-in table.

It also exposes the nutrition table and the gym equipment catalog for
quick lookups, and can verify that the embedded data files are
internally consistent.`,
	SilenceUsage: true,
}

// Execute runs the root command. This is called by main.main().
func Execute() error {
	return rootCmd.Execute()
}

// newMealService builds the local analysis stack: embedded catalog, no
// external nutrition API, no cache.
func newMealService() (service.IMealService, *service.Catalog, error) {
	catalog, err := service.LoadCatalog()
	if err != nil {
		return nil, nil, err
	}

	profiler := service.NewColorProfiler()
	classifier := service.NewHeuristicClassifier(catalog)
	resolver := service.NewNutritionResolver(catalog, nil)
	aggregator := service.NewMealAggregator()

	mealService := service.NewMealService(catalog, resolver, aggregator,
		service.NewKeywordRecognizer(catalog),
		service.NewHeuristicRecognizer(profiler, classifier),
	)
	return mealService, catalog, nil
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}
