package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/service"
	"github.com/MoetezAbbassi/mealscan/internal/types"
)

var exercisesDifficulty string

var equipmentCmd = &cobra.Command{
	Use:   "equipment",
	Short: "Identify gym equipment and look up exercise suggestions",
}

var equipmentIdentifyCmd = &cobra.Command{
	Use:   "identify <filename>",
	Short: "Identify equipment from an image filename",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		equipmentService, err := newEquipmentService()
		if err != nil {
			return err
		}

		prediction := equipmentService.Identify(types.ImageInput{
			Filename: filepath.Base(args[0]),
		})
		exercises, err := equipmentService.SuggestExercises(prediction.Equipment, "")
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s  (%.0f%% confident, %s)\n\n",
			prediction.DisplayName, prediction.Confidence*100, prediction.Method)
		printExercises(cmd, exercises)
		return nil
	},
}

var equipmentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every piece of equipment in the catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		equipmentService, err := newEquipmentService()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, info := range equipmentService.List() {
			fmt.Fprintf(out, "  %-22s %-24s %2d exercises  (%s)\n",
				info.Key, info.DisplayName, info.TotalExercises,
				strings.Join(info.PrimaryMuscles, ", "))
		}
		return nil
	},
}

var equipmentExercisesCmd = &cobra.Command{
	Use:   "exercises <key>",
	Short: "Show exercise suggestions for a piece of equipment",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		equipmentService, err := newEquipmentService()
		if err != nil {
			return err
		}

		exercises, err := equipmentService.SuggestExercises(args[0], exercisesDifficulty)
		if err != nil {
			return err
		}
		printExercises(cmd, exercises)
		return nil
	},
}

func newEquipmentService() (service.IEquipmentService, error) {
	catalog, err := service.LoadCatalog()
	if err != nil {
		return nil, err
	}
	return service.NewEquipmentService(catalog), nil
}

func printExercises(cmd *cobra.Command, exercises []types.ExerciseSuggestion) {
	out := cmd.OutOrStdout()
	for _, ex := range exercises {
		volume := ""
		switch {
		case ex.RecommendedReps != nil:
			volume = fmt.Sprintf("%d x %d reps", ex.RecommendedSets, *ex.RecommendedReps)
		case ex.RecommendedDuration != nil:
			volume = fmt.Sprintf("%d x %d sec", ex.RecommendedSets, *ex.RecommendedDuration)
		}
		fmt.Fprintf(out, "  %-26s %-16s %-12s %-14s ~%d kcal/set\n",
			ex.Name, ex.PrimaryMuscle, ex.Difficulty, volume,
			ex.EstimatedCaloriesPerSet)
	}
}

func init() {
	equipmentExercisesCmd.Flags().StringVar(&exercisesDifficulty, "difficulty", "", "Filter by difficulty (beginner, intermediate, advanced)")
	equipmentCmd.AddCommand(equipmentIdentifyCmd)
	equipmentCmd.AddCommand(equipmentListCmd)
	equipmentCmd.AddCommand(equipmentExercisesCmd)
	rootCmd.AddCommand(equipmentCmd)
}
