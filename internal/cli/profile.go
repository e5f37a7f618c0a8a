package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

var profileJSON bool

var profileCmd = &cobra.Command{
	Use:   "profile <image>",
	Short: "Print the color profile of an image",
	Long: `Profile samples the image on a fixed grid and reports the share of
pixels falling into each color bucket, plus overall brightness and the
aspect ratio. Useful for checking why the heuristic picked a food.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		profiler := service.NewColorProfiler()
		profile, err := profiler.ProfileFile(args[0])
		if err != nil {
			return err
		}

		if profileJSON {
			return printJSON(cmd, profile)
		}

		out := cmd.OutOrStdout()
		buckets := []struct {
			name  string
			share float64
		}{
			{"white", profile.White},
			{"cream", profile.Cream},
			{"beige", profile.Beige},
			{"green", profile.Green},
			{"orange", profile.Orange},
			{"red", profile.Red},
			{"yellow", profile.Yellow},
			{"brown", profile.Brown},
			{"unclassified", profile.Unclassified},
		}
		for _, b := range buckets {
			fmt.Fprintf(out, "  %-12s %5.1f%%\n", b.name, b.share)
		}
		fmt.Fprintf(out, "\nBrightness: %.1f\n", profile.Brightness)
		fmt.Fprintf(out, "Dimensions: %dx%d (aspect %.2f)\n",
			profile.Width, profile.Height, profile.AspectRatio)
		return nil
	},
}

func init() {
	profileCmd.Flags().BoolVar(&profileJSON, "json", false, "Print the color profile as JSON")
	rootCmd.AddCommand(profileCmd)
}
