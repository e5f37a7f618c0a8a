package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/MoetezAbbassi/mealscan/internal/service"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify that the embedded data files are internally consistent",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		catalog, err := service.LoadCatalog()
		if err != nil {
			return err
		}

		problems := catalog.Verify()
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Fprintln(cmd.OutOrStdout(), p)
			}
			return fmt.Errorf("catalog has %d problem(s)", len(problems))
		}

		fmt.Fprintf(cmd.OutOrStdout(), "catalog OK (%d foods, %d machines)\n",
			len(catalog.Foods()), len(catalog.Equipment()))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
