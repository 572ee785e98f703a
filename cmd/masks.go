package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/seawander/stiscoron/internal/occulter"
)

func newMasksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "masks",
		Short: "List the supported occulters and their detector positions",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := occulter.Load()
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MASK\tCENTER X\tCENTER Y")
			for _, name := range cat.Names() {
				entry, err := cat.Entry(name)
				if err != nil {
					return err
				}
				fmt.Fprintf(w, "%s\t%.2f\t%.2f\n", entry.Name, entry.Center.X, entry.Center.Y)
			}
			return w.Flush()
		},
	}

	return cmd
}
