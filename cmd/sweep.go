package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/report"
	"github.com/seawander/stiscoron/internal/sweep"
)

func newSweepCmd() *cobra.Command {
	var mask string
	var postarg1 float64
	var postarg2 float64
	var orientStart float64
	var orientEnd float64
	var orientStep float64
	var output string
	var yamlPath string

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Evaluate a pointing over a range of ORIENT angles",
		Long: `Runs the visibility check for every ORIENT angle in the given range and
reports which fraction of the schedulable roll angles keeps the target
occulted. The per-angle records can be written to Parquet or JSONL for
further analysis; the format follows the output file extension.`,
		Example: `  # Full roll sweep for an offset BAR10 pointing
  stiscoron sweep --mask BAR10 --postarg1 0.3 --output sweep.parquet

  # Coarse sweep to JSONL with a summary report
  stiscoron sweep --mask WEDGEA2.0 --orient-step 15 --output sweep.jsonl --yaml summary.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := occulter.Load()
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}

			grid := sweep.Grid{
				Mask:        mask,
				PosTarg1:    postarg1,
				PosTarg2:    postarg2,
				OrientStart: orientStart,
				OrientEnd:   orientEnd,
				OrientStep:  orientStep,
			}

			slog.Info("Running orient sweep", "mask", mask,
				"from", orientStart, "to", orientEnd, "step", orientStep)

			records, err := sweep.Run(cat, grid)
			if err != nil {
				return err
			}

			summary := sweep.Summarize(records)
			cmd.Printf("%d of %d orient angles keep the target occulted (%.1f%%)\n",
				summary.Occulted, summary.Total, 100*summary.Fraction)
			if summary.Occulted == 0 {
				cmd.Println("\nWARNING: no orient angle in this range puts your target behind the occulter")
			}

			if output != "" {
				if err := sweep.WriteRecords(output, records); err != nil {
					return err
				}
				cmd.Printf("Records saved to: %s\n", output)
			}

			if yamlPath != "" {
				if err := report.SaveSweep(yamlPath, grid, summary); err != nil {
					return err
				}
				cmd.Printf("Summary saved to: %s\n", yamlPath)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&mask, "mask", "m", "", "Occulter identifier (e.g. BAR5, WEDGEA1.0)")
	cmd.Flags().Float64Var(&postarg1, "postarg1", 0, "POSTARG1 offset in arcseconds (detector X)")
	cmd.Flags().Float64Var(&postarg2, "postarg2", 0, "POSTARG2 offset in arcseconds (detector Y)")
	cmd.Flags().Float64Var(&orientStart, "orient-start", 0, "First ORIENT angle in degrees")
	cmd.Flags().Float64Var(&orientEnd, "orient-end", 359, "Last ORIENT angle in degrees")
	cmd.Flags().Float64Var(&orientStep, "orient-step", 1, "ORIENT step in degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write per-angle records to this path (.parquet or .jsonl)")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "Write the sweep summary as YAML to this path")
	_ = cmd.MarkFlagRequired("mask")

	return cmd
}
