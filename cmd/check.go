package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/seawander/stiscoron/internal/occulter"
	"github.com/seawander/stiscoron/internal/pointing"
	"github.com/seawander/stiscoron/internal/render"
	"github.com/seawander/stiscoron/internal/report"
)

func newCheckCmd() *cobra.Command {
	var mask string
	var postarg1 float64
	var postarg2 float64
	var orient float64
	var output string
	var yamlPath string

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether a pointing keeps the target occulted",
		Long: `Evaluates one pointing against the STIS occulter calibration: the
occulter footprint and diffraction-spike shadow are placed on the detector
for the given POSTARG offsets and ORIENT roll, and the target is tested
against them.

A target that ends up exposed is not an error; the command still completes
and renders, but it prints an advisory warning so nobody mistakes an
unprotected target for a protected one.`,
		Example: `  # Nominal BAR5 pointing
  stiscoron check --mask BAR5

  # Offset pointing with overlay image
  stiscoron check --mask WEDGEA1.0 --postarg1 0.2 --orient 115 --output overlay.png

  # Save the verdict for the visit documentation
  stiscoron check --mask BAR10 --yaml pointing.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := occulter.Load()
			if err != nil {
				return fmt.Errorf("failed to load calibration: %w", err)
			}

			cfg := pointing.Config{Mask: mask, PosTarg1: postarg1, PosTarg2: postarg2, Orient: orient}
			res, err := pointing.Evaluate(cat, cfg)
			if err != nil {
				return err
			}

			printResult(cmd, res)

			if yamlPath != "" {
				if err := report.SavePointing(yamlPath, cfg, res); err != nil {
					return err
				}
				cmd.Printf("Report saved to: %s\n", yamlPath)
			}

			if output != "" {
				if err := render.Save(output, cat, res); err != nil {
					return err
				}
				cmd.Printf("Overlay saved to: %s\n", output)
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&mask, "mask", "m", "", "Occulter identifier (e.g. BAR5, WEDGEA1.0)")
	cmd.Flags().Float64Var(&postarg1, "postarg1", 0, "POSTARG1 offset in arcseconds (detector X)")
	cmd.Flags().Float64Var(&postarg2, "postarg2", 0, "POSTARG2 offset in arcseconds (detector Y)")
	cmd.Flags().Float64Var(&orient, "orient", 0, "ORIENT roll angle in degrees")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the overlay PNG to this path")
	cmd.Flags().StringVar(&yamlPath, "yaml", "", "Write the result as YAML to this path")
	_ = cmd.MarkFlagRequired("mask")

	return cmd
}

func printResult(cmd *cobra.Command, res *pointing.Result) {
	verdict := "occulted"
	if !res.Occulted {
		verdict = "NOT occulted"
	}
	cmd.Printf("%s  ORIENT=%.1f  target=(%.2f, %.2f) px  ->  target %s\n",
		res.Mask, res.Orient, res.Target.X, res.Target.Y, verdict)

	for _, w := range res.Warnings {
		cmd.Printf("\nWARNING: %s\n", w)
	}
}
