package cmd

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stiscoron",
		Short: "Visibility planning tool for STIS coronagraphic observations",
		Long: `stiscoron computes where a STIS occulting mask and its diffraction
spikes fall relative to a target star for a given pointing (occulter,
POSTARG offsets, ORIENT roll), warns when the target is left exposed, and
renders the detector overlay.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	// Add subcommands
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newMasksCmd())
	cmd.AddCommand(newSweepCmd())
	cmd.AddCommand(newServeCmd())

	return cmd
}
