// Package commands wires the engine packages into the tally CLI.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/buildinfo"
)

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	var opts rootOptions

	rootCmd := &cobra.Command{
		Use:     "tally",
		Short:   "Personal deduction workpapers for Australian tax returns",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVarP(&opts.dir, "dir", "C", ".", "project directory")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(
		newInitCommand(&opts),
		newAssetCommand(&opts),
		newRecordCommand(&opts),
		newRecalcCommand(&opts),
		newReportCommand(&opts),
		newExportCommand(&opts),
		newSuggestCommand(&opts),
		newScanCommand(&opts),
	)

	return rootCmd
}
