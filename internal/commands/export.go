package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/auditlog"
	"github.com/eeandrelle/tally/internal/lodgment"
	"github.com/eeandrelle/tally/internal/model"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var include []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the lodgment export for the current tax year",
		Long: "Write the lodgment-ready JSON export. Every exported category must be\n" +
			"finalized; run \"tally recalc\" first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			cs, err := p.loadClaims(cmd.Context())
			if err != nil {
				return err
			}

			var categories []model.AtoCategory
			for _, c := range include {
				categories = append(categories, model.AtoCategory(c))
			}

			export, err := lodgment.Export(cs, categories, time.Now())
			if err != nil {
				return err
			}
			result, err := lodgment.WriteFile(p.exportDir(), export)
			if err != nil {
				return err
			}

			p.audit(auditlog.ActionExport, "", "",
				fmt.Sprintf("%s (%d bytes)", result.Path, result.Size))
			fmt.Printf("Exported %d categories totalling %s to %s (%d bytes)\n",
				len(export.Categories), export.TotalAmount.StringFixed(2), result.Path, result.Size)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&include, "include", nil,
		"categories to export, e.g. D4,D8 (default: all claimed)")

	return cmd
}
