package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/claims"
	"github.com/eeandrelle/tally/internal/model"
)

func newReportCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Show the claim summary for the current tax year",
		Args:  cobra.NoArgs,
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

			fmt.Printf("Deduction claims %s (%s)\n", cs.TaxYear, p.cfg.Taxpayer.Name)
			for _, c := range cs.Claims {
				state := "open"
				if c.Finalized {
					state = "finalized"
				}
				fmt.Printf("  %-4s %-45s %12s  %3d receipts  %s\n",
					c.Category, model.CategoryLabels[c.Category],
					c.Amount.StringFixed(2), c.ReceiptCount, state)
			}

			summary := claims.Summary(cs)
			fmt.Printf("Total %s across %d claim(s), %d finalized, %d receipts\n",
				summary.TotalAmount.StringFixed(2), summary.TotalClaims,
				summary.FinalizedCount, summary.TotalReceipts)
			return nil
		},
	}
}
