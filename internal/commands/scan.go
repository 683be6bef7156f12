package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/extract"
)

func newScanCommand(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan <file>",
		Short: "Extract invoice fields from a document and grade the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("reading document: %w", err)
			}

			parser, err := extract.NewRegistry().Get(format)
			if err != nil {
				return err
			}
			inv, err := parser.Parse(string(data))
			if err != nil {
				return fmt.Errorf("parsing document: %w", err)
			}

			printField := func(label string, f *extract.StringField) {
				if f == nil {
					return
				}
				fmt.Printf("  %-15s %-30s (confidence %.2f)\n", label, f.Value, f.Confidence)
			}
			printField("Vendor", inv.VendorName)
			printField("ABN", inv.ABN)
			printField("Invoice no.", inv.InvoiceNumber)
			printField("Date", inv.InvoiceDate)
			if inv.TotalAmount != nil {
				fmt.Printf("  %-15s %-30s (confidence %.2f)\n", "Total",
					"$"+inv.TotalAmount.Value.StringFixed(2), inv.TotalAmount.Confidence)
			}
			if inv.GSTAmount != nil {
				fmt.Printf("  %-15s %-30s (confidence %.2f)\n", "GST",
					"$"+inv.GSTAmount.Value.StringFixed(2), inv.GSTAmount.Confidence)
			}
			printField("Terms", inv.PaymentTerms)

			verdict := extract.Validate(inv, extract.Thresholds{
				AutoAccept: p.cfg.Thresholds.AutoAccept,
				ReviewFlag: p.cfg.Thresholds.ReviewFlag,
			})
			fmt.Printf("Overall confidence %.2f, suggested action: %s\n",
				inv.OverallConfidence, verdict.SuggestedAction)
			for _, f := range verdict.MissingFields {
				fmt.Printf("  missing: %s\n", f)
			}
			for _, w := range verdict.Warnings {
				fmt.Printf("  warning: %s\n", w)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "document format")

	return cmd
}
