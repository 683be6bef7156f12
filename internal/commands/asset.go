package commands

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/auditlog"
	"github.com/eeandrelle/tally/internal/config"
	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/pool"
)

func newAssetCommand(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage the low-value pool asset ledger",
	}
	cmd.AddCommand(
		newAssetAddCommand(opts),
		newAssetDisposeCommand(opts),
		newAssetListCommand(opts),
		newAssetRolloverCommand(opts),
	)
	return cmd
}

func newAssetAddCommand(opts *rootOptions) *cobra.Command {
	var description, cost, date, openingBalance string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an asset to the low-value pool",
		Long: "Add an asset to the low-value pool. Without --opening-balance the asset\n" +
			"is a first-year addition declining at 18.75%; with it, an existing pool\n" +
			"member declining at 37.5%.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			params := pool.AddAssetParams{Description: description, FirstYear: openingBalance == ""}
			if params.Cost, err = parseAmount("cost", cost); err != nil {
				return err
			}
			if params.AcquisitionDate, err = parseDate(date); err != nil {
				return err
			}
			if openingBalance != "" {
				if params.OpeningBalance, err = parseAmount("opening balance", openingBalance); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			w, err := p.loadPool(ctx)
			if err != nil {
				return err
			}
			w, err = pool.AddAsset(w, params)
			if err != nil {
				return err
			}
			if err := p.savePool(ctx, w); err != nil {
				return err
			}

			added := w.Assets[len(w.Assets)-1]
			p.audit(auditlog.ActionAddAsset, string(model.CategoryLowValuePool), added.ID,
				fmt.Sprintf("%s $%s", added.Description, added.Cost.StringFixed(2)))
			fmt.Printf("Added asset %s (%s); pool closing balance %s\n",
				added.ID, added.Description, w.Summary.ClosingBalance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&description, "description", "", "asset description (required)")
	_ = cmd.MarkFlagRequired("description")
	cmd.Flags().StringVar(&cost, "cost", "", "asset cost (required)")
	_ = cmd.MarkFlagRequired("cost")
	cmd.Flags().StringVar(&date, "date", "", "acquisition date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&openingBalance, "opening-balance", "", "opening balance for an existing pool member")

	return cmd
}

func newAssetDisposeCommand(opts *rootOptions) *cobra.Command {
	var date, disposalType, salePrice, terminationValue string

	cmd := &cobra.Command{
		Use:   "dispose <asset-id>",
		Short: "Record the disposal of a pooled asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			params := pool.DisposalParams{Type: model.DisposalType(disposalType)}
			if params.Date, err = parseDate(date); err != nil {
				return err
			}
			if salePrice != "" {
				if params.SalePrice, err = parseAmount("sale price", salePrice); err != nil {
					return err
				}
			}
			if terminationValue != "" {
				if params.TerminationValue, err = parseAmount("termination value", terminationValue); err != nil {
					return err
				}
			}

			ctx := cmd.Context()
			w, err := p.loadPool(ctx)
			if err != nil {
				return err
			}
			w, err = pool.DisposeAsset(w, args[0], params)
			if err != nil {
				return err
			}
			if err := p.savePool(ctx, w); err != nil {
				return err
			}

			p.audit(auditlog.ActionDisposeAsset, string(model.CategoryLowValuePool), args[0],
				string(params.Type))
			fmt.Printf("Disposed asset %s; pool closing balance %s\n",
				args[0], w.Summary.ClosingBalance.StringFixed(2))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "disposal date YYYY-MM-DD (default: today)")
	cmd.Flags().StringVar(&disposalType, "type", string(model.DisposalSale), "disposal type: sale, scrap, trade-in, other")
	cmd.Flags().StringVar(&salePrice, "sale-price", "", "sale price")
	cmd.Flags().StringVar(&terminationValue, "termination-value", "", "termination value when there is no sale price")

	return cmd
}

func newAssetListCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the pool workpaper for the current tax year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			w, err := p.loadPool(cmd.Context())
			if err != nil {
				return err
			}
			w = pool.Recalculate(w)

			fmt.Printf("Low-value pool %s\n", w.TaxYear)
			for _, a := range w.Assets {
				status := "held"
				if a.Disposed() {
					status = "disposed"
				}
				fmt.Printf("  %-36s  %-24s  cost %10s  decline %10s  closing %10s  %s\n",
					a.ID, a.Description, a.Cost.StringFixed(2),
					a.Decline.StringFixed(2), a.ClosingBalance.StringFixed(2), status)
			}
			s := w.Summary
			fmt.Printf("Opening %s  additions %s  decline %s  disposals %s  closing %s\n",
				s.OpeningBalance.StringFixed(2), s.Additions.StringFixed(2),
				s.DeclineInValue.StringFixed(2), s.DisposalAdjustments.StringFixed(2),
				s.ClosingBalance.StringFixed(2))
			if s.AssessableAdjustment.IsPositive() {
				fmt.Printf("Assessable adjustment %s (disposals exceeded the pool)\n",
					s.AssessableAdjustment.StringFixed(2))
			}
			for _, warning := range pool.Validate(w).Warnings {
				fmt.Printf("Warning: %s\n", warning)
			}
			return nil
		},
	}
}

func newAssetRolloverCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "rollover",
		Short: "Roll the pool into the next tax year and make it current",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			nextYear, err := p.year().Next()
			if err != nil {
				return err
			}

			ctx := cmd.Context()
			w, err := p.loadPool(ctx)
			if err != nil {
				return err
			}
			next, err := pool.Rollover(w, nextYear)
			if err != nil {
				return err
			}
			if err := p.savePool(ctx, next); err != nil {
				return err
			}

			p.cfg.Fiscal.TaxYear = string(nextYear)
			if err := config.Save(filepath.Join(p.dir, "tally.yaml"), p.cfg); err != nil {
				return fmt.Errorf("updating config: %w", err)
			}

			p.audit(auditlog.ActionRecalculate, string(model.CategoryLowValuePool), "",
				"rollover to "+string(nextYear))
			fmt.Printf("Rolled pool into %s: %d assets carried, opening balance %s\n",
				nextYear, len(next.Assets), next.Summary.OpeningBalance.StringFixed(2))
			return nil
		},
	}
}
