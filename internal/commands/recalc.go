package commands

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/eeandrelle/tally/internal/auditlog"
	"github.com/eeandrelle/tally/internal/claims"
	"github.com/eeandrelle/tally/internal/deduction"
	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/pool"
)

func newRecalcCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "recalc",
		Short: "Recompute every workpaper and refresh the category claims",
		Long: "Recompute the low-value pool and every category calculator from the\n" +
			"stored records, then write the results into the claim set. Claims whose\n" +
			"workpapers validate are finalized; the rest stay open.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := openProject(opts)
			if err != nil {
				return err
			}
			defer p.Close()

			cs, warnings, err := runRecalc(cmd.Context(), p)
			if err != nil {
				return err
			}

			for _, c := range cs.Claims {
				state := "open"
				if c.Finalized {
					state = "finalized"
				}
				fmt.Printf("%-4s %-45s %12s  %s\n",
					c.Category, model.CategoryLabels[c.Category], c.Amount.StringFixed(2), state)
			}
			for _, w := range warnings {
				fmt.Printf("Warning: %s\n", w)
			}
			return nil
		},
	}
}

// runRecalc derives every claim from the stored workpapers. It is idempotent:
// claims are replaced wholesale, never accumulated, so rerunning after no
// record change yields the same claim set.
func runRecalc(ctx context.Context, p *project) (claims.ClaimSet, []string, error) {
	w, err := p.loadPool(ctx)
	if err != nil {
		return claims.ClaimSet{}, nil, err
	}
	rs, err := p.loadRecords(ctx)
	if err != nil {
		return claims.ClaimSet{}, nil, err
	}
	cs, err := p.loadClaims(ctx)
	if err != nil {
		return claims.ClaimSet{}, nil, err
	}

	var warnings []string

	w = pool.Recalculate(w)
	if err := p.savePool(ctx, w); err != nil {
		return claims.ClaimSet{}, nil, err
	}
	if len(w.Assets) > 0 || w.PriorYearClosing.IsPositive() {
		result := pool.Validate(w)
		warnings = append(warnings, result.Warnings...)
		for _, e := range result.Errors {
			warnings = append(warnings, fmt.Sprintf("%s: %s", model.CategoryLowValuePool, e.Error()))
		}
		cs, err = upsertClaim(cs, model.CategoryClaim{
			Category:     model.CategoryLowValuePool,
			Amount:       w.Summary.DeclineInValue,
			Description:  model.CategoryLabels[model.CategoryLowValuePool],
			ReceiptCount: len(w.Assets),
		}, result.IsValid)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
	}

	if len(rs.EducationExpenses) > 0 || len(rs.EducationAssets) > 0 {
		se, err := deduction.SelfEducation(rs.EducationExpenses, rs.EducationAssets)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
		cs, err = upsertClaim(cs, model.CategoryClaim{
			Category:     model.CategorySelfEducation,
			Amount:       se.Deduction,
			Description:  model.CategoryLabels[model.CategorySelfEducation],
			ReceiptCount: se.ExpenseCount + se.AssetCount,
		}, true)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
	}

	if len(rs.Donations) > 0 {
		d8, err := deduction.Donations(rs.Donations)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
		cs, err = upsertClaim(cs, model.CategoryClaim{
			Category:     model.CategoryDonations,
			Amount:       d8.Deductible,
			Description:  model.CategoryLabels[model.CategoryDonations],
			ReceiptCount: d8.ReceiptCount,
		}, true)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
	}

	if len(rs.SuperContribs) > 0 {
		d10, err := deduction.Super(rs.SuperContribs)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
		if d10.PendingRows > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"%d super contribution(s) awaiting fund acknowledgment are excluded", d10.PendingRows))
		}
		cs, err = upsertClaim(cs, model.CategoryClaim{
			Category:     model.CategorySuper,
			Amount:       d10.Contributions,
			Description:  model.CategoryLabels[model.CategorySuper],
			ReceiptCount: len(rs.SuperContribs) - d10.PendingRows,
		}, true)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
	}

	if len(rs.UPPEntries) > 0 {
		d11, err := deduction.UPP(rs.UPPEntries)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
		cs, err = upsertClaim(cs, model.CategoryClaim{
			Category:     model.CategoryUPP,
			Amount:       d11.Deductible,
			Description:  model.CategoryLabels[model.CategoryUPP],
			ReceiptCount: d11.EntryCount,
		}, true)
		if err != nil {
			return claims.ClaimSet{}, nil, err
		}
	}

	if err := p.saveClaims(ctx, cs); err != nil {
		return claims.ClaimSet{}, nil, err
	}
	p.audit(auditlog.ActionRecalculate, "", "", fmt.Sprintf("%d claim(s)", len(cs.Claims)))
	return cs, warnings, nil
}

func upsertClaim(cs claims.ClaimSet, claim model.CategoryClaim, finalize bool) (claims.ClaimSet, error) {
	cs, err := claims.Set(cs, claim)
	if err != nil {
		return cs, err
	}
	if !finalize {
		return cs, nil
	}
	return claims.Finalize(cs, claim.Category)
}
