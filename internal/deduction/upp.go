package deduction

import (
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
)

// UPPSummary is the claim-ready workpaper summary for D11. Deductible amounts
// are pre-apportioned at entry time from the actuarial UPP percentage and are
// never recomputed here.
type UPPSummary struct {
	Deductible decimal.Decimal
	Gross      decimal.Decimal
	EntryCount int
}

// UPP totals the D11 record store.
func UPP(entries []model.UPPEntry) (UPPSummary, error) {
	summary := UPPSummary{
		Deductible: decimal.Zero,
		Gross:      decimal.Zero,
	}
	for _, e := range entries {
		if e.GrossPayment.IsNegative() {
			return UPPSummary{}, model.ValidationError{Field: "grossPayment", RecordID: e.ID, Reason: "must not be negative"}
		}
		if e.DeductibleAmount.IsNegative() {
			return UPPSummary{}, model.ValidationError{Field: "deductibleAmount", RecordID: e.ID, Reason: "must not be negative"}
		}
		if e.DeductibleAmount.GreaterThan(e.GrossPayment) {
			return UPPSummary{}, model.ValidationError{Field: "deductibleAmount", RecordID: e.ID, Reason: "exceeds gross payment"}
		}
		summary.Deductible = summary.Deductible.Add(e.DeductibleAmount)
		summary.Gross = summary.Gross.Add(e.GrossPayment)
		summary.EntryCount++
	}
	return summary, nil
}
