package deduction

import (
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
)

// SuperSummary is the claim-ready workpaper summary for D10. A contribution
// is deductible only once the fund has acknowledged the notice of intent;
// pending entries are tracked for reminders but excluded from the total.
type SuperSummary struct {
	Contributions decimal.Decimal // acknowledged only
	AllTotal      decimal.Decimal // acknowledged + pending
	PendingRows   int
}

// Super totals the D10 record store.
func Super(contribs []model.SuperContribution) (SuperSummary, error) {
	summary := SuperSummary{
		Contributions: decimal.Zero,
		AllTotal:      decimal.Zero,
	}
	for _, c := range contribs {
		if c.Amount.IsNegative() {
			return SuperSummary{}, model.ValidationError{Field: "amount", RecordID: c.ID, Reason: "must not be negative"}
		}
		summary.AllTotal = summary.AllTotal.Add(c.Amount)
		if c.AcknowledgmentReceived {
			summary.Contributions = summary.Contributions.Add(c.Amount)
		} else {
			summary.PendingRows++
		}
	}
	return summary, nil
}
