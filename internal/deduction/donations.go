package deduction

import (
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
)

// MinDonation is the statutory minimum gift amount for deductibility.
var MinDonation = decimal.NewFromInt(2)

// DonationsSummary is the claim-ready workpaper summary for D8.
type DonationsSummary struct {
	Deductible    decimal.Decimal // DGR gifts of $2 or more
	Recorded      decimal.Decimal // everything, countable or not
	CountableRows int
	ReceiptCount  int
}

// Countable reports whether a donation counts toward the deductible total:
// made to a DGR and at least $2. Smaller or non-DGR gifts stay on record but
// are excluded — a hard business rule, not an omission.
func Countable(d model.Donation) bool {
	return d.DGRStatus && d.Amount.GreaterThanOrEqual(MinDonation)
}

// Donations totals the D8 record store.
func Donations(donations []model.Donation) (DonationsSummary, error) {
	summary := DonationsSummary{
		Deductible: decimal.Zero,
		Recorded:   decimal.Zero,
	}
	for _, d := range donations {
		if d.Amount.IsNegative() {
			return DonationsSummary{}, model.ValidationError{Field: "amount", RecordID: d.ID, Reason: "must not be negative"}
		}
		summary.Recorded = summary.Recorded.Add(d.Amount)
		if d.ReceiptHeld {
			summary.ReceiptCount++
		}
		if Countable(d) {
			summary.Deductible = summary.Deductible.Add(d.Amount)
			summary.CountableRows++
		}
	}
	return summary, nil
}
