package deduction

import (
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
)

// ReductionCap is the statutory $250 reduction of the self-education claim.
var ReductionCap = decimal.NewFromInt(250)

var hundred = decimal.NewFromInt(100)

// SelfEducationSummary is the claim-ready workpaper summary for D4.
type SelfEducationSummary struct {
	ExpenseTotal           decimal.Decimal
	AssetDecline           decimal.Decimal
	TaxableIncomeReduction decimal.Decimal
	Deduction              decimal.Decimal
	ExpenseCount           int
	AssetCount             int
}

// reducible reports whether an expense category counts toward the $250
// taxable-income reduction. Travel and "other" expenses are excluded.
func reducible(c model.ExpenseCategory) bool {
	switch c {
	case model.ExpenseCourseFees, model.ExpenseTextbooks, model.ExpenseStationery:
		return true
	}
	return false
}

func validateExpense(e model.EducationExpense) error {
	if e.Amount.IsNegative() {
		return model.ValidationError{Field: "amount", RecordID: e.ID, Reason: "must not be negative"}
	}
	if !pctInRange(e.WorkRelatedPct) {
		return model.ValidationError{Field: "workRelatedPct", RecordID: e.ID, Reason: "must be between 0 and 100"}
	}
	if !pctInRange(e.PrivateUsePct) {
		return model.ValidationError{Field: "privateUsePct", RecordID: e.ID, Reason: "must be between 0 and 100"}
	}
	return nil
}

func pctInRange(p decimal.Decimal) bool {
	return !p.IsNegative() && p.LessThanOrEqual(hundred)
}

// apportioned returns the deductible share of an expense: the work-related
// percentage applied first, then the private-use apportionment.
func apportioned(e model.EducationExpense) decimal.Decimal {
	work := e.Amount.Mul(e.WorkRelatedPct).Div(hundred)
	return work.Mul(hundred.Sub(e.PrivateUsePct)).Div(hundred).Round(2)
}

// TaxableIncomeReduction computes the $250-capped reduction over the
// work-related share of reducible expenses.
func TaxableIncomeReduction(expenses []model.EducationExpense) (decimal.Decimal, error) {
	base := decimal.Zero
	for _, e := range expenses {
		if err := validateExpense(e); err != nil {
			return decimal.Zero, err
		}
		if !reducible(e.Category) {
			continue
		}
		base = base.Add(e.Amount.Mul(e.WorkRelatedPct).Div(hundred).Round(2))
	}
	return decimal.Min(ReductionCap, base), nil
}

// AssetDecline computes one year's decline-in-value for a self-education
// asset. Depreciation is per-asset (never pooled); the opening balance, when
// set, is the carried-forward base from the prior year.
func AssetDecline(a model.EducationAsset) (decimal.Decimal, error) {
	if a.Cost.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero, model.ValidationError{Field: "cost", RecordID: a.ID, Reason: "must be greater than zero"}
	}
	if a.EffectiveLifeYears <= 0 {
		return decimal.Zero, model.ValidationError{Field: "effectiveLifeYears", RecordID: a.ID, Reason: "must be greater than zero"}
	}
	if !pctInRange(a.BusinessUsePct) {
		return decimal.Zero, model.ValidationError{Field: "businessUsePct", RecordID: a.ID, Reason: "must be between 0 and 100"}
	}

	base := a.Cost
	if a.OpeningBalance.IsPositive() {
		base = a.OpeningBalance
	}
	life := decimal.NewFromInt(int64(a.EffectiveLifeYears))
	use := a.BusinessUsePct.Div(hundred)

	var decline decimal.Decimal
	switch a.Method {
	case model.MethodPrimeCost:
		decline = base.Div(life).Mul(use)
	case model.MethodDiminishingValue:
		decline = base.Mul(decimal.NewFromInt(2)).Div(life).Mul(use)
	default:
		return decimal.Zero, model.ValidationError{Field: "method", RecordID: a.ID, Reason: "unknown depreciation method " + string(a.Method)}
	}
	return decline.Round(2), nil
}

// SelfEducation computes the D4 deduction:
// max(0, apportioned expenses + asset decline - taxable income reduction).
func SelfEducation(expenses []model.EducationExpense, assets []model.EducationAsset) (SelfEducationSummary, error) {
	var summary SelfEducationSummary
	summary.ExpenseTotal = decimal.Zero
	summary.AssetDecline = decimal.Zero

	for _, e := range expenses {
		if err := validateExpense(e); err != nil {
			return SelfEducationSummary{}, err
		}
		summary.ExpenseTotal = summary.ExpenseTotal.Add(apportioned(e))
		summary.ExpenseCount++
	}

	for _, a := range assets {
		decline, err := AssetDecline(a)
		if err != nil {
			return SelfEducationSummary{}, err
		}
		summary.AssetDecline = summary.AssetDecline.Add(decline)
		summary.AssetCount++
	}

	reduction, err := TaxableIncomeReduction(expenses)
	if err != nil {
		return SelfEducationSummary{}, err
	}
	summary.TaxableIncomeReduction = reduction

	deduction := summary.ExpenseTotal.Add(summary.AssetDecline).Sub(reduction)
	summary.Deduction = decimal.Max(decimal.Zero, deduction)
	return summary, nil
}
