package pool

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/taxyear"
)

// writeOffWarnBelow flags a positive closing balance small enough to be a
// candidate for an immediate pool write-off.
var writeOffWarnBelow = decimal.NewFromInt(100)

// ValidationResult reports structural errors and advisory warnings for a
// workpaper. Export is gated on IsValid.
type ValidationResult struct {
	IsValid  bool
	Errors   []model.ValidationError
	Warnings []string
}

// Validate checks every asset and the derived summary. Errors mark the
// workpaper structurally invalid; warnings are advisory only.
func Validate(w model.PoolWorkpaper) ValidationResult {
	var result ValidationResult

	if !taxyear.Valid(w.TaxYear) {
		result.Errors = append(result.Errors, model.ValidationError{
			Field:  "taxYear",
			Reason: fmt.Sprintf("malformed tax year %q", w.TaxYear),
		})
	}
	if w.PriorYearClosing.IsNegative() {
		result.Errors = append(result.Errors, model.ValidationError{
			Field:  "priorYearClosing",
			Reason: "must not be negative",
		})
	}

	for _, a := range w.Assets {
		if a.Cost.LessThanOrEqual(decimal.Zero) {
			result.Errors = append(result.Errors, model.ValidationError{
				Field:    "cost",
				RecordID: a.ID,
				Reason:   "must be greater than zero",
			})
		}
		if !a.FirstYear && a.OpeningBalance.LessThanOrEqual(decimal.Zero) {
			result.Errors = append(result.Errors, model.ValidationError{
				Field:    "openingBalance",
				RecordID: a.ID,
				Reason:   "must be greater than zero for a pool member",
			})
		}
		if a.Disposed() {
			if a.Disposal.Date.Before(a.AcquisitionDate) {
				result.Errors = append(result.Errors, model.ValidationError{
					Field:    "disposal.date",
					RecordID: a.ID,
					Reason:   "disposal precedes acquisition",
				})
			} else if taxyear.ForDate(a.Disposal.Date) == taxyear.ForDate(a.AcquisitionDate) {
				result.Warnings = append(result.Warnings,
					fmt.Sprintf("asset %s (%s) disposed in its acquisition year; reduced-rate rules apply", a.ID, a.Description))
			}
		}
	}

	recalced := Recalculate(w)
	closing := recalced.Summary.ClosingBalance
	if closing.IsPositive() && closing.LessThan(writeOffWarnBelow) {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("closing balance %s is near zero; consider a pool write-off", closing.StringFixed(2)))
	}

	result.IsValid = len(result.Errors) == 0
	return result
}
