// Package claims manages category deduction claims for a tax year and
// aggregates them into the year summary. It only reads amounts the category
// calculators produced; it never recomputes a category, preserving a single
// source of truth.
package claims

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/taxyear"
)

// UnknownClaimError reports a category with no claim in the set.
type UnknownClaimError struct {
	Category model.AtoCategory
}

func (e UnknownClaimError) Error() string {
	return fmt.Sprintf("no claim for category %s", e.Category)
}

// ClaimSet holds at most one claim per category for a tax year.
type ClaimSet struct {
	TaxYear string                `json:"taxYear"`
	Claims  []model.CategoryClaim `json:"claims"`
}

// New returns an empty claim set for a tax year.
func New(year taxyear.Year) ClaimSet {
	return ClaimSet{TaxYear: string(year)}
}

func (cs ClaimSet) clone() ClaimSet {
	out := cs
	out.Claims = make([]model.CategoryClaim, len(cs.Claims))
	copy(out.Claims, cs.Claims)
	return out
}

func (cs ClaimSet) indexOf(category model.AtoCategory) int {
	for i, c := range cs.Claims {
		if c.Category == category {
			return i
		}
	}
	return -1
}

// Get returns the claim for a category.
func (cs ClaimSet) Get(category model.AtoCategory) (model.CategoryClaim, bool) {
	idx := cs.indexOf(category)
	if idx < 0 {
		return model.CategoryClaim{}, false
	}
	return cs.Claims[idx], true
}

func validate(cs ClaimSet, claim model.CategoryClaim) error {
	if !claim.Category.Valid() {
		return model.ValidationError{Field: "category", Reason: fmt.Sprintf("unknown category %q", claim.Category)}
	}
	if claim.Amount.IsNegative() {
		return model.ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	if claim.TaxYear != "" && claim.TaxYear != cs.TaxYear {
		return model.ValidationError{Field: "taxYear", Reason: fmt.Sprintf("claim year %s does not match set year %s", claim.TaxYear, cs.TaxYear)}
	}
	return nil
}

// Set stores a claim, replacing any existing claim for the same category.
func Set(cs ClaimSet, claim model.CategoryClaim) (ClaimSet, error) {
	if err := validate(cs, claim); err != nil {
		return cs, err
	}
	claim.TaxYear = cs.TaxYear

	next := cs.clone()
	if idx := next.indexOf(claim.Category); idx >= 0 {
		next.Claims[idx] = claim
		return next, nil
	}
	next.Claims = append(next.Claims, claim)
	return next, nil
}

// Add accumulates onto the category's claim, creating it when absent. Amounts
// and receipt counts add; the description of the latest addition wins.
func Add(cs ClaimSet, claim model.CategoryClaim) (ClaimSet, error) {
	if err := validate(cs, claim); err != nil {
		return cs, err
	}

	existing, ok := cs.Get(claim.Category)
	if !ok {
		return Set(cs, claim)
	}

	merged := existing
	merged.Amount = existing.Amount.Add(claim.Amount)
	merged.ReceiptCount += claim.ReceiptCount
	if claim.Description != "" {
		merged.Description = claim.Description
	}
	merged.Finalized = false // accumulation reopens the claim
	return Set(cs, merged)
}

// Finalize marks a category's claim as backed by a validated workpaper.
func Finalize(cs ClaimSet, category model.AtoCategory) (ClaimSet, error) {
	idx := cs.indexOf(category)
	if idx < 0 {
		return cs, UnknownClaimError{Category: category}
	}
	next := cs.clone()
	next.Claims[idx].Finalized = true
	return next, nil
}

// Summary aggregates the set into the tax-year totals.
func Summary(cs ClaimSet) model.TaxYearSummary {
	summary := model.TaxYearSummary{
		TaxYear:     cs.TaxYear,
		TotalAmount: decimal.Zero,
	}
	for _, c := range cs.Claims {
		summary.TotalClaims++
		summary.TotalAmount = summary.TotalAmount.Add(c.Amount)
		summary.TotalReceipts += c.ReceiptCount
		if c.Finalized {
			summary.FinalizedCount++
		}
	}
	return summary
}
