package pool

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/taxyear"
)

// Statutory low-value pool parameters (Division 40, ITAA 1997).
var (
	// Threshold is the maximum cost for an asset to enter the pool.
	Threshold = decimal.NewFromInt(1000)
	// Rate is the full-year decline rate for existing pool members.
	Rate = decimal.RequireFromString("0.375")
	// FirstYearRate is half the pool rate, applied to first-year additions.
	FirstYearRate = decimal.RequireFromString("0.1875")
)

// IsEligible reports whether an asset of the given cost may be pooled.
func IsEligible(cost decimal.Decimal) bool {
	return cost.LessThanOrEqual(Threshold)
}

// New returns an empty workpaper for a tax year carrying forward the prior
// year's closing balance.
func New(year taxyear.Year, priorYearClosing decimal.Decimal) model.PoolWorkpaper {
	w := model.PoolWorkpaper{
		TaxYear:          string(year),
		PriorYearClosing: priorYearClosing,
	}
	return Recalculate(w)
}

// AddAssetParams holds parameters for adding an asset to the pool.
type AddAssetParams struct {
	Description     string
	Cost            decimal.Decimal
	AcquisitionDate time.Time
	FirstYear       bool
	OpeningBalance  decimal.Decimal // required for non-first-year members
}

// AddAsset appends an asset to the workpaper and returns the recalculated
// copy. First-year assets decline at half the pool rate for their first year;
// opening-balance members decline at the full rate. The original workpaper is
// never mutated.
func AddAsset(w model.PoolWorkpaper, params AddAssetParams) (model.PoolWorkpaper, error) {
	if params.Cost.LessThanOrEqual(decimal.Zero) {
		return w, model.ValidationError{Field: "cost", Reason: "must be greater than zero"}
	}
	if params.FirstYear && !IsEligible(params.Cost) {
		return w, IneligibleAssetError{Cost: params.Cost, Threshold: Threshold}
	}
	if !params.FirstYear && params.OpeningBalance.LessThanOrEqual(decimal.Zero) {
		return w, model.ValidationError{Field: "openingBalance", Reason: "required for an existing pool member"}
	}

	next := w
	next.Assets = append(w.CloneAssets(), model.PoolAsset{
		ID:              uuid.NewString(),
		Description:     params.Description,
		Cost:            params.Cost,
		AcquisitionDate: params.AcquisitionDate,
		FirstYear:       params.FirstYear,
		OpeningBalance:  params.OpeningBalance,
	})
	return Recalculate(next), nil
}

// RemoveAsset deletes an asset outright. Cost is immutable once pooled, so
// corrections are a remove followed by a fresh add.
func RemoveAsset(w model.PoolWorkpaper, assetID string) (model.PoolWorkpaper, error) {
	idx := indexOf(w.Assets, assetID)
	if idx < 0 {
		return w, UnknownAssetError{AssetID: assetID}
	}
	next := w
	next.Assets = append(w.CloneAssets()[:idx], w.Assets[idx+1:]...)
	return Recalculate(next), nil
}

// DisposalParams holds parameters for disposing a pooled asset.
type DisposalParams struct {
	Date             time.Time
	Type             model.DisposalType
	SalePrice        decimal.Decimal
	TerminationValue decimal.Decimal
}

// DisposeAsset marks an asset as disposed and returns the recalculated copy.
// The termination value is the sale price if given, else the supplied
// termination value, else zero. The asset stops accruing decline-in-value
// from the disposal date.
func DisposeAsset(w model.PoolWorkpaper, assetID string, params DisposalParams) (model.PoolWorkpaper, error) {
	idx := indexOf(w.Assets, assetID)
	if idx < 0 {
		return w, UnknownAssetError{AssetID: assetID}
	}
	if w.Assets[idx].Disposed() {
		return w, AlreadyDisposedError{AssetID: assetID}
	}

	termination := params.SalePrice
	if termination.IsZero() {
		termination = params.TerminationValue
	}
	if termination.IsNegative() {
		return w, model.ValidationError{Field: "terminationValue", RecordID: assetID, Reason: "must not be negative"}
	}

	next := w
	next.Assets = w.CloneAssets()
	next.Assets[idx].Disposal = &model.DisposalRecord{
		Date:             params.Date,
		Type:             params.Type,
		SalePrice:        params.SalePrice,
		TerminationValue: termination,
	}
	return Recalculate(next), nil
}

// Recalculate derives every per-asset decline line and the pool summary from
// the asset list and opening balances. It is deterministic and idempotent:
// recalculating an unchanged workpaper yields an identical result, so callers
// may invoke it speculatively after any mutation.
func Recalculate(w model.PoolWorkpaper) model.PoolWorkpaper {
	next := w
	next.Assets = w.CloneAssets()

	opening := w.PriorYearClosing
	additions := decimal.Zero
	decline := w.PriorYearClosing.Mul(Rate).Round(2)
	adjustments := decimal.Zero

	for i := range next.Assets {
		a := &next.Assets[i]
		if a.FirstYear {
			additions = additions.Add(a.Cost)
		} else {
			opening = opening.Add(a.OpeningBalance)
		}

		if a.Disposed() {
			// No decline accrues from the disposal date; the termination
			// value reduces the pool, capped at the undiminished cost base.
			a.Decline = decimal.Zero
			a.ClosingBalance = decimal.Zero
			adjustments = adjustments.Add(decimal.Min(a.Disposal.TerminationValue, a.CostBase()))
			continue
		}

		if a.FirstYear {
			a.Decline = a.Cost.Mul(FirstYearRate).Round(2)
		} else {
			a.Decline = a.OpeningBalance.Mul(Rate).Round(2)
		}
		a.ClosingBalance = a.CostBase().Sub(a.Decline)
		decline = decline.Add(a.Decline)
	}

	closing := opening.Add(additions).Sub(decline).Sub(adjustments)
	assessable := decimal.Zero
	if closing.IsNegative() {
		// Clamped, not dropped: the shortfall is assessable income.
		assessable = closing.Neg()
		closing = decimal.Zero
	}

	next.Summary = model.PoolSummary{
		OpeningBalance:       opening,
		Additions:            additions,
		DeclineInValue:       decline,
		DisposalAdjustments:  adjustments,
		AssessableAdjustment: assessable,
		ClosingBalance:       closing,
	}
	return next
}

// Rollover begins a new tax year: surviving assets are promoted to full-rate
// pool members whose opening balance is their prior closing balance, disposed
// assets drop out, and the pool's closing balance carries forward. The
// transition is explicit; it is never inferred from dates.
func Rollover(w model.PoolWorkpaper, nextYear taxyear.Year) (model.PoolWorkpaper, error) {
	if !taxyear.Valid(string(nextYear)) {
		return w, model.ValidationError{Field: "taxYear", Reason: "malformed tax year " + string(nextYear)}
	}

	prev := Recalculate(w)

	var survivors []model.PoolAsset
	tracked := decimal.Zero
	for _, a := range prev.Assets {
		if a.Disposed() {
			continue
		}
		tracked = tracked.Add(a.ClosingBalance)
		survivors = append(survivors, model.PoolAsset{
			ID:              a.ID,
			Description:     a.Description,
			Cost:            a.Cost,
			AcquisitionDate: a.AcquisitionDate,
			FirstYear:       false,
			OpeningBalance:  a.ClosingBalance,
		})
	}

	// The residual is pool balance not attributable to tracked assets
	// (e.g. carried from years before per-asset tracking began).
	residual := prev.Summary.ClosingBalance.Sub(tracked)
	if residual.IsNegative() {
		residual = decimal.Zero
	}

	next := model.PoolWorkpaper{
		TaxYear:          string(nextYear),
		PriorYearClosing: residual,
		Assets:           survivors,
	}
	return Recalculate(next), nil
}

// Find returns the asset with the given ID.
func Find(w model.PoolWorkpaper, assetID string) (model.PoolAsset, bool) {
	idx := indexOf(w.Assets, assetID)
	if idx < 0 {
		return model.PoolAsset{}, false
	}
	return w.Assets[idx], true
}

func indexOf(assets []model.PoolAsset, assetID string) int {
	for i, a := range assets {
		if a.ID == assetID {
			return i
		}
	}
	return -1
}
