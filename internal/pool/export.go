package pool

import (
	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/model"
)

// AssetLine is one per-asset decline-in-value row in a pool export.
type AssetLine struct {
	AssetID        string          `json:"assetId"`
	Description    string          `json:"description"`
	Cost           decimal.Decimal `json:"cost"`
	FirstYear      bool            `json:"firstYear"`
	Decline        decimal.Decimal `json:"decline"`
	ClosingBalance decimal.Decimal `json:"closingBalance"`
	Disposed       bool            `json:"disposed"`
}

// LowValuePoolExport is the flattened, lodgment-ready view of a workpaper.
type LowValuePoolExport struct {
	TaxYear string            `json:"taxYear"`
	Summary model.PoolSummary `json:"summary"`
	Assets  []AssetLine       `json:"assets"`
}

// WorkpaperStats gates export eligibility without exposing the full ledger.
type WorkpaperStats struct {
	IsComplete          bool
	AssetCount          int
	DisposedCount       int
	TotalCost           decimal.Decimal
	TotalDeclineInValue decimal.Decimal
	ClosingBalance      decimal.Decimal
}

// Stats returns read-only workpaper statistics. IsComplete mirrors Validate.
func Stats(w model.PoolWorkpaper) WorkpaperStats {
	recalced := Recalculate(w)

	stats := WorkpaperStats{
		IsComplete:          Validate(w).IsValid,
		AssetCount:          len(recalced.Assets),
		TotalDeclineInValue: recalced.Summary.DeclineInValue,
		ClosingBalance:      recalced.Summary.ClosingBalance,
		TotalCost:           decimal.Zero,
	}
	for _, a := range recalced.Assets {
		stats.TotalCost = stats.TotalCost.Add(a.Cost)
		if a.Disposed() {
			stats.DisposedCount++
		}
	}
	return stats
}

// Export flattens a validated workpaper into its lodgment shape. It fails
// with IncompleteDataError when validation has not passed.
func Export(w model.PoolWorkpaper) (LowValuePoolExport, error) {
	result := Validate(w)
	if !result.IsValid {
		return LowValuePoolExport{}, IncompleteDataError{Reason: result.Errors[0].Error()}
	}

	recalced := Recalculate(w)
	out := LowValuePoolExport{
		TaxYear: recalced.TaxYear,
		Summary: recalced.Summary,
	}
	for _, a := range recalced.Assets {
		out.Assets = append(out.Assets, AssetLine{
			AssetID:        a.ID,
			Description:    a.Description,
			Cost:           a.Cost,
			FirstYear:      a.FirstYear,
			Decline:        a.Decline,
			ClosingBalance: a.ClosingBalance,
			Disposed:       a.Disposed(),
		})
	}
	return out, nil
}
