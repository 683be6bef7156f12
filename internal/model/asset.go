package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DisposalType classifies how a pooled asset left the pool.
type DisposalType string

const (
	DisposalSale    DisposalType = "sale"
	DisposalScrap   DisposalType = "scrap"
	DisposalTradeIn DisposalType = "trade-in"
	DisposalOther   DisposalType = "other"
)

// DisposalRecord captures the disposal of a pooled asset. The termination
// value reduces the pool's closing balance; the asset stops accruing
// decline-in-value from the disposal date.
type DisposalRecord struct {
	Date             time.Time       `json:"date"`
	Type             DisposalType    `json:"type"`
	SalePrice        decimal.Decimal `json:"salePrice"`
	TerminationValue decimal.Decimal `json:"terminationValue"`
}

// PoolAsset is one asset in a low-value pool workpaper.
type PoolAsset struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	Cost            decimal.Decimal `json:"cost"` // immutable once pooled
	AcquisitionDate time.Time       `json:"acquisitionDate"`
	FirstYear       bool            `json:"firstYear"`
	OpeningBalance  decimal.Decimal `json:"openingBalance"` // set for members already in the pool
	Decline         decimal.Decimal `json:"decline"`        // derived by recalculation
	ClosingBalance  decimal.Decimal `json:"closingBalance"` // derived by recalculation
	Disposal        *DisposalRecord `json:"disposal,omitempty"`
}

// Disposed reports whether the asset has left the pool.
func (a PoolAsset) Disposed() bool {
	return a.Disposal != nil
}

// CostBase returns the undiminished base the asset brought into the pool:
// its cost for first-year members, its opening balance otherwise.
func (a PoolAsset) CostBase() decimal.Decimal {
	if a.FirstYear {
		return a.Cost
	}
	return a.OpeningBalance
}

// PoolSummary is the derived balance sheet of a pool workpaper.
type PoolSummary struct {
	OpeningBalance       decimal.Decimal `json:"openingBalance"`
	Additions            decimal.Decimal `json:"additions"`
	DeclineInValue       decimal.Decimal `json:"declineInValue"`
	DisposalAdjustments  decimal.Decimal `json:"disposalAdjustments"`
	AssessableAdjustment decimal.Decimal `json:"assessableAdjustment"` // excess of disposals over the pool, taxed not dropped
	ClosingBalance       decimal.Decimal `json:"closingBalance"`       // never negative
}

// PoolWorkpaper is the low-value pool ledger for one tax year. The prior-year
// closing balance is a carried-forward value, never a live reference into the
// prior year's ledger.
type PoolWorkpaper struct {
	TaxYear          string          `json:"taxYear"`
	PriorYearClosing decimal.Decimal `json:"priorYearClosing"`
	Assets           []PoolAsset     `json:"assets"`
	Summary          PoolSummary     `json:"summary"`
}

// CloneAssets returns a copy of the asset slice so ledger operations can stay
// copy-on-write.
func (w PoolWorkpaper) CloneAssets() []PoolAsset {
	out := make([]PoolAsset, len(w.Assets))
	copy(out, w.Assets)
	return out
}
