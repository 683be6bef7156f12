package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Donation is a D8 gift record. It is countable toward the deduction total
// only when made to a DGR and at least $2; smaller or non-DGR amounts are
// retained but excluded.
type Donation struct {
	ID           string          `json:"id"`
	Date         time.Time       `json:"date"`
	Organisation string          `json:"organisation"`
	Amount       decimal.Decimal `json:"amount"`
	DGRStatus    bool            `json:"dgrStatus"`
	ReceiptHeld  bool            `json:"receiptHeld"`
}

// SuperContribution is a D10 personal super contribution. It counts only once
// the fund has acknowledged the notice of intent.
type SuperContribution struct {
	ID                     string          `json:"id"`
	Date                   time.Time       `json:"date"`
	Fund                   string          `json:"fund"`
	Amount                 decimal.Decimal `json:"amount"`
	NoticeSubmitted        bool            `json:"noticeSubmitted"`
	AcknowledgmentReceived bool            `json:"acknowledgmentReceived"`
}

// UPPEntry is a D11 undeducted-purchase-price record for a foreign pension or
// annuity. DeductibleAmount is pre-apportioned at entry time from the
// actuarial UPP percentage; the engine never recomputes it.
type UPPEntry struct {
	ID               string          `json:"id"`
	Description      string          `json:"description"`
	GrossPayment     decimal.Decimal `json:"grossPayment"`
	DeductibleAmount decimal.Decimal `json:"deductibleAmount"`
}

// ExpenseCategory classifies a self-education expense. Travel and "other"
// expenses are excluded from the $250 reduction base.
type ExpenseCategory string

const (
	ExpenseCourseFees ExpenseCategory = "course-fees"
	ExpenseTextbooks  ExpenseCategory = "textbooks"
	ExpenseStationery ExpenseCategory = "stationery"
	ExpenseTravel     ExpenseCategory = "travel"
	ExpenseOther      ExpenseCategory = "other"
)

// EducationExpense is a D4 self-education expense row.
type EducationExpense struct {
	ID             string          `json:"id"`
	Description    string          `json:"description"`
	Category       ExpenseCategory `json:"category"`
	Amount         decimal.Decimal `json:"amount"`
	WorkRelatedPct decimal.Decimal `json:"workRelatedPct"` // [0,100]
	PrivateUsePct  decimal.Decimal `json:"privateUsePct"`  // [0,100]
	CourseID       string          `json:"courseId,omitempty"`
	AssetID        string          `json:"assetId,omitempty"` // optional linkage to a depreciating asset
}

// Course is a self-education course record.
type Course struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Provider string `json:"provider"`
}

// DepreciationMethod selects how a self-education asset declines.
type DepreciationMethod string

const (
	MethodDiminishingValue DepreciationMethod = "diminishing-value"
	MethodPrimeCost        DepreciationMethod = "prime-cost"
)

// EducationAsset is a depreciating asset claimed under self-education.
// Depreciation is computed once per year and the closing value is carried
// forward as next year's opening balance. It is not pooled.
type EducationAsset struct {
	ID                 string             `json:"id"`
	Description        string             `json:"description"`
	Cost               decimal.Decimal    `json:"cost"`
	OpeningBalance     decimal.Decimal    `json:"openingBalance"` // zero in the first year
	EffectiveLifeYears int                `json:"effectiveLifeYears"`
	Method             DepreciationMethod `json:"method"`
	BusinessUsePct     decimal.Decimal    `json:"businessUsePct"` // [0,100]
}

// RecordSet holds every category record store for one tax year. It is the
// engine's raw input; calculators and the pool ledger derive amounts from it.
type RecordSet struct {
	TaxYear           string              `json:"taxYear"`
	Donations         []Donation          `json:"donations"`
	SuperContribs     []SuperContribution `json:"superContributions"`
	UPPEntries        []UPPEntry          `json:"uppEntries"`
	EducationExpenses []EducationExpense  `json:"educationExpenses"`
	Courses           []Course            `json:"courses"`
	EducationAssets   []EducationAsset    `json:"educationAssets"`
}
