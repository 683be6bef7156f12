package model

import "github.com/shopspring/decimal"

// AtoCategory is an ATO deduction category code (D1–D15).
type AtoCategory string

const (
	CategoryCar           AtoCategory = "D1"
	CategoryTravel        AtoCategory = "D2"
	CategoryClothing      AtoCategory = "D3"
	CategorySelfEducation AtoCategory = "D4"
	CategoryOtherWork     AtoCategory = "D5"
	CategoryLowValuePool  AtoCategory = "D6"
	CategoryInterest      AtoCategory = "D7"
	CategoryDonations     AtoCategory = "D8"
	CategoryTaxAffairs    AtoCategory = "D9"
	CategorySuper         AtoCategory = "D10"
	CategoryUPP           AtoCategory = "D11"
	CategoryPersonalSuper AtoCategory = "D12"
	CategoryProjectPool   AtoCategory = "D13"
	CategoryForestry      AtoCategory = "D14"
	CategoryOther         AtoCategory = "D15"
)

// CategoryLabels maps category codes to their lodgment labels.
var CategoryLabels = map[AtoCategory]string{
	CategoryCar:           "Work-related car expenses",
	CategoryTravel:        "Work-related travel expenses",
	CategoryClothing:      "Work-related clothing and laundry",
	CategorySelfEducation: "Self-education expenses",
	CategoryOtherWork:     "Other work-related expenses",
	CategoryLowValuePool:  "Low-value pool deduction",
	CategoryInterest:      "Interest deductions",
	CategoryDonations:     "Gifts or donations",
	CategoryTaxAffairs:    "Cost of managing tax affairs",
	CategorySuper:         "Personal superannuation contributions",
	CategoryUPP:           "Undeducted purchase price of a foreign pension",
	CategoryPersonalSuper: "Deductible personal contributions",
	CategoryProjectPool:   "Deduction for project pool",
	CategoryForestry:      "Forestry managed investment scheme",
	CategoryOther:         "Other deductions",
}

// Valid reports whether c is a known category code.
func (c AtoCategory) Valid() bool {
	_, ok := CategoryLabels[c]
	return ok
}

// CategoryClaim is one claimed amount per (category, tax year).
type CategoryClaim struct {
	Category     AtoCategory     `json:"category"`
	TaxYear      string          `json:"taxYear"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	ReceiptCount int             `json:"receiptCount"`
	Finalized    bool            `json:"finalized"` // workpaper passed validation
}

// TaxYearSummary aggregates all claims for a year.
type TaxYearSummary struct {
	TaxYear        string          `json:"taxYear"`
	TotalClaims    int             `json:"totalClaims"`
	FinalizedCount int             `json:"finalizedCount"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalReceipts  int             `json:"totalReceipts"`
}
