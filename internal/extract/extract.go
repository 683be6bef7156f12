// Package extract is the document-extraction collaborator boundary: it turns
// receipt and invoice text into confidence-scored fields and grades the
// result. It sits upstream of the deduction engine; extracted values only
// enter a workpaper after the caller accepts them.
package extract

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StringField is a text value extracted from a document.
type StringField struct {
	Value      string  `json:"value"`
	Confidence float64 `json:"confidence"` // [0,1]
	Source     string  `json:"source"`
}

// AmountField is a monetary value extracted from a document.
type AmountField struct {
	Value      decimal.Decimal `json:"value"`
	Confidence float64         `json:"confidence"` // [0,1]
	Source     string          `json:"source"`
}

// Invoice holds everything extracted from a single document.
type Invoice struct {
	ABN               *StringField `json:"abn,omitempty"`
	InvoiceNumber     *StringField `json:"invoiceNumber,omitempty"`
	InvoiceDate       *StringField `json:"invoiceDate,omitempty"`
	VendorName        *StringField `json:"vendorName,omitempty"`
	TotalAmount       *AmountField `json:"totalAmount,omitempty"`
	GSTAmount         *AmountField `json:"gstAmount,omitempty"`
	PaymentTerms      *StringField `json:"paymentTerms,omitempty"`
	RawText           string       `json:"rawText"`
	OverallConfidence float64      `json:"overallConfidence"`
}

// Action is the suggested handling for an extraction result.
type Action string

const (
	ActionAccept Action = "accept"
	ActionReview Action = "review"
	ActionReject Action = "reject"
)

// Verdict grades an extraction result.
type Verdict struct {
	IsValid         bool     `json:"isValid"`
	MissingFields   []string `json:"missingFields"`
	Warnings        []string `json:"warnings"`
	SuggestedAction Action   `json:"suggestedAction"`
}

// Thresholds set the confidence cutoffs for accept and review verdicts.
type Thresholds struct {
	AutoAccept float64
	ReviewFlag float64
}

// DefaultThresholds match the shipped configuration.
var DefaultThresholds = Thresholds{AutoAccept: 0.75, ReviewFlag: 0.50}

// Validate grades an extracted invoice. A result is valid when a total
// amount was found and the overall confidence reaches the review threshold;
// the suggested action escalates from reject through review to accept as
// confidence and completeness improve.
func Validate(inv Invoice, t Thresholds) Verdict {
	var verdict Verdict

	if inv.ABN == nil {
		verdict.MissingFields = append(verdict.MissingFields, "abn")
	}
	if inv.InvoiceNumber == nil {
		verdict.MissingFields = append(verdict.MissingFields, "invoiceNumber")
	}
	if inv.InvoiceDate == nil {
		verdict.MissingFields = append(verdict.MissingFields, "invoiceDate")
	}
	if inv.TotalAmount == nil {
		verdict.MissingFields = append(verdict.MissingFields, "totalAmount")
	}

	if inv.VendorName == nil {
		verdict.Warnings = append(verdict.Warnings, "vendor name not detected")
	}
	if inv.PaymentTerms == nil {
		verdict.Warnings = append(verdict.Warnings, "payment terms not detected")
	}
	if inv.ABN != nil && !ValidABN(inv.ABN.Value) {
		verdict.Warnings = append(verdict.Warnings,
			fmt.Sprintf("ABN %s failed checksum validation", inv.ABN.Value))
	}

	verdict.IsValid = inv.TotalAmount != nil && inv.OverallConfidence >= t.ReviewFlag

	switch {
	case len(verdict.MissingFields) == 0 && inv.OverallConfidence >= t.AutoAccept:
		verdict.SuggestedAction = ActionAccept
	case inv.OverallConfidence >= t.ReviewFlag:
		verdict.SuggestedAction = ActionReview
	default:
		verdict.SuggestedAction = ActionReject
	}
	return verdict
}

// abnWeights are the statutory weighting factors for ABN validation.
var abnWeights = [11]int{10, 1, 3, 5, 7, 9, 11, 13, 15, 17, 19}

// ValidABN reports whether an 11-digit string passes the ABN checksum:
// subtract 1 from the first digit, weight each digit, and check the sum is
// divisible by 89.
func ValidABN(abn string) bool {
	if len(abn) != 11 {
		return false
	}
	sum := 0
	for i, r := range abn {
		if r < '0' || r > '9' {
			return false
		}
		d := int(r - '0')
		if i == 0 {
			d--
		}
		sum += d * abnWeights[i]
	}
	return sum%89 == 0
}
