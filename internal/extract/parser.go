package extract

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// Parser extracts an Invoice from a document already converted to text.
type Parser interface {
	// Format is the short name the parser is registered under.
	Format() string
	Parse(text string) (Invoice, error)
}

// UnknownFormatError indicates no parser is registered for a format.
type UnknownFormatError struct {
	Format string
}

func (e *UnknownFormatError) Error() string {
	return fmt.Sprintf("no parser registered for format %q", e.Format)
}

// Registry holds the available parsers by format name.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry returns a registry with the built-in parsers registered.
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	r.Register(&TextParser{})
	return r
}

// Register adds a parser, replacing any existing one for the same format.
func (r *Registry) Register(p Parser) {
	r.parsers[p.Format()] = p
}

// Get returns the parser for a format.
func (r *Registry) Get(format string) (Parser, error) {
	p, ok := r.parsers[format]
	if !ok {
		return nil, &UnknownFormatError{Format: format}
	}
	return p, nil
}

// fieldPattern pairs a regex with the confidence earned when it matches.
// Patterns are tried in order; anchored keyword forms rank above bare forms.
type fieldPattern struct {
	re         *regexp.Regexp
	confidence float64
}

var (
	abnPatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)A\.?B\.?N\.?\s*:?\s*(\d{2}\s?\d{3}\s?\d{3}\s?\d{3})`), 0.95},
		{regexp.MustCompile(`\b(\d{2}\s\d{3}\s\d{3}\s\d{3})\b`), 0.70},
		{regexp.MustCompile(`\b(\d{11})\b`), 0.55},
	}

	invoiceNumberPatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)(?:tax\s+)?invoice\s*(?:#|no\.?|number)?\s*:?\s*([A-Z0-9][A-Z0-9/-]{2,})`), 0.90},
		{regexp.MustCompile(`(?i)\bINV[-#\s]?([0-9][0-9-]{2,})`), 0.80},
		{regexp.MustCompile(`(?i)reference\s*:?\s*([A-Z0-9][A-Z0-9/-]{2,})`), 0.60},
	}

	datePatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)(?:invoice\s+date|date\s+of\s+issue|issued?)\s*:?\s*(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`), 0.90},
		{regexp.MustCompile(`(?i)(?:invoice\s+date|date\s+of\s+issue|issued?)\s*:?\s*(\d{1,2}\s+\w+\s+\d{4})`), 0.90},
		{regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`), 0.70},
		{regexp.MustCompile(`\b(\d{1,2}/\d{1,2}/\d{4})\b`), 0.60},
	}

	totalPatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)(?:total\s+(?:amount\s+)?(?:due|payable|inc[l.]*\s*gst)?|amount\s+due|balance\s+due)\s*:?\s*\$?\s*([\d,]+\.\d{2})`), 0.90},
		{regexp.MustCompile(`(?i)total\s*:?\s*\$?\s*([\d,]+(?:\.\d{1,2})?)`), 0.75},
		{regexp.MustCompile(`\$\s*([\d,]+\.\d{2})`), 0.50},
	}

	gstPatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)(?:GST|tax)\s*(?:\(10%\))?\s*:?\s*\$?\s*([\d,]+\.\d{2})`), 0.90},
		{regexp.MustCompile(`(?i)includes?\s+GST\s+of\s+\$?\s*([\d,]+(?:\.\d{1,2})?)`), 0.80},
	}

	termsPatterns = []fieldPattern{
		{regexp.MustCompile(`(?i)(?:payment\s+)?terms\s*:?\s*([^\n]+)`), 0.85},
		{regexp.MustCompile(`(?i)\b(due\s+(?:on\s+receipt|in\s+\d+\s+days|within\s+\d+\s+days))\b`), 0.75},
		{regexp.MustCompile(`(?i)\b(net\s+\d{1,3})\b`), 0.70},
	}
)

// TextParser extracts invoice fields from plain text with pattern tables.
// It is the baseline parser; OCR front ends feed it their recognized text.
type TextParser struct{}

func (p *TextParser) Format() string { return "text" }

func (p *TextParser) Parse(text string) (Invoice, error) {
	inv := Invoice{RawText: text}

	inv.ABN = matchString(text, abnPatterns)
	if inv.ABN != nil {
		inv.ABN.Value = strings.ReplaceAll(inv.ABN.Value, " ", "")
	}
	inv.InvoiceNumber = matchString(text, invoiceNumberPatterns)
	inv.InvoiceDate = matchString(text, datePatterns)
	inv.TotalAmount = matchAmount(text, totalPatterns)
	inv.GSTAmount = matchAmount(text, gstPatterns)
	inv.PaymentTerms = matchString(text, termsPatterns)
	inv.VendorName = vendorName(text)

	inv.OverallConfidence = overallConfidence(inv)
	return inv, nil
}

func matchString(text string, patterns []fieldPattern) *StringField {
	for _, p := range patterns {
		if m := p.re.FindStringSubmatch(text); m != nil {
			return &StringField{
				Value:      strings.TrimSpace(m[1]),
				Confidence: p.confidence,
				Source:     "pattern",
			}
		}
	}
	return nil
}

func matchAmount(text string, patterns []fieldPattern) *AmountField {
	for _, p := range patterns {
		m := p.re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		raw := strings.ReplaceAll(m[1], ",", "")
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			continue
		}
		return &AmountField{
			Value:      amount,
			Confidence: p.confidence,
			Source:     "pattern",
		}
	}
	return nil
}

// vendorName takes the first non-empty line that is not itself a labelled
// field. Letterheads put the trading name first often enough for this to be
// a useful low-confidence guess.
func vendorName(text string) *StringField {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		if strings.Contains(lower, "invoice") || strings.Contains(lower, "abn") ||
			strings.Contains(lower, "date") || strings.Contains(lower, "total") {
			return nil
		}
		return &StringField{Value: line, Confidence: 0.50, Source: "heuristic"}
	}
	return nil
}

// overallConfidence averages the confidences of the fields that were found.
// Absent fields do not drag the average down; completeness is graded
// separately by Validate.
func overallConfidence(inv Invoice) float64 {
	var sum float64
	var n int
	for _, f := range []*StringField{inv.ABN, inv.InvoiceNumber, inv.InvoiceDate, inv.VendorName, inv.PaymentTerms} {
		if f != nil {
			sum += f.Confidence
			n++
		}
	}
	for _, f := range []*AmountField{inv.TotalAmount, inv.GSTAmount} {
		if f != nil {
			sum += f.Confidence
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
