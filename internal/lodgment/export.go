// Package lodgment serializes a finalized tax year's claims into the export
// payload consumed by filing.
package lodgment

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/eeandrelle/tally/internal/claims"
	"github.com/eeandrelle/tally/internal/model"
)

// IncompleteWorkpaperError blocks an export that includes a category whose
// workpaper has not passed validation.
type IncompleteWorkpaperError struct {
	Category model.AtoCategory
}

func (e IncompleteWorkpaperError) Error() string {
	return fmt.Sprintf("category %s has not been finalized", e.Category)
}

// CategoryLine is one exported claim row.
type CategoryLine struct {
	Code         model.AtoCategory `json:"code"`
	Amount       decimal.Decimal   `json:"amount"`
	ReceiptCount int               `json:"receiptCount"`
}

// LodgmentExport is the lodgment-ready payload for one tax year.
type LodgmentExport struct {
	TaxYear     string          `json:"taxYear"`
	GeneratedAt time.Time       `json:"generatedAt"`
	Categories  []CategoryLine  `json:"categories"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// Export emits one line per claimed category plus the grand total. Every
// included category must be finalized; the grand total always equals the
// tax-year summary total for the same claims.
func Export(cs claims.ClaimSet, include []model.AtoCategory, now time.Time) (LodgmentExport, error) {
	selected := cs.Claims
	if include != nil {
		selected = nil
		for _, category := range include {
			claim, ok := cs.Get(category)
			if !ok {
				return LodgmentExport{}, claims.UnknownClaimError{Category: category}
			}
			selected = append(selected, claim)
		}
	}

	out := LodgmentExport{
		TaxYear:     cs.TaxYear,
		GeneratedAt: now.UTC(),
		TotalAmount: decimal.Zero,
	}
	for _, claim := range selected {
		if !claim.Finalized {
			return LodgmentExport{}, IncompleteWorkpaperError{Category: claim.Category}
		}
		out.Categories = append(out.Categories, CategoryLine{
			Code:         claim.Category,
			Amount:       claim.Amount,
			ReceiptCount: claim.ReceiptCount,
		})
		out.TotalAmount = out.TotalAmount.Add(claim.Amount)
	}

	sort.Slice(out.Categories, func(i, j int) bool {
		return codeOrder(out.Categories[i].Code) < codeOrder(out.Categories[j].Code)
	})
	return out, nil
}

func codeOrder(c model.AtoCategory) int {
	n, err := strconv.Atoi(strings.TrimPrefix(string(c), "D"))
	if err != nil {
		return 0
	}
	return n
}

// SaveResult describes a written export file.
type SaveResult struct {
	Path string
	Size int64
}

// WriteFile writes the payload as indented JSON under dir and reports where
// it landed.
func WriteFile(dir string, export LodgmentExport) (SaveResult, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return SaveResult{}, fmt.Errorf("creating export dir: %w", err)
	}

	data, err := json.MarshalIndent(export, "", "  ")
	if err != nil {
		return SaveResult{}, fmt.Errorf("marshaling export: %w", err)
	}

	path := filepath.Join(dir, "tally-lodgment-"+export.TaxYear+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return SaveResult{}, fmt.Errorf("writing export: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return SaveResult{}, fmt.Errorf("stat export: %w", err)
	}
	return SaveResult{Path: path, Size: info.Size()}, nil
}
