// Package suggest maps free-text expense descriptions to likely ATO
// categories using a static keyword table. Matching is a deterministic table
// lookup; there is no learning component.
package suggest

import (
	"sort"
	"strings"

	"github.com/eeandrelle/tally/internal/model"
)

// keywords maps each category to the terms that indicate it. Longer terms are
// treated as more specific when ranking.
var keywords = map[model.AtoCategory][]string{
	model.CategoryCar: {
		"car", "fuel", "petrol", "parking", "toll", "kilometre", "vehicle", "rego", "registration",
	},
	model.CategoryTravel: {
		"flight", "airfare", "hotel", "accommodation", "taxi", "uber", "train", "travel allowance",
	},
	model.CategoryClothing: {
		"uniform", "protective", "laundry", "dry cleaning", "boots", "hi-vis", "safety gear",
	},
	model.CategorySelfEducation: {
		"course", "tuition", "textbook", "university", "tafe", "seminar", "student", "self-education",
	},
	model.CategoryOtherWork: {
		"home office", "phone", "internet", "stationery", "union fees", "tools", "subscription", "laptop",
	},
	model.CategoryLowValuePool: {
		"low-value pool", "depreciation", "decline in value", "pooled asset",
	},
	model.CategoryInterest: {
		"interest", "investment loan", "margin loan", "dividend deduction",
	},
	model.CategoryDonations: {
		"donation", "charity", "gift", "dgr", "red cross", "appeal", "fundraiser",
	},
	model.CategoryTaxAffairs: {
		"tax agent", "accountant", "tax affairs", "lodgment fee", "bookkeeper",
	},
	model.CategorySuper: {
		"super", "superannuation", "personal contribution", "notice of intent",
	},
	model.CategoryUPP: {
		"upp", "undeducted purchase price", "foreign pension", "annuity",
	},
	model.CategoryOther: {
		"income protection", "overtime meal", "election expense",
	},
}

type match struct {
	category model.AtoCategory
	hits     int
	longest  int
}

// Categories returns the categories whose keywords appear in the description,
// most specific first. The ranking is deterministic: match count, then the
// longest keyword matched, then category code. An empty slice means no
// keyword matched.
func Categories(description string) []model.AtoCategory {
	text := strings.ToLower(description)
	if strings.TrimSpace(text) == "" {
		return nil
	}

	var matches []match
	for category, terms := range keywords {
		m := match{category: category}
		for _, term := range terms {
			if strings.Contains(text, term) {
				m.hits++
				if len(term) > m.longest {
					m.longest = len(term)
				}
			}
		}
		if m.hits > 0 {
			matches = append(matches, m)
		}
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].hits != matches[j].hits {
			return matches[i].hits > matches[j].hits
		}
		if matches[i].longest != matches[j].longest {
			return matches[i].longest > matches[j].longest
		}
		return matches[i].category < matches[j].category
	})

	out := make([]model.AtoCategory, len(matches))
	for i, m := range matches {
		out[i] = m.category
	}
	return out
}
