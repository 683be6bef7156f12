package deduction

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eeandrelle/tally/internal/model"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func expense(category model.ExpenseCategory, amount, workPct, privatePct string) model.EducationExpense {
	return model.EducationExpense{
		ID:             "e-" + amount,
		Category:       category,
		Amount:         dec(amount),
		WorkRelatedPct: dec(workPct),
		PrivateUsePct:  dec(privatePct),
	}
}

func TestTaxableIncomeReduction_UnderCap(t *testing.T) {
	// Work-related share sums to 100: reduction = 100.
	expenses := []model.EducationExpense{
		expense(model.ExpenseCourseFees, "100", "50", "0"), // 50
		expense(model.ExpenseTextbooks, "50", "100", "0"),  // 50
	}
	reduction, err := TaxableIncomeReduction(expenses)
	require.NoError(t, err)
	assert.True(t, reduction.Equal(dec("100")), "reduction = %s", reduction)
}

func TestTaxableIncomeReduction_CapsAt250(t *testing.T) {
	expenses := []model.EducationExpense{
		expense(model.ExpenseCourseFees, "500", "100", "0"),
	}
	reduction, err := TaxableIncomeReduction(expenses)
	require.NoError(t, err)
	assert.True(t, reduction.Equal(dec("250")))
}

func TestTaxableIncomeReduction_ExcludesTravelAndOther(t *testing.T) {
	expenses := []model.EducationExpense{
		expense(model.ExpenseTravel, "400", "100", "0"),
		expense(model.ExpenseOther, "400", "100", "0"),
		expense(model.ExpenseStationery, "30", "100", "0"),
	}
	reduction, err := TaxableIncomeReduction(expenses)
	require.NoError(t, err)
	assert.True(t, reduction.Equal(dec("30")))
}

func TestSelfEducation_Deduction(t *testing.T) {
	// 100 after work-related share; reduction = 100; deduction = total - 100.
	expenses := []model.EducationExpense{
		expense(model.ExpenseCourseFees, "100", "100", "0"),
	}
	summary, err := SelfEducation(expenses, nil)
	require.NoError(t, err)
	assert.True(t, summary.TaxableIncomeReduction.Equal(dec("100")))
	assert.True(t, summary.Deduction.IsZero(), "100 - 100 = 0")

	// Add travel (not reducible) so the deduction survives the reduction.
	expenses = append(expenses, expense(model.ExpenseTravel, "200", "100", "0"))
	summary, err = SelfEducation(expenses, nil)
	require.NoError(t, err)
	assert.True(t, summary.ExpenseTotal.Equal(dec("300")))
	assert.True(t, summary.Deduction.Equal(dec("200")))
}

func TestSelfEducation_NeverNegative(t *testing.T) {
	expenses := []model.EducationExpense{
		expense(model.ExpenseCourseFees, "40", "100", "0"),
	}
	summary, err := SelfEducation(expenses, nil)
	require.NoError(t, err)
	// 40 - min(250, 40) = 0, clamped by max(0, ...).
	assert.True(t, summary.Deduction.IsZero())
}

func TestSelfEducation_Apportionment(t *testing.T) {
	// 200 x 80% work x (100-25)% private-use apportionment = 120.
	expenses := []model.EducationExpense{
		expense(model.ExpenseOther, "200", "80", "25"),
	}
	summary, err := SelfEducation(expenses, nil)
	require.NoError(t, err)
	assert.True(t, summary.ExpenseTotal.Equal(dec("120")), "total = %s", summary.ExpenseTotal)
}

func TestSelfEducation_InvalidPercentages(t *testing.T) {
	tests := []struct {
		name string
		e    model.EducationExpense
	}{
		{"work pct over 100", expense(model.ExpenseCourseFees, "10", "130", "0")},
		{"negative private pct", expense(model.ExpenseCourseFees, "10", "50", "-5")},
		{"negative amount", expense(model.ExpenseCourseFees, "-10", "50", "0")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SelfEducation([]model.EducationExpense{tt.e}, nil)
			var verr model.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestAssetDecline(t *testing.T) {
	base := model.EducationAsset{
		ID: "a1", Cost: dec("1200"), EffectiveLifeYears: 4,
		BusinessUsePct: dec("100"),
	}

	diminishing := base
	diminishing.Method = model.MethodDiminishingValue
	got, err := AssetDecline(diminishing)
	require.NoError(t, err)
	// 1200 x 2/4 = 600.
	assert.True(t, got.Equal(dec("600")))

	prime := base
	prime.Method = model.MethodPrimeCost
	got, err = AssetDecline(prime)
	require.NoError(t, err)
	// 1200 / 4 = 300.
	assert.True(t, got.Equal(dec("300")))

	// Business-use percentage scales both.
	prime.BusinessUsePct = dec("50")
	got, err = AssetDecline(prime)
	require.NoError(t, err)
	assert.True(t, got.Equal(dec("150")))
}

func TestAssetDecline_OpeningBalanceCarriedForward(t *testing.T) {
	a := model.EducationAsset{
		ID: "a1", Cost: dec("1200"), OpeningBalance: dec("600"),
		EffectiveLifeYears: 4, Method: model.MethodDiminishingValue,
		BusinessUsePct: dec("100"),
	}
	got, err := AssetDecline(a)
	require.NoError(t, err)
	// Opening balance, not cost, is the base: 600 x 2/4 = 300.
	assert.True(t, got.Equal(dec("300")))
}

func TestAssetDecline_Invalid(t *testing.T) {
	a := model.EducationAsset{ID: "a1", Cost: dec("100"), Method: model.MethodPrimeCost, BusinessUsePct: dec("100")}
	_, err := AssetDecline(a) // zero effective life
	var verr model.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "effectiveLifeYears", verr.Field)

	a.EffectiveLifeYears = 5
	a.Method = "straight-line"
	_, err = AssetDecline(a)
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "method", verr.Field)
}
