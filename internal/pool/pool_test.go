package pool

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eeandrelle/tally/internal/model"
	"github.com/eeandrelle/tally/internal/taxyear"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestIsEligible(t *testing.T) {
	assert.True(t, IsEligible(dec("999.99")))
	assert.True(t, IsEligible(dec("1000")))
	assert.False(t, IsEligible(dec("1000.01")))
}

func TestAddAsset_FirstYearHalfRate(t *testing.T) {
	w := New("2025-26", decimal.Zero)

	w, err := AddAsset(w, AddAssetParams{
		Description:     "Office chair",
		Cost:            dec("1000"),
		AcquisitionDate: date(2025, 8, 1),
		FirstYear:       true,
	})
	require.NoError(t, err)
	require.Len(t, w.Assets, 1)

	// First-year decline = 1000 x 18.75% = 187.50.
	assert.True(t, w.Assets[0].Decline.Equal(dec("187.50")), "decline = %s", w.Assets[0].Decline)
	assert.True(t, w.Assets[0].ClosingBalance.Equal(dec("812.50")))
	assert.True(t, w.Summary.Additions.Equal(dec("1000")))
	assert.True(t, w.Summary.ClosingBalance.Equal(dec("812.50")))
}

func TestAddAsset_PoolMemberFullRate(t *testing.T) {
	w := New("2025-26", decimal.Zero)

	w, err := AddAsset(w, AddAssetParams{
		Description:     "Laptop dock",
		Cost:            dec("800"),
		AcquisitionDate: date(2024, 3, 1),
		FirstYear:       false,
		OpeningBalance:  dec("500"),
	})
	require.NoError(t, err)

	// Full-rate decline = 500 x 37.5% = 187.50.
	assert.True(t, w.Assets[0].Decline.Equal(dec("187.50")))
	assert.True(t, w.Summary.OpeningBalance.Equal(dec("500")))
	assert.True(t, w.Summary.ClosingBalance.Equal(dec("312.50")))
}

func TestAddAsset_Ineligible(t *testing.T) {
	w := New("2025-26", decimal.Zero)

	_, err := AddAsset(w, AddAssetParams{
		Description:     "Workstation",
		Cost:            dec("2500"),
		AcquisitionDate: date(2025, 8, 1),
		FirstYear:       true,
	})
	var ineligible IneligibleAssetError
	require.ErrorAs(t, err, &ineligible)
	assert.True(t, ineligible.Cost.Equal(dec("2500")))

	// Re-entry of an existing member above the threshold is allowed.
	_, err = AddAsset(w, AddAssetParams{
		Description:     "Workstation",
		Cost:            dec("2500"),
		AcquisitionDate: date(2022, 8, 1),
		FirstYear:       false,
		OpeningBalance:  dec("900"),
	})
	assert.NoError(t, err)
}

func TestAddAsset_InvalidCost(t *testing.T) {
	w := New("2025-26", decimal.Zero)

	for _, cost := range []string{"0", "-10"} {
		_, err := AddAsset(w, AddAssetParams{Cost: dec(cost), FirstYear: true})
		var verr model.ValidationError
		require.ErrorAs(t, err, &verr, "cost %s", cost)
		assert.Equal(t, "cost", verr.Field)
	}
}

func TestAddAsset_DoesNotMutateInput(t *testing.T) {
	w := New("2025-26", decimal.Zero)

	next, err := AddAsset(w, AddAssetParams{
		Description:     "Monitor",
		Cost:            dec("400"),
		AcquisitionDate: date(2025, 9, 1),
		FirstYear:       true,
	})
	require.NoError(t, err)
	assert.Len(t, w.Assets, 0, "input workpaper must be untouched")
	assert.Len(t, next.Assets, 1)
}

func TestDisposeAsset(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Description:     "Printer",
		Cost:            dec("600"),
		AcquisitionDate: date(2024, 2, 1),
		FirstYear:       false,
		OpeningBalance:  dec("450"),
	})
	require.NoError(t, err)
	assetID := w.Assets[0].ID

	w, err = DisposeAsset(w, assetID, DisposalParams{
		Date:      date(2025, 10, 1),
		Type:      model.DisposalSale,
		SalePrice: dec("200"),
	})
	require.NoError(t, err)

	a, ok := Find(w, assetID)
	require.True(t, ok)
	require.True(t, a.Disposed())
	assert.True(t, a.Disposal.TerminationValue.Equal(dec("200")))
	assert.True(t, a.Decline.IsZero(), "no decline accrues after disposal")
	assert.True(t, w.Summary.DisposalAdjustments.Equal(dec("200")))
	// 450 opening - 200 termination = 250.
	assert.True(t, w.Summary.ClosingBalance.Equal(dec("250")))
}

func TestDisposeAsset_Errors(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Description:     "Scanner",
		Cost:            dec("300"),
		AcquisitionDate: date(2025, 7, 10),
		FirstYear:       true,
	})
	require.NoError(t, err)
	assetID := w.Assets[0].ID

	_, err = DisposeAsset(w, "missing", DisposalParams{Date: date(2025, 12, 1)})
	var unknown UnknownAssetError
	assert.ErrorAs(t, err, &unknown)

	w, err = DisposeAsset(w, assetID, DisposalParams{Date: date(2025, 12, 1), Type: model.DisposalScrap})
	require.NoError(t, err)

	_, err = DisposeAsset(w, assetID, DisposalParams{Date: date(2026, 1, 1)})
	var already AlreadyDisposedError
	assert.ErrorAs(t, err, &already)
}

func TestDispose_TerminationFallbacks(t *testing.T) {
	build := func() (model.PoolWorkpaper, string) {
		w := New("2025-26", decimal.Zero)
		w, err := AddAsset(w, AddAssetParams{
			Cost: dec("500"), AcquisitionDate: date(2024, 1, 1), OpeningBalance: dec("400"),
		})
		require.NoError(t, err)
		return w, w.Assets[0].ID
	}

	// Sale price wins when both given.
	w, id := build()
	w, err := DisposeAsset(w, id, DisposalParams{
		Date: date(2025, 8, 1), Type: model.DisposalSale,
		SalePrice: dec("150"), TerminationValue: dec("999"),
	})
	require.NoError(t, err)
	assert.True(t, w.Assets[0].Disposal.TerminationValue.Equal(dec("150")))

	// Termination value used when no sale price.
	w, id = build()
	w, err = DisposeAsset(w, id, DisposalParams{
		Date: date(2025, 8, 1), Type: model.DisposalTradeIn, TerminationValue: dec("120"),
	})
	require.NoError(t, err)
	assert.True(t, w.Assets[0].Disposal.TerminationValue.Equal(dec("120")))

	// Neither given: zero.
	w, id = build()
	w, err = DisposeAsset(w, id, DisposalParams{Date: date(2025, 8, 1), Type: model.DisposalScrap})
	require.NoError(t, err)
	assert.True(t, w.Assets[0].Disposal.TerminationValue.IsZero())
}

func TestRecalculate_Idempotent(t *testing.T) {
	w := New("2025-26", dec("1200"))
	w, err := AddAsset(w, AddAssetParams{
		Cost: dec("990"), AcquisitionDate: date(2025, 7, 2), FirstYear: true,
	})
	require.NoError(t, err)
	w, err = AddAsset(w, AddAssetParams{
		Cost: dec("700"), AcquisitionDate: date(2023, 7, 2), OpeningBalance: dec("310.55"),
	})
	require.NoError(t, err)
	w, err = DisposeAsset(w, w.Assets[0].ID, DisposalParams{
		Date: date(2026, 2, 1), Type: model.DisposalSale, SalePrice: dec("400"),
	})
	require.NoError(t, err)

	once := Recalculate(w)
	twice := Recalculate(once)
	assert.Equal(t, once.Summary, twice.Summary)
	require.Equal(t, len(once.Assets), len(twice.Assets))
	for i := range once.Assets {
		assert.True(t, once.Assets[i].Decline.Equal(twice.Assets[i].Decline))
		assert.True(t, once.Assets[i].ClosingBalance.Equal(twice.Assets[i].ClosingBalance))
	}
}

func TestClosingBalance_NeverNegative(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Cost: dec("200"), AcquisitionDate: date(2023, 5, 1), OpeningBalance: dec("100"),
	})
	require.NoError(t, err)

	// Termination value far above the remaining pool balance.
	w, err = DisposeAsset(w, w.Assets[0].ID, DisposalParams{
		Date: date(2025, 9, 1), Type: model.DisposalSale, SalePrice: dec("180"),
	})
	require.NoError(t, err)

	// Adjustment capped at the cost base (100); pool = 100 - 100 = 0.
	assert.True(t, w.Summary.ClosingBalance.GreaterThanOrEqual(decimal.Zero))
	assert.True(t, w.Summary.DisposalAdjustments.Equal(dec("100")))
	assert.True(t, w.Summary.ClosingBalance.IsZero())
}

func TestDisposals_ResidualDecline(t *testing.T) {
	w := New("2025-26", dec("80"))
	w, err := AddAsset(w, AddAssetParams{
		Cost: dec("900"), AcquisitionDate: date(2022, 5, 1), OpeningBalance: dec("100"),
	})
	require.NoError(t, err)
	w, err = DisposeAsset(w, w.Assets[0].ID, DisposalParams{
		Date: date(2025, 8, 1), Type: model.DisposalSale, SalePrice: dec("100"),
	})
	require.NoError(t, err)

	// opening 180, decline on residual 80 x 37.5% = 30, adjustment 100.
	// closing = 180 - 30 - 100 = 50.
	assert.True(t, w.Summary.ClosingBalance.Equal(dec("50")))
	assert.True(t, w.Summary.AssessableAdjustment.IsZero())

	// With no residual the capped disposal empties the pool exactly.
	w.PriorYearClosing = decimal.Zero
	w = Recalculate(w)
	assert.True(t, w.Summary.ClosingBalance.IsZero())
}

func TestNonNegativity_RandomishSequence(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	costs := []string{"999.99", "12.40", "850", "1000", "3.75"}
	for _, c := range costs {
		var err error
		w, err = AddAsset(w, AddAssetParams{
			Cost: dec(c), AcquisitionDate: date(2025, 7, 1), FirstYear: true,
		})
		require.NoError(t, err)
	}
	for i, a := range w.Assets {
		if i%2 == 0 {
			var err error
			w, err = DisposeAsset(w, a.ID, DisposalParams{
				Date: date(2026, 5, 1), Type: model.DisposalSale, SalePrice: dec("5000"),
			})
			require.NoError(t, err)
		}
	}
	assert.True(t, w.Summary.ClosingBalance.GreaterThanOrEqual(decimal.Zero))
}

func TestScenario_PoolLifecycle(t *testing.T) {
	// Year 1: add asset A (cost 1000, first year).
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Description:     "A",
		Cost:            dec("1000"),
		AcquisitionDate: date(2025, 7, 15),
		FirstYear:       true,
	})
	require.NoError(t, err)
	assetID := w.Assets[0].ID

	assert.True(t, w.Assets[0].Decline.Equal(dec("187.50")))
	assert.True(t, w.Summary.ClosingBalance.Equal(dec("812.50")))

	// Year 2: explicit rollover promotes A to a full-rate member.
	w2, err := Rollover(w, "2026-27")
	require.NoError(t, err)
	require.Len(t, w2.Assets, 1)
	assert.False(t, w2.Assets[0].FirstYear)
	assert.True(t, w2.Assets[0].OpeningBalance.Equal(dec("812.50")))
	assert.Equal(t, "2026-27", w2.TaxYear)

	// Dispose A for 600: the pool reduces by 600 and A accrues nothing.
	w2, err = DisposeAsset(w2, assetID, DisposalParams{
		Date: date(2026, 8, 1), Type: model.DisposalSale, SalePrice: dec("600"),
	})
	require.NoError(t, err)
	assert.True(t, w2.Summary.DisposalAdjustments.Equal(dec("600")))
	assert.True(t, w2.Summary.ClosingBalance.Equal(dec("212.50")))
	assert.True(t, w2.Assets[0].Decline.IsZero())
}

func TestRollover_DropsDisposedAssets(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Cost: dec("400"), AcquisitionDate: date(2025, 7, 1), FirstYear: true,
	})
	require.NoError(t, err)
	w, err = AddAsset(w, AddAssetParams{
		Cost: dec("600"), AcquisitionDate: date(2025, 8, 1), FirstYear: true,
	})
	require.NoError(t, err)
	w, err = DisposeAsset(w, w.Assets[1].ID, DisposalParams{
		Date: date(2026, 3, 1), Type: model.DisposalScrap,
	})
	require.NoError(t, err)

	next, err := Rollover(w, "2026-27")
	require.NoError(t, err)
	require.Len(t, next.Assets, 1)
	assert.Equal(t, w.Assets[0].ID, next.Assets[0].ID)

	_, err = Rollover(w, taxyear.Year("garbage"))
	assert.Error(t, err)
}

func TestRemoveAsset(t *testing.T) {
	w := New("2025-26", decimal.Zero)
	w, err := AddAsset(w, AddAssetParams{
		Cost: dec("250"), AcquisitionDate: date(2025, 7, 1), FirstYear: true,
	})
	require.NoError(t, err)

	next, err := RemoveAsset(w, w.Assets[0].ID)
	require.NoError(t, err)
	assert.Empty(t, next.Assets)
	assert.True(t, next.Summary.ClosingBalance.IsZero())

	_, err = RemoveAsset(w, "missing")
	var unknown UnknownAssetError
	assert.ErrorAs(t, err, &unknown)
}
