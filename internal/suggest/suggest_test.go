package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eeandrelle/tally/internal/model"
)

func TestCategories(t *testing.T) {
	tests := []struct {
		description string
		want        model.AtoCategory
	}{
		{"Donation to Red Cross appeal", model.CategoryDonations},
		{"University course textbooks", model.CategorySelfEducation},
		{"Flight and hotel for site visit", model.CategoryTravel},
		{"Personal superannuation contribution notice of intent", model.CategorySuper},
		{"Foreign pension annuity statement", model.CategoryUPP},
		{"Fuel and parking", model.CategoryCar},
	}
	for _, tt := range tests {
		got := Categories(tt.description)
		require.NotEmpty(t, got, "description %q", tt.description)
		assert.Equal(t, tt.want, got[0], "description %q ranked %v", tt.description, got)
	}
}

func TestCategories_NoMatch(t *testing.T) {
	assert.Empty(t, Categories("zzz unrelated text"))
	assert.Empty(t, Categories(""))
	assert.Empty(t, Categories("   "))
}

func TestCategories_Deterministic(t *testing.T) {
	desc := "laptop for university course with internet subscription"
	first := Categories(desc)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Categories(desc))
	}
}

func TestCategories_CaseInsensitive(t *testing.T) {
	assert.Equal(t, Categories("CHARITY GIFT"), Categories("charity gift"))
}
