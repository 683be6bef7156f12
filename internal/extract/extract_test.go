package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleInvoice = `Acme Office Supplies Pty Ltd
ABN: 51 824 753 556
Tax Invoice INV-2041
Invoice Date: 14/08/2025
Desk lamp          $89.00
GST: $8.09
Total Due: $89.00
Payment Terms: Net 30
`

func TestValidABN(t *testing.T) {
	assert.True(t, ValidABN("51824753556"))
	assert.False(t, ValidABN("12345678901"), "bad checksum")
	assert.False(t, ValidABN("5182475355"), "too short")
	assert.False(t, ValidABN("518247535567"), "too long")
	assert.False(t, ValidABN("5182475355a"), "non-digit")
	assert.False(t, ValidABN(""))
}

func TestTextParser_FullInvoice(t *testing.T) {
	p := &TextParser{}
	inv, err := p.Parse(sampleInvoice)
	require.NoError(t, err)

	require.NotNil(t, inv.ABN)
	assert.Equal(t, "51824753556", inv.ABN.Value, "spaces stripped")
	assert.True(t, ValidABN(inv.ABN.Value))

	require.NotNil(t, inv.InvoiceNumber)
	assert.Equal(t, "INV-2041", inv.InvoiceNumber.Value)

	require.NotNil(t, inv.InvoiceDate)
	assert.Equal(t, "14/08/2025", inv.InvoiceDate.Value)

	require.NotNil(t, inv.TotalAmount)
	assert.Equal(t, "89", inv.TotalAmount.Value.String())

	require.NotNil(t, inv.GSTAmount)
	assert.Equal(t, "8.09", inv.GSTAmount.Value.String())

	require.NotNil(t, inv.VendorName)
	assert.Equal(t, "Acme Office Supplies Pty Ltd", inv.VendorName.Value)

	require.NotNil(t, inv.PaymentTerms)
	assert.Equal(t, "Net 30", inv.PaymentTerms.Value)

	assert.InDelta(t, 0.843, inv.OverallConfidence, 0.01)
}

func TestTextParser_SparseReceipt(t *testing.T) {
	p := &TextParser{}
	inv, err := p.Parse("Corner Cafe\nTotal: 45.00\n")
	require.NoError(t, err)

	assert.Nil(t, inv.ABN)
	assert.Nil(t, inv.InvoiceNumber)
	assert.Nil(t, inv.InvoiceDate)
	require.NotNil(t, inv.TotalAmount)
	assert.Equal(t, "45", inv.TotalAmount.Value.String())
	require.NotNil(t, inv.VendorName)
	assert.Equal(t, "Corner Cafe", inv.VendorName.Value)
	assert.InDelta(t, 0.625, inv.OverallConfidence, 0.001)
}

func TestValidate_Accept(t *testing.T) {
	p := &TextParser{}
	inv, err := p.Parse(sampleInvoice)
	require.NoError(t, err)

	v := Validate(inv, DefaultThresholds)
	assert.True(t, v.IsValid)
	assert.Empty(t, v.MissingFields)
	assert.Empty(t, v.Warnings)
	assert.Equal(t, ActionAccept, v.SuggestedAction)
}

func TestValidate_Review(t *testing.T) {
	p := &TextParser{}
	inv, err := p.Parse("Corner Cafe\nTotal: 45.00\n")
	require.NoError(t, err)

	v := Validate(inv, DefaultThresholds)
	assert.True(t, v.IsValid, "total found and confidence above review floor")
	assert.ElementsMatch(t, []string{"abn", "invoiceNumber", "invoiceDate"}, v.MissingFields)
	assert.Equal(t, ActionReview, v.SuggestedAction)
}

func TestValidate_Reject(t *testing.T) {
	v := Validate(Invoice{}, DefaultThresholds)
	assert.False(t, v.IsValid)
	assert.Contains(t, v.MissingFields, "totalAmount")
	assert.Equal(t, ActionReject, v.SuggestedAction)
}

func TestValidate_BadChecksumWarns(t *testing.T) {
	inv := Invoice{
		ABN:               &StringField{Value: "12345678901", Confidence: 0.95},
		TotalAmount:       &AmountField{Confidence: 0.9},
		OverallConfidence: 0.9,
	}
	v := Validate(inv, DefaultThresholds)
	require.NotEmpty(t, v.Warnings)
	assert.Contains(t, v.Warnings[0], "12345678901")
	assert.True(t, v.IsValid, "checksum failure warns, it does not invalidate")
}

func TestRegistry(t *testing.T) {
	r := NewRegistry()

	p, err := r.Get("text")
	require.NoError(t, err)
	assert.Equal(t, "text", p.Format())

	_, err = r.Get("pdf")
	var unknownErr *UnknownFormatError
	require.ErrorAs(t, err, &unknownErr)
	assert.Equal(t, "pdf", unknownErr.Format)
}
