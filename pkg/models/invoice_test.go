package models

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInvoiceType(t *testing.T) {
	t.Parallel()

	got, err := ParseInvoiceType("eingang")
	require.NoError(t, err)
	assert.Equal(t, Eingang, got)

	got, err = ParseInvoiceType("ausgang")
	require.NoError(t, err)
	assert.Equal(t, Ausgang, got)

	_, err = ParseInvoiceType("storno")
	assert.Error(t, err)
}

func TestParseTaxTreatment(t *testing.T) {
	t.Parallel()

	for _, treatment := range AllTaxTreatments {
		got, err := ParseTaxTreatment(string(treatment))
		require.NoError(t, err)
		assert.Equal(t, treatment, got)
	}

	_, err := ParseTaxTreatment("margin_scheme")
	assert.Error(t, err)
}

func TestIsReverseCharge(t *testing.T) {
	t.Parallel()

	rc := map[TaxTreatment]bool{
		TreatmentReverseCharge191:   true,
		TreatmentReverseCharge191A:  true,
		TreatmentReverseCharge191B:  true,
		TreatmentReverseCharge191D:  true,
		TreatmentReverseCharge19134: true,
	}
	for _, treatment := range AllTaxTreatments {
		assert.Equal(t, rc[treatment], treatment.IsReverseCharge(), string(treatment))
	}
}

func TestInvoiceValidate(t *testing.T) {
	t.Parallel()

	valid := Invoice{
		ID:           "inv-1",
		NetAmount:    decimal.RequireFromString("100.00"),
		VATRate:      20,
		VATAmount:    decimal.RequireFromString("20.00"),
		GrossAmount:  decimal.RequireFromString("120.00"),
		InvoiceType:  Ausgang,
		TaxTreatment: TreatmentNormal,
	}
	require.NoError(t, valid.Validate())

	badType := valid
	badType.InvoiceType = "gutschrift"
	assert.Error(t, badType.Validate())

	badTreatment := valid
	badTreatment.TaxTreatment = "unknown"
	assert.Error(t, badTreatment.Validate())

	badRate := valid
	badRate.VATRate = 21
	assert.Error(t, badRate.Validate())
}
