package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// InvoiceType distinguishes incoming (purchase) from outgoing (sales)
// invoices. The wire values are the German terms used by the U30 tooling
// and form a closed set.
type InvoiceType string

const (
	// Eingang is an incoming invoice (purchase, we owe the supplier).
	Eingang InvoiceType = "eingang"
	// Ausgang is an outgoing invoice (sale, the customer owes us).
	Ausgang InvoiceType = "ausgang"
)

// ParseInvoiceType rejects anything outside the closed enumeration.
func ParseInvoiceType(s string) (InvoiceType, error) {
	switch InvoiceType(s) {
	case Eingang, Ausgang:
		return InvoiceType(s), nil
	}
	return "", fmt.Errorf("unknown invoice type %q (expected 'eingang' or 'ausgang')", s)
}

// TaxTreatment is the closed set of tax treatments recognized by the
// accumulation decision table. Adding a value here requires updating the
// engine's decision table, the validator's symmetry pairs and the XML
// renderer; the engine panics on a variant it does not handle.
type TaxTreatment string

const (
	TreatmentNormal             TaxTreatment = "normal"
	TreatmentExport             TaxTreatment = "export"
	TreatmentIGLieferung        TaxTreatment = "ig_lieferung"
	TreatmentLohnveredelung     TaxTreatment = "lohnveredelung"
	TreatmentDreiecksgeschaeft  TaxTreatment = "dreiecksgeschaeft"
	TreatmentFahrzeugOhneUID    TaxTreatment = "fahrzeug_ohne_uid"
	TreatmentIGErwerb           TaxTreatment = "ig_erwerb"
	TreatmentReverseCharge191   TaxTreatment = "reverse_charge_19_1"
	TreatmentReverseCharge191A  TaxTreatment = "reverse_charge_19_1a"
	TreatmentReverseCharge191B  TaxTreatment = "reverse_charge_19_1b"
	TreatmentReverseCharge191D  TaxTreatment = "reverse_charge_19_1d"
	TreatmentReverseCharge19134 TaxTreatment = "reverse_charge_19_1_3_4"
	TreatmentEinfuhr            TaxTreatment = "einfuhr"
	TreatmentEUStAbgabenkonto   TaxTreatment = "eust_abgabenkonto"
	TreatmentGrundstueck        TaxTreatment = "grundstueck"
	TreatmentKleinunternehmer   TaxTreatment = "kleinunternehmer"
	TreatmentSteuerbefreitSonst TaxTreatment = "steuerbefreit_sonstige"
)

// AllTaxTreatments lists every member of the closed enumeration.
var AllTaxTreatments = []TaxTreatment{
	TreatmentNormal,
	TreatmentExport,
	TreatmentIGLieferung,
	TreatmentLohnveredelung,
	TreatmentDreiecksgeschaeft,
	TreatmentFahrzeugOhneUID,
	TreatmentIGErwerb,
	TreatmentReverseCharge191,
	TreatmentReverseCharge191A,
	TreatmentReverseCharge191B,
	TreatmentReverseCharge191D,
	TreatmentReverseCharge19134,
	TreatmentEinfuhr,
	TreatmentEUStAbgabenkonto,
	TreatmentGrundstueck,
	TreatmentKleinunternehmer,
	TreatmentSteuerbefreitSonst,
}

// ParseTaxTreatment rejects anything outside the closed enumeration.
func ParseTaxTreatment(s string) (TaxTreatment, error) {
	for _, t := range AllTaxTreatments {
		if TaxTreatment(s) == t {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown tax treatment %q", s)
}

// IsReverseCharge reports whether the treatment shifts the tax liability
// to the recipient (§19 UStG variants).
func (t TaxTreatment) IsReverseCharge() bool {
	switch t {
	case TreatmentReverseCharge191, TreatmentReverseCharge191A,
		TreatmentReverseCharge191B, TreatmentReverseCharge191D,
		TreatmentReverseCharge19134:
		return true
	}
	return false
}

// ValidVATRates are the Austrian VAT rates accepted at the boundary
// (UStG 1994; 19% applies in Jungholz/Mittelberg, 5% is historical).
var ValidVATRates = []int{0, 5, 7, 10, 13, 19, 20}

// IsValidVATRate reports whether the rate belongs to the closed set.
func IsValidVATRate(rate int) bool {
	for _, r := range ValidVATRates {
		if rate == r {
			return true
		}
	}
	return false
}

// Invoice is a single invoice record feeding the UVA calculation.
// Net, VAT and gross amounts are supplied independently; the engine checks
// their consistency but never derives one from another.
type Invoice struct {
	ID            string          `json:"id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	InvoiceDate   string          `json:"invoice_date,omitempty"` // YYYY-MM-DD
	VendorName    string          `json:"vendor_name,omitempty"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATRate       int             `json:"vat_rate"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	GrossAmount   decimal.Decimal `json:"gross_amount"`
	InvoiceType   InvoiceType     `json:"invoice_type"`
	TaxTreatment  TaxTreatment    `json:"tax_treatment"`
	Currency      string          `json:"currency,omitempty"`
	Description   string          `json:"description,omitempty"`

	// RKSV cash-register receipt metadata (optional).
	RKSVReceipt  bool   `json:"rksv_receipt,omitempty"`
	RKSVKassenID string `json:"rksv_kassenid,omitempty"`
	RKSVBelegnr  string `json:"rksv_belegnr,omitempty"`
	RKSVQRData   string `json:"rksv_qr_data,omitempty"`
}

// Validate enforces the boundary contract: closed enumerations and the
// closed VAT rate set. Plausibility of the amounts themselves is the
// engine's business, not a boundary error.
func (inv *Invoice) Validate() error {
	if _, err := ParseInvoiceType(string(inv.InvoiceType)); err != nil {
		return fmt.Errorf("invoice %s: %w", inv.ID, err)
	}
	if _, err := ParseTaxTreatment(string(inv.TaxTreatment)); err != nil {
		return fmt.Errorf("invoice %s: %w", inv.ID, err)
	}
	if !IsValidVATRate(inv.VATRate) {
		return fmt.Errorf("invoice %s: vat_rate %d not in allowed set %v", inv.ID, inv.VATRate, ValidVATRates)
	}
	return nil
}
