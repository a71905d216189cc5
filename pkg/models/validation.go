package models

import "github.com/shopspring/decimal"

// Severity classifies a validation finding. Only error-severity findings
// block the submission gate.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// ValidationIssue is a single domain-rule finding with a stable code.
type ValidationIssue struct {
	Severity  Severity `json:"severity"`
	Code      string   `json:"code"`
	Message   string   `json:"message"`
	Field     string   `json:"field,omitempty"`
	InvoiceID string   `json:"invoice_id,omitempty"`
	KZ        string   `json:"kz,omitempty"`
}

// HasErrors reports whether any issue in the list is error-severity.
func HasErrors(issues []ValidationIssue) bool {
	for _, i := range issues {
		if i.Severity == SeverityError {
			return true
		}
	}
	return false
}

// CalculateRequest is the input to the accumulation engine.
type CalculateRequest struct {
	Invoices []Invoice `json:"invoices"`
	Year     int       `json:"year"`
	Month    int       `json:"month"`
	// SonstigeBerichtigungen is the manual adjustment added to KZ095.
	SonstigeBerichtigungen decimal.Decimal `json:"sonstige_berichtigungen"`
}

// ProcessingDetail records which Kennzahlen a single invoice contributed
// to. Audit/debugging only; never fed back into the accumulation.
type ProcessingDetail struct {
	InvoiceID     string          `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number,omitempty"`
	MappedToKZ    []string        `json:"mapped_to_kz"`
	NetAmount     decimal.Decimal `json:"net_amount"`
	VATAmount     decimal.Decimal `json:"vat_amount"`
	TaxTreatment  string          `json:"tax_treatment"`
	InvoiceType   string          `json:"invoice_type"`
}

// Summary carries the category counters and section totals of a
// calculation.
type Summary struct {
	InvoiceCount int `json:"invoice_count"`
	AusgangCount int `json:"ausgang_count"`
	EingangCount int `json:"eingang_count"`
	IGCount      int `json:"ig_count"`
	RCCount      int `json:"rc_count"`
	ExportCount  int `json:"export_count"`
	RKSVCount    int `json:"rksv_count"`
	SkippedCount int `json:"skipped_count"`

	SummeUSt          decimal.Decimal `json:"summe_ust"`
	SummeSteuerschuld decimal.Decimal `json:"summe_steuerschuld"`
	SummeIGUSt        decimal.Decimal `json:"summe_ig_ust"`
	GesamtUSt         decimal.Decimal `json:"gesamt_ust"`
	SummeVorsteuer    decimal.Decimal `json:"summe_vorsteuer"`
	Zahllast          decimal.Decimal `json:"zahllast"`
	DueDate           string          `json:"due_date,omitempty"`
}

// CalculateResponse is the output of the accumulation engine. Errors is
// only populated when the request was rejected at the input boundary; in
// that case Success is false and no field carries a partial result.
type CalculateResponse struct {
	Success           bool               `json:"success"`
	Errors            []ValidationIssue  `json:"errors,omitempty"`
	KZValues          KZValues           `json:"kz_values"`
	Summary           Summary            `json:"summary"`
	Warnings          []ValidationIssue  `json:"warnings"`
	ProcessingDetails []ProcessingDetail `json:"processing_details"`
}

// ValidateRequest is the input to the plausibility validator. Invoices are
// optional and enable the deep cross-checks; SonstigeBerichtigungen must
// match the adjustment used during calculation for KZ095 to reconcile.
type ValidateRequest struct {
	KZValues               KZValues        `json:"kz_values"`
	Year                   int             `json:"year"`
	Month                  int             `json:"month"`
	Invoices               []Invoice       `json:"invoices,omitempty"`
	SonstigeBerichtigungen decimal.Decimal `json:"sonstige_berichtigungen"`
}

// ValidateResponse partitions the findings by severity. Valid is true iff
// there are zero errors.
type ValidateResponse struct {
	Valid    bool              `json:"valid"`
	Errors   []ValidationIssue `json:"errors"`
	Warnings []ValidationIssue `json:"warnings"`
	Infos    []ValidationIssue `json:"infos"`

	PlausibilityPassed bool            `json:"bmf_plausibility_passed"`
	KZ095Recalculated  decimal.Decimal `json:"kz095_recalculated"`
	KZ095Matches       bool            `json:"kz095_matches"`
}
