package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubmissionStatus is the submission workflow state. Transitions are
// computed by the gate's checklist; only Confirm moves a period to
// StatusBestaetigt, and Confirmed never regresses.
type SubmissionStatus string

const (
	StatusEntwurf     SubmissionStatus = "entwurf"     // Draft
	StatusBerechnet   SubmissionStatus = "berechnet"   // Computed
	StatusValidiert   SubmissionStatus = "validiert"   // Validated
	StatusFreigegeben SubmissionStatus = "freigegeben" // Released
	StatusEingereicht SubmissionStatus = "eingereicht" // Submitted
	StatusBestaetigt  SubmissionStatus = "bestaetigt"  // Confirmed
	StatusFehler      SubmissionStatus = "fehler"      // Failed
)

// ChecklistItem is a single submission readiness check. Error-severity
// items block, warning-severity items do not.
type ChecklistItem struct {
	Label    string   `json:"label"`
	Passed   bool     `json:"passed"`
	Severity Severity `json:"severity"`
	Details  string   `json:"details,omitempty"`
}

// PrepareRequest asks the gate to evaluate submission readiness.
type PrepareRequest struct {
	KZValues     KZValues  `json:"kz_values"`
	Year         int       `json:"year"`
	Month        int       `json:"month"`
	Steuernummer string    `json:"steuernummer"`
	Invoices     []Invoice `json:"invoices,omitempty"`

	// SonstigeBerichtigungen is the manual adjustment used during the
	// calculation; it must be carried here for KZ095 to reconcile.
	SonstigeBerichtigungen decimal.Decimal `json:"sonstige_berichtigungen"`

	// CorrelationID and tenant/user ids tag results for audit only; their
	// absence never changes any calculation outcome.
	CorrelationID string `json:"correlation_id,omitempty"`
	TenantID      string `json:"tenant_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

// PrepareResponse carries the full checklist plus the state decision.
type PrepareResponse struct {
	Ready          bool             `json:"ready"`
	CurrentStatus  SubmissionStatus `json:"current_status"`
	NextStatus     SubmissionStatus `json:"next_status"`
	Checklist      []ChecklistItem  `json:"checklist"`
	BlockingIssues int              `json:"blocking_issues"`
	Warnings       int              `json:"warnings"`
	XMLPreview     string           `json:"xml_preview,omitempty"`
	DueDate        string           `json:"due_date"`
}

// ConfirmRequest marks a period as manually submitted via FinanzOnline.
// IdempotencyKey makes retries safe: an empty key is generated server-side
// (and therefore never deduplicates).
type ConfirmRequest struct {
	Year                  int    `json:"year"`
	Month                 int    `json:"month"`
	IdempotencyKey        string `json:"idempotency_key,omitempty"`
	ConfirmationNote      string `json:"confirmation_note,omitempty"`
	FinanzOnlineReference string `json:"finanzonline_reference,omitempty"`

	CorrelationID string `json:"correlation_id,omitempty"`
	TenantID      string `json:"tenant_id,omitempty"`
	UserID        string `json:"user_id,omitempty"`
}

// ConfirmResponse reports the confirmation outcome. WasDuplicate is true
// when the idempotency key had been seen before and the stored result was
// replayed without side effect.
type ConfirmResponse struct {
	Success      bool             `json:"success"`
	NewStatus    SubmissionStatus `json:"new_status"`
	Timestamp    time.Time        `json:"timestamp"`
	Message      string           `json:"message"`
	WasDuplicate bool             `json:"was_duplicate"`
}
