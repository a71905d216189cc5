package models

import "github.com/shopspring/decimal"

// RKSVReceipt is cash-register receipt data for the independent RKSV
// validator. It deliberately shares nothing with the UVA core beyond the
// issue type.
type RKSVReceipt struct {
	KassenID string `json:"rksv_kassenid,omitempty"`
	Belegnr  string `json:"rksv_belegnr,omitempty"`
	QRData   string `json:"rksv_qr_data,omitempty"`
	Receipt  bool   `json:"rksv_receipt"`

	Betrag *decimal.Decimal `json:"betrag,omitempty"`
	Datum  string           `json:"datum,omitempty"` // YYYY-MM-DD
}

// RKSVValidationRequest validates a batch of receipts.
type RKSVValidationRequest struct {
	Receipts []RKSVReceipt `json:"receipts"`
}

// RKSVValidationResponse carries per-batch counts plus structured issues.
type RKSVValidationResponse struct {
	Valid           bool              `json:"valid"`
	TotalReceipts   int               `json:"total_receipts"`
	ValidReceipts   int               `json:"valid_receipts"`
	InvalidReceipts int               `json:"invalid_receipts"`
	Issues          []ValidationIssue `json:"issues"`
}
