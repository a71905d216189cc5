// Package rksv validates Austrian cash-register receipt data
// (Registrierkassensicherheitsverordnung): identifier formats, QR code
// structure and plausibility. Cryptographic signature verification is out
// of scope; receipts are checked for form, not authenticity.
package rksv

import (
	"encoding/base64"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"uvaexpress/pkg/models"
)

var (
	// Kassen-ID: alphanumeric, UUID-style or user defined, max 36 chars.
	kassenIDPattern = regexp.MustCompile(`^[a-zA-Z0-9\-_]{1,36}$`)
	// Belegnummer: alphanumeric with dash/slash, max 20 chars.
	belegnrPattern = regexp.MustCompile(`^[a-zA-Z0-9\-/]{1,20}$`)
)

const (
	// qrPrefix starts every machine-readable code of the DEP export
	// format (_R1-AT...).
	qrPrefix = "_R1-AT"
	// qrMinFields is the minimum field count of a complete code.
	qrMinFields = 13
	// qrMaxLen caps the accepted code length.
	qrMaxLen = 1500
)

// Validate checks a batch of receipts for format compliance and
// plausibility. A receipt counts as invalid when it produced at least one
// error-severity finding; warnings alone leave it valid.
func Validate(req models.RKSVValidationRequest) models.RKSVValidationResponse {
	var issues []models.ValidationIssue
	validCount, invalidCount := 0, 0

	// Belegnummern must be unique per till.
	seen := make(map[string]int)

	for idx, receipt := range req.Receipts {
		var ri []models.ValidationIssue

		if receipt.KassenID != "" {
			ri = append(ri, checkKassenID(receipt.KassenID, idx)...)
		}
		if receipt.Belegnr != "" {
			ri = append(ri, checkBelegnr(receipt.Belegnr, idx)...)
		}
		if receipt.QRData != "" {
			ri = append(ri, checkQRData(receipt.QRData, idx)...)
		}
		ri = append(ri, checkPlausibility(&receipt, idx)...)

		if receipt.KassenID != "" && receipt.Belegnr != "" {
			key := receipt.KassenID + ":" + receipt.Belegnr
			if prev, dup := seen[key]; dup {
				ri = append(ri, models.ValidationIssue{
					Severity: models.SeverityError,
					Code:     "RKSV_DUPLICATE_BELEG",
					Message: fmt.Sprintf(
						"Beleg %d: Doppelte Belegnummer '%s' für Kasse '%s' (bereits bei Beleg %d)",
						idx+1, receipt.Belegnr, receipt.KassenID, prev+1),
					Field: "rksv_belegnr",
				})
			} else {
				seen[key] = idx
			}
		}

		if models.HasErrors(ri) {
			invalidCount++
		} else {
			validCount++
		}
		issues = append(issues, ri...)
	}

	return models.RKSVValidationResponse{
		Valid:           invalidCount == 0,
		TotalReceipts:   len(req.Receipts),
		ValidReceipts:   validCount,
		InvalidReceipts: invalidCount,
		Issues:          issues,
	}
}

func checkKassenID(kassenID string, idx int) []models.ValidationIssue {
	var issues []models.ValidationIssue
	kassenID = strings.TrimSpace(kassenID)

	if !kassenIDPattern.MatchString(kassenID) {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "RKSV_KASSENID_FORMAT",
			Message: fmt.Sprintf(
				"Beleg %d: Kassen-ID '%s' hat ungültiges Format. Erlaubt: alphanumerisch, Bindestrich, Unterstrich, max 36 Zeichen.",
				idx+1, kassenID),
			Field: "rksv_kassenid",
		})
	}
	if len(kassenID) < 3 {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "RKSV_KASSENID_SHORT",
			Message:  fmt.Sprintf("Beleg %d: Kassen-ID '%s' ist ungewöhnlich kurz", idx+1, kassenID),
			Field:    "rksv_kassenid",
		})
	}
	return issues
}

func checkBelegnr(belegnr string, idx int) []models.ValidationIssue {
	belegnr = strings.TrimSpace(belegnr)
	if belegnrPattern.MatchString(belegnr) {
		return nil
	}
	return []models.ValidationIssue{{
		Severity: models.SeverityError,
		Code:     "RKSV_BELEGNR_FORMAT",
		Message: fmt.Sprintf(
			"Beleg %d: Belegnummer '%s' hat ungültiges Format. Erlaubt: alphanumerisch, Bindestrich, Schrägstrich, max 20 Zeichen.",
			idx+1, belegnr),
		Field: "rksv_belegnr",
	}}
}

// checkQRData validates the DEP-export code structure:
// _R1-AT0_KassenID_Belegnr_Datum_Betrag-Normal_..._Signatur, fields
// separated by underscores. Amount fields are either cents or base64
// (encrypted turnover counter).
func checkQRData(qrData string, idx int) []models.ValidationIssue {
	var issues []models.ValidationIssue
	qrData = strings.TrimSpace(qrData)

	if !strings.HasPrefix(qrData, qrPrefix) {
		return []models.ValidationIssue{{
			Severity: models.SeverityError,
			Code:     "RKSV_QR_PREFIX",
			Message: fmt.Sprintf(
				"Beleg %d: QR-Daten beginnen nicht mit '%s'. RKSV-konformer QR-Code muss mit '_R1-AT' beginnen.",
				idx+1, qrPrefix),
			Field: "rksv_qr_data",
		}}
	}

	fields := splitQRFields(qrData)
	if len(fields) < qrMinFields {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "RKSV_QR_INCOMPLETE",
			Message: fmt.Sprintf(
				"Beleg %d: QR-Daten haben nur %d Felder, erwartet werden mindestens %d. Möglicherweise unvollständig.",
				idx+1, len(fields), qrMinFields),
			Field: "rksv_qr_data",
		})
	}

	if len(qrData) > qrMaxLen {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "RKSV_QR_TOO_LONG",
			Message:  fmt.Sprintf("Beleg %d: QR-Daten sind ungewöhnlich lang (%d Zeichen)", idx+1, len(qrData)),
			Field:    "rksv_qr_data",
		})
	}

	if len(fields) >= 9 {
		for i, amt := range fields[4:9] {
			if amt == "" || strings.HasPrefix(amt, "=") {
				continue
			}
			if !isPlausibleAmount(amt) {
				short := amt
				if len(short) > 20 {
					short = short[:20]
				}
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityWarning,
					Code:     "RKSV_QR_AMOUNT_FORMAT",
					Message: fmt.Sprintf(
						"Beleg %d: Betragsfeld %d im QR-Code hat ungewöhnliches Format: '%s'",
						idx+1, i+1, short),
					Field: "rksv_qr_data",
				})
			}
		}
	}

	return issues
}

func splitQRFields(qrData string) []string {
	var fields []string
	for _, f := range strings.Split(qrData, "_") {
		if f != "" {
			fields = append(fields, f)
		}
	}
	return fields
}

func isPlausibleAmount(amt string) bool {
	if _, err := base64.StdEncoding.DecodeString(amt); err == nil {
		return true
	}
	_, err := strconv.ParseFloat(strings.ReplaceAll(amt, ",", "."), 64)
	return err == nil
}

func checkPlausibility(receipt *models.RKSVReceipt, idx int) []models.ValidationIssue {
	var issues []models.ValidationIssue

	if receipt.Betrag != nil && receipt.Betrag.IsNegative() {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "RKSV_NEGATIVE_AMOUNT",
			Message:  fmt.Sprintf("Beleg %d: Negativer Betrag (%s). Stornobeleg? Bitte prüfen.", idx+1, receipt.Betrag.StringFixed(2)),
			Field:    "betrag",
		})
	}

	if receipt.Datum != "" {
		datePart, _, _ := strings.Cut(receipt.Datum, "T")
		d, err := time.Parse("2006-01-02", datePart)
		if err != nil {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     "RKSV_INVALID_DATE",
				Message:  fmt.Sprintf("Beleg %d: Ungültiges Datum '%s'", idx+1, receipt.Datum),
				Field:    "datum",
			})
		} else if d.After(time.Now()) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "RKSV_FUTURE_DATE",
				Message:  fmt.Sprintf("Beleg %d: Datum (%s) liegt in der Zukunft", idx+1, receipt.Datum),
				Field:    "datum",
			})
		}
	}

	// QR field 2 carries the Kassen-ID; it has to match the declared one.
	if receipt.QRData != "" && receipt.KassenID != "" {
		fields := splitQRFields(receipt.QRData)
		if len(fields) >= 3 && fields[1] != "" && fields[1] != receipt.KassenID {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "RKSV_KASSENID_MISMATCH",
				Message: fmt.Sprintf(
					"Beleg %d: Kassen-ID '%s' stimmt nicht mit QR-Daten-Kassen-ID '%s' überein",
					idx+1, receipt.KassenID, fields[1]),
				Field: "rksv_kassenid",
			})
		}
	}

	return issues
}
