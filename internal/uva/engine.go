package uva

import (
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"uvaexpress/internal/logger"
	"uvaexpress/pkg/models"
)

// Consistency check tolerances. These only ever produce warnings; an
// inconsistent invoice is still accumulated.
var (
	vatToleranceFloor = decimal.NewFromFloat(0.01)
	vatTolerancePct   = decimal.NewFromFloat(0.02)
	grossTolerance    = decimal.NewFromFloat(0.02)
)

// Engine maps invoice sequences onto the Kennzahlen of the U30 form.
type Engine struct {
	log zerolog.Logger
}

// NewEngine creates a calculation engine.
func NewEngine() *Engine {
	return &Engine{log: logger.WithComponent("uva-engine")}
}

// Calculate runs the full accumulation over the request's invoices.
//
// Every invoice is classified by (type, treatment) through the closed
// decision table. Totals are order-independent; only the processing trace
// keeps the input order. Consistency findings never exclude an invoice
// from accumulation, with one exception: records whose net and gross are
// both zero are skipped (and counted) before they reach the table.
//
// Invoices that break the boundary contract (unknown type or treatment,
// rate outside the allowed set) fail the whole request before any
// accumulation happens.
func (e *Engine) Calculate(req models.CalculateRequest) models.CalculateResponse {
	if errs := rejectInvalidInvoices(req.Invoices); len(errs) > 0 {
		e.log.Warn().
			Int("rejected", len(errs)).
			Str("period", fmt.Sprintf("%d-%02d", req.Year, req.Month)).
			Msg("invoice list rejected at input boundary")
		return models.CalculateResponse{Errors: errs}
	}

	kz := models.KZValues{}
	sum := models.Summary{InvoiceCount: len(req.Invoices)}

	var warnings []models.ValidationIssue
	details := make([]models.ProcessingDetail, 0, len(req.Invoices))

	for i := range req.Invoices {
		inv := &req.Invoices[i]
		net := models.Round2(inv.NetAmount)
		vat := models.Round2(inv.VATAmount)
		gross := models.Round2(inv.GrossAmount)

		warnings = append(warnings, checkInvoiceConsistency(inv, net, vat, gross)...)

		if net.IsZero() && gross.IsZero() {
			sum.SkippedCount++
			continue
		}
		if inv.RKSVReceipt {
			sum.RKSVCount++
		}

		var mapped []string
		switch inv.InvoiceType {
		case models.Ausgang:
			sum.AusgangCount++
			mapped = e.accumulateAusgang(&kz, inv, net, vat, &sum)
		case models.Eingang:
			sum.EingangCount++
			mapped = e.accumulateEingang(&kz, inv, net, vat, &sum)
		default:
			// Unreachable past the boundary parser; a new type without a
			// branch is a programming error and must fail loudly.
			panic(fmt.Sprintf("uva: unhandled invoice type %q", inv.InvoiceType))
		}

		details = append(details, models.ProcessingDetail{
			InvoiceID:     inv.ID,
			InvoiceNumber: inv.InvoiceNumber,
			MappedToKZ:    mapped,
			NetAmount:     net,
			VATAmount:     vat,
			TaxTreatment:  string(inv.TaxTreatment),
			InvoiceType:   string(inv.InvoiceType),
		})
	}

	sum.SummeUSt = kz.SumUSt()
	sum.SummeSteuerschuld = kz.SumSteuerschuld()
	sum.SummeIGUSt = kz.SumIGErwerbUSt()
	sum.GesamtUSt = models.Round2(sum.SummeUSt.Add(sum.SummeSteuerschuld).Add(sum.SummeIGUSt))

	kz.KZ090Betrag = kz.SumVorsteuer()
	sum.SummeVorsteuer = kz.KZ090Betrag

	sonstige := models.Round2(req.SonstigeBerichtigungen)
	kz.KZ095Betrag = models.Round2(sum.GesamtUSt.Sub(kz.KZ090Betrag).Add(sonstige))
	sum.Zahllast = kz.KZ095Betrag
	sum.DueDate = DueDate(req.Year, req.Month)

	e.log.Info().
		Int("invoices", sum.InvoiceCount).
		Int("skipped", sum.SkippedCount).
		Str("period", fmt.Sprintf("%d-%02d", req.Year, req.Month)).
		Str("kz095", kz.KZ095Betrag.StringFixed(2)).
		Msg("UVA calculated")

	return models.CalculateResponse{
		Success:           true,
		KZValues:          kz,
		Summary:           sum,
		Warnings:          warnings,
		ProcessingDetails: details,
	}
}

// accumulateAusgang posts an outgoing invoice. Every outgoing invoice
// contributes its net amount to KZ000 regardless of treatment; the
// treatment then decides the exemption or rate Kennzahl.
func (e *Engine) accumulateAusgang(kz *models.KZValues, inv *models.Invoice, net, vat decimal.Decimal, sum *models.Summary) []string {
	mapped := []string{"KZ000"}
	kz.KZ000Netto = kz.KZ000Netto.Add(net)

	switch inv.TaxTreatment {
	case models.TreatmentExport:
		kz.KZ011Netto = kz.KZ011Netto.Add(net)
		mapped = append(mapped, "KZ011")
		sum.ExportCount++

	case models.TreatmentIGLieferung, models.TreatmentDreiecksgeschaeft:
		// Dreiecksgeschäft is reported like an IG Lieferung. The liability
		// transfers to the recipient, so the net also lands on KZ021.
		kz.KZ017Netto = kz.KZ017Netto.Add(net)
		kz.KZ021Netto = kz.KZ021Netto.Add(net)
		mapped = append(mapped, "KZ017", "KZ021")

	case models.TreatmentLohnveredelung:
		kz.KZ012Netto = kz.KZ012Netto.Add(net)
		mapped = append(mapped, "KZ012")

	case models.TreatmentFahrzeugOhneUID:
		kz.KZ018Netto = kz.KZ018Netto.Add(net)
		mapped = append(mapped, "KZ018")

	case models.TreatmentGrundstueck:
		kz.KZ019Netto = kz.KZ019Netto.Add(net)
		mapped = append(mapped, "KZ019")

	case models.TreatmentKleinunternehmer:
		kz.KZ016Netto = kz.KZ016Netto.Add(net)
		mapped = append(mapped, "KZ016")

	case models.TreatmentSteuerbefreitSonst:
		kz.KZ020Netto = kz.KZ020Netto.Add(net)
		mapped = append(mapped, "KZ020")

	case models.TreatmentNormal, models.TreatmentIGErwerb,
		models.TreatmentEinfuhr, models.TreatmentEUStAbgabenkonto,
		models.TreatmentReverseCharge191, models.TreatmentReverseCharge191A,
		models.TreatmentReverseCharge191B, models.TreatmentReverseCharge191D,
		models.TreatmentReverseCharge19134:
		// Taxable turnover by rate. Purchase-side treatments on an
		// outgoing invoice are implausible (flagged by the consistency
		// check) but still accumulate as normal turnover.
		t := rateTarget(kz, inv.VATRate)
		*t.netto = t.netto.Add(net)
		*t.ust = t.ust.Add(vat)
		mapped = append(mapped, t.code)

	default:
		panic(fmt.Sprintf("uva: unhandled tax treatment %q in ausgang table", inv.TaxTreatment))
	}

	if inv.TaxTreatment.IsReverseCharge() {
		kz.KZ021Netto = kz.KZ021Netto.Add(net)
		mapped = append(mapped, "KZ021")
	}
	return mapped
}

// accumulateEingang posts an incoming invoice into the acquisition,
// liability and input-tax sections.
func (e *Engine) accumulateEingang(kz *models.KZValues, inv *models.Invoice, net, vat decimal.Decimal, sum *models.Summary) []string {
	var mapped []string

	switch inv.TaxTreatment {
	case models.TreatmentIGErwerb:
		sum.IGCount++
		t := igRateTarget(kz, inv.VATRate)
		*t.netto = t.netto.Add(net)
		*t.ust = t.ust.Add(vat)
		kz.KZ070Netto = kz.KZ070Netto.Add(net)
		// Acquisition tax is deductible in the same declaration.
		kz.KZ065Vorsteuer = kz.KZ065Vorsteuer.Add(vat)
		mapped = append(mapped, t.code, "KZ070", "KZ065")

	case models.TreatmentReverseCharge191, models.TreatmentReverseCharge191A,
		models.TreatmentReverseCharge191B, models.TreatmentReverseCharge191D,
		models.TreatmentReverseCharge19134:
		sum.RCCount++
		schuld, vorsteuer := rcTarget(kz, inv.TaxTreatment)
		// Liability and mirrored deduction, full-deduction assumption.
		*schuld.ust = schuld.ust.Add(vat)
		*vorsteuer.ust = vorsteuer.ust.Add(vat)
		mapped = append(mapped, schuld.code, vorsteuer.code)

	case models.TreatmentEinfuhr:
		kz.KZ061Vorsteuer = kz.KZ061Vorsteuer.Add(vat)
		mapped = append(mapped, "KZ061")

	case models.TreatmentEUStAbgabenkonto:
		kz.KZ083Vorsteuer = kz.KZ083Vorsteuer.Add(vat)
		mapped = append(mapped, "KZ083")

	case models.TreatmentNormal, models.TreatmentExport,
		models.TreatmentIGLieferung, models.TreatmentLohnveredelung,
		models.TreatmentDreiecksgeschaeft, models.TreatmentFahrzeugOhneUID,
		models.TreatmentGrundstueck, models.TreatmentKleinunternehmer,
		models.TreatmentSteuerbefreitSonst:
		// Domestic purchase: deductible input tax.
		kz.KZ060Vorsteuer = kz.KZ060Vorsteuer.Add(vat)
		mapped = append(mapped, "KZ060")

	default:
		panic(fmt.Sprintf("uva: unhandled tax treatment %q in eingang table", inv.TaxTreatment))
	}
	return mapped
}

// rejectInvalidInvoices enforces the input boundary: invoice type, tax
// treatment and VAT rate must come from their closed sets. A failing
// record never reaches the decision table.
func rejectInvalidInvoices(invoices []models.Invoice) []models.ValidationIssue {
	var errs []models.ValidationIssue
	for i := range invoices {
		if err := invoices[i].Validate(); err != nil {
			errs = append(errs, models.ValidationIssue{
				Severity:  models.SeverityError,
				Code:      "INVALID_INVOICE",
				Message:   err.Error(),
				InvoiceID: invoices[i].ID,
			})
		}
	}
	return errs
}

// checkInvoiceConsistency runs the tolerance-based per-invoice checks.
// Findings are reported, never enforced.
func checkInvoiceConsistency(inv *models.Invoice, net, vat, gross decimal.Decimal) []models.ValidationIssue {
	var issues []models.ValidationIssue
	nr := inv.InvoiceNumber
	if nr == "" {
		nr = inv.ID
	}

	if net.IsZero() && gross.IsZero() {
		issues = append(issues, models.ValidationIssue{
			Severity:  models.SeverityWarning,
			Code:      "ZERO_AMOUNT",
			Message:   fmt.Sprintf("Rechnung %s: Netto- und Bruttobetrag sind 0", nr),
			InvoiceID: inv.ID,
		})
	}

	// Stated VAT vs net × rate, within max(2% of expected, 1 Cent floor).
	if inv.TaxTreatment == models.TreatmentNormal && inv.VATRate > 0 && net.IsPositive() {
		expected := models.ComputeVAT(net, inv.VATRate)
		diff := expected.Sub(vat).Abs()
		tolerance := decimal.Max(vatTolerancePct.Mul(expected.Abs()), vatToleranceFloor)
		if diff.GreaterThan(tolerance) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "VAT_MISMATCH",
				Message: fmt.Sprintf(
					"Rechnung %s: USt-Betrag (%s) weicht vom erwarteten Wert (%s) bei %d%% ab. Differenz: %s",
					nr, vat.StringFixed(2), expected.StringFixed(2), inv.VATRate, diff.StringFixed(2)),
				InvoiceID: inv.ID,
				Field:     "vat_amount",
			})
		}
	}

	// Gross vs net + VAT.
	if net.IsPositive() && !vat.IsNegative() && gross.IsPositive() {
		expected := models.Round2(net.Add(vat))
		if expected.Sub(gross).Abs().GreaterThan(grossTolerance) {
			issues = append(issues, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "GROSS_MISMATCH",
				Message: fmt.Sprintf(
					"Rechnung %s: Brutto (%s) ≠ Netto (%s) + USt (%s) = %s",
					nr, gross.StringFixed(2), net.StringFixed(2), vat.StringFixed(2), expected.StringFixed(2)),
				InvoiceID: inv.ID,
				Field:     "gross_amount",
			})
		}
	}

	// Treatment vs invoice type plausibility.
	if inv.InvoiceType == models.Ausgang && isEingangTreatment(inv.TaxTreatment) {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "TREATMENT_TYPE_CONFLICT",
			Message: fmt.Sprintf(
				"Rechnung %s: Steuerliche Behandlung '%s' ist typischerweise für Eingangsrechnungen, nicht Ausgangsrechnungen",
				nr, inv.TaxTreatment),
			InvoiceID: inv.ID,
			Field:     "tax_treatment",
		})
	}
	if inv.InvoiceType == models.Eingang && isAusgangTreatment(inv.TaxTreatment) {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "TREATMENT_TYPE_CONFLICT",
			Message: fmt.Sprintf(
				"Rechnung %s: Steuerliche Behandlung '%s' ist typischerweise für Ausgangsrechnungen, nicht Eingangsrechnungen",
				nr, inv.TaxTreatment),
			InvoiceID: inv.ID,
			Field:     "tax_treatment",
		})
	}

	// Date must be a real calendar date when present.
	if inv.InvoiceDate != "" {
		if _, err := parseInvoiceDate(inv.InvoiceDate); err != nil {
			issues = append(issues, models.ValidationIssue{
				Severity:  models.SeverityError,
				Code:      "INVALID_DATE",
				Message:   fmt.Sprintf("Rechnung %s: Ungültiges Datum '%s'", nr, inv.InvoiceDate),
				InvoiceID: inv.ID,
				Field:     "invoice_date",
			})
		}
	}

	// RKSV receipts need their identifiers.
	if inv.RKSVReceipt {
		if inv.RKSVKassenID == "" {
			issues = append(issues, models.ValidationIssue{
				Severity:  models.SeverityWarning,
				Code:      "RKSV_MISSING_KASSENID",
				Message:   fmt.Sprintf("Rechnung %s: RKSV-Beleg ohne Kassen-ID", nr),
				InvoiceID: inv.ID,
				Field:     "rksv_kassenid",
			})
		}
		if inv.RKSVBelegnr == "" {
			issues = append(issues, models.ValidationIssue{
				Severity:  models.SeverityWarning,
				Code:      "RKSV_MISSING_BELEGNR",
				Message:   fmt.Sprintf("Rechnung %s: RKSV-Beleg ohne Belegnummer", nr),
				InvoiceID: inv.ID,
				Field:     "rksv_belegnr",
			})
		}
	}

	return issues
}

func isEingangTreatment(t models.TaxTreatment) bool {
	switch t {
	case models.TreatmentIGErwerb, models.TreatmentEinfuhr, models.TreatmentEUStAbgabenkonto:
		return true
	}
	return t.IsReverseCharge()
}

func isAusgangTreatment(t models.TaxTreatment) bool {
	switch t {
	case models.TreatmentExport, models.TreatmentIGLieferung,
		models.TreatmentLohnveredelung, models.TreatmentFahrzeugOhneUID:
		return true
	}
	return false
}

// parseInvoiceDate accepts YYYY-MM-DD, tolerating a trailing time part.
func parseInvoiceDate(s string) (time.Time, error) {
	datePart, _, _ := strings.Cut(s, "T")
	return time.Parse("2006-01-02", datePart)
}
