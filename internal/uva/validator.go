package uva

import (
	"fmt"

	"github.com/shopspring/decimal"

	"uvaexpress/pkg/models"
)

var (
	// resultTolerance bounds the recomputation checks on KZ090/KZ095.
	resultTolerance = decimal.NewFromFloat(0.02)
	// perInvoiceRounding is the tolerance granted per supplied invoice for
	// rate checks; individual roundings accumulate.
	perInvoiceRounding = decimal.NewFromFloat(0.05)
	// blanketTolerance applies to rate checks when no invoices are
	// supplied and the per-invoice scaling is unavailable.
	blanketTolerance = decimal.NewFromInt(1)
	// highAmount triggers the informational large-result hint.
	highAmount = decimal.NewFromInt(100000)
)

// rateCheck pairs a Kennzahl's base and tax with its statutory rate.
type rateCheck struct {
	kz    string
	rate  int
	netto decimal.Decimal
	ust   decimal.Decimal
}

// rcPair is a reverse-charge liability Kennzahl and its mirrored
// input-tax Kennzahl. Kept in sync with the engine's decision table.
type rcPair struct {
	schuldKZ    string
	schuld      decimal.Decimal
	vorsteuerKZ string
	vorsteuer   decimal.Decimal
	label       string
}

// Validate re-derives the declaration's totals from the stored Kennzahlen
// and cross-checks them against BMF plausibility rules. It is pure: the
// request is never mutated and no state is kept between calls.
//
// The response is valid iff zero error-severity findings were made;
// warnings and infos never block.
func Validate(req models.ValidateRequest) models.ValidateResponse {
	kz := &req.KZValues

	var errs, warns, infos []models.ValidationIssue

	// Supplied invoices are subject to the same boundary contract as the
	// engine's input; invalid records invalidate the declaration.
	errs = append(errs, rejectInvalidInvoices(req.Invoices)...)

	if req.Year < 2020 || req.Year > 2030 {
		warns = append(warns, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "UNUSUAL_YEAR",
			Message:  fmt.Sprintf("Ungewöhnliches Jahr: %d. Bitte prüfen.", req.Year),
			Field:    "year",
		})
	}

	// Rate consistency, Abschnitt 1. The tolerance scales with the number
	// of supplied invoices because each one may round independently.
	tolerance := blanketTolerance
	if n := len(req.Invoices); n > 0 {
		tolerance = decimal.Max(perInvoiceRounding.Mul(decimal.NewFromInt(int64(n))), resultTolerance)
	}

	for _, rc := range []rateCheck{
		{"022", 20, kz.KZ022Netto, kz.KZ022USt},
		{"029", 10, kz.KZ029Netto, kz.KZ029USt},
		{"006", 13, kz.KZ006Netto, kz.KZ006USt},
		{"037", 19, kz.KZ037Netto, kz.KZ037USt},
		{"052", 10, kz.KZ052Netto, kz.KZ052USt},
		{"007", 7, kz.KZ007Netto, kz.KZ007USt},
	} {
		switch {
		case rc.netto.IsPositive():
			expected := models.ComputeVAT(rc.netto, rc.rate)
			diff := expected.Sub(rc.ust).Abs()
			if diff.GreaterThan(tolerance) {
				errs = append(errs, models.ValidationIssue{
					Severity: models.SeverityError,
					Code:     "RATE_MISMATCH",
					Message: fmt.Sprintf(
						"KZ %s: USt (%s) entspricht nicht %d%% von Bemessung (%s) = %s. Differenz: %s",
						rc.kz, rc.ust.StringFixed(2), rc.rate, rc.netto.StringFixed(2),
						expected.StringFixed(2), diff.StringFixed(2)),
					KZ: rc.kz,
				})
			}
		case rc.netto.IsZero() && !rc.ust.IsZero():
			warns = append(warns, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "UST_WITHOUT_BASE",
				Message:  fmt.Sprintf("KZ %s: USt-Betrag (%s) ohne Bemessungsgrundlage", rc.kz, rc.ust.StringFixed(2)),
				KZ:       rc.kz,
			})
		}
	}

	// Rate consistency, intra-community acquisitions.
	for _, rc := range []rateCheck{
		{"072", 20, kz.KZ072Netto, kz.KZ072USt},
		{"073", 10, kz.KZ073Netto, kz.KZ073USt},
		{"008", 13, kz.KZ008Netto, kz.KZ008USt},
		{"088", 19, kz.KZ088Netto, kz.KZ088USt},
	} {
		if !rc.netto.IsPositive() {
			continue
		}
		expected := models.ComputeVAT(rc.netto, rc.rate)
		diff := expected.Sub(rc.ust).Abs()
		if diff.GreaterThan(tolerance) {
			errs = append(errs, models.ValidationIssue{
				Severity: models.SeverityError,
				Code:     "IG_RATE_MISMATCH",
				Message: fmt.Sprintf(
					"KZ %s (IG Erwerb): USt (%s) ≠ %d%% × %s = %s",
					rc.kz, rc.ust.StringFixed(2), rc.rate, rc.netto.StringFixed(2), expected.StringFixed(2)),
				KZ: rc.kz,
			})
		}
	}

	// Recompute KZ090 and KZ095 from first principles.
	gesamtUSt := models.Round2(kz.SumUSt().Add(kz.SumSteuerschuld()).Add(kz.SumIGErwerbUSt()))
	summeVorsteuer := kz.SumVorsteuer()

	kz095Recalc := models.Round2(gesamtUSt.Sub(summeVorsteuer).Add(models.Round2(req.SonstigeBerichtigungen)))
	kz095Matches := kz095Recalc.Sub(kz.KZ095Betrag).Abs().LessThan(resultTolerance)

	if !kz095Matches {
		errs = append(errs, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "KZ095_MISMATCH",
			Message: fmt.Sprintf(
				"KZ 095 (%s) stimmt nicht mit Neuberechnung (%s) überein. Gesamt-USt: %s, Vorsteuer: %s",
				kz.KZ095Betrag.StringFixed(2), kz095Recalc.StringFixed(2),
				gesamtUSt.StringFixed(2), summeVorsteuer.StringFixed(2)),
			KZ: "095",
		})
	}

	if summeVorsteuer.Sub(kz.KZ090Betrag).Abs().GreaterThan(resultTolerance) {
		errs = append(errs, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "KZ090_MISMATCH",
			Message: fmt.Sprintf(
				"KZ 090 (%s) stimmt nicht mit Summe der Vorsteuern (%s) überein",
				kz.KZ090Betrag.StringFixed(2), summeVorsteuer.StringFixed(2)),
			KZ: "090",
		})
	}

	// KZ070 should equal the sum of its rate positions plus KZ071.
	igSum := models.Round2(kz.KZ072Netto.
		Add(kz.KZ073Netto).
		Add(kz.KZ008Netto).
		Add(kz.KZ088Netto).
		Add(kz.KZ071Netto))
	if kz.KZ070Netto.IsPositive() && igSum.Sub(kz.KZ070Netto).Abs().GreaterThan(resultTolerance) {
		warns = append(warns, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "IG_TOTAL_MISMATCH",
			Message: fmt.Sprintf(
				"KZ 070 Gesamtbetrag IG Erwerbe (%s) entspricht nicht der Summe der Einzelpositionen (%s)",
				kz.KZ070Netto.StringFixed(2), igSum.StringFixed(2)),
			KZ: "070",
		})
	}

	// Reverse-charge symmetry. Partial deduction is legal, so asymmetry
	// warns but never blocks.
	for _, pair := range []rcPair{
		{"057", kz.KZ057USt, "066", kz.KZ066Vorsteuer, "§19 Abs1"},
		{"048", kz.KZ048USt, "082", kz.KZ082Vorsteuer, "Bauleistungen"},
		{"044", kz.KZ044USt, "087", kz.KZ087Vorsteuer, "Sicherungseigentum"},
		{"032", kz.KZ032USt, "089", kz.KZ089Vorsteuer, "Schrott §19 Abs1d"},
	} {
		if pair.schuld.IsPositive() || pair.vorsteuer.IsPositive() {
			if pair.schuld.Sub(pair.vorsteuer).Abs().GreaterThan(resultTolerance) {
				warns = append(warns, models.ValidationIssue{
					Severity: models.SeverityWarning,
					Code:     "RC_ASYMMETRY",
					Message: fmt.Sprintf(
						"Reverse Charge %s: Steuerschuld KZ %s (%s) ≠ Vorsteuer KZ %s (%s). Bei vollem Vorsteuerabzug sollten diese Beträge übereinstimmen.",
						pair.label, pair.schuldKZ, pair.schuld.StringFixed(2),
						pair.vorsteuerKZ, pair.vorsteuer.StringFixed(2)),
					KZ: pair.schuldKZ,
				})
			}
		}
	}

	// Intra-community acquisition symmetry against KZ065.
	igUSt := kz.SumIGErwerbUSt()
	if igUSt.IsPositive() || kz.KZ065Vorsteuer.IsPositive() {
		if igUSt.Sub(kz.KZ065Vorsteuer).Abs().GreaterThan(resultTolerance) {
			warns = append(warns, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "IG_ASYMMETRY",
				Message: fmt.Sprintf(
					"IG Erwerb: USt (%s) ≠ Vorsteuer KZ 065 (%s). Bei vollem Vorsteuerabzug sollten diese gleich sein.",
					igUSt.StringFixed(2), kz.KZ065Vorsteuer.StringFixed(2)),
				KZ: "065",
			})
		}
	}

	// Negative bases.
	for _, nf := range []struct {
		field string
		value decimal.Decimal
	}{
		{"kz022_netto", kz.KZ022Netto},
		{"kz029_netto", kz.KZ029Netto},
		{"kz006_netto", kz.KZ006Netto},
		{"kz037_netto", kz.KZ037Netto},
		{"kz070_netto", kz.KZ070Netto},
	} {
		if nf.value.IsNegative() {
			warns = append(warns, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "NEGATIVE_BASE",
				Message:  fmt.Sprintf("%s: Negative Bemessungsgrundlage (%s). Bitte prüfen.", nf.field, nf.value.StringFixed(2)),
				Field:    nf.field,
			})
		}
	}

	// KZ000 should roughly match the sum of all turnover bases. The IG
	// supply net (KZ017) is deliberately part of the sum, as on the form;
	// info-severity only.
	if kz.KZ000Netto.IsPositive() {
		expected := models.Round2(kz.KZ022Netto.
			Add(kz.KZ029Netto).Add(kz.KZ006Netto).Add(kz.KZ037Netto).
			Add(kz.KZ052Netto).Add(kz.KZ007Netto).
			Add(kz.KZ011Netto).Add(kz.KZ012Netto).Add(kz.KZ015Netto).
			Add(kz.KZ017Netto).Add(kz.KZ018Netto).
			Add(kz.KZ019Netto).Add(kz.KZ016Netto).Add(kz.KZ020Netto))
		diff := kz.KZ000Netto.Sub(expected).Abs()
		if diff.GreaterThan(decimal.NewFromInt(1)) {
			infos = append(infos, models.ValidationIssue{
				Severity: models.SeverityInfo,
				Code:     "KZ000_PLAUSIBILITY",
				Message: fmt.Sprintf(
					"KZ 000 (%s) weicht von der Summe aller Umsatz-Bemessungsgrundlagen (%s) ab. Differenz: %s",
					kz.KZ000Netto.StringFixed(2), expected.StringFixed(2), diff.StringFixed(2)),
				KZ: "000",
			})
		}
	}

	if kz.KZ095Betrag.Abs().GreaterThan(highAmount) {
		infos = append(infos, models.ValidationIssue{
			Severity: models.SeverityInfo,
			Code:     "HIGH_AMOUNT",
			Message:  fmt.Sprintf("KZ 095 Zahllast/Gutschrift beträgt %s EUR. Bitte Plausibilität prüfen.", kz.KZ095Betrag.StringFixed(2)),
			KZ:       "095",
		})
	}

	if kz.AllZero() {
		infos = append(infos, models.ValidationIssue{
			Severity: models.SeverityInfo,
			Code:     "EMPTY_UVA",
			Message:  "Alle Kennzahlen sind 0. Leermeldung wird abgegeben.",
		})
	}

	warns = append(warns, crossCheckInvoices(req.Invoices, req.Year, req.Month)...)

	valid := len(errs) == 0
	return models.ValidateResponse{
		Valid:              valid,
		Errors:             errs,
		Warnings:           warns,
		Infos:              infos,
		PlausibilityPassed: valid,
		KZ095Recalculated:  kz095Recalc,
		KZ095Matches:       kz095Matches,
	}
}

// crossCheckInvoices runs the deep checks that need the original records:
// duplicate invoice numbers and dates outside the declared period.
func crossCheckInvoices(invoices []models.Invoice, year, month int) []models.ValidationIssue {
	if len(invoices) == 0 {
		return nil
	}
	var warns []models.ValidationIssue

	seen := make(map[string]bool, len(invoices))
	for _, inv := range invoices {
		if inv.InvoiceNumber == "" {
			continue
		}
		if seen[inv.InvoiceNumber] {
			warns = append(warns, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "DUPLICATE_INVOICE",
				Message:  fmt.Sprintf("Rechnungsnummer '%s' kommt mehrfach vor", inv.InvoiceNumber),
				Field:    "invoice_number",
			})
		}
		seen[inv.InvoiceNumber] = true
	}

	for _, inv := range invoices {
		if inv.InvoiceDate == "" {
			continue
		}
		d, err := parseInvoiceDate(inv.InvoiceDate)
		if err != nil {
			continue // reported by the engine as INVALID_DATE
		}
		if d.Year() != year || int(d.Month()) != month {
			nr := inv.InvoiceNumber
			if nr == "" {
				nr = inv.ID
			}
			warns = append(warns, models.ValidationIssue{
				Severity: models.SeverityWarning,
				Code:     "INVOICE_OUTSIDE_PERIOD",
				Message: fmt.Sprintf(
					"Rechnung %s: Datum (%s) liegt außerhalb des UVA-Zeitraums %02d/%d",
					nr, inv.InvoiceDate, month, year),
				InvoiceID: inv.ID,
				Field:     "invoice_date",
			})
		}
	}
	return warns
}
