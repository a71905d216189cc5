package uva

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"uvaexpress/pkg/models"
)

// emitThreshold decides whether a Kennzahl appears in the XML at all.
// FinanzOnline accepts zeros but prefers minimal documents.
var emitThreshold = decimal.NewFromFloat(0.005)

var steuernummerDigits = regexp.MustCompile(`[^0-9/]`)

// xmlEscape replaces the five XML-reserved characters. The renderer
// writes text by hand so the output stays byte-stable across versions;
// encoding/xml would not guarantee attribute order or indentation.
func xmlEscape(val string) string {
	r := strings.NewReplacer(
		"&", "&amp;",
		"<", "&lt;",
		">", "&gt;",
		`"`, "&quot;",
		"'", "&apos;",
	)
	return r.Replace(val)
}

func fmtAmt(v decimal.Decimal) string {
	return v.StringFixed(2)
}

// validateExportInput runs the pre-render checks. A short Steuernummer is
// the only hard failure; format oddities and unusual years only warn.
func validateExportInput(req models.XMLExportRequest) []models.ValidationIssue {
	var issues []models.ValidationIssue

	stnr := req.Steuernummer
	if len(stnr) < 3 {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "INVALID_STEUERNUMMER",
			Message:  "Steuernummer ist zu kurz oder fehlt",
			Field:    "steuernummer",
		})
	}

	cleaned := steuernummerDigits.ReplaceAllString(stnr, "")
	if len(cleaned) < 5 {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "STEUERNUMMER_FORMAT",
			Message:  fmt.Sprintf("Steuernummer '%s' hat ein ungewöhnliches Format. Erwartet: z.B. '12 345/6789'", stnr),
			Field:    "steuernummer",
		})
	}

	if req.Year < 2020 || req.Year > 2030 {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "UNUSUAL_PERIOD",
			Message:  fmt.Sprintf("Ungewöhnliches Jahr: %d", req.Year),
			Field:    "year",
		})
	}

	return issues
}

// kzWriter accumulates KENNZAHLEN lines at the document's fixed
// indentation. The emission order follows the form sections.
type kzWriter struct {
	lines []string
}

// add always emits the Kennzahl. Used for the mandatory fields KZ000,
// KZ090 and KZ095.
func (w *kzWriter) add(tag string, v decimal.Decimal) {
	w.lines = append(w.lines, fmt.Sprintf("      <%s>%s</%s>", tag, fmtAmt(v), tag))
}

// addNonZero emits only when the rounded value would be visible.
func (w *kzWriter) addNonZero(tag string, v decimal.Decimal) {
	if v.Abs().GreaterThanOrEqual(emitThreshold) {
		w.add(tag, v)
	}
}

// addPair emits a BMGL/STEUER pair when either side is visible. A base
// without its tax (or vice versa) would fail the downstream rate checks,
// so the pair is atomic.
func (w *kzWriter) addPair(tag string, netto, ust decimal.Decimal) {
	if netto.Abs().GreaterThanOrEqual(emitThreshold) || ust.Abs().GreaterThanOrEqual(emitThreshold) {
		w.add(tag+"_BMGL", netto)
		w.add(tag+"_STEUER", ust)
	}
}

// BuildXML renders the declaration as a FinanzOnline ERKLAERUNGENPAKET
// document (Formular U30). Rendering is deterministic: the same request
// yields the same bytes, with req.GenerationDate pinning the
// ERSTELLUNGSDATUM (zero value means today, UTC).
//
// Input errors fail fast with an empty document; the caller decides
// whether warnings block.
func BuildXML(req models.XMLExportRequest) models.XMLExportResponse {
	issues := validateExportInput(req)
	if models.HasErrors(issues) {
		return models.XMLExportResponse{
			Success:          false,
			ValidationPassed: false,
			ValidationIssues: issues,
		}
	}

	kz := &req.KZValues
	monthStr := fmt.Sprintf("%02d", req.Month)
	stnr := xmlEscape(req.Steuernummer)

	genDate := req.GenerationDate
	if genDate.IsZero() {
		genDate = time.Now().UTC()
	}
	erstellungsdatum := genDate.Format("2006-01-02")

	var w kzWriter

	// Kopfdaten
	w.add("KZ000", kz.KZ000Netto)
	w.addNonZero("KZ001", kz.KZ001Netto)
	w.addNonZero("KZ021", kz.KZ021Netto)

	// Abschnitt 1: Steuerpflichtige Umsätze
	w.addPair("KZ022", kz.KZ022Netto, kz.KZ022USt)
	w.addPair("KZ029", kz.KZ029Netto, kz.KZ029USt)
	w.addPair("KZ006", kz.KZ006Netto, kz.KZ006USt)
	w.addPair("KZ037", kz.KZ037Netto, kz.KZ037USt)
	w.addPair("KZ052", kz.KZ052Netto, kz.KZ052USt)
	w.addPair("KZ007", kz.KZ007Netto, kz.KZ007USt)

	// Abschnitt 2: Steuerfrei mit Vorsteuerabzug
	w.addNonZero("KZ011", kz.KZ011Netto)
	w.addNonZero("KZ012", kz.KZ012Netto)
	w.addNonZero("KZ015", kz.KZ015Netto)
	w.addNonZero("KZ017", kz.KZ017Netto)
	w.addNonZero("KZ018", kz.KZ018Netto)

	// Abschnitt 3: Steuerfrei ohne Vorsteuerabzug
	w.addNonZero("KZ019", kz.KZ019Netto)
	w.addNonZero("KZ016", kz.KZ016Netto)
	w.addNonZero("KZ020", kz.KZ020Netto)

	// Abschnitt 4: Steuerschuld
	w.addNonZero("KZ056", kz.KZ056USt)
	w.addNonZero("KZ057", kz.KZ057USt)
	w.addNonZero("KZ048", kz.KZ048USt)
	w.addNonZero("KZ044", kz.KZ044USt)
	w.addNonZero("KZ032", kz.KZ032USt)

	// Abschnitt 5: IG Erwerbe
	w.addNonZero("KZ070", kz.KZ070Netto)
	w.addNonZero("KZ071", kz.KZ071Netto)
	w.addPair("KZ072", kz.KZ072Netto, kz.KZ072USt)
	w.addPair("KZ073", kz.KZ073Netto, kz.KZ073USt)
	w.addPair("KZ008", kz.KZ008Netto, kz.KZ008USt)
	w.addPair("KZ088", kz.KZ088Netto, kz.KZ088USt)
	w.addNonZero("KZ076", kz.KZ076Netto)
	w.addNonZero("KZ077", kz.KZ077Netto)

	// Abschnitt 6: Vorsteuern
	w.addNonZero("KZ060", kz.KZ060Vorsteuer)
	w.addNonZero("KZ061", kz.KZ061Vorsteuer)
	w.addNonZero("KZ083", kz.KZ083Vorsteuer)
	w.addNonZero("KZ065", kz.KZ065Vorsteuer)
	w.addNonZero("KZ066", kz.KZ066Vorsteuer)
	w.addNonZero("KZ082", kz.KZ082Vorsteuer)
	w.addNonZero("KZ087", kz.KZ087Vorsteuer)
	w.addNonZero("KZ089", kz.KZ089Vorsteuer)
	w.addNonZero("KZ064", kz.KZ064Vorsteuer)
	w.addNonZero("KZ062", kz.KZ062Vorsteuer)
	w.addNonZero("KZ063", kz.KZ063Vorsteuer)
	w.addNonZero("KZ067", kz.KZ067Vorsteuer)

	// Ergebnis
	w.add("KZ090", kz.KZ090Betrag)
	w.add("KZ095", kz.KZ095Betrag)

	kzXML := strings.Join(w.lines, "\n")

	var companyXML string
	if req.UnternehmenName != "" {
		var b strings.Builder
		b.WriteString("\n    <UNTERNEHMENSDATEN>\n")
		b.WriteString("      <BEZEICHNUNG>" + xmlEscape(req.UnternehmenName) + "</BEZEICHNUNG>\n")
		if req.UnternehmenStrasse != "" {
			b.WriteString("      <STRASSE>" + xmlEscape(req.UnternehmenStrasse) + "</STRASSE>\n")
		}
		if req.UnternehmenPLZ != "" {
			b.WriteString("      <PLZ>" + xmlEscape(req.UnternehmenPLZ) + "</PLZ>\n")
		}
		if req.UnternehmenOrt != "" {
			b.WriteString("      <ORT>" + xmlEscape(req.UnternehmenOrt) + "</ORT>\n")
		}
		b.WriteString("    </UNTERNEHMENSDATEN>")
		companyXML = b.String()
	}

	xmlContent := fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ERKLAERUNGENPAKET>
  <INFO_DATEN>
    <ART>UVA</ART>
    <FASESSION_ID>0</FASESSION_ID>
    <STEUERNUMMER>%s</STEUERNUMMER>
    <ZEITRAUM>%d-%s</ZEITRAUM>
    <ERSTELLUNGSDATUM>%s</ERSTELLUNGSDATUM>
  </INFO_DATEN>
  <ERKLAERUNG art="U30">
    <SATZNR>1</SATZNR>
    <ALLGEMEINE_DATEN>
      <ANBRINGEN>UVA</ANBRINGEN>
      <ZEITRAUM>
        <JAHR>%d</JAHR>
        <MONAT>%s</MONAT>
      </ZEITRAUM>
    </ALLGEMEINE_DATEN>%s
    <KENNZAHLEN>
%s
    </KENNZAHLEN>
  </ERKLAERUNG>
</ERKLAERUNGENPAKET>`,
		stnr, req.Year, monthStr, erstellungsdatum,
		req.Year, monthStr, companyXML, kzXML)

	return models.XMLExportResponse{
		Success:          true,
		XMLContent:       xmlContent,
		Filename:         fmt.Sprintf("UVA_%d_%s.xml", req.Year, monthStr),
		ValidationPassed: true,
		ValidationIssues: issues,
	}
}
