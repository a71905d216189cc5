package uva

import (
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"uvaexpress/pkg/models"
)

// ValidateSchema checks a rendered declaration document against the
// structural rules of the ERKLAERUNGENPAKET format: well-formedness, the
// mandatory INFO_DATEN header fields, the ERKLAERUNG block with the U30
// art attribute, and the mandatory result Kennzahlen. An empty slice
// means the document passed.
func ValidateSchema(xmlContent string) []models.ValidationIssue {
	var issues []models.ValidationIssue

	doc := etree.NewDocument()
	if err := doc.ReadFromString(xmlContent); err != nil {
		return []models.ValidationIssue{{
			Severity: models.SeverityError,
			Code:     "XML_PARSE_ERROR",
			Message:  fmt.Sprintf("XML ist nicht wohlgeformt: %v", err),
		}}
	}

	root := doc.Root()
	if root == nil || root.Tag != "ERKLAERUNGENPAKET" {
		tag := ""
		if root != nil {
			tag = root.Tag
		}
		return []models.ValidationIssue{{
			Severity: models.SeverityError,
			Code:     "XML_ROOT_INVALID",
			Message:  fmt.Sprintf("Root-Element ist '%s', erwartet 'ERKLAERUNGENPAKET'", tag),
		}}
	}

	info := root.SelectElement("INFO_DATEN")
	if info == nil {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "XML_MISSING_INFO",
			Message:  "Pflichtblock 'INFO_DATEN' fehlt im XML",
		})
	} else {
		for _, required := range []string{"ART", "STEUERNUMMER", "ZEITRAUM"} {
			el := info.SelectElement(required)
			if el == nil || strings.TrimSpace(el.Text()) == "" {
				issues = append(issues, models.ValidationIssue{
					Severity: models.SeverityError,
					Code:     "XML_MISSING_" + required,
					Message:  fmt.Sprintf("Pflichtfeld '%s' in INFO_DATEN fehlt oder ist leer", required),
				})
			}
		}
	}

	erkl := root.SelectElement("ERKLAERUNG")
	if erkl == nil {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "XML_MISSING_ERKLAERUNG",
			Message:  "Pflichtblock 'ERKLAERUNG' fehlt",
		})
		return issues
	}

	if art := erkl.SelectAttrValue("art", ""); art != "U30" {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "XML_WRONG_ART",
			Message:  fmt.Sprintf("Erklärungsart ist '%s', erwartet 'U30'", art),
		})
	}

	kzBlock := erkl.SelectElement("KENNZAHLEN")
	if kzBlock == nil {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "XML_MISSING_KZ",
			Message:  "KENNZAHLEN-Block fehlt in der Erklärung",
		})
		return issues
	}

	if kzBlock.SelectElement("KZ095") == nil {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityError,
			Code:     "XML_MISSING_KZ095",
			Message:  "Pflicht-Kennzahl KZ095 (Vorauszahlung/Überschuss) fehlt",
		})
	}
	if kzBlock.SelectElement("KZ000") == nil {
		issues = append(issues, models.ValidationIssue{
			Severity: models.SeverityWarning,
			Code:     "XML_MISSING_KZ000",
			Message:  "KZ000 (Gesamtbetrag Lieferungen) fehlt. Leermeldung?",
		})
	}

	return issues
}
