package uva

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvaexpress/pkg/models"
)

func TestValidateSchemaAcceptsRenderedDocument(t *testing.T) {
	t.Parallel()

	resp := BuildXML(exportRequest(consistentKZ()))
	require.True(t, resp.Success)

	issues := ValidateSchema(resp.XMLContent)
	assert.Empty(t, issues)
}

func TestValidateSchemaRejectsMalformedXML(t *testing.T) {
	t.Parallel()

	issues := ValidateSchema("<ERKLAERUNGENPAKET><unclosed>")
	assert.Contains(t, issueCodes(issues), "XML_PARSE_ERROR")
}

func TestValidateSchemaRejectsWrongRoot(t *testing.T) {
	t.Parallel()

	issues := ValidateSchema("<PAKET></PAKET>")
	assert.Contains(t, issueCodes(issues), "XML_ROOT_INVALID")
}

func TestValidateSchemaStructuralChecks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		xml      string
		wantCode string
		severity models.Severity
	}{
		{
			name:     "missing info block",
			xml:      `<ERKLAERUNGENPAKET><ERKLAERUNG art="U30"><KENNZAHLEN><KZ095>0.00</KZ095></KENNZAHLEN></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_INFO",
			severity: models.SeverityError,
		},
		{
			name:     "empty steuernummer",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER></STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN><ERKLAERUNG art="U30"><KENNZAHLEN><KZ095>0.00</KZ095><KZ000>0.00</KZ000></KENNZAHLEN></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_STEUERNUMMER",
			severity: models.SeverityError,
		},
		{
			name:     "missing erklaerung",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER>123</STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_ERKLAERUNG",
			severity: models.SeverityError,
		},
		{
			name:     "wrong art attribute",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER>123</STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN><ERKLAERUNG art="E1"><KENNZAHLEN><KZ095>0.00</KZ095><KZ000>0.00</KZ000></KENNZAHLEN></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_WRONG_ART",
			severity: models.SeverityError,
		},
		{
			name:     "missing kennzahlen block",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER>123</STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN><ERKLAERUNG art="U30"></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_KZ",
			severity: models.SeverityError,
		},
		{
			name:     "missing kz095",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER>123</STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN><ERKLAERUNG art="U30"><KENNZAHLEN><KZ000>0.00</KZ000></KENNZAHLEN></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_KZ095",
			severity: models.SeverityError,
		},
		{
			name:     "missing kz000 warns",
			xml:      `<ERKLAERUNGENPAKET><INFO_DATEN><ART>UVA</ART><STEUERNUMMER>123</STEUERNUMMER><ZEITRAUM>2026-01</ZEITRAUM></INFO_DATEN><ERKLAERUNG art="U30"><KENNZAHLEN><KZ095>0.00</KZ095></KENNZAHLEN></ERKLAERUNG></ERKLAERUNGENPAKET>`,
			wantCode: "XML_MISSING_KZ000",
			severity: models.SeverityWarning,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			issues := ValidateSchema(tc.xml)
			require.Contains(t, issueCodes(issues), tc.wantCode)
			for _, issue := range issues {
				if issue.Code == tc.wantCode {
					assert.Equal(t, tc.severity, issue.Severity)
				}
			}
		})
	}
}
