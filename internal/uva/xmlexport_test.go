package uva

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uvaexpress/pkg/models"
)

func exportRequest(kz models.KZValues) models.XMLExportRequest {
	return models.XMLExportRequest{
		KZValues:       kz,
		Steuernummer:   "12 345/6789",
		Year:           2026,
		Month:          1,
		GenerationDate: time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC),
	}
}

func TestBuildXMLStructure(t *testing.T) {
	t.Parallel()

	resp := BuildXML(exportRequest(consistentKZ()))

	require.True(t, resp.Success)
	assert.Equal(t, "UVA_2026_01.xml", resp.Filename)
	assert.True(t, resp.ValidationPassed)

	xml := resp.XMLContent
	assert.Contains(t, xml, "<ERKLAERUNGENPAKET>")
	assert.Contains(t, xml, "<ART>UVA</ART>")
	assert.Contains(t, xml, "<STEUERNUMMER>12 345/6789</STEUERNUMMER>")
	assert.Contains(t, xml, "<ZEITRAUM>2026-01</ZEITRAUM>")
	assert.Contains(t, xml, "<ERSTELLUNGSDATUM>2026-02-10</ERSTELLUNGSDATUM>")
	assert.Contains(t, xml, `<ERKLAERUNG art="U30">`)
	assert.Contains(t, xml, "<KZ000>1000.00</KZ000>")
	assert.Contains(t, xml, "<KZ022_BMGL>1000.00</KZ022_BMGL>")
	assert.Contains(t, xml, "<KZ022_STEUER>200.00</KZ022_STEUER>")
	assert.Contains(t, xml, "<KZ090>100.00</KZ090>")
	assert.Contains(t, xml, "<KZ095>100.00</KZ095>")
}

func TestBuildXMLIsDeterministic(t *testing.T) {
	t.Parallel()

	req := exportRequest(consistentKZ())
	first := BuildXML(req)
	second := BuildXML(req)

	assert.Equal(t, first.XMLContent, second.XMLContent)
}

func TestBuildXMLEmptyDeclaration(t *testing.T) {
	t.Parallel()

	resp := BuildXML(exportRequest(models.KZValues{}))

	require.True(t, resp.Success)
	xml := resp.XMLContent
	// The mandatory result fields are always present, even at zero.
	assert.Contains(t, xml, "<KZ000>0.00</KZ000>")
	assert.Contains(t, xml, "<KZ090>0.00</KZ090>")
	assert.Contains(t, xml, "<KZ095>0.00</KZ095>")
	// Optional zero fields are omitted.
	assert.NotContains(t, xml, "KZ022_BMGL")
	assert.NotContains(t, xml, "<KZ060>")
}

func TestBuildXMLEmitsPairsAtomically(t *testing.T) {
	t.Parallel()

	kz := models.KZValues{KZ029Netto: dec("100.00")} // base without tax
	resp := BuildXML(exportRequest(kz))

	require.True(t, resp.Success)
	assert.Contains(t, resp.XMLContent, "<KZ029_BMGL>100.00</KZ029_BMGL>")
	assert.Contains(t, resp.XMLContent, "<KZ029_STEUER>0.00</KZ029_STEUER>")
}

func TestBuildXMLEscapesCompanyData(t *testing.T) {
	t.Parallel()

	req := exportRequest(consistentKZ())
	req.UnternehmenName = `Müller & Söhne <GmbH>`
	req.UnternehmenOrt = "Wien"

	resp := BuildXML(req)

	require.True(t, resp.Success)
	assert.Contains(t, resp.XMLContent, "<BEZEICHNUNG>Müller &amp; Söhne &lt;GmbH&gt;</BEZEICHNUNG>")
	assert.Contains(t, resp.XMLContent, "<ORT>Wien</ORT>")
	assert.NotContains(t, resp.XMLContent, "<STRASSE>")
}

func TestBuildXMLRejectsShortSteuernummer(t *testing.T) {
	t.Parallel()

	req := exportRequest(consistentKZ())
	req.Steuernummer = "12"

	resp := BuildXML(req)

	assert.False(t, resp.Success)
	assert.Empty(t, resp.XMLContent)
	assert.Empty(t, resp.Filename)
	assert.Contains(t, issueCodes(resp.ValidationIssues), "INVALID_STEUERNUMMER")
}

func TestBuildXMLWarnsOnOddFormat(t *testing.T) {
	t.Parallel()

	req := exportRequest(consistentKZ())
	req.Steuernummer = "abcdef"
	req.Year = 2035

	resp := BuildXML(req)

	require.True(t, resp.Success)
	codes := issueCodes(resp.ValidationIssues)
	assert.Contains(t, codes, "STEUERNUMMER_FORMAT")
	assert.Contains(t, codes, "UNUSUAL_PERIOD")
}

func TestBuildXMLNegativeResult(t *testing.T) {
	t.Parallel()

	kz := models.KZValues{
		KZ060Vorsteuer: dec("250.00"),
		KZ090Betrag:    dec("250.00"),
		KZ095Betrag:    dec("-250.00"),
	}
	resp := BuildXML(exportRequest(kz))

	require.True(t, resp.Success)
	assert.Contains(t, resp.XMLContent, "<KZ095>-250.00</KZ095>")
	assert.True(t, strings.HasPrefix(resp.XMLContent, `<?xml version="1.0" encoding="UTF-8"?>`))
}
