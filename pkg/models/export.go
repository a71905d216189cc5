package models

import "time"

// XMLExportRequest asks for a FinanzOnline-style declaration document.
type XMLExportRequest struct {
	KZValues     KZValues `json:"kz_values"`
	Steuernummer string   `json:"steuernummer"`
	Year         int      `json:"year"`
	Month        int      `json:"month"`

	// Optional filer block.
	UnternehmenName    string `json:"unternehmen_name,omitempty"`
	UnternehmenStrasse string `json:"unternehmen_strasse,omitempty"`
	UnternehmenPLZ     string `json:"unternehmen_plz,omitempty"`
	UnternehmenOrt     string `json:"unternehmen_ort,omitempty"`

	// GenerationDate pins ERSTELLUNGSDATUM; zero means time.Now (UTC).
	// Rendering the same request with the same date is byte-identical.
	GenerationDate time.Time `json:"generation_date,omitempty"`
}

// XMLExportResponse carries the rendered document. On a failed
// pre-validation XMLContent and Filename stay empty; non-fatal issues are
// reported even on success.
type XMLExportResponse struct {
	Success          bool              `json:"success"`
	XMLContent       string            `json:"xml_content"`
	Filename         string            `json:"filename"`
	ValidationPassed bool              `json:"validation_passed"`
	ValidationIssues []ValidationIssue `json:"validation_issues"`
}
