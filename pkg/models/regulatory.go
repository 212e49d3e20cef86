package models

import "time"

// --- SEC Filings ---

// FilingDateLayout is the calendar-date layout used by EDGAR and by exports.
const FilingDateLayout = "2006-01-02"

// InsiderFilingHeader is the column order used when an InsiderFiling is
// written to a tabular file.
var InsiderFilingHeader = []string{
	"Filing Date",
	"Accession Number",
	"Document URL",
	"Company",
	"CIK",
}

// InsiderFiling is one Form 4 disclosure retained for export.
type InsiderFiling struct {
	FilingDate  time.Time `json:"filing_date"`
	AccessionNo string    `json:"accession_no"`
	DocumentURL string    `json:"document_url"`
	Company     string    `json:"company"` // ticker as supplied by the caller, upper-cased
	CIK         string    `json:"cik"`
	FormType    string    `json:"form_type,omitempty"`
}

// Record returns the filing as a row matching InsiderFilingHeader.
func (f InsiderFiling) Record() []string {
	return []string{
		f.FilingDate.Format(FilingDateLayout),
		f.AccessionNo,
		f.DocumentURL,
		f.Company,
		f.CIK,
	}
}

// CIKMapping represents a mapping from ticker/name to CIK number.
type CIKMapping struct {
	CIK    string `json:"cik"`
	Symbol string `json:"symbol,omitempty"`
	Name   string `json:"name"`
}
