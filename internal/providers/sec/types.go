package sec

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"

	"github.com/seenimoa/insiderfetch/pkg/utils"
)

// --- CIK / Ticker Mapping ---
// The company_tickers.json endpoint returns a map: {"0": {cik_str, ticker, title}, ...}

// edgarTickerEntry is a row from the CIK<->ticker mapping file.
// cik_str is a JSON number upstream; json.Number also accepts a quoted value.
type edgarTickerEntry struct {
	CIKStr json.Number `json:"cik_str"`
	Ticker string      `json:"ticker"`
	Title  string      `json:"title"`
}

// edgarTickerTable is the decoded company_tickers.json document.
type edgarTickerTable map[string]edgarTickerEntry

// ordered returns the entries in upstream row order ("0", "1", ...).
// Non-numeric keys sort after numeric ones, lexically.
func (t edgarTickerTable) ordered() []edgarTickerEntry {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		a, errA := strconv.Atoi(keys[i])
		b, errB := strconv.Atoi(keys[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return keys[i] < keys[j]
		}
	})

	entries := make([]edgarTickerEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, t[k])
	}
	return entries
}

// --- EDGAR Submissions (data.sec.gov/submissions) ---

// edgarSubmissionsResponse is the response from company submissions endpoint.
type edgarSubmissionsResponse struct {
	CIK     string       `json:"cik"`
	Name    string       `json:"name"`
	Tickers []string     `json:"tickers"`
	Filings edgarFilings `json:"filings"`
}

type edgarFilings struct {
	Recent edgarFilingSet `json:"recent"`
}

// edgarFilingSet holds the recent filings as parallel arrays, newest first.
type edgarFilingSet struct {
	AccessionNumber []string `json:"accessionNumber"`
	FilingDate      []string `json:"filingDate"`
	Form            []string `json:"form"`
	PrimaryDocument []string `json:"primaryDocument"`
}

// submissionRow is one recent filing after the parse boundary.
// FilingDate is zero when the upstream value did not parse.
type submissionRow struct {
	Form            string
	FilingDate      time.Time
	AccessionNumber string
	PrimaryDocument string
}

// rows zips the parallel arrays into typed rows, one per form entry, keeping
// upstream order and indices. Short arrays default to empty values.
func (s edgarFilingSet) rows(loc *time.Location) []submissionRow {
	out := make([]submissionRow, len(s.Form))
	for i, form := range s.Form {
		row := submissionRow{
			Form:            form,
			AccessionNumber: at(s.AccessionNumber, i),
			PrimaryDocument: at(s.PrimaryDocument, i),
		}
		if d, err := utils.ParseDateIn(at(s.FilingDate, i), loc); err == nil {
			row.FilingDate = d
		}
		out[i] = row
	}
	return out
}

func at(s []string, i int) string {
	if i < len(s) {
		return s[i]
	}
	return ""
}
