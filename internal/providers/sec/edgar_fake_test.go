package sec

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/seenimoa/insiderfetch/internal/infra"
)

const testUserAgent = "insiderfetch-test qa@example.test"

// fakeEDGAR serves company_tickers.json and submissions documents.
type fakeEDGAR struct {
	srv *httptest.Server

	tickers           string
	tickersStatus     int
	submissions       map[string]string // CIK -> body
	submissionsStatus int

	tickerHits     atomic.Int32
	submissionHits atomic.Int32
	lastUserAgent  atomic.Value
}

func newFakeEDGAR(t *testing.T) *fakeEDGAR {
	t.Helper()
	f := &fakeEDGAR{
		tickers: `{
			"0": {"cik_str": 320193, "ticker": "AAPL", "title": "Apple Inc."},
			"1": {"cik_str": 789019, "ticker": "MSFT", "title": "MICROSOFT CORP"},
			"2": {"cik_str": 1318605, "ticker": "TSLA", "title": "Tesla, Inc."}
		}`,
		submissions: make(map[string]string),
	}
	f.srv = httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeEDGAR) serve(w http.ResponseWriter, r *http.Request) {
	f.lastUserAgent.Store(r.Header.Get("User-Agent"))
	switch {
	case r.URL.Path == "/files/company_tickers.json":
		f.tickerHits.Add(1)
		if f.tickersStatus != 0 {
			http.Error(w, "unavailable", f.tickersStatus)
			return
		}
		w.Write([]byte(f.tickers))
	case strings.HasPrefix(r.URL.Path, "/submissions/CIK"):
		f.submissionHits.Add(1)
		if f.submissionsStatus != 0 {
			http.Error(w, "unavailable", f.submissionsStatus)
			return
		}
		cik := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/submissions/CIK"), ".json")
		body, ok := f.submissions[cik]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeEDGAR) config() Config {
	return Config{
		UserAgent:      testUserAgent,
		TickersURL:     f.srv.URL + "/files/company_tickers.json",
		SubmissionsURL: f.srv.URL + "/submissions",
		Timeout:        5 * time.Second,
	}
}

func (f *fakeEDGAR) client(now time.Time, opts ...Option) *Client {
	base := []Option{
		WithClock(func() time.Time { return now }),
		WithPacer(infra.NewPacer(0)),
	}
	return New(f.config(), append(base, opts...)...)
}

// testFiling describes one row of the recent filings arrays.
type testFiling struct {
	form     string
	date     string
	accNo    string
	document string
}

func submissionsJSON(t *testing.T, cik string, filings []testFiling) string {
	t.Helper()
	var set edgarFilingSet
	for _, f := range filings {
		set.Form = append(set.Form, f.form)
		set.FilingDate = append(set.FilingDate, f.date)
		set.AccessionNumber = append(set.AccessionNumber, f.accNo)
		set.PrimaryDocument = append(set.PrimaryDocument, f.document)
	}
	data, err := json.Marshal(edgarSubmissionsResponse{
		CIK:     strings.TrimLeft(cik, "0"),
		Name:    "Test Co",
		Filings: edgarFilings{Recent: set},
	})
	if err != nil {
		t.Fatalf("marshal submissions: %v", err)
	}
	return string(data)
}

func daysAgo(now time.Time, n int) string {
	return now.AddDate(0, 0, -n).Format("2006-01-02")
}
