package sec

import (
	"context"
	"fmt"
	"strings"

	"github.com/seenimoa/insiderfetch/pkg/models"
	"github.com/seenimoa/insiderfetch/pkg/utils"
)

// FetchFilings downloads the filer's submission history and returns one
// record per filing of the configured form type filed within the last
// days days.
//
// Only the first MaxCandidates matching filings (newest first, in upstream
// order) are considered; the date filter runs after that cap, so fewer
// records than the cap may come back. Candidates older than the cutoff are
// skipped. The pacer is waited on after each retained record.
//
// Any failure downloading or decoding the history is logged and returned
// wrapped in ErrTransport with a nil slice.
func (c *Client) FetchFilings(ctx context.Context, cik, ticker string, days int) ([]models.InsiderFiling, error) {
	cik = padCIK(cik)
	u := fmt.Sprintf("%s/CIK%s.json", strings.TrimRight(c.cfg.SubmissionsURL, "/"), cik)

	var resp edgarSubmissionsResponse
	if err := c.fetchSECJSON(ctx, u, &resp); err != nil {
		c.log.Error().Err(err).Str("cik", cik).Msg("fetch submissions failed")
		return nil, fmt.Errorf("%w: sec submissions for CIK %s: %w", ErrTransport, cik, err)
	}

	now := c.now()
	cutoff := utils.Cutoff(now, days)
	rows := resp.Filings.Recent.rows(now.Location())
	candidates := selectCandidates(rows, c.cfg.FormType, c.cfg.MaxCandidates)

	c.log.Debug().
		Str("cik", cik).
		Int("history", len(rows)).
		Int("candidates", len(candidates)).
		Time("cutoff", cutoff).
		Msg("filtering submissions")

	company := utils.NormalizeTicker(ticker)
	filings := make([]models.InsiderFiling, 0, len(candidates))
	for _, idx := range candidates {
		row := rows[idx]
		if row.FilingDate.IsZero() {
			c.log.Warn().Int("index", idx).Str("accession", row.AccessionNumber).Msg("skipping filing with unparsable date")
			continue
		}
		if row.FilingDate.Before(cutoff) {
			continue
		}

		filings = append(filings, models.InsiderFiling{
			FilingDate:  row.FilingDate,
			AccessionNo: row.AccessionNumber,
			DocumentURL: DocumentURL(c.cfg.ArchivesURL, cik, row.AccessionNumber, row.PrimaryDocument),
			Company:     company,
			CIK:         cik,
			FormType:    row.Form,
		})

		if err := c.pacer.Wait(ctx); err != nil {
			return nil, err
		}
	}

	c.log.Info().Str("ticker", company).Int("filings", len(filings)).Msg("filings fetched")
	return filings, nil
}

// DocumentURL builds the archive URL of a filing's primary document:
// <archives>/<cik>/<accession without hyphens>/<document>.
func DocumentURL(archivesURL, cik, accessionNo, primaryDocument string) string {
	return fmt.Sprintf("%s/%s/%s/%s",
		strings.TrimRight(archivesURL, "/"),
		cik,
		strings.ReplaceAll(accessionNo, "-", ""),
		primaryDocument)
}

// selectCandidates returns the indices of rows whose form equals formType,
// in row order, truncated to at most limit entries.
func selectCandidates(rows []submissionRow, formType string, limit int) []int {
	var idx []int
	for i, row := range rows {
		if row.Form != formType {
			continue
		}
		idx = append(idx, i)
		if len(idx) == limit {
			break
		}
	}
	return idx
}
