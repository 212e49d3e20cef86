package sec

import (
	"context"
	"fmt"

	"github.com/seenimoa/insiderfetch/pkg/models"
	"github.com/seenimoa/insiderfetch/pkg/utils"
)

// ResolveCIK maps a ticker symbol to its zero-padded CIK.
// It downloads the whole EDGAR ticker table and scans it linearly; the first
// case-insensitive exact match wins. Returns ErrTickerNotFound when nothing
// matches. A failed table download is returned unhandled.
func (c *Client) ResolveCIK(ctx context.Context, ticker string) (string, error) {
	m, err := c.LookupTicker(ctx, ticker)
	if err != nil {
		return "", err
	}
	return m.CIK, nil
}

// LookupTicker returns the CIK mapping (CIK, ticker, company title) for a ticker.
func (c *Client) LookupTicker(ctx context.Context, ticker string) (models.CIKMapping, error) {
	var table edgarTickerTable
	if err := c.fetchSECJSON(ctx, c.cfg.TickersURL, &table); err != nil {
		return models.CIKMapping{}, fmt.Errorf("fetch company tickers: %w", err)
	}

	sym := utils.NormalizeTicker(ticker)
	for _, entry := range table.ordered() {
		if !utils.TickersEqual(entry.Ticker, sym) {
			continue
		}
		cik := padCIK(entry.CIKStr.String())
		c.log.Debug().Str("ticker", sym).Str("cik", cik).Msg("resolved CIK")
		return models.CIKMapping{
			CIK:    cik,
			Symbol: entry.Ticker,
			Name:   entry.Title,
		}, nil
	}

	return models.CIKMapping{}, fmt.Errorf("%w: %s", ErrTickerNotFound, sym)
}
