// Package sec implements the SEC EDGAR client used to find a company's
// recent insider (Form 4) filings.
//
// No API key required. Must include a User-Agent header per SEC policy.
// Docs: https://www.sec.gov/edgar/sec-api-documentation
// Rate limit: 10 requests/second per user-agent.
package sec

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/insiderfetch/internal/infra"
)

const (
	// SEC EDGAR endpoints.
	DefaultTickersURL     = "https://www.sec.gov/files/company_tickers.json"
	DefaultSubmissionsURL = "https://data.sec.gov/submissions"
	DefaultArchivesURL    = "https://www.sec.gov/Archives/edgar/data"

	DefaultFormType        = "4"
	DefaultMaxCandidates   = 50
	DefaultRequestInterval = 100 * time.Millisecond
)

var (
	// ErrTickerNotFound is returned when no ticker in the EDGAR table matches.
	ErrTickerNotFound = errors.New("ticker not found")

	// ErrTransport marks a failed submissions download. No partial data
	// accompanies it.
	ErrTransport = errors.New("sec transport error")
)

// Config is the immutable configuration of one Client.
type Config struct {
	UserAgent      string
	TickersURL     string
	SubmissionsURL string
	ArchivesURL    string
	Timeout        time.Duration // 0 disables the client-side timeout

	FormType        string
	MaxCandidates   int
	RequestInterval time.Duration // spacing between retained candidates
}

// Client talks to SEC EDGAR.
type Client struct {
	cfg   Config
	http  *infra.Client
	pacer *infra.Pacer
	now   func() time.Time
	log   zerolog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithClock overrides the clock used for the recency cutoff.
func WithClock(now func() time.Time) Option {
	return func(c *Client) { c.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Client) { c.log = l }
}

// WithPacer replaces the pacer built from Config.RequestInterval.
func WithPacer(p *infra.Pacer) Option {
	return func(c *Client) { c.pacer = p }
}

// New creates a Client. Zero-valued config fields take the EDGAR defaults.
func New(cfg Config, opts ...Option) *Client {
	if cfg.TickersURL == "" {
		cfg.TickersURL = DefaultTickersURL
	}
	if cfg.SubmissionsURL == "" {
		cfg.SubmissionsURL = DefaultSubmissionsURL
	}
	if cfg.ArchivesURL == "" {
		cfg.ArchivesURL = DefaultArchivesURL
	}
	if cfg.FormType == "" {
		cfg.FormType = DefaultFormType
	}
	if cfg.MaxCandidates <= 0 {
		cfg.MaxCandidates = DefaultMaxCandidates
	}

	c := &Client{
		cfg:   cfg,
		http:  infra.NewClient(cfg.Timeout, map[string]string{"User-Agent": cfg.UserAgent}),
		pacer: infra.NewPacer(cfg.RequestInterval),
		now:   time.Now,
		log:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the client's effective configuration.
func (c *Client) Config() Config { return c.cfg }

// --- Shared helpers ---

func secHeaders() map[string]string {
	return map[string]string{
		"Accept": "application/json",
	}
}

// fetchSECJSON performs a GET request to the SEC API and decodes JSON.
func (c *Client) fetchSECJSON(ctx context.Context, url string, dest any) error {
	c.log.Debug().Str("url", url).Msg("sec request")

	body, _, err := c.http.DoGet(ctx, url, secHeaders())
	if err != nil {
		return err
	}
	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return fmt.Errorf("read SEC response: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return fmt.Errorf("parse SEC JSON: %w", err)
	}
	return nil
}

// padCIK pads a CIK number to 10 digits with leading zeros.
func padCIK(cik string) string {
	for len(cik) < 10 {
		cik = "0" + cik
	}
	return cik
}
