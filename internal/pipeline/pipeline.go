// Package pipeline runs the resolve -> fetch -> export sequence for one
// ticker and maps each outcome onto a distinguishable error.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/seenimoa/insiderfetch/pkg/models"
	"github.com/seenimoa/insiderfetch/pkg/utils"
)

var (
	// ErrNoFilings means the fetch succeeded but nothing matched the filters.
	// No file is written.
	ErrNoFilings = errors.New("no filings found")

	// ErrNoTicker is returned for a blank ticker.
	ErrNoTicker = errors.New("ticker is required")

	// ErrInvalidDays is returned for a negative look-back.
	ErrInvalidDays = errors.New("look-back days must not be negative")
)

// Resolver maps a ticker to a CIK.
type Resolver interface {
	ResolveCIK(ctx context.Context, ticker string) (string, error)
}

// Fetcher returns the filings of a CIK within a look-back window.
type Fetcher interface {
	FetchFilings(ctx context.Context, cik, ticker string, days int) ([]models.InsiderFiling, error)
}

// Exporter writes filings to a file and returns its name.
type Exporter interface {
	Export(filings []models.InsiderFiling, filename string) (string, error)
}

// Request is one run's input.
type Request struct {
	Ticker string
	Days   *int   // nil selects the default; an explicit 0 is honoured
	Output string // empty generates a timestamped name
}

// LookBack returns a Days value for a Request.
func LookBack(days int) *int { return &days }

// Result is a successful run's output.
type Result struct {
	Ticker  string
	CIK     string
	Days    int
	Filings []models.InsiderFiling
	File    string
}

// Pipeline wires the three steps together.
type Pipeline struct {
	resolver    Resolver
	fetcher     Fetcher
	exporter    Exporter
	defaultDays int
	log         zerolog.Logger
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithDefaultDays sets the look-back used when a request leaves Days unset.
func WithDefaultDays(days int) Option {
	return func(p *Pipeline) {
		if days > 0 {
			p.defaultDays = days
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(p *Pipeline) { p.log = l }
}

// New creates a Pipeline.
func New(r Resolver, f Fetcher, e Exporter, opts ...Option) *Pipeline {
	p := &Pipeline{
		resolver:    r,
		fetcher:     f,
		exporter:    e,
		defaultDays: utils.DefaultLookbackDays,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Run resolves the ticker, fetches its filings and exports them.
//
// Errors: the resolver's ticker-not-found error, the fetcher's transport
// error, and ErrNoFilings are graceful outcomes that leave no file behind.
// Any other resolver error (e.g. the ticker table download failing) is
// unrecoverable for the run.
func (p *Pipeline) Run(ctx context.Context, req Request) (*Result, error) {
	res, err := p.Fetch(ctx, req)
	if err != nil {
		return nil, err
	}

	file, err := p.exporter.Export(res.Filings, req.Output)
	if err != nil {
		return nil, err
	}
	res.File = file
	return res, nil
}

// Fetch performs the resolve and fetch steps without exporting.
func (p *Pipeline) Fetch(ctx context.Context, req Request) (*Result, error) {
	ticker := utils.NormalizeTicker(req.Ticker)
	if ticker == "" {
		return nil, ErrNoTicker
	}
	days := p.defaultDays
	if req.Days != nil {
		days = *req.Days
	}
	if days < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDays, days)
	}

	log := p.log.With().Str("ticker", ticker).Int("days", days).Logger()

	cik, err := p.resolver.ResolveCIK(ctx, ticker)
	if err != nil {
		log.Warn().Err(err).Msg("resolve CIK failed")
		return nil, err
	}

	filings, err := p.fetcher.FetchFilings(ctx, cik, ticker, days)
	if err != nil {
		return nil, err
	}
	if len(filings) == 0 {
		log.Info().Str("cik", cik).Msg("no matching filings")
		return nil, fmt.Errorf("%w for %s in the last %d days", ErrNoFilings, ticker, days)
	}

	return &Result{
		Ticker:  ticker,
		CIK:     cik,
		Days:    days,
		Filings: filings,
	}, nil
}
