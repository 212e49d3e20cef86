// Package export writes insider filing result sets to tabular files.
package export

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/seenimoa/insiderfetch/pkg/models"
	"github.com/seenimoa/insiderfetch/pkg/utils"
)

// Format is an output file format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

const DefaultPrefix = "insider_transactions"

var (
	// ErrEmpty is returned instead of writing a file with no rows.
	ErrEmpty = errors.New("no filings to export")

	// ErrUnknownFormat is returned for formats other than csv and xlsx.
	ErrUnknownFormat = errors.New("unknown export format")
)

// ParseFormat parses "csv" or "xlsx" (case-insensitive, optional dot).
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), ".")); f {
	case FormatCSV, FormatXLSX:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownFormat, s)
	}
}

// Config controls where and how files are written.
type Config struct {
	Dir    string // directory for generated filenames
	Prefix string
	Format Format
}

// Exporter writes result sets to disk.
type Exporter struct {
	cfg Config
	now func() time.Time
	log zerolog.Logger
}

// Option customizes an Exporter.
type Option func(*Exporter)

// WithClock overrides the clock used for generated filenames.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// WithLogger sets the logger.
func WithLogger(l zerolog.Logger) Option {
	return func(e *Exporter) { e.log = l }
}

// New creates an Exporter. Empty config fields take defaults.
func New(cfg Config, opts ...Option) *Exporter {
	if cfg.Prefix == "" {
		cfg.Prefix = DefaultPrefix
	}
	if cfg.Format == "" {
		cfg.Format = FormatCSV
	}
	e := &Exporter{cfg: cfg, now: time.Now, log: zerolog.Nop()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateName returns <dir>/<prefix>_<YYYYmmdd_HHMMSS>.<ext> for the
// current clock reading.
func (e *Exporter) GenerateName(format Format) string {
	name := fmt.Sprintf("%s_%s.%s", e.cfg.Prefix, utils.FormatStamp(e.now()), format)
	if e.cfg.Dir == "" {
		return name
	}
	return filepath.Join(e.cfg.Dir, name)
}

// Export writes filings to filename and returns the name used. An empty
// filename is replaced by a generated one. A .csv or .xlsx extension on an
// explicit filename selects the format; otherwise the configured format is
// used. Existing files are overwritten.
func (e *Exporter) Export(filings []models.InsiderFiling, filename string) (string, error) {
	if len(filings) == 0 {
		return "", ErrEmpty
	}

	format := e.cfg.Format
	if filename == "" {
		filename = e.GenerateName(format)
	} else if f, err := ParseFormat(filepath.Ext(filename)); err == nil {
		format = f
	}

	var err error
	switch format {
	case FormatCSV:
		err = writeCSV(filename, filings)
	case FormatXLSX:
		err = writeXLSX(filename, filings)
	default:
		err = fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
	if err != nil {
		return "", fmt.Errorf("export %s: %w", filename, err)
	}

	e.log.Info().
		Str("file", filename).
		Str("format", string(format)).
		Int("rows", len(filings)).
		Msg("filings exported")
	return filename, nil
}
