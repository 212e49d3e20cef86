package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/seenimoa/insiderfetch/internal/config"
	"github.com/seenimoa/insiderfetch/internal/export"
	"github.com/seenimoa/insiderfetch/internal/logging"
	"github.com/seenimoa/insiderfetch/internal/pipeline"
	"github.com/seenimoa/insiderfetch/internal/providers/sec"
	"github.com/seenimoa/insiderfetch/pkg/models"
	"github.com/seenimoa/insiderfetch/pkg/utils"
)

const previewRows = 5

// app holds state shared by commands after PersistentPreRunE.
type app struct {
	cfg *config.Config
	log zerolog.Logger
}

// setup loads configuration and initializes logging.
func (a *app) setup(cmd *cobra.Command, args []string) error {
	var err error
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		a.cfg, err = config.LoadFromFile(configFile)
	} else {
		a.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if lvl, _ := cmd.Flags().GetString("log-level"); lvl != "" {
		a.cfg.Logging.Level = lvl
	}
	if f := cmd.Flags().Lookup("format"); f != nil && f.Changed {
		a.cfg.Export.Format = strings.ToLower(f.Value.String())
	}
	if f := cmd.Flags().Lookup("form"); f != nil && f.Changed {
		a.cfg.Fetch.FormType = f.Value.String()
	}

	if err := a.cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	a.log, err = logging.Init(logging.Config{
		Level:       a.cfg.Logging.Level,
		Format:      a.cfg.Logging.Format,
		ServiceName: "insiderfetch",
		Version:     version,
		Output:      cmd.ErrOrStderr(),
	})
	return err
}

func (a *app) secClient() *sec.Client {
	c := a.cfg
	return sec.New(sec.Config{
		UserAgent:       c.SEC.UserAgent,
		TickersURL:      c.SEC.TickersURL,
		SubmissionsURL:  c.SEC.SubmissionsURL,
		ArchivesURL:     c.SEC.ArchivesURL,
		Timeout:         c.SEC.Timeout,
		FormType:        c.Fetch.FormType,
		MaxCandidates:   c.Fetch.MaxCandidates,
		RequestInterval: c.Fetch.RequestInterval,
	}, sec.WithLogger(a.log))
}

func (a *app) exporter() *export.Exporter {
	return export.New(export.Config{
		Dir:    a.cfg.Export.Dir,
		Prefix: a.cfg.Export.Prefix,
		Format: export.Format(a.cfg.Export.Format),
	}, export.WithLogger(a.log))
}

// --- Fetch (root) ---

func (a *app) runFetch(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	output, _ := cmd.Flags().GetString("output")

	// nil leaves the configured default in place.
	var days *int
	if cmd.Flags().Changed("days") {
		n, _ := cmd.Flags().GetInt("days")
		if n < 0 {
			return fmt.Errorf("%w: %d", pipeline.ErrInvalidDays, n)
		}
		days = pipeline.LookBack(n)
	}

	var ticker string
	if len(args) == 1 {
		ticker = args[0]
	} else {
		in := bufio.NewReader(cmd.InOrStdin())
		var err error
		ticker, err = prompt(in, out, "Enter ticker symbol: ")
		if err != nil {
			return err
		}
		if !cmd.Flags().Changed("days") {
			raw, err := prompt(in, out, fmt.Sprintf("Enter number of days to look back (default %d): ", a.cfg.Fetch.DefaultDays))
			if err != nil {
				return err
			}
			if strings.TrimSpace(raw) != "" {
				n, err := utils.ParseLookbackDays(raw)
				if err != nil {
					return err
				}
				days = pipeline.LookBack(n)
			}
		}
	}
	ticker = utils.NormalizeTicker(ticker)

	client := a.secClient()
	p := pipeline.New(client, client, a.exporter(),
		pipeline.WithDefaultDays(a.cfg.Fetch.DefaultDays),
		pipeline.WithLogger(a.log))

	fmt.Fprintf(out, "Fetching insider transactions for %s...\n", ticker)
	res, err := p.Run(cmd.Context(), pipeline.Request{Ticker: ticker, Days: days, Output: output})
	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
		return err
	case errors.Is(err, sec.ErrTickerNotFound), errors.Is(err, pipeline.ErrNoTicker):
		fmt.Fprintf(out, "Could not find CIK for ticker %s\n", ticker)
		fmt.Fprintln(out, "No data found or error occurred")
		return nil
	case errors.Is(err, sec.ErrTransport):
		fmt.Fprintf(out, "Error fetching data: %v\n", err)
		fmt.Fprintln(out, "No data found or error occurred")
		return nil
	case errors.Is(err, pipeline.ErrNoFilings):
		fmt.Fprintln(out, "No data found or error occurred")
		return nil
	default:
		return err
	}

	fmt.Fprintf(out, "\nFound %d insider transaction filings\n", len(res.Filings))
	printPreview(out, res.Filings)
	fmt.Fprintf(out, "\nData saved to %s\n", res.File)
	return nil
}

// prompt writes label and reads one line. EOF yields the partial line.
func prompt(in *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	line, err := in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// printPreview prints the first few filings as an aligned table.
func printPreview(out io.Writer, filings []models.InsiderFiling) {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, strings.Join(models.InsiderFilingHeader, "\t"))
	for i, f := range filings {
		if i == previewRows {
			break
		}
		fmt.Fprintln(tw, strings.Join(f.Record(), "\t"))
	}
	tw.Flush()
	if len(filings) > previewRows {
		fmt.Fprintf(out, "... %d more\n", len(filings)-previewRows)
	}
}

// --- Lookup Command ---

func newLookupCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "lookup [ticker]",
		Short: "Resolve a ticker to its SEC CIK",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			ticker := utils.NormalizeTicker(args[0])

			m, err := a.secClient().LookupTicker(cmd.Context(), ticker)
			if errors.Is(err, sec.ErrTickerNotFound) {
				fmt.Fprintf(out, "Could not find CIK for ticker %s\n", ticker)
				return nil
			}
			if err != nil {
				return err
			}

			fmt.Fprintf(out, "Ticker:  %s\n", m.Symbol)
			fmt.Fprintf(out, "CIK:     %s\n", m.CIK)
			fmt.Fprintf(out, "Company: %s\n", m.Name)
			return nil
		},
	}
}

// --- Status Command ---

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			c := a.cfg
			ua := config.CheckUserAgent(c)

			contact := "missing contact e-mail"
			if ua.HasContact {
				contact = "contact present"
			}

			fmt.Fprintln(out, "insiderfetch configuration")
			fmt.Fprintf(out, "  Version:          %s (%s)\n", version, commit)
			fmt.Fprintf(out, "  User-Agent:       %s [%s, %s]\n", ua.Masked, ua.Source, contact)
			fmt.Fprintf(out, "  Tickers URL:      %s\n", c.SEC.TickersURL)
			fmt.Fprintf(out, "  Submissions URL:  %s\n", c.SEC.SubmissionsURL)
			fmt.Fprintf(out, "  Archives URL:     %s\n", c.SEC.ArchivesURL)
			fmt.Fprintf(out, "  Timeout:          %s\n", c.SEC.Timeout)
			fmt.Fprintf(out, "  Form type:        %s\n", c.Fetch.FormType)
			fmt.Fprintf(out, "  Max candidates:   %d\n", c.Fetch.MaxCandidates)
			fmt.Fprintf(out, "  Default days:     %d\n", c.Fetch.DefaultDays)
			fmt.Fprintf(out, "  Request interval: %s\n", c.Fetch.RequestInterval)
			fmt.Fprintf(out, "  Export:           %s/%s_*.%s\n", c.Export.Dir, c.Export.Prefix, c.Export.Format)
			return nil
		},
	}
}
