// Command insiderfetch exports recent SEC Form 4 (insider transaction) filings to CSV or XLSX.
//
// Main CLI entrypoint using cobra command framework.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

// Build-time variables (set via -ldflags).
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "insiderfetch [ticker]",
		Short: "Export a company's recent SEC Form 4 filings",
		Long: `insiderfetch resolves a ticker to its SEC CIK, downloads the company's
EDGAR submission history, keeps the Form 4 (insider transaction) filings
within the look-back window and writes them to a CSV or XLSX file.

Run without a ticker to be prompted interactively.

Examples:
  insiderfetch AAPL
  insiderfetch msft --days 30 --output msft.csv
  insiderfetch TSLA --format xlsx`,
		Args:              cobra.MaximumNArgs(1),
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		RunE:              a.runFetch,
	}

	rootCmd.PersistentFlags().String("config", "", "config file path (default: ./config/config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "log level override (debug, info, warn, error)")

	rootCmd.Flags().IntP("days", "d", 0, "number of days to look back, 0 allowed (default from config, 90)")
	rootCmd.Flags().StringP("output", "o", "", "output file (default: <prefix>_<timestamp>.<format>)")
	rootCmd.Flags().String("format", "", "output format: csv or xlsx (default from config)")
	rootCmd.Flags().String("form", "", "form type to select (default from config, \"4\")")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newLookupCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))
	return rootCmd
}

// --- Version Command ---

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		// Skip config loading for version.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "insiderfetch %s\n", version)
			fmt.Fprintf(out, "  commit:  %s\n", commit)
			fmt.Fprintf(out, "  built:   %s\n", date)
		},
	}
}
