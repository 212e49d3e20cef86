// Package logging configures the process-wide zerolog logger.
package logging

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config holds logger configuration
type Config struct {
	Level       string // debug, info, warn, error
	Format      string // json, pretty
	ServiceName string
	Version     string
	Output      io.Writer // defaults to os.Stderr
}

// Init initializes the global logger and returns it. Every line carries a
// run_id unique to this invocation.
func Init(cfg Config) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var w io.Writer
	switch cfg.Format {
	case "pretty", "text", "":
		w = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	case "json":
		w = out
	default:
		return zerolog.Nop(), fmt.Errorf("invalid log format %q", cfg.Format)
	}

	logger := zerolog.New(w).With().
		Timestamp().
		Str("service", cfg.ServiceName).
		Str("version", cfg.Version).
		Str("run_id", uuid.NewString()).
		Logger()

	log.Logger = logger
	return logger, nil
}
