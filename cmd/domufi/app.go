package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/glamour"
	"github.com/rs/zerolog"

	"github.com/domufi/analytics/internal/config"
	"github.com/domufi/analytics/internal/di"
	"github.com/domufi/analytics/internal/modules/analytics"
	"github.com/domufi/analytics/internal/modules/ledger"
	"github.com/domufi/analytics/pkg/logger"
)

var (
	currencyCode = flag.String("currency", "USD", "ISO 4217 currency used to format amounts")
	rawOutput    = flag.Bool("raw", false, "print markdown without terminal styling")
	verbose      = flag.Bool("v", false, "log to stderr")
)

// stdout receives command output
var stdout io.Writer = os.Stdout

// newLogger returns a quiet logger unless -v is set
func newLogger() zerolog.Logger {
	if !*verbose {
		return zerolog.Nop()
	}
	return logger.New(logger.Config{Level: "debug", Pretty: true, Output: os.Stderr})
}

// openContainer wires the service against the configured data directory
func openContainer(ctx context.Context, log zerolog.Logger) (*di.Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return di.Wire(ctx, cfg, log)
}

// dashboardFor computes the dashboard from ledgerFile, or from the ledger database when no file is given
func dashboardFor(ctx context.Context, ledgerFile string, rng analytics.Range) (analytics.Dashboard, error) {
	log := newLogger()

	if ledgerFile != "" {
		cfg, err := config.Load()
		if err != nil {
			return analytics.Dashboard{}, err
		}
		opts, err := cfg.Analytics.ToEngineOptions()
		if err != nil {
			return analytics.Dashboard{}, err
		}
		engine := analytics.NewEngine(opts, log)
		svc := analytics.NewService(ledger.NewFileProvider(ledgerFile), engine, nil, log)
		return svc.Dashboard(ctx, rng)
	}

	container, err := openContainer(ctx, log)
	if err != nil {
		return analytics.Dashboard{}, err
	}
	defer container.Close()

	return container.AnalyticsService.Dashboard(ctx, rng)
}

// printMarkdown renders md for the terminal, falling back to the raw text
func printMarkdown(md string) {
	if *rawOutput {
		fmt.Fprint(stdout, md)
		return
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	out, err := r.Render(md)
	if err != nil {
		fmt.Fprint(stdout, md)
		return
	}
	fmt.Fprint(stdout, out)
}
