// Package analytics is the portfolio analytics engine.
//
// Every view is a pure function of a ledger snapshot and the engine clock:
// income projections, performance statistics, the composite health score,
// reconstructed chart series, geographic aggregation and the payout calendar.
// Nothing here performs I/O or keeps state between calls, so identical inputs
// always produce identical outputs and callers may memoize freely.
//
// Empty ledgers never cause errors. Each view has an explicit empty form, and
// ComputePerformance returns nil so that a brand-new account can be told apart
// from an account with a zero return.
package analytics

import (
	"time"

	"github.com/rs/zerolog"
)

// Options tunes the engine's fixed assumptions
type Options struct {
	// DefaultROI is the annual ROI (percent) applied to investments that carry none.
	DefaultROI float64
	// RiskFreeRate is the percent return subtracted in the Sharpe ratio.
	RiskFreeRate float64
	// TargetReturn is the annualized return (percent) that earns a full performance score.
	TargetReturn float64
	// TargetProperties is the property count that earns a full diversification score.
	TargetProperties float64
	// TargetYield is the average yield (percent) that earns a full income stability score.
	TargetYield float64
	// SyntheticFallback enables the placeholder income series for accounts without dividends.
	SyntheticFallback bool
	// TrendWindow is the moving-average window (days) of the income trend line.
	TrendWindow int
	// Location decides calendar days, month boundaries and labels.
	Location *time.Location
}

// DefaultOptions returns the dashboard's standard assumptions
func DefaultOptions() Options {
	return Options{
		DefaultROI:        10,
		RiskFreeRate:      2,
		TargetReturn:      10,
		TargetProperties:  10,
		TargetYield:       12,
		SyntheticFallback: true,
		TrendWindow:       7,
		Location:          time.Local,
	}
}

// Engine computes analytics views from ledger snapshots
type Engine struct {
	opts Options
	now  func() time.Time
	log  zerolog.Logger
}

// NewEngine creates an engine. Zero-valued targets and windows fall back to DefaultOptions.
func NewEngine(opts Options, log zerolog.Logger) *Engine {
	def := DefaultOptions()
	if opts.TargetReturn <= 0 {
		opts.TargetReturn = def.TargetReturn
	}
	if opts.TargetProperties <= 0 {
		opts.TargetProperties = def.TargetProperties
	}
	if opts.TargetYield <= 0 {
		opts.TargetYield = def.TargetYield
	}
	if opts.TrendWindow <= 0 {
		opts.TrendWindow = def.TrendWindow
	}
	if opts.Location == nil {
		opts.Location = def.Location
	}

	return &Engine{
		opts: opts,
		now:  time.Now,
		log:  log.With().Str("component", "analytics_engine").Logger(),
	}
}

// WithClock returns a copy of the engine that reads the current time from now
func (e *Engine) WithClock(now func() time.Time) *Engine {
	c := *e
	c.now = now
	return &c
}

// Options returns the engine's effective options
func (e *Engine) Options() Options {
	return e.opts
}

// Today returns the engine clock in the configured location
func (e *Engine) Today() time.Time {
	return e.now().In(e.opts.Location)
}
