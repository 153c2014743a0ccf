package analytics

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/portfolio"
	"github.com/domufi/analytics/pkg/formulas"
)

// ErrInvalidRange is returned by ParseRange for unknown range tokens
var ErrInvalidRange = errors.New("invalid range")

// Range is a lookback window token
type Range string

const (
	Range1M Range = "1M"
	Range3M Range = "3M"
	Range6M Range = "6M"
	Range1Y Range = "1Y"
)

const (
	day = 24 * time.Hour
	// windows longer than this are labelled by month instead of by day
	dailyLabelMaxDays = 120
)

// Ranges lists the supported windows, shortest first
var Ranges = []Range{Range1M, Range3M, Range6M, Range1Y}

// ParseRange parses a range token case-insensitively. An empty token means 1M.
func ParseRange(s string) (Range, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return Range1M, nil
	}
	for _, r := range Ranges {
		if string(r) == s {
			return r, nil
		}
	}
	return Range1M, fmt.Errorf("%w: %q (expected one of 1M, 3M, 6M, 1Y)", ErrInvalidRange, s)
}

// Days returns the window length. Unknown ranges fall back to 30 days.
func (r Range) Days() int {
	switch r {
	case Range3M:
		return 90
	case Range6M:
		return 180
	case Range1Y:
		return 365
	default:
		return 30
	}
}

// SeriesSet holds the chart series for one window
type SeriesSet struct {
	Range     Range         `json:"range"`
	Income    domain.Series `json:"income"`
	Trend     []float64     `json:"trend"`
	Valuation domain.Series `json:"valuation"`
	Synthetic bool          `json:"synthetic"` // true when Income is the placeholder series
	Period    PeriodSummary `json:"period"`
}

// ReconstructSeries builds day-indexed income and valuation series ending today.
// Real dividend history always wins; the placeholder income series is only used
// when the whole window is empty and the synthetic fallback is enabled.
func (e *Engine) ReconstructSeries(investments []domain.Investment, transactions []domain.Transaction, income IncomeMetrics, r Range) SeriesSet {
	days := e.window(r.Days())
	labels := seriesLabels(days)

	incomeData := dailyDividends(days, transactions)
	synthetic := false
	if !anyPositive(incomeData) && e.opts.SyntheticFallback && income.DailyIncome > 0 {
		e.log.Debug().
			Str("range", string(r)).
			Float64("daily_income", income.DailyIncome).
			Msg("No dividends in window, using synthetic income series")
		incomeData = syntheticIncome(len(days), income.DailyIncome)
		synthetic = true
	}

	summary := portfolio.Summarize(investments)
	valuation := domain.Series{
		Labels: labels,
		Data:   valuationSeries(days, investments, summary.CurrentValue),
	}

	trend := formulas.MovingAverage(incomeData, e.opts.TrendWindow)
	for i := range trend {
		trend[i] = formulas.RoundMoney(trend[i])
	}

	return SeriesSet{
		Range:     r,
		Income:    domain.Series{Labels: labels, Data: incomeData},
		Trend:     trend,
		Valuation: valuation,
		Synthetic: synthetic,
		Period:    SummarizePeriod(valuation, summary),
	}
}

// window returns n instants one day apart, ending at now
func (e *Engine) window(n int) []time.Time {
	now := e.Today()
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = now.Add(-time.Duration(n-1-i) * day)
	}
	return days
}

func seriesLabels(days []time.Time) []string {
	layout := "Jan 2"
	if len(days) > dailyLabelMaxDays {
		layout = "Jan '06"
	}

	labels := make([]string, len(days))
	for i, d := range days {
		labels[i] = d.Format(layout)
	}
	return labels
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// dailyDividends sums dividend amounts per calendar day of the window
func dailyDividends(days []time.Time, transactions []domain.Transaction) []float64 {
	data := make([]float64, len(days))
	if len(days) == 0 {
		return data
	}

	loc := days[0].Location()
	byDay := make(map[string]float64)
	for _, t := range transactions {
		if t.IsDividend() {
			byDay[dateKey(t.Date.In(loc))] += t.Amount
		}
	}

	for i, d := range days {
		data[i] = formulas.RoundMoney(byDay[dateKey(d)])
	}
	return data
}

// syntheticIncome is a smooth non-negative placeholder around the projected daily income
func syntheticIncome(n int, baseline float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		v := baseline * (0.85 + 0.15*math.Sin(float64(i)/4))
		data[i] = formulas.RoundMoney(math.Max(0, v))
	}
	return data
}

func anyPositive(data []float64) bool {
	for _, v := range data {
		if v > 0 {
			return true
		}
	}
	return false
}

// valuationSeries models each holding with linear growth at its stored ROI and
// rescales the result so that the final point matches currentValue.
// Holdings without a ROI are modelled flat.
func valuationSeries(days []time.Time, investments []domain.Investment, currentValue float64) []float64 {
	data := make([]float64, len(days))
	if len(days) == 0 {
		return data
	}

	now := days[len(days)-1]
	for i, d := range days {
		var total float64
		for _, inv := range investments {
			// Undated and future-dated holdings count as bought today
			purchased := inv.PurchaseDate
			if purchased.IsZero() || purchased.After(now) {
				purchased = now
			}
			if d.Before(purchased) {
				continue
			}
			held := d.Sub(purchased).Hours() / 24
			total += formulas.LinearGrowth(inv.TotalInvested, inv.AnnualROI, held)
		}
		data[i] = formulas.RoundMoney(total)
	}

	last := data[len(data)-1]
	target := currentValue
	if target == 0 {
		target = last
	}
	scale := 1.0
	if last > 0 && target > 0 {
		scale = target / last
	}
	for i := range data {
		data[i] = formulas.RoundMoney(data[i] * scale)
	}
	return data
}
