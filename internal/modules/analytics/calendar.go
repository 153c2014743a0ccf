package analytics

import (
	"time"

	"github.com/domufi/analytics/pkg/formulas"
)

// CalendarMonths is the number of months in the payout calendar
const CalendarMonths = 12

// CalendarCell is one slot of a month grid. Empty cells pad the first week.
type CalendarCell struct {
	Empty       bool `json:"empty"`
	Day         int  `json:"day,omitempty"`
	IsPayoutDay bool `json:"is_payout_day,omitempty"`
	IsToday     bool `json:"is_today,omitempty"`
}

// MonthEntry is one month of the payout calendar
type MonthEntry struct {
	Label           string         `json:"label"` // "Jan 2025"
	Year            int            `json:"year"`
	Month           time.Month     `json:"month"`
	DaysInMonth     int            `json:"days_in_month"`
	PayoutDay       int            `json:"payout_day"`
	StartWeekday    time.Weekday   `json:"start_weekday"`
	ProjectedIncome float64        `json:"projected_income"`
	PaymentCount    int            `json:"payment_count"`
	IsCurrent       bool           `json:"is_current"`
	Cells           []CalendarCell `json:"cells"`
}

// BuildPayoutCalendar projects payouts for the current month and the eleven after it.
// Every month pays the projected monthly income on its last day.
func (e *Engine) BuildPayoutCalendar(income IncomeMetrics, investmentCount int) []MonthEntry {
	now := e.Today()
	first := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	entries := make([]MonthEntry, CalendarMonths)
	for i := range entries {
		month := first.AddDate(0, i, 0)
		daysInMonth := endOfMonth(month).Day()

		entries[i] = MonthEntry{
			Label:           month.Format("Jan 2006"),
			Year:            month.Year(),
			Month:           month.Month(),
			DaysInMonth:     daysInMonth,
			PayoutDay:       daysInMonth,
			StartWeekday:    month.Weekday(),
			ProjectedIncome: formulas.RoundMoney(income.MonthlyIncome),
			PaymentCount:    investmentCount,
			IsCurrent:       i == 0,
			Cells:           monthGrid(month, daysInMonth, now),
		}
	}
	return entries
}

// monthGrid lays a month out in Sunday-first weeks, padded to whole weeks
func monthGrid(first time.Time, daysInMonth int, today time.Time) []CalendarCell {
	offset := int(first.Weekday())
	total := (offset + daysInMonth + 6) / 7 * 7
	sameMonth := today.Year() == first.Year() && today.Month() == first.Month()

	cells := make([]CalendarCell, total)
	for i := range cells {
		d := i - offset + 1
		if d < 1 || d > daysInMonth {
			cells[i] = CalendarCell{Empty: true}
			continue
		}
		cells[i] = CalendarCell{
			Day:         d,
			IsPayoutDay: d == daysInMonth,
			IsToday:     sameMonth && d == today.Day(),
		}
	}
	return cells
}
