// Package snapshots records a daily copy of the portfolio headline figures.
package snapshots

import "time"

// DateLayout is the key format of a snapshot date
const DateLayout = "2006-01-02"

// Snapshot is one day's portfolio headline figures
type Snapshot struct {
	CreatedAt       time.Time `json:"created_at"`
	ID              string    `json:"id"`
	Date            string    `json:"date"` // YYYY-MM-DD in the engine's location
	TotalInvested   float64   `json:"total_invested"`
	CurrentValue    float64   `json:"current_value"`
	TotalReturnPct  float64   `json:"total_return_pct"`
	MonthlyIncome   float64   `json:"monthly_income"`
	HealthScore     int       `json:"health_score"`
	TotalProperties int       `json:"total_properties"`
}
