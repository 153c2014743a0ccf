package analytics

import (
	"math"
	"sort"
	"strings"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/pkg/formulas"
)

// UnknownRegion groups investments without a usable location
const UnknownRegion = "Unknown"

// HeatThresholds are the intensity cut-offs (percent of the largest region) for each heat tier
var HeatThresholds = []float64{0, 5, 10, 20, 30}

// GeoGroup aggregates the investments of one region
type GeoGroup struct {
	Region        string  `json:"region"`
	Properties    int     `json:"properties"`
	TotalInvested float64 `json:"total_invested"`
	TotalValue    float64 `json:"total_value"`
	AvgROI        float64 `json:"avg_roi"`
	SharePct      float64 `json:"share_pct"`
	Intensity     int     `json:"intensity"` // 0-100, relative to the largest region
	HeatTier      int     `json:"heat_tier"` // index into HeatThresholds
}

// AggregateGeography applies the engine's ROI default to the package-level aggregation
func (e *Engine) AggregateGeography(investments []domain.Investment) []GeoGroup {
	return AggregateGeography(investments, e.opts.DefaultROI)
}

// AggregateGeography groups investments by region, largest total value first.
// Investments without a current value contribute their invested amount.
func AggregateGeography(investments []domain.Investment, defaultROI float64) []GeoGroup {
	index := make(map[string]int)
	groups := make([]GeoGroup, 0)
	roiSums := make([]float64, 0)

	for _, inv := range investments {
		region := Region(inv.Location)
		i, ok := index[region]
		if !ok {
			i = len(groups)
			index[region] = i
			groups = append(groups, GeoGroup{Region: region})
			roiSums = append(roiSums, 0)
		}

		value := inv.CurrentValue
		if value == 0 {
			value = inv.TotalInvested
		}

		g := &groups[i]
		g.Properties++
		g.TotalInvested += inv.TotalInvested
		g.TotalValue += value
		roiSums[i] += inv.ROIOr(defaultROI)
	}

	var total, largest float64
	for i := range groups {
		g := &groups[i]
		g.AvgROI = formulas.RoundMoney(roiSums[i] / float64(g.Properties))
		total += g.TotalValue
		largest = math.Max(largest, g.TotalValue)
	}

	for i := range groups {
		g := &groups[i]
		g.SharePct = formulas.RoundMoney(formulas.SafeDiv(g.TotalValue, total) * 100)
		intensity := formulas.SafeDiv(g.TotalValue, largest) * 100
		g.Intensity = roundScore(intensity)
		g.HeatTier = heatTier(intensity)
		g.TotalInvested = formulas.RoundMoney(g.TotalInvested)
		g.TotalValue = formulas.RoundMoney(g.TotalValue)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		if groups[a].TotalValue != groups[b].TotalValue {
			return groups[a].TotalValue > groups[b].TotalValue
		}
		return groups[a].Region < groups[b].Region
	})
	return groups
}

// Region extracts the region from a "City, Region" location.
// Locations without a comma are their own region.
func Region(location string) string {
	parts := strings.Split(location, ",")
	if len(parts) > 1 {
		if region := strings.TrimSpace(parts[1]); region != "" {
			return region
		}
	}
	if region := strings.TrimSpace(location); region != "" {
		return region
	}
	return UnknownRegion
}

func heatTier(intensity float64) int {
	tier := 0
	for i, threshold := range HeatThresholds {
		if intensity >= threshold {
			tier = i
		}
	}
	return tier
}
