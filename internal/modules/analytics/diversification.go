package analytics

import (
	"math"

	"github.com/domufi/analytics/internal/domain"
	"github.com/domufi/analytics/internal/modules/portfolio"
)

// DiversificationGrade rates how evenly capital is spread across properties and locations
type DiversificationGrade struct {
	Score          int     `json:"score"`
	Label          string  `json:"label"`
	Properties     int     `json:"properties"`
	Locations      int     `json:"locations"`
	BalanceRatio   float64 `json:"balance_ratio"` // smallest / largest property value
	PropertyPoints int     `json:"property_points"`
	LocationPoints int     `json:"location_points"`
	BalancePoints  int     `json:"balance_points"`
}

type bucket struct {
	min    float64
	points int
}

var (
	propertyBuckets = []bucket{{5, 40}, {3, 30}, {2, 20}, {1, 10}}
	locationBuckets = []bucket{{4, 30}, {3, 20}, {2, 15}, {1, 10}}
	balanceBuckets  = []bucket{{0.5, 30}, {0.3, 20}, {0.1, 10}}
)

// GradeDiversification scores the property count, the number of distinct
// locations and the balance between the smallest and largest holding.
func GradeDiversification(investments []domain.Investment) DiversificationGrade {
	holdings := portfolio.GroupByProperty(investments)

	locations := make(map[string]struct{})
	minValue, maxValue := math.Inf(1), 0.0
	for _, h := range holdings {
		if h.Location != "" {
			locations[h.Location] = struct{}{}
		}
		minValue = math.Min(minValue, h.CurrentValue)
		maxValue = math.Max(maxValue, h.CurrentValue)
	}

	grade := DiversificationGrade{
		Properties: len(holdings),
		Locations:  len(locations),
	}
	grade.PropertyPoints = points(propertyBuckets, float64(grade.Properties))
	grade.LocationPoints = points(locationBuckets, float64(grade.Locations))
	if len(holdings) > 1 && maxValue > 0 {
		grade.BalanceRatio = math.Round(minValue/maxValue*100) / 100
		grade.BalancePoints = points(balanceBuckets, minValue/maxValue)
	}

	grade.Score = grade.PropertyPoints + grade.LocationPoints + grade.BalancePoints
	grade.Label = diversificationLabel(grade.Score)
	return grade
}

func points(buckets []bucket, v float64) int {
	for _, b := range buckets {
		if v >= b.min {
			return b.points
		}
	}
	return 0
}

func diversificationLabel(score int) string {
	switch {
	case score >= 80:
		return "Excellent"
	case score >= 60:
		return "Good"
	case score >= 40:
		return "Fair"
	default:
		return "Poor"
	}
}
