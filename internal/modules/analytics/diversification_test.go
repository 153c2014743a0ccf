package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/domufi/analytics/internal/domain"
)

func TestGradeDiversification(t *testing.T) {
	tests := []struct {
		name        string
		investments []domain.Investment
		score       int
		label       string
	}{
		{
			name:  "empty",
			score: 0,
			label: "Poor",
		},
		{
			name:        "single property",
			investments: []domain.Investment{located("a", "Austin, TX", 1000, 1000, 10)},
			score:       20,
			label:       "Poor",
		},
		{
			name: "two unbalanced properties in one city",
			investments: []domain.Investment{
				located("a", "Austin, TX", 1000, 1000, 10),
				located("b", "Austin, TX", 250, 250, 10),
			},
			score: 40,
			label: "Fair",
		},
		{
			name: "three properties in two cities",
			investments: []domain.Investment{
				located("a", "Austin, TX", 1000, 1000, 10),
				located("b", "Austin, TX", 300, 300, 10),
				located("c", "Miami, FL", 500, 500, 10),
			},
			score: 65,
			label: "Good",
		},
		{
			name: "five balanced properties in four cities",
			investments: []domain.Investment{
				located("a", "Austin, TX", 1000, 1000, 10),
				located("b", "Miami, FL", 1000, 1000, 10),
				located("c", "Lisbon", 1000, 1000, 10),
				located("d", "Porto, Norte", 1000, 1000, 10),
				located("e", "Porto, Norte", 600, 600, 10),
			},
			score: 100,
			label: "Excellent",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			grade := GradeDiversification(tt.investments)
			assert.Equal(t, tt.score, grade.Score)
			assert.Equal(t, tt.label, grade.Label)
		})
	}
}

func TestGradeDiversification_RepeatPurchasesCountOnce(t *testing.T) {
	a1 := located("a1", "Austin, TX", 1000, 1000, 10)
	a2 := located("a2", "Austin, TX", 500, 500, 10)
	a2.PropertyID = a1.PropertyID

	grade := GradeDiversification([]domain.Investment{a1, a2})

	assert.Equal(t, 1, grade.Properties)
	assert.Equal(t, 1, grade.Locations)
	assert.Zero(t, grade.BalancePoints)
}
