package relief

import (
	"math"
	"testing"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

func TestScorer_Score(t *testing.T) {
	scorer := Scorer{}

	tests := []struct {
		name     string
		event    models.Event
		expected float64
	}{
		{
			name:  "All defaults",
			event: models.Event{},
			// medium 2*3 + moderate 3*2 + moderate 2 + 1000/1000 + 1/1
			expected: 16,
		},
		{
			name: "Fully assessed high urgency",
			event: models.Event{
				Severity:             models.SeverityHigh,
				InfrastructureDamage: "severe",
				Accessibility:        "difficult",
				PopulationDensity:    5000,
				TimeSinceDisaster:    2,
			},
			// 3*3 + 4*2 + 3 + 5 + 0.5
			expected: 25.5,
		},
		{
			name: "Low urgency",
			event: models.Event{
				Severity:             models.SeverityLow,
				InfrastructureDamage: "none",
				Accessibility:        "easy",
				PopulationDensity:    500,
				TimeSinceDisaster:    10,
			},
			// 1*3 + 1*2 + 1 + 0.5 + 0.1
			expected: 6.6,
		},
		{
			name: "Unrecognized values use fallback weights",
			event: models.Event{
				Severity:             "catastrophic",
				InfrastructureDamage: "total",
				Accessibility:        "impossible",
				PopulationDensity:    1000,
				TimeSinceDisaster:    1,
			},
			// 1*3 + 2*2 + 2 + 1 + 1
			expected: 11,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.Score(tt.event)
			if math.Abs(got-tt.expected) > 1e-9 {
				t.Errorf("Score = %f, expected %f", got, tt.expected)
			}
		})
	}
}

func TestScorer_FresherScoresHigher(t *testing.T) {
	scorer := Scorer{}

	fresh := models.Event{Severity: models.SeverityMedium, TimeSinceDisaster: 1}
	stale := fresh
	stale.TimeSinceDisaster = 7

	if scorer.Score(fresh) <= scorer.Score(stale) {
		t.Error("Expected a fresher disaster to outscore a stale one")
	}
}
