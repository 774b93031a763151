package relief

import (
	"math"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Weight tables for priority scoring. These scales are internal to the
// allocator and independent of the severity ranking used during merging.
var (
	severityWeights = map[string]float64{
		"low":    1,
		"medium": 2,
		"high":   3,
	}
	damageWeights = map[string]float64{
		"none":     1,
		"light":    2,
		"moderate": 3,
		"severe":   4,
	}
	accessWeights = map[string]float64{
		"easy":      1,
		"moderate":  2,
		"difficult": 3,
	}
)

// Assessment defaults applied when an event carries no value for an
// attribute. Unrecognized (as opposed to missing) values fall back to the
// same weight as the default.
const (
	defaultSeverityWeight = 1
	defaultDamageWeight   = 2
	defaultAccessWeight   = 2
	defaultPopulation     = 1000
	defaultTimeDays       = 1
)

// Scorer computes the relative urgency of a disaster event. Higher scores
// mean the event should receive a larger share of supplies.
type Scorer struct{}

// Score combines severity, infrastructure damage, accessibility,
// population density and recency into a single priority value. Severity
// counts triple, damage double; fresher disasters score higher through
// the reciprocal time term.
func (Scorer) Score(ev models.Event) float64 {
	severity := ev.Severity
	if severity == "" {
		severity = models.SeverityMedium
	}
	damage := ev.InfrastructureDamage
	if damage == "" {
		damage = "moderate"
	}
	access := ev.Accessibility
	if access == "" {
		access = "moderate"
	}
	population := ev.PopulationDensity
	if population == 0 {
		population = defaultPopulation
	}
	days := ev.TimeSinceDisaster
	if days == 0 {
		days = defaultTimeDays
	}

	score := weightOf(severityWeights, severity, defaultSeverityWeight) * 3
	score += weightOf(damageWeights, damage, defaultDamageWeight) * 2
	score += weightOf(accessWeights, access, defaultAccessWeight)
	score += population / 1000
	score += 1 / math.Max(days, 1)
	return score
}

func weightOf(table map[string]float64, key string, fallback float64) float64 {
	if w, ok := table[key]; ok {
		return w
	}
	return fallback
}
