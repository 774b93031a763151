package models

import "time"

// Event is a deduplicated disaster event merged from one or more reports
type Event struct {
	ID           string    `json:"id" db:"id"`
	DisasterType string    `json:"disaster_type" db:"disaster_type"`
	Severity     string    `json:"severity" db:"severity"`
	Location     string    `json:"location" db:"location"`
	PublishedAt  time.Time `json:"published_at" db:"published_at"`
	URLs         []string  `json:"urls" db:"urls"`
	Text         string    `json:"text" db:"text"`
	ArticleCount int       `json:"article_count" db:"article_count"`

	// Allocation attributes. Zero values mean "not assessed"; the relief
	// engine substitutes the documented defaults.
	PopulationDensity    float64 `json:"population_density,omitempty" db:"population_density"`
	InfrastructureDamage string  `json:"infrastructure_damage,omitempty" db:"infrastructure_damage"`
	Accessibility        string  `json:"accessibility,omitempty" db:"accessibility"`
	TimeSinceDisaster    float64 `json:"time_since_disaster,omitempty" db:"time_since_disaster"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// EventQuery represents query parameters for filtering events
type EventQuery struct {
	IDs        []string  `json:"ids"`
	Types      []string  `json:"types"`
	Severities []string  `json:"severities"`
	Locations  []string  `json:"locations"`
	Since      time.Time `json:"since"`
	Until      time.Time `json:"until"`
	Limit      int       `json:"limit"`
	Offset     int       `json:"offset"`
}

// Matches checks if an event matches the query criteria
func (q EventQuery) Matches(event Event) bool {
	if len(q.IDs) > 0 && !contains(q.IDs, event.ID) {
		return false
	}
	if len(q.Types) > 0 && !contains(q.Types, event.DisasterType) {
		return false
	}
	if len(q.Severities) > 0 && !contains(q.Severities, event.Severity) {
		return false
	}
	if len(q.Locations) > 0 && !contains(q.Locations, event.Location) {
		return false
	}
	if !q.Since.IsZero() && event.PublishedAt.Before(q.Since) {
		return false
	}
	if !q.Until.IsZero() && event.PublishedAt.After(q.Until) {
		return false
	}
	return true
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
