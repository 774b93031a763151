package models

import (
	"fmt"
	"time"
)

// Severity levels as produced by the upstream report processor.
const (
	SeverityUnknown = "unknown"
	SeverityLow     = "low"
	SeverityMedium  = "medium"
	SeverityHigh    = "high"
)

// Report is a cleaned disaster report produced by the upstream
// text-processing collaborator. Reports are immutable once ingested.
type Report struct {
	Text         string   `json:"text"`
	DisasterType string   `json:"disaster_type"`
	Severity     string   `json:"severity"`
	Locations    []string `json:"locations"`
	PublishedAt  string   `json:"published_at"`
	URL          string   `json:"url"`
	ArticleCount int      `json:"article_count"`
}

// LocationInfo is the resolved geographic record for a place name.
type LocationInfo struct {
	Latitude    float64 `json:"latitude"`
	Longitude   float64 `json:"longitude"`
	Importance  float64 `json:"importance"`
	Type        string  `json:"type"`
	DisplayName string  `json:"display_name"`
}

// timestampLayouts are the only accepted report timestamp formats.
var timestampLayouts = []string{
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a report timestamp. Both supported layouts
// failing is a fatal error for the record's batch.
func ParseTimestamp(value string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		ts, err := time.Parse(layout, value)
		if err == nil {
			return ts, nil
		}
		lastErr = err
	}
	return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, lastErr)
}
