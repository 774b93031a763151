package models

import (
	"testing"
	"time"
)

func TestEventQuery_Matches(t *testing.T) {
	base := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	event := Event{
		ID:           "evt-1",
		DisasterType: "earthquake",
		Severity:     "high",
		Location:     "tokyo",
		PublishedAt:  base,
	}

	tests := []struct {
		name     string
		query    EventQuery
		expected bool
	}{
		{
			name:     "Empty query matches all",
			query:    EventQuery{},
			expected: true,
		},
		{
			name:     "Matching type filter",
			query:    EventQuery{Types: []string{"earthquake", "flood"}},
			expected: true,
		},
		{
			name:     "Non-matching type filter",
			query:    EventQuery{Types: []string{"flood"}},
			expected: false,
		},
		{
			name:     "Matching severity",
			query:    EventQuery{Severities: []string{"high"}},
			expected: true,
		},
		{
			name:     "Non-matching severity",
			query:    EventQuery{Severities: []string{"low"}},
			expected: false,
		},
		{
			name:     "Matching ID",
			query:    EventQuery{IDs: []string{"evt-1"}},
			expected: true,
		},
		{
			name:     "Matching location",
			query:    EventQuery{Locations: []string{"tokyo"}},
			expected: true,
		},
		{
			name:     "Since before published",
			query:    EventQuery{Since: base.Add(-time.Hour)},
			expected: true,
		},
		{
			name:     "Since after published",
			query:    EventQuery{Since: base.Add(time.Hour)},
			expected: false,
		},
		{
			name:     "Until before published",
			query:    EventQuery{Until: base.Add(-time.Hour)},
			expected: false,
		},
		{
			name:     "Combined filters all match",
			query:    EventQuery{Types: []string{"earthquake"}, Severities: []string{"high"}},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := tt.query.Matches(event)
			if result != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, result)
			}
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expected  time.Time
		expectErr bool
	}{
		{
			name:     "ISO with Z suffix",
			input:    "2025-03-10T12:30:00Z",
			expected: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		},
		{
			name:     "Space separated",
			input:    "2025-03-10 12:30:00",
			expected: time.Date(2025, 3, 10, 12, 30, 0, 0, time.UTC),
		},
		{
			name:      "Unsupported format",
			input:     "10/03/2025",
			expectErr: true,
		},
		{
			name:      "Empty string",
			input:     "",
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, err := ParseTimestamp(tt.input)
			if tt.expectErr {
				if err == nil {
					t.Fatalf("Expected error for input %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if !ts.Equal(tt.expected) {
				t.Errorf("Expected %v, got %v", tt.expected, ts)
			}
		})
	}
}
