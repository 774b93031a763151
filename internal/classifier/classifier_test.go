package classifier

import (
	"testing"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

func TestClassifier_Classify(t *testing.T) {
	c := New()

	tests := []struct {
		name             string
		report           models.Report
		expectedType     string
		expectedSeverity string
	}{
		{
			name:             "Earthquake with high severity",
			report:           models.Report{Text: "A devastating earthquake shook the region"},
			expectedType:     "earthquake",
			expectedSeverity: models.SeverityHigh,
		},
		{
			name:             "Flood with moderate indicator",
			report:           models.Report{Text: "Moderate flooding reported along the river"},
			expectedType:     "flood",
			expectedSeverity: models.SeverityMedium,
		},
		{
			name:             "Typhoon maps to hurricane",
			report:           models.Report{Text: "Typhoon approaches the coast, minor damage so far"},
			expectedType:     "hurricane",
			expectedSeverity: models.SeverityLow,
		},
		{
			name:             "Tidal wave maps to tsunami",
			report:           models.Report{Text: "A tidal wave warning was issued"},
			expectedType:     "tsunami",
			expectedSeverity: models.SeverityUnknown,
		},
		{
			name:             "No disaster keywords",
			report:           models.Report{Text: "Local festival draws record crowds"},
			expectedType:     "unknown",
			expectedSeverity: models.SeverityUnknown,
		},
		{
			name:             "Case insensitive",
			report:           models.Report{Text: "SEVERE WILDFIRE SPREADS"},
			expectedType:     "wildfire",
			expectedSeverity: models.SeverityHigh,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := tt.report
			c.Classify(&report)
			if report.DisasterType != tt.expectedType {
				t.Errorf("DisasterType = %q, expected %q", report.DisasterType, tt.expectedType)
			}
			if report.Severity != tt.expectedSeverity {
				t.Errorf("Severity = %q, expected %q", report.Severity, tt.expectedSeverity)
			}
		})
	}
}

func TestClassifier_PreservesExistingValues(t *testing.T) {
	c := New()

	report := models.Report{
		Text:         "A devastating earthquake shook the region",
		DisasterType: "flood",
		Severity:     models.SeverityLow,
	}
	c.Classify(&report)

	if report.DisasterType != "flood" {
		t.Errorf("Expected provided type preserved, got %q", report.DisasterType)
	}
	if report.Severity != models.SeverityLow {
		t.Errorf("Expected provided severity preserved, got %q", report.Severity)
	}
}

func TestClassifier_FirstTypeWins(t *testing.T) {
	c := New()

	// Both earthquake and fire keywords present; earthquake is checked first
	report := models.Report{Text: "Earthquake sparks fire across the district"}
	c.Classify(&report)
	if report.DisasterType != "earthquake" {
		t.Errorf("Expected earthquake to win, got %q", report.DisasterType)
	}
}
