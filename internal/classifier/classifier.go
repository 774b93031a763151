package classifier

import (
	"strings"

	"github.com/rajasatyajit/ReliefOps/internal/models"
	"github.com/rajasatyajit/ReliefOps/pkg/utils"
)

// Classifier fills in disaster type and severity for reports whose source
// did not provide them, using rule-based keyword matching.
type Classifier struct{}

// New creates a new classifier instance
func New() *Classifier {
	return &Classifier{}
}

// typeKeywords maps each disaster type to its trigger words. Order
// matters: the first matching type wins, so more specific types come
// before broad ones like wildfire.
var typeKeywords = []struct {
	disasterType string
	keywords     []string
}{
	{"earthquake", []string{"earthquake", "seismic", "tremor"}},
	{"flood", []string{"flood", "flooding", "deluge"}},
	{"hurricane", []string{"hurricane", "cyclone", "typhoon"}},
	{"wildfire", []string{"wildfire", "fire", "blaze"}},
	{"tornado", []string{"tornado", "twister"}},
	{"landslide", []string{"landslide", "mudslide"}},
	{"tsunami", []string{"tsunami", "tidal wave"}},
}

// severityKeywords is checked high to low; the first match wins
var severityKeywords = []struct {
	severity string
	keywords []string
}{
	{models.SeverityHigh, []string{"devastating", "severe", "massive", "major", "catastrophic"}},
	{models.SeverityMedium, []string{"moderate", "significant", "considerable"}},
	{models.SeverityLow, []string{"minor", "small", "light"}},
}

// Classify fills the report's missing disaster type and severity from its
// text. Values already present are left alone.
func (c *Classifier) Classify(report *models.Report) {
	text := strings.ToLower(report.Text)

	if report.DisasterType == "" {
		report.DisasterType = c.classifyType(text)
	}
	if report.Severity == "" {
		report.Severity = c.classifySeverity(text)
	}
}

// classifyType returns the first disaster type with a keyword in the
// text, or "unknown".
func (c *Classifier) classifyType(text string) string {
	for _, entry := range typeKeywords {
		if utils.ContainsAny(text, entry.keywords) {
			return entry.disasterType
		}
	}
	return "unknown"
}

// classifySeverity returns the highest severity with an indicator in the
// text, or "unknown".
func (c *Classifier) classifySeverity(text string) string {
	for _, entry := range severityKeywords {
		if utils.ContainsAny(text, entry.keywords) {
			return entry.severity
		}
	}
	return models.SeverityUnknown
}
