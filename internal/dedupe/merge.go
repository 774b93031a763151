package dedupe

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// severityRank orders severities for merging. This table is distinct from
// the relief scorer's severity weights, which use a different scale.
var severityRank = map[string]int{
	models.SeverityUnknown: 0,
	models.SeverityLow:     1,
	models.SeverityMedium:  2,
	models.SeverityHigh:    3,
}

// PrimaryLocator picks the best location for merged text from candidates
type PrimaryLocator interface {
	PrimaryLocation(ctx context.Context, text string, candidates []string) string
}

// merger collapses clusters of reports, and groups of pass-1 events, into
// canonical events.
type merger struct {
	locator PrimaryLocator
}

// mergeCluster merges the cluster's member reports into one event.
// Timestamps that fail to parse abort the whole batch.
func (m *merger) mergeCluster(ctx context.Context, reports []models.Report, cluster Cluster) (models.Event, error) {
	var (
		texts      []string
		urls       []string
		severities []string
		types      []string
		candidates []string
		latest     time.Time
	)

	for _, idx := range cluster.Members {
		r := reports[idx]
		texts = append(texts, r.Text)
		urls = append(urls, r.URL)
		severities = append(severities, r.Severity)
		types = append(types, r.DisasterType)
		candidates = appendUnique(candidates, r.Locations)

		ts, err := models.ParseTimestamp(r.PublishedAt)
		if err != nil {
			return models.Event{}, fmt.Errorf("merge cluster %d: %w", cluster.Seed, err)
		}
		if ts.After(latest) {
			latest = ts
		}
	}

	combined := strings.Join(texts, " ")

	return models.Event{
		DisasterType: mostCommonValue(types),
		Severity:     highestSeverity(severities),
		Location:     m.locator.PrimaryLocation(ctx, combined, candidates),
		PublishedAt:  latest,
		URLs:         urls,
		Text:         combined,
		ArticleCount: len(cluster.Members),
	}, nil
}

// mergeEvents collapses a pass-2 group into one event. Single-member
// groups pass through unchanged. Article counts sum so the total always
// equals the number of original reports across both passes.
func (m *merger) mergeEvents(events []models.Event) models.Event {
	if len(events) == 1 {
		return events[0]
	}

	merged := events[0]

	var (
		texts      []string
		severities []string
		types      []string
		urls       []string
		total      int
	)
	for _, ev := range events {
		texts = append(texts, ev.Text)
		severities = append(severities, ev.Severity)
		types = append(types, ev.DisasterType)
		urls = appendUnique(urls, ev.URLs)
		total += ev.ArticleCount
		if ev.PublishedAt.After(merged.PublishedAt) {
			merged.PublishedAt = ev.PublishedAt
		}
	}

	merged.ArticleCount = total
	merged.URLs = urls
	merged.Text = strings.Join(texts, " ")
	merged.Severity = highestSeverity(severities)
	merged.DisasterType = mostCommonKnownType(types, merged.DisasterType)

	return merged
}

// mostCommonValue returns the most frequent non-empty value, ties broken
// by encounter order. All empty yields "unknown".
func mostCommonValue(values []string) string {
	counts := make(map[string]int)
	var order []string
	for _, v := range values {
		if v == "" {
			continue
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	best := ""
	bestCount := 0
	for _, v := range order {
		if counts[v] > bestCount {
			best = v
			bestCount = counts[v]
		}
	}
	if best == "" {
		return "unknown"
	}
	return best
}

// mostCommonKnownType prefers the most frequent value that is not
// "unknown"; when every member is unknown the fallback stands.
func mostCommonKnownType(types []string, fallback string) string {
	var known []string
	for _, t := range types {
		if t != "" && t != "unknown" {
			known = append(known, t)
		}
	}
	if len(known) == 0 {
		if fallback == "" {
			return "unknown"
		}
		return fallback
	}
	return mostCommonValue(known)
}

// highestSeverity returns the member with the highest severity rank.
// Unranked values count as 0.
func highestSeverity(severities []string) string {
	best := models.SeverityUnknown
	bestRank := -1
	for _, s := range severities {
		if rank := severityRank[s]; rank > bestRank {
			best = s
			bestRank = rank
		}
	}
	if best == "" {
		return models.SeverityUnknown
	}
	return best
}

// appendUnique appends items not already present, preserving order
func appendUnique(dst []string, items []string) []string {
	for _, item := range items {
		if item == "" {
			continue
		}
		exists := false
		for _, have := range dst {
			if have == item {
				exists = true
				break
			}
		}
		if !exists {
			dst = append(dst, item)
		}
	}
	return dst
}
