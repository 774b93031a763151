package dedupe

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/rajasatyajit/ReliefOps/config"
	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/metrics"
	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// LocationComparer decides whether two place names denote the same place
type LocationComparer interface {
	Same(ctx context.Context, a, b string) bool
}

// Deduplicator collapses raw disaster reports into canonical events. Two
// passes: text similarity clustering within a time window, then regrouping
// of the resulting events by location identity.
type Deduplicator struct {
	similarity *SimilarityEngine
	matcher    LocationComparer
	merger     *merger
	threshold  float64
	windowDays int
}

// New creates a deduplicator from config and its collaborators
func New(cfg config.DedupeConfig, matcher LocationComparer, locator PrimaryLocator) *Deduplicator {
	return &Deduplicator{
		similarity: NewSimilarityEngine(cfg.MaxFeatures),
		matcher:    matcher,
		merger:     &merger{locator: locator},
		threshold:  cfg.SimilarityThreshold,
		windowDays: cfg.TimeWindowDays,
	}
}

// CombineDuplicateDisasters deduplicates the batch and returns one event
// per distinct disaster, each with a fresh unique ID. A timestamp that
// fails to parse fails the whole batch.
func (d *Deduplicator) CombineDuplicateDisasters(ctx context.Context, reports []models.Report) ([]models.Event, error) {
	start := time.Now()
	if len(reports) == 0 {
		return []models.Event{}, nil
	}

	published := make([]time.Time, len(reports))
	texts := make([]string, len(reports))
	for i, r := range reports {
		ts, err := models.ParseTimestamp(r.PublishedAt)
		if err != nil {
			return nil, err
		}
		published[i] = ts
		texts[i] = r.Text
	}

	sim := d.similarity.Matrix(texts)
	clusters := buildClusters(sim, published, d.threshold, d.windowDays)

	events := make([]models.Event, 0, len(clusters))
	for _, cluster := range clusters {
		ev, err := d.merger.mergeCluster(ctx, reports, cluster)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}

	merged := d.regroupByLocation(ctx, events)

	now := time.Now().UTC()
	for i := range merged {
		merged[i].ID = uuid.NewString()
		merged[i].CreatedAt = now
		merged[i].UpdatedAt = now
	}

	logger.Info("Deduplicated reports",
		"reports", len(reports),
		"clusters", len(clusters),
		"events", len(merged),
	)
	metrics.RecordDedupeRun(len(reports), len(merged), time.Since(start))

	return merged, nil
}

// regroupByLocation is the second pass: events whose locations denote the
// same place collapse into one. Each event joins the first existing group
// whose representative location matches, so grouping is greedy and
// order-dependent, matching the pairwise non-transitive matcher.
func (d *Deduplicator) regroupByLocation(ctx context.Context, events []models.Event) []models.Event {
	var (
		keys   []string
		groups [][]models.Event
	)

	for _, ev := range events {
		placed := false
		for i, key := range keys {
			if d.matcher.Same(ctx, key, ev.Location) {
				groups[i] = append(groups[i], ev)
				placed = true
				break
			}
		}
		if !placed {
			keys = append(keys, ev.Location)
			groups = append(groups, []models.Event{ev})
		}
	}

	merged := make([]models.Event, 0, len(groups))
	for _, group := range groups {
		merged = append(merged, d.merger.mergeEvents(group))
	}
	return merged
}
