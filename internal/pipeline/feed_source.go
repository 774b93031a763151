package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// FeedSource implements Source for JSON report feeds. A feed endpoint
// returns an array of report documents, the same shape the dedupe API
// accepts.
type FeedSource struct {
	name     string
	urls     []string
	interval time.Duration
	client   *http.Client
}

// NewFeedSource creates a new JSON feed source
func NewFeedSource(name string, urls []string) *FeedSource {
	return &FeedSource{
		name:     name,
		urls:     urls,
		interval: 15 * time.Minute, // Default polling interval
		client: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Name returns the source name
func (f *FeedSource) Name() string {
	return f.name
}

// Interval returns the polling interval
func (f *FeedSource) Interval() time.Duration {
	return f.interval
}

// Fetch fetches reports from every feed URL. A failing URL is skipped so
// one broken feed does not starve the rest.
func (f *FeedSource) Fetch(ctx context.Context) ([]models.Report, error) {
	var all []models.Report

	for _, url := range f.urls {
		reports, err := f.fetchFromURL(ctx, url)
		if err != nil {
			logger.Warn("Feed fetch failed", "source", f.name, "url", url, "error", err)
			continue
		}
		all = append(all, reports...)
	}

	return all, nil
}

// fetchFromURL fetches and decodes one feed endpoint
func (f *FeedSource) fetchFromURL(ctx context.Context, url string) ([]models.Report, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("User-Agent", "ReliefOps-Monitor/1.0")
	req.Header.Set("Accept", "application/json")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, resp.Status)
	}

	var reports []models.Report
	if err := json.NewDecoder(resp.Body).Decode(&reports); err != nil {
		return nil, fmt.Errorf("parse feed: %w", err)
	}

	return reports, nil
}
