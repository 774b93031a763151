package pipeline

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rajasatyajit/ReliefOps/internal/logger"
)

func TestFeedSource_Fetch(t *testing.T) {
	logger.Init("error", "text")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("User-Agent"); got != "ReliefOps-Monitor/1.0" {
			t.Errorf("unexpected user agent %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"text": "earthquake strikes the coast", "disaster_type": "earthquake", "published_at": "2025-06-01T08:00:00Z", "url": "http://a"},
			{"text": "flood waters rise", "published_at": "2025-06-01T09:00:00Z", "url": "http://b"}
		]`))
	}))
	defer server.Close()

	src := NewFeedSource("test feed", []string{server.URL})

	reports, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].DisasterType != "earthquake" {
		t.Errorf("expected decoded disaster type, got %q", reports[0].DisasterType)
	}
	if reports[1].URL != "http://b" {
		t.Errorf("expected decoded url, got %q", reports[1].URL)
	}
}

func TestFeedSource_SkipsBrokenURL(t *testing.T) {
	logger.Init("error", "text")

	bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer bad.Close()

	good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"text": "tornado sighted", "published_at": "2025-06-01T10:00:00Z"}]`))
	}))
	defer good.Close()

	src := NewFeedSource("mixed", []string{bad.URL, good.URL})

	reports, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(reports) != 1 {
		t.Errorf("expected reports from the healthy feed only, got %d", len(reports))
	}
}

func TestFeedSource_MalformedBody(t *testing.T) {
	logger.Init("error", "text")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	src := NewFeedSource("broken", []string{server.URL})

	reports, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch skips broken feeds, got error %v", err)
	}
	if len(reports) != 0 {
		t.Errorf("expected no reports from malformed feed, got %d", len(reports))
	}
}

func TestFeedSource_Metadata(t *testing.T) {
	src := NewFeedSource("usgs", nil)
	if src.Name() != "usgs" {
		t.Errorf("unexpected name %q", src.Name())
	}
	if src.Interval() <= 0 {
		t.Error("expected a positive polling interval")
	}
}
