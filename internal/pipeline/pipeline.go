package pipeline

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/rajasatyajit/ReliefOps/config"
	apperrors "github.com/rajasatyajit/ReliefOps/internal/errors"
	"github.com/rajasatyajit/ReliefOps/internal/logger"
	"github.com/rajasatyajit/ReliefOps/internal/metrics"
	"github.com/rajasatyajit/ReliefOps/internal/models"
)

// Source defines a pluggable report source implementation
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Report, error)
	Interval() time.Duration
}

// Classifier interface for filling in missing report attributes
type Classifier interface {
	Classify(report *models.Report)
}

// Deduplicator interface for collapsing a report batch into events
type Deduplicator interface {
	CombineDuplicateDisasters(ctx context.Context, reports []models.Report) ([]models.Event, error)
}

// Store interface for event storage
type Store interface {
	UpsertEvents(ctx context.Context, events []models.Event) error
}

// Pipeline coordinates concurrent fetching, classification, deduplication
// and storing of disaster reports.
type Pipeline struct {
	store      Store
	classifier Classifier
	dedup      Deduplicator
	limiter    *rate.Limiter
	sources    []Source
	cfg        config.PipelineConfig
	sem        *semaphore.Weighted
	mu         sync.RWMutex
	running    bool
}

// New creates a new pipeline over the given sources
func New(store Store, classifier Classifier, dedup Deduplicator, cfg config.PipelineConfig, sources ...Source) *Pipeline {
	p := &Pipeline{
		store:      store,
		classifier: classifier,
		dedup:      dedup,
		cfg:        cfg,
		sources:    sources,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), int(cfg.RateLimit)),
		sem:        semaphore.NewWeighted(int64(cfg.WorkerCount)),
	}

	logger.Info("Pipeline initialized",
		"sources", len(p.sources),
		"rate_limit", cfg.RateLimit,
		"workers", cfg.WorkerCount,
	)

	return p
}

// Run starts the pipeline and runs until context is cancelled
func (p *Pipeline) Run(ctx context.Context) error {
	p.mu.Lock()
	if p.running {
		p.mu.Unlock()
		return fmt.Errorf("pipeline already running")
	}
	p.running = true
	p.mu.Unlock()

	defer func() {
		p.mu.Lock()
		p.running = false
		p.mu.Unlock()
	}()

	logger.Info("Starting pipeline")

	// Fan-out per-source pollers
	var wg sync.WaitGroup
	errChan := make(chan error, len(p.sources))

	for _, src := range p.sources {
		src := src
		wg.Add(1)

		go func() {
			defer wg.Done()

			if err := p.runSourcePoller(ctx, src); err != nil {
				select {
				case errChan <- fmt.Errorf("source %s: %w", src.Name(), err):
				case <-ctx.Done():
				}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(errChan)
	}()

	var errs []error
	for err := range errChan {
		errs = append(errs, err)
		logger.Error("Pipeline source error", "error", err)
	}

	if len(errs) > 0 {
		return fmt.Errorf("pipeline completed with %d errors", len(errs))
	}

	logger.Info("Pipeline stopped")
	return nil
}

// runSourcePoller runs a single source poller
func (p *Pipeline) runSourcePoller(ctx context.Context, src Source) error {
	logger.Info("Starting source poller", "source", src.Name())

	ticker := time.NewTicker(src.Interval())
	defer ticker.Stop()

	// Initial immediate run
	if err := p.runOnce(ctx, src); err != nil {
		logger.Error("Initial source run failed", "source", src.Name(), "error", err)
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("Source poller stopping", "source", src.Name())
			return ctx.Err()
		case <-ticker.C:
			if err := p.runOnce(ctx, src); err != nil {
				logger.Error("Source run failed", "source", src.Name(), "error", err)

				select {
				case <-ctx.Done():
					return ctx.Err()
				case <-time.After(p.cfg.RetryDelay):
				}
			}
		}
	}
}

// runOnce executes a single pipeline run for a source: fetch with
// retries, classify, deduplicate the whole batch, store the events.
func (p *Pipeline) runOnce(ctx context.Context, src Source) error {
	start := time.Now()

	if err := p.sem.Acquire(ctx, 1); err != nil {
		return fmt.Errorf("acquire semaphore: %w", err)
	}
	defer p.sem.Release(1)

	if err := p.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit: %w", err)
	}

	defer func() {
		duration := time.Since(start)
		metrics.RecordPipelineRun(src.Name(), duration)
		logger.Debug("Pipeline run completed",
			"source", src.Name(),
			"duration_ms", duration.Milliseconds(),
		)
	}()

	var reports []models.Report
	var err error

	for attempt := 0; attempt <= p.cfg.RetryAttempts; attempt++ {
		if attempt > 0 {
			delay := time.Duration(attempt) * p.cfg.RetryDelay
			logger.Debug("Retrying fetch", "source", src.Name(), "attempt", attempt, "delay", delay)

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}

		reports, err = src.Fetch(ctx)
		if err == nil {
			break
		}

		logger.Warn("Fetch attempt failed",
			"source", src.Name(),
			"attempt", attempt+1,
			"error", err,
		)
	}

	if err != nil {
		metrics.RecordReportProcessed(src.Name(), "fetch_error")
		return apperrors.PipelineError{
			Source: src.Name(),
			Stage:  "fetch",
			Err:    fmt.Errorf("failed after %d attempts: %w", p.cfg.RetryAttempts+1, err),
		}
	}

	if len(reports) == 0 {
		logger.Debug("No reports fetched", "source", src.Name())
		return nil
	}

	if err := p.processBatch(ctx, src.Name(), reports); err != nil {
		metrics.RecordReportProcessed(src.Name(), "process_error")
		return err
	}

	metrics.RecordReportProcessed(src.Name(), "success")
	logger.Info("Successfully processed reports",
		"source", src.Name(),
		"count", len(reports),
	)

	return nil
}

// processBatch classifies every report, deduplicates the batch as a whole
// and stores the resulting events. Deduplication runs over the full batch
// because cluster quality depends on seeing all the reports together.
func (p *Pipeline) processBatch(ctx context.Context, sourceName string, reports []models.Report) error {
	for i := range reports {
		report := &reports[i]

		if report.PublishedAt == "" {
			report.PublishedAt = time.Now().UTC().Format("2006-01-02T15:04:05Z")
		}

		p.classifier.Classify(report)
	}

	events, err := p.dedup.CombineDuplicateDisasters(ctx, reports)
	if err != nil {
		return apperrors.PipelineError{Source: sourceName, Stage: "dedupe", Err: err}
	}

	if err := p.store.UpsertEvents(ctx, events); err != nil {
		return apperrors.PipelineError{Source: sourceName, Stage: "store", Err: err}
	}

	return nil
}

// IsRunning returns whether the pipeline is currently running
func (p *Pipeline) IsRunning() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.running
}
