package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"pub_archiver/internal/config"
	"pub_archiver/internal/domain"
	"pub_archiver/internal/normalize"
	"pub_archiver/internal/source/pubhub"
)

// ScrapeService drives one reconciliation pass: fetch, normalize, upsert,
// record the run. Failures on individual records are counted, not fatal.
type ScrapeService struct {
	source    Source
	versions  VersionStore
	runs      ScrapeRunStore
	publisher Publisher
	logger    *slog.Logger
	baseURL   string
	config    config.ScrapeConfig
}

func NewScrapeService(
	source Source,
	versions VersionStore,
	runs ScrapeRunStore,
	publisher Publisher,
	logger *slog.Logger,
	baseURL string,
	cfg config.ScrapeConfig,
) *ScrapeService {
	return &ScrapeService{
		source:    source,
		versions:  versions,
		runs:      runs,
		publisher: publisher,
		logger:    logger.With("source", source.Name()),
		baseURL:   baseURL,
		config:    cfg,
	}
}

// Run executes one pass. A fetch that gives up mid-stream is not an
// error: everything fetched so far is still reconciled and the run is
// recorded. Run only fails when nothing was processed and errors
// occurred, or when the pass could not start at all.
func (s *ScrapeService) Run(ctx context.Context) (*domain.ScrapeStats, error) {
	startTime := time.Now()
	s.logger.Info("starting scrape",
		"incremental", s.config.Incremental,
		"record_limit", s.config.RecordLimit,
	)

	stats := &domain.ScrapeStats{}

	// Crash repair before reading or writing anything else.
	repaired, err := s.versions.RepairLatest(ctx)
	if err != nil {
		return nil, fmt.Errorf("repair latest versions: %w", err)
	}
	if repaired > 0 {
		s.logger.Warn("repaired inconsistent latest markers", "articles", repaired)
	}
	stats.Repaired = repaired

	opts := pubhub.FetchOptions{Limit: s.config.RecordLimit}
	if s.config.Incremental {
		since, err := s.runs.LastScrapeDate(ctx)
		if err != nil {
			s.logger.Warn("failed to read last scrape date, fetching everything", "error", err)
		} else if since != nil {
			opts.UpdatedSince = since
			s.logger.Info("incremental scrape", "updated_since", since)
		}
	}

	pubs, fetchErr := s.source.Fetch(ctx, opts)
	if fetchErr != nil {
		// Partial results: reconcile what we got, exit gracefully.
		stats.Partial = true
		s.logger.Warn("fetch stopped early, reconciling partial results",
			"fetched", len(pubs),
			"error", fetchErr,
		)
	}
	stats.Fetched = len(pubs)

	for i := range pubs {
		s.processRecord(ctx, &pubs[i], stats)
	}

	stats.Duration = time.Since(startTime)

	run := &domain.ScrapeRun{
		ScrapeDate:      startTime.UTC(),
		TotalArticles:   stats.Fetched,
		NewArticles:     stats.Inserted,
		UpdatedArticles: stats.Updated,
		DurationSeconds: stats.Duration.Seconds(),
	}
	if err := s.runs.RecordRun(ctx, run); err != nil {
		// Never fail an otherwise successful pass over run bookkeeping.
		s.logger.Error("failed to record scrape run", "error", err)
	}

	s.logger.Info("scrape completed",
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"errors", stats.Errors,
		"published", stats.Published,
		"partial", stats.Partial,
		"duration", stats.Duration,
	)

	if stats.Processed() == 0 && stats.Errors > 0 {
		return stats, fmt.Errorf("all %d records failed", stats.Errors)
	}

	return stats, nil
}

func (s *ScrapeService) processRecord(ctx context.Context, pub *pubhub.Pub, stats *domain.ScrapeStats) {
	rec, err := normalize.Record(s.baseURL, pub)
	if err != nil {
		stats.Errors++
		s.logger.Warn("skipping invalid record",
			"id", pub.ID,
			"slug", pub.Slug,
			"error", err,
		)
		return
	}

	result, err := s.versions.Upsert(ctx, rec)
	if err != nil {
		stats.Errors++
		s.logger.Error("failed to upsert record",
			"article_id", rec.ArticleID,
			"error", err,
		)
		return
	}

	switch result.Action {
	case domain.ActionInserted:
		stats.Inserted++
	case domain.ActionUpdated:
		stats.Updated++
	case domain.ActionUnchanged:
		stats.Unchanged++
	}

	if s.publisher != nil && result.Action != domain.ActionUnchanged {
		if err := s.publisher.Publish(ctx, rec, result); err != nil {
			stats.Errors++
			s.logger.Error("failed to publish version event",
				"article_id", rec.ArticleID,
				"error", err,
			)
		} else {
			stats.Published++
		}
	}
}
