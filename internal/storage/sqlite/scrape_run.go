package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"

	"pub_archiver/internal/domain"
)

// ScrapeRunStore appends one row per reconciliation pass and serves the
// "last scrape date" read for incremental mode.
type ScrapeRunStore struct {
	db *sqlx.DB
}

func NewScrapeRunStore(db *sqlx.DB) *ScrapeRunStore {
	return &ScrapeRunStore{db: db}
}

func (s *ScrapeRunStore) RecordRun(ctx context.Context, run *domain.ScrapeRun) error {
	_, err := GetExecutor(ctx, s.db).ExecContext(ctx, `
		INSERT INTO scrape_runs (
			scrape_date, total_articles, new_articles, updated_articles, duration_seconds
		) VALUES (?, ?, ?, ?, ?)`,
		run.ScrapeDate.UTC(),
		run.TotalArticles,
		run.NewArticles,
		run.UpdatedArticles,
		run.DurationSeconds,
	)
	return err
}

// LastScrapeDate returns the most recent run's scrape date, or nil when
// no run has been recorded yet.
func (s *ScrapeRunStore) LastScrapeDate(ctx context.Context) (*time.Time, error) {
	var date time.Time
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &date, `
		SELECT scrape_date FROM scrape_runs ORDER BY id DESC LIMIT 1`)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &date, nil
}
