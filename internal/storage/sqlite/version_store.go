package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pub_archiver/internal/domain"
)

const versionColumns = `
	version_id, article_id, slug, version_number, version_timestamp, is_latest,
	title, description, doi, license, created_at, updated_at, published_at,
	content, authors, collections, keywords, url, pdf_url,
	exported, export_batch, export_date, storage_tx_id, naming_alias,
	scraped_at, last_checked`

// ChangeDetector decides whether an incoming record constitutes a new
// version of the stored latest. It is a heuristic, not a semantic diff.
type ChangeDetector func(latest *domain.ArticleVersion, incoming *domain.Record) bool

// DefaultChangeDetector flags a change when the remote updatedAt moved or
// the full-text content differs.
func DefaultChangeDetector(latest *domain.ArticleVersion, incoming *domain.Record) bool {
	return !latest.UpdatedAt.Equal(incoming.UpdatedAt) || latest.Content != incoming.Content
}

// VersionStore reconciles incoming records against the append-only
// version history, keeping exactly one latest version per article.
type VersionStore struct {
	db      *sqlx.DB
	tm      *TransactionManager
	changed ChangeDetector
}

func NewVersionStore(db *sqlx.DB) *VersionStore {
	return &VersionStore{
		db:      db,
		tm:      NewTransactionManager(db),
		changed: DefaultChangeDetector,
	}
}

// WithChangeDetector swaps the change predicate; used by tests and by
// callers that want stricter or looser version bumping.
func (s *VersionStore) WithChangeDetector(fn ChangeDetector) *VersionStore {
	s.changed = fn
	return s
}

// Upsert reconciles one normalized record:
//
//	no prior version            -> insert v1 as latest
//	prior version, changed      -> demote old latest, insert vN+1 (atomic)
//	prior version, unchanged    -> touch last_checked only
func (s *VersionStore) Upsert(ctx context.Context, rec *domain.Record) (*domain.UpsertResult, error) {
	if rec.ArticleID == "" {
		return nil, &domain.ValidationError{Field: "articleId"}
	}
	if rec.Slug == "" {
		return nil, &domain.ValidationError{Field: "slug"}
	}

	now := time.Now().UTC()

	latest, err := s.highestVersion(ctx, rec.ArticleID)
	if err != nil {
		return nil, fmt.Errorf("lookup existing version: %w", err)
	}

	if latest == nil {
		row, err := newVersionRow(rec, 1, now)
		if err != nil {
			return nil, err
		}
		if err := s.insert(ctx, row); err != nil {
			return nil, fmt.Errorf("insert version 1: %w", err)
		}
		return &domain.UpsertResult{Action: domain.ActionInserted, VersionNumber: 1}, nil
	}

	if !s.changed(latest, rec) {
		_, err := GetExecutor(ctx, s.db).ExecContext(ctx,
			`UPDATE article_versions SET last_checked = ? WHERE article_id = ?`,
			now, rec.ArticleID,
		)
		if err != nil {
			return nil, fmt.Errorf("touch last_checked: %w", err)
		}
		return &domain.UpsertResult{Action: domain.ActionUnchanged, VersionNumber: latest.VersionNumber}, nil
	}

	next := latest.VersionNumber + 1
	row, err := newVersionRow(rec, next, now)
	if err != nil {
		return nil, err
	}

	err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		_, err := GetExecutor(txCtx, s.db).ExecContext(txCtx,
			`UPDATE article_versions SET is_latest = 0 WHERE article_id = ? AND is_latest = 1`,
			rec.ArticleID,
		)
		if err != nil {
			return fmt.Errorf("demote previous latest: %w", err)
		}
		return s.insert(txCtx, row)
	})
	if err != nil {
		return nil, fmt.Errorf("insert version %d: %w", next, err)
	}

	return &domain.UpsertResult{Action: domain.ActionUpdated, VersionNumber: next}, nil
}

// GetUnexportedLatest returns up to limit latest-version rows not yet
// exported, newest publications first, undated rows last. limit <= 0
// means no cap.
func (s *VersionStore) GetUnexportedLatest(ctx context.Context, limit int) ([]domain.ArticleVersion, error) {
	if limit <= 0 {
		limit = -1
	}
	var rows []domain.ArticleVersion
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, `
		SELECT `+versionColumns+`
		FROM article_versions
		WHERE is_latest = 1 AND exported = 0
		ORDER BY published_at DESC NULLS LAST
		LIMIT ?`, limit)
	return rows, err
}

// GetLatest returns every latest-version row; this is the only read path
// downstream consumers use.
func (s *VersionStore) GetLatest(ctx context.Context) ([]domain.ArticleVersion, error) {
	var rows []domain.ArticleVersion
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, `
		SELECT `+versionColumns+`
		FROM article_versions
		WHERE is_latest = 1
		ORDER BY published_at DESC NULLS LAST`)
	return rows, err
}

// GetVersions returns the full history for one article, oldest first.
func (s *VersionStore) GetVersions(ctx context.Context, articleID string) ([]domain.ArticleVersion, error) {
	var rows []domain.ArticleVersion
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &rows, `
		SELECT `+versionColumns+`
		FROM article_versions
		WHERE article_id = ?
		ORDER BY version_number ASC`, articleID)
	return rows, err
}

// RepairLatest restores the single-latest invariant for any article left
// with zero or multiple latest rows by a crash mid-upsert: the row with
// the highest version number becomes the sole latest. Returns the number
// of articles repaired.
func (s *VersionStore) RepairLatest(ctx context.Context) (int, error) {
	var articleIDs []string
	err := sqlx.SelectContext(ctx, GetExecutor(ctx, s.db), &articleIDs, `
		SELECT article_id
		FROM article_versions
		GROUP BY article_id
		HAVING SUM(is_latest) <> 1`)
	if err != nil {
		return 0, fmt.Errorf("find inconsistent articles: %w", err)
	}
	if len(articleIDs) == 0 {
		return 0, nil
	}

	err = s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)
		for _, id := range articleIDs {
			_, err := exec.ExecContext(txCtx, `
				UPDATE article_versions
				SET is_latest = CASE
					WHEN version_number = (
						SELECT MAX(version_number) FROM article_versions WHERE article_id = ?
					) THEN 1
					ELSE 0
				END
				WHERE article_id = ?`, id, id)
			if err != nil {
				return fmt.Errorf("repair article %s: %w", id, err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(articleIDs), nil
}

func (s *VersionStore) highestVersion(ctx context.Context, articleID string) (*domain.ArticleVersion, error) {
	var v domain.ArticleVersion
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &v, `
		SELECT `+versionColumns+`
		FROM article_versions
		WHERE article_id = ?
		ORDER BY version_number DESC
		LIMIT 1`, articleID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (s *VersionStore) insert(ctx context.Context, row *domain.ArticleVersion) error {
	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), `
		INSERT INTO article_versions (
			version_id, article_id, slug, version_number, version_timestamp, is_latest,
			title, description, doi, license, created_at, updated_at, published_at,
			content, authors, collections, keywords, url, pdf_url,
			exported, export_batch, export_date, storage_tx_id, naming_alias,
			scraped_at, last_checked
		) VALUES (
			:version_id, :article_id, :slug, :version_number, :version_timestamp, :is_latest,
			:title, :description, :doi, :license, :created_at, :updated_at, :published_at,
			:content, :authors, :collections, :keywords, :url, :pdf_url,
			:exported, :export_batch, :export_date, :storage_tx_id, :naming_alias,
			:scraped_at, :last_checked
		)`, row)
	return err
}

func newVersionRow(rec *domain.Record, versionNumber int, now time.Time) (*domain.ArticleVersion, error) {
	authors, err := marshalList(rec.Authors)
	if err != nil {
		return nil, fmt.Errorf("encode authors: %w", err)
	}
	collections, err := marshalList(rec.Collections)
	if err != nil {
		return nil, fmt.Errorf("encode collections: %w", err)
	}
	keywords, err := marshalList(rec.Keywords)
	if err != nil {
		return nil, fmt.Errorf("encode keywords: %w", err)
	}

	var publishedAt *time.Time
	if rec.PublishedAt != nil {
		t := rec.PublishedAt.UTC()
		publishedAt = &t
	}

	return &domain.ArticleVersion{
		VersionID:        domain.VersionID(rec.ArticleID, versionNumber),
		ArticleID:        rec.ArticleID,
		Slug:             rec.Slug,
		VersionNumber:    versionNumber,
		VersionTimestamp: rec.UpdatedAt.UTC(),
		IsLatest:         true,
		Title:            rec.Title,
		Description:      rec.Description,
		DOI:              rec.DOI,
		License:          rec.License,
		CreatedAt:        rec.CreatedAt.UTC(),
		UpdatedAt:        rec.UpdatedAt.UTC(),
		PublishedAt:      publishedAt,
		Content:          rec.Content,
		Authors:          authors,
		Collections:      collections,
		Keywords:         keywords,
		URL:              rec.URL,
		PDFURL:           rec.PDFURL,
		ScrapedAt:        now,
		LastChecked:      now,
	}, nil
}

// marshalList encodes a slice as JSON, mapping nil to "[]" so consumers
// never see a JSON null.
func marshalList(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	if string(data) == "null" {
		return "[]", nil
	}
	return string(data), nil
}
