package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/suite"

	"pub_archiver/internal/domain"
)

type StoreSuite struct {
	suite.Suite
	ctx      context.Context
	db       *sqlx.DB
	versions *VersionStore
	exports  *ExportStore
	runs     *ScrapeRunStore
}

func (s *StoreSuite) SetupTest() {
	s.ctx = context.Background()

	db, err := Open(":memory:")
	s.Require().NoError(err)
	s.db = db

	s.versions = NewVersionStore(db)
	s.exports = NewExportStore(db)
	s.runs = NewScrapeRunStore(db)
}

func (s *StoreSuite) TearDownTest() {
	if s.db != nil {
		s.db.Close()
	}
}

func TestStoreSuite(t *testing.T) {
	suite.Run(t, new(StoreSuite))
}

func makeRecord(articleID, slug string, updatedAt time.Time) *domain.Record {
	published := updatedAt
	return &domain.Record{
		ArticleID:   articleID,
		Slug:        slug,
		Title:       "Title " + articleID,
		CreatedAt:   updatedAt.Add(-24 * time.Hour),
		UpdatedAt:   updatedAt,
		PublishedAt: &published,
		Content:     "content of " + articleID,
		Authors:     []domain.Author{{Name: "A. Author"}},
		Collections: []string{"Biology"},
		Keywords:    []string{},
		URL:         "https://pubs.example.org/pub/" + slug,
	}
}

// assertSingleLatest checks the core invariant: exactly one latest row
// per article, and it carries the max version number.
func (s *StoreSuite) assertSingleLatest(articleID string) {
	versions, err := s.versions.GetVersions(s.ctx, articleID)
	s.Require().NoError(err)
	s.Require().NotEmpty(versions)

	latestCount := 0
	maxVersion := 0
	var latestVersion int
	for _, v := range versions {
		if v.VersionNumber > maxVersion {
			maxVersion = v.VersionNumber
		}
		if v.IsLatest {
			latestCount++
			latestVersion = v.VersionNumber
		}
	}
	s.Equal(1, latestCount, "exactly one latest row for %s", articleID)
	s.Equal(maxVersion, latestVersion, "latest row carries max version number")
}

func (s *StoreSuite) TestUpsert_InsertsFirstVersion() {
	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	res, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)
	s.Equal(domain.ActionInserted, res.Action)
	s.Equal(1, res.VersionNumber)

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().Len(versions, 1)
	s.Equal("a1_v1", versions[0].VersionID)
	s.True(versions[0].IsLatest)
	s.Equal(1, versions[0].VersionNumber)
	s.assertSingleLatest("a1")
}

func (s *StoreSuite) TestUpsert_ChangeCreatesNewVersion() {
	v1Time := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v2Time := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v1Time))
	s.Require().NoError(err)

	res, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v2Time))
	s.Require().NoError(err)
	s.Equal(domain.ActionUpdated, res.Action)
	s.Equal(2, res.VersionNumber)

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().Len(versions, 2)
	s.False(versions[0].IsLatest)
	s.True(versions[1].IsLatest)
	s.assertSingleLatest("a1")
}

func (s *StoreSuite) TestUpsert_UnchangedIsIdempotent() {
	updated := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)

	res, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)
	s.Equal(domain.ActionUnchanged, res.Action)
	s.Equal(1, res.VersionNumber)

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Len(versions, 1)
}

func (s *StoreSuite) TestUpsert_ContentChangeAloneBumpsVersion() {
	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)

	rec := makeRecord("a1", "s1", updated)
	rec.Content = "revised content"
	res, err := s.versions.Upsert(s.ctx, rec)
	s.Require().NoError(err)
	s.Equal(domain.ActionUpdated, res.Action)
	s.Equal(2, res.VersionNumber)
}

func (s *StoreSuite) TestUpsert_VersionNumbersAreGapless() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", base.AddDate(0, i, 0)))
		s.Require().NoError(err)
	}

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().Len(versions, 4)
	for i, v := range versions {
		s.Equal(i+1, v.VersionNumber)
	}
	s.assertSingleLatest("a1")
}

func (s *StoreSuite) TestUpsert_RejectsMissingArticleID() {
	rec := makeRecord("", "s1", time.Now())

	_, err := s.versions.Upsert(s.ctx, rec)
	s.Require().Error(err)
	s.True(domain.IsValidation(err))

	latest, err := s.versions.GetLatest(s.ctx)
	s.Require().NoError(err)
	s.Empty(latest)
}

func (s *StoreSuite) TestUpsert_RejectsMissingSlug() {
	rec := makeRecord("a1", "", time.Now())

	_, err := s.versions.Upsert(s.ctx, rec)
	s.Require().Error(err)
	s.True(domain.IsValidation(err))
}

func (s *StoreSuite) TestUpsert_UnchangedTouchesLastChecked() {
	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)

	before, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)

	time.Sleep(10 * time.Millisecond)

	_, err = s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)

	after, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.True(after[0].LastChecked.After(before[0].LastChecked))
	s.Equal(before[0].ScrapedAt, after[0].ScrapedAt)
}

func (s *StoreSuite) TestGetUnexportedLatest_ExcludesExportedAndSuperseded() {
	v1Time := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v2Time := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v1Time))
	s.Require().NoError(err)
	_, err = s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v2Time))
	s.Require().NoError(err)

	rows, err := s.versions.GetUnexportedLatest(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 1)
	s.Equal("a1_v2", rows[0].VersionID)

	err = s.exports.MarkExported(s.ctx, []string{"a1_v2"}, "batch-1", time.Now())
	s.Require().NoError(err)

	rows, err = s.versions.GetUnexportedLatest(s.ctx, 10)
	s.Require().NoError(err)
	s.Empty(rows)
}

func (s *StoreSuite) TestGetUnexportedLatest_OrdersByPublishedAtNullsLast() {
	early := makeRecord("a1", "s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	late := makeRecord("a2", "s2", time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	undated := makeRecord("a3", "s3", time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	undated.PublishedAt = nil

	for _, rec := range []*domain.Record{early, late, undated} {
		_, err := s.versions.Upsert(s.ctx, rec)
		s.Require().NoError(err)
	}

	rows, err := s.versions.GetUnexportedLatest(s.ctx, 10)
	s.Require().NoError(err)
	s.Require().Len(rows, 3)
	s.Equal("a2", rows[0].ArticleID)
	s.Equal("a1", rows[1].ArticleID)
	s.Equal("a3", rows[2].ArticleID)
}

func (s *StoreSuite) TestGetUnexportedLatest_RespectsLimit() {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		id := string(rune('a' + i))
		_, err := s.versions.Upsert(s.ctx, makeRecord(id, "s-"+id, base.AddDate(0, 0, i)))
		s.Require().NoError(err)
	}

	rows, err := s.versions.GetUnexportedLatest(s.ctx, 2)
	s.Require().NoError(err)
	s.Len(rows, 2)
}

func (s *StoreSuite) TestMarkExported_IsIdempotent() {
	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	first := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	err = s.exports.MarkExported(s.ctx, []string{"a1_v1"}, "batch-1", first)
	s.Require().NoError(err)

	// Retry with a different batch must not overwrite the first marking.
	err = s.exports.MarkExported(s.ctx, []string{"a1_v1"}, "batch-2", first.AddDate(0, 1, 0))
	s.Require().NoError(err)

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().Len(versions, 1)
	s.True(versions[0].Exported)
	s.Require().NotNil(versions[0].ExportBatch)
	s.Equal("batch-1", *versions[0].ExportBatch)
	s.Require().NotNil(versions[0].ExportDate)
	s.True(versions[0].ExportDate.Equal(first))
}

func (s *StoreSuite) TestMarkExported_UnknownIDIsNoOp() {
	err := s.exports.MarkExported(s.ctx, []string{"ghost_v1"}, "batch-1", time.Now())
	s.NoError(err)
}

func (s *StoreSuite) TestRecordBatch_AndGetBatch() {
	batch := &domain.ExportBatch{
		BatchName:     "batch-1",
		ExportDate:    time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		ArticleCount:  3,
		FilePath:      "exports/batch-1.jsonl",
		FileSizeBytes: 2 * 1024 * 1024,
	}
	s.Require().NoError(s.exports.RecordBatch(s.ctx, batch))

	got, err := s.exports.GetBatch(s.ctx, "batch-1")
	s.Require().NoError(err)
	s.Equal(3, got.ArticleCount)
	s.Equal("exports/batch-1.jsonl", got.FilePath)
	s.InDelta(2.0, got.FileSizeMB(), 0.001)
	s.Nil(got.StorageTxID)
	s.Nil(got.UploadedAt)
}

func (s *StoreSuite) TestGetBatch_NotFound() {
	_, err := s.exports.GetBatch(s.ctx, "nope")
	s.ErrorIs(err, domain.ErrBatchNotFound)
}

func (s *StoreSuite) TestConfirmPublish() {
	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)
	s.Require().NoError(s.exports.MarkExported(s.ctx, []string{"a1_v1"}, "batch-1", time.Now()))
	s.Require().NoError(s.exports.RecordBatch(s.ctx, &domain.ExportBatch{
		BatchName:  "batch-1",
		ExportDate: time.Now().UTC(),
		FilePath:   "exports/batch-1.jsonl",
	}))

	err = s.exports.ConfirmPublish(s.ctx, "batch-1", "tx-123", "alias/v1")
	s.Require().NoError(err)

	batch, err := s.exports.GetBatch(s.ctx, "batch-1")
	s.Require().NoError(err)
	s.Require().NotNil(batch.StorageTxID)
	s.Equal("tx-123", *batch.StorageTxID)
	s.Require().NotNil(batch.NamingAlias)
	s.Equal("alias/v1", *batch.NamingAlias)
	s.NotNil(batch.UploadedAt)

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.Require().NotNil(versions[0].StorageTxID)
	s.Equal("tx-123", *versions[0].StorageTxID)
}

func (s *StoreSuite) TestConfirmPublish_UnknownBatch() {
	err := s.exports.ConfirmPublish(s.ctx, "nope", "tx-123", "")
	s.ErrorIs(err, domain.ErrBatchNotFound)
}

func (s *StoreSuite) TestRepairLatest_TwoLatestRows() {
	v1Time := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v2Time := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v1Time))
	s.Require().NoError(err)
	_, err = s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v2Time))
	s.Require().NoError(err)

	// Simulate a crash that left both rows marked latest.
	_, err = s.db.ExecContext(s.ctx,
		`UPDATE article_versions SET is_latest = 1 WHERE version_id = 'a1_v1'`)
	s.Require().NoError(err)

	repaired, err := s.versions.RepairLatest(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, repaired)
	s.assertSingleLatest("a1")

	versions, err := s.versions.GetVersions(s.ctx, "a1")
	s.Require().NoError(err)
	s.False(versions[0].IsLatest)
	s.True(versions[1].IsLatest)
}

func (s *StoreSuite) TestRepairLatest_ZeroLatestRows() {
	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	_, err = s.db.ExecContext(s.ctx,
		`UPDATE article_versions SET is_latest = 0 WHERE article_id = 'a1'`)
	s.Require().NoError(err)

	repaired, err := s.versions.RepairLatest(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, repaired)
	s.assertSingleLatest("a1")
}

func (s *StoreSuite) TestRepairLatest_NoopWhenConsistent() {
	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)))
	s.Require().NoError(err)

	repaired, err := s.versions.RepairLatest(s.ctx)
	s.Require().NoError(err)
	s.Equal(0, repaired)
}

func (s *StoreSuite) TestScrapeRuns_LastScrapeDate() {
	date, err := s.runs.LastScrapeDate(s.ctx)
	s.Require().NoError(err)
	s.Nil(date)

	first := time.Date(2024, 1, 1, 6, 0, 0, 0, time.UTC)
	second := time.Date(2024, 1, 2, 6, 0, 0, 0, time.UTC)

	s.Require().NoError(s.runs.RecordRun(s.ctx, &domain.ScrapeRun{
		ScrapeDate: first, TotalArticles: 10, NewArticles: 10, DurationSeconds: 1.5,
	}))
	s.Require().NoError(s.runs.RecordRun(s.ctx, &domain.ScrapeRun{
		ScrapeDate: second, TotalArticles: 4, UpdatedArticles: 2, DurationSeconds: 0.8,
	}))

	date, err = s.runs.LastScrapeDate(s.ctx)
	s.Require().NoError(err)
	s.Require().NotNil(date)
	s.True(date.Equal(second))
}

func (s *StoreSuite) TestGetLatest_OnlyLatestVersions() {
	v1Time := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	v2Time := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v1Time))
	s.Require().NoError(err)
	_, err = s.versions.Upsert(s.ctx, makeRecord("a1", "s1", v2Time))
	s.Require().NoError(err)
	_, err = s.versions.Upsert(s.ctx, makeRecord("a2", "s2", v1Time))
	s.Require().NoError(err)

	latest, err := s.versions.GetLatest(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(latest, 2)
	for _, v := range latest {
		s.True(v.IsLatest)
	}
	s.Equal(`[{"name":"A. Author"}]`, latest[0].Authors)
}

func (s *StoreSuite) TestCustomChangeDetector() {
	never := func(latest *domain.ArticleVersion, incoming *domain.Record) bool { return false }
	s.versions.WithChangeDetector(never)

	updated := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated))
	s.Require().NoError(err)

	res, err := s.versions.Upsert(s.ctx, makeRecord("a1", "s1", updated.AddDate(0, 1, 0)))
	s.Require().NoError(err)
	s.Equal(domain.ActionUnchanged, res.Action)
}
