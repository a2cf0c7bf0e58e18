package domain

import (
	"fmt"
	"time"
)

// ArticleVersion is one immutable snapshot of an article. Rows are
// append-only; after creation only the export and publish fields change.
type ArticleVersion struct {
	VersionID        string    `db:"version_id"`
	ArticleID        string    `db:"article_id"`
	Slug             string    `db:"slug"`
	VersionNumber    int       `db:"version_number"`
	VersionTimestamp time.Time `db:"version_timestamp"`
	IsLatest         bool      `db:"is_latest"`

	Title       string     `db:"title"`
	Description string     `db:"description"`
	DOI         string     `db:"doi"`
	License     string     `db:"license"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
	PublishedAt *time.Time `db:"published_at"`
	Content     string     `db:"content"`

	// JSON-encoded sub-structures; downstream consumers parse these.
	Authors     string `db:"authors"`
	Collections string `db:"collections"`
	Keywords    string `db:"keywords"`

	URL    string `db:"url"`
	PDFURL string `db:"pdf_url"`

	Exported    bool       `db:"exported"`
	ExportBatch *string    `db:"export_batch"`
	ExportDate  *time.Time `db:"export_date"`

	StorageTxID *string `db:"storage_tx_id"`
	NamingAlias *string `db:"naming_alias"`

	ScrapedAt   time.Time `db:"scraped_at"`
	LastChecked time.Time `db:"last_checked"`
}

// VersionID derives the primary key for one (articleId, versionNumber) pair.
func VersionID(articleID string, versionNumber int) string {
	return fmt.Sprintf("%s_v%d", articleID, versionNumber)
}

type UpsertAction string

const (
	ActionInserted  UpsertAction = "inserted"
	ActionUpdated   UpsertAction = "updated"
	ActionUnchanged UpsertAction = "unchanged"
)

// UpsertResult reports what a single reconciliation write did.
type UpsertResult struct {
	Action        UpsertAction
	VersionNumber int
}

// ExportBatch records one export operation and, once the downstream
// artifact is published, its remote provenance.
type ExportBatch struct {
	BatchName     string     `db:"batch_name"`
	ExportDate    time.Time  `db:"export_date"`
	ArticleCount  int        `db:"article_count"`
	FilePath      string     `db:"file_path"`
	FileSizeBytes int64      `db:"file_size_bytes"`
	StorageTxID   *string    `db:"storage_tx_id"`
	NamingAlias   *string    `db:"naming_alias"`
	UploadedAt    *time.Time `db:"uploaded_at"`
}

// FileSizeMB returns the artifact size in megabytes.
func (b ExportBatch) FileSizeMB() float64 {
	return float64(b.FileSizeBytes) / (1024 * 1024)
}

// ScrapeRun is the append-only record of one reconciliation pass.
type ScrapeRun struct {
	ID              int64     `db:"id"`
	ScrapeDate      time.Time `db:"scrape_date"`
	TotalArticles   int       `db:"total_articles"`
	NewArticles     int       `db:"new_articles"`
	UpdatedArticles int       `db:"updated_articles"`
	DurationSeconds float64   `db:"duration_seconds"`
}
