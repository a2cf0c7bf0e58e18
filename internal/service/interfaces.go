package service

//go:generate mockgen -source=interfaces.go -destination=mocks/mocks.go -package=mocks

import (
	"context"
	"time"

	"pub_archiver/internal/domain"
	"pub_archiver/internal/source/pubhub"
)

type Source interface {
	Name() string
	Fetch(ctx context.Context, opts pubhub.FetchOptions) ([]pubhub.Pub, error)
}

type VersionStore interface {
	Upsert(ctx context.Context, rec *domain.Record) (*domain.UpsertResult, error)
	GetUnexportedLatest(ctx context.Context, limit int) ([]domain.ArticleVersion, error)
	GetLatest(ctx context.Context) ([]domain.ArticleVersion, error)
	RepairLatest(ctx context.Context) (int, error)
}

type ExportStore interface {
	MarkExported(ctx context.Context, versionIDs []string, batchName string, at time.Time) error
	RecordBatch(ctx context.Context, batch *domain.ExportBatch) error
	ConfirmPublish(ctx context.Context, batchName, txID, alias string) error
	GetBatch(ctx context.Context, batchName string) (*domain.ExportBatch, error)
}

type ScrapeRunStore interface {
	RecordRun(ctx context.Context, run *domain.ScrapeRun) error
	LastScrapeDate(ctx context.Context) (*time.Time, error)
}

type Publisher interface {
	Publish(ctx context.Context, rec *domain.Record, result *domain.UpsertResult) error
	Close() error
}
