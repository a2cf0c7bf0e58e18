package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"pub_archiver/internal/domain"
)

// ExportService batches unexported latest-version records into a
// JSON-lines artifact for the downstream columnar converter and records
// the batch provenance.
type ExportService struct {
	versions VersionStore
	exports  ExportStore
	logger   *slog.Logger
}

func NewExportService(versions VersionStore, exports ExportStore, logger *slog.Logger) *ExportService {
	return &ExportService{
		versions: versions,
		exports:  exports,
		logger:   logger,
	}
}

// Export selects up to limit unexported latest records, writes them to
// outDir as <batchName>.jsonl, marks them exported, and records the
// batch. A nil batch return with no error means there was nothing to
// export. An empty batchName gets a generated one.
func (s *ExportService) Export(ctx context.Context, limit int, batchName, outDir string) (*domain.ExportBatch, error) {
	if batchName == "" {
		batchName = "batch-" + uuid.NewString()[:8]
	}

	rows, err := s.versions.GetUnexportedLatest(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("select batch: %w", err)
	}
	if len(rows) == 0 {
		s.logger.Info("nothing to export")
		return nil, nil
	}

	path := filepath.Join(outDir, batchName+".jsonl")
	size, err := writeArtifact(path, rows)
	if err != nil {
		return nil, fmt.Errorf("write artifact: %w", err)
	}

	now := time.Now().UTC()
	versionIDs := make([]string, len(rows))
	for i, row := range rows {
		versionIDs[i] = row.VersionID
	}

	// A crash after this point leaves some rows marked; the next run
	// simply re-selects the remainder.
	if err := s.exports.MarkExported(ctx, versionIDs, batchName, now); err != nil {
		return nil, fmt.Errorf("mark exported: %w", err)
	}

	batch := &domain.ExportBatch{
		BatchName:     batchName,
		ExportDate:    now,
		ArticleCount:  len(rows),
		FilePath:      path,
		FileSizeBytes: size,
	}
	if err := s.exports.RecordBatch(ctx, batch); err != nil {
		return nil, fmt.Errorf("record batch: %w", err)
	}

	s.logger.Info("export completed",
		"batch", batchName,
		"articles", batch.ArticleCount,
		"file", batch.FilePath,
		"size_mb", fmt.Sprintf("%.2f", batch.FileSizeMB()),
	)

	return batch, nil
}

// ConfirmPublish records the downstream publication of a batch.
func (s *ExportService) ConfirmPublish(ctx context.Context, batchName, txID, alias string) error {
	if err := s.exports.ConfirmPublish(ctx, batchName, txID, alias); err != nil {
		return err
	}
	s.logger.Info("publish confirmed",
		"batch", batchName,
		"tx_id", txID,
		"alias", alias,
	)
	return nil
}

func writeArtifact(path string, rows []domain.ArticleVersion) (int64, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return 0, err
	}

	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for i := range rows {
		if err := enc.Encode(&rows[i]); err != nil {
			return 0, err
		}
	}

	info, err := f.Stat()
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}
