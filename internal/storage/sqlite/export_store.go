package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"pub_archiver/internal/domain"
)

// ExportStore tracks which latest-version rows have been handed to the
// downstream converter and records batch provenance.
type ExportStore struct {
	db *sqlx.DB
	tm *TransactionManager
}

func NewExportStore(db *sqlx.DB) *ExportStore {
	return &ExportStore{db: db, tm: NewTransactionManager(db)}
}

// MarkExported stamps the given version rows with the batch they joined.
// Rows already exported keep their original batch and date, and unknown
// ids are ignored, so a retry after a partial failure is safe.
func (s *ExportStore) MarkExported(ctx context.Context, versionIDs []string, batchName string, at time.Time) error {
	if len(versionIDs) == 0 {
		return nil
	}

	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		query, args, err := sqlx.In(`
			UPDATE article_versions
			SET exported = 1, export_batch = ?, export_date = ?
			WHERE version_id IN (?) AND exported = 0`,
			batchName, at.UTC(), versionIDs,
		)
		if err != nil {
			return fmt.Errorf("build mark query: %w", err)
		}
		if _, err := GetExecutor(txCtx, s.db).ExecContext(txCtx, query, args...); err != nil {
			return fmt.Errorf("mark exported: %w", err)
		}
		return nil
	})
}

// RecordBatch inserts the provenance row for one completed export pass.
func (s *ExportStore) RecordBatch(ctx context.Context, batch *domain.ExportBatch) error {
	_, err := sqlx.NamedExecContext(ctx, GetExecutor(ctx, s.db), `
		INSERT INTO export_batches (
			batch_name, export_date, article_count, file_path, file_size_bytes,
			storage_tx_id, naming_alias, uploaded_at
		) VALUES (
			:batch_name, :export_date, :article_count, :file_path, :file_size_bytes,
			:storage_tx_id, :naming_alias, :uploaded_at
		)`, batch)
	if err != nil {
		return fmt.Errorf("record batch: %w", err)
	}
	return nil
}

// ConfirmPublish fills in the remote publish provenance on a batch and on
// the article rows it contained. Local export and remote publication are
// independent steps that fail independently; this is the later one.
func (s *ExportStore) ConfirmPublish(ctx context.Context, batchName, txID, alias string) error {
	now := time.Now().UTC()

	return s.tm.WithTransaction(ctx, func(txCtx context.Context) error {
		exec := GetExecutor(txCtx, s.db)

		res, err := exec.ExecContext(txCtx, `
			UPDATE export_batches
			SET storage_tx_id = ?, naming_alias = ?, uploaded_at = ?
			WHERE batch_name = ?`,
			txID, nullString(alias), now, batchName,
		)
		if err != nil {
			return fmt.Errorf("confirm batch: %w", err)
		}
		affected, err := res.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchName)
		}

		_, err = exec.ExecContext(txCtx, `
			UPDATE article_versions
			SET storage_tx_id = ?, naming_alias = ?
			WHERE export_batch = ?`,
			txID, nullString(alias), batchName,
		)
		if err != nil {
			return fmt.Errorf("confirm versions: %w", err)
		}
		return nil
	})
}

// GetBatch returns one export batch by name.
func (s *ExportStore) GetBatch(ctx context.Context, batchName string) (*domain.ExportBatch, error) {
	var batch domain.ExportBatch
	err := sqlx.GetContext(ctx, GetExecutor(ctx, s.db), &batch, `
		SELECT batch_name, export_date, article_count, file_path, file_size_bytes,
		       storage_tx_id, naming_alias, uploaded_at
		FROM export_batches
		WHERE batch_name = ?`, batchName)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", domain.ErrBatchNotFound, batchName)
	}
	if err != nil {
		return nil, err
	}
	return &batch, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
