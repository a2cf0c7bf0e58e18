package main

import (
	"errors"

	"github.com/spf13/cobra"

	"pub_archiver/internal/domain"
	"pub_archiver/internal/service"
	"pub_archiver/internal/storage/sqlite"
)

var (
	confirmBatch string
	confirmTxID  string
	confirmAlias string
)

var confirmCmd = &cobra.Command{
	Use:   "confirm-publish",
	Short: "Record the downstream publication of an exported batch",
	Long: `Confirm-publish stamps an exported batch with the transaction ID of
the downstream publication and propagates it to every article row in
the batch.

Example:
  ./archiver confirm-publish --batch weekly-42 --tx-id 0xabc123 --alias ark:/65665/w42`,
	Run: runConfirmPublish,
}

func init() {
	rootCmd.AddCommand(confirmCmd)

	confirmCmd.Flags().StringVar(&confirmBatch, "batch", "", "batch name to confirm")
	confirmCmd.Flags().StringVar(&confirmTxID, "tx-id", "", "downstream transaction ID")
	confirmCmd.Flags().StringVar(&confirmAlias, "alias", "", "naming alias assigned downstream (optional)")
	confirmCmd.MarkFlagRequired("batch")
	confirmCmd.MarkFlagRequired("tx-id")
}

func runConfirmPublish(cmd *cobra.Command, args []string) {
	e, err := setupEnv()
	if err != nil {
		fatal(setupLogger("info"), "setup failed", err)
	}
	defer e.Close()

	svc := service.NewExportService(
		sqlite.NewVersionStore(e.db),
		sqlite.NewExportStore(e.db),
		e.logger,
	)

	err = svc.ConfirmPublish(cmd.Context(), confirmBatch, confirmTxID, confirmAlias)
	if errors.Is(err, domain.ErrBatchNotFound) {
		fatal(e.logger, "unknown batch", err)
	}
	if err != nil {
		fatal(e.logger, "confirm-publish failed", err)
	}
	e.logger.Info("publication confirmed", "batch", confirmBatch, "tx_id", confirmTxID)
}
