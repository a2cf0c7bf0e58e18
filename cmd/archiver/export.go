package main

import (
	"github.com/spf13/cobra"

	"pub_archiver/internal/service"
	"pub_archiver/internal/storage/sqlite"
)

var (
	exportLimit int
	exportBatch string
	exportOut   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write unexported latest versions to a batch artifact and mark them exported",
	Long: `Export collects the latest version of every article that has not yet
been exported, writes them to a JSONL artifact, and marks the rows as
exported under a batch name. Running export again skips everything
already claimed by an earlier batch.

Examples:
  # Export everything pending, auto-named batch
  ./archiver export

  # Export at most 100 records under an explicit name
  ./archiver export --limit 100 --batch weekly-42`,
	Run: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().IntVar(&exportLimit, "limit", 0, "maximum records per batch (0 = use config batch size)")
	exportCmd.Flags().StringVar(&exportBatch, "batch", "", "batch name (generated when empty)")
	exportCmd.Flags().StringVar(&exportOut, "out", "", "output directory (defaults to config output_dir)")
}

func runExport(cmd *cobra.Command, args []string) {
	e, err := setupEnv()
	if err != nil {
		fatal(setupLogger("info"), "setup failed", err)
	}
	defer e.Close()

	limit := exportLimit
	if limit <= 0 {
		limit = e.cfg.Export.BatchSize
	}
	outDir := exportOut
	if outDir == "" {
		outDir = e.cfg.Export.OutputDir
	}

	svc := service.NewExportService(
		sqlite.NewVersionStore(e.db),
		sqlite.NewExportStore(e.db),
		e.logger,
	)

	batch, err := svc.Export(cmd.Context(), limit, exportBatch, outDir)
	if err != nil {
		fatal(e.logger, "export failed", err)
	}
	if batch == nil {
		e.logger.Info("nothing to export")
		return
	}
	e.logger.Info("export finished",
		"batch", batch.BatchName,
		"articles", batch.ArticleCount,
		"size_mb", batch.FileSizeMB(),
	)
}
