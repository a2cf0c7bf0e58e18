package main

import (
	"github.com/spf13/cobra"

	"pub_archiver/internal/storage/sqlite"
)

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Restore the single-latest invariant after an interrupted run",
	Long: `Repair scans for articles whose version rows ended up with zero or
multiple latest flags (for example after a crash mid-upsert) and
reassigns the flag to the highest version number. Scrape runs this
automatically before each pass; the command exists for manual use.`,
	Run: runRepair,
}

func init() {
	rootCmd.AddCommand(repairCmd)
}

func runRepair(cmd *cobra.Command, args []string) {
	e, err := setupEnv()
	if err != nil {
		fatal(setupLogger("info"), "setup failed", err)
	}
	defer e.Close()

	repaired, err := sqlite.NewVersionStore(e.db).RepairLatest(cmd.Context())
	if err != nil {
		fatal(e.logger, "repair failed", err)
	}
	e.logger.Info("repair finished", "articles_repaired", repaired)
}
