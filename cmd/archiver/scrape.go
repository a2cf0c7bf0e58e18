package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"pub_archiver/internal/publisher"
	"pub_archiver/internal/scheduler"
	"pub_archiver/internal/service"
	"pub_archiver/internal/source/pubhub"
	"pub_archiver/internal/storage/sqlite"
)

var (
	scrapeLimit       int
	scrapeIncremental bool
	scrapeInterval    time.Duration
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape",
	Short: "Fetch publications from the platform and reconcile them into the archive",
	Long: `Scrape runs one reconciliation pass: fetch records from the platform
API, normalize them, and upsert each one as a versioned row. Unchanged
records only get their last_checked timestamp touched.

With --interval the command keeps running and repeats the pass on a
fixed schedule until interrupted.

Examples:
  # One full pass
  ./archiver scrape

  # Only records updated since the last successful run
  ./archiver scrape --incremental

  # Cap the pass at 50 records
  ./archiver scrape --limit 50

  # Run every 6 hours until stopped
  ./archiver scrape --interval 6h`,
	Run: runScrape,
}

func init() {
	rootCmd.AddCommand(scrapeCmd)

	scrapeCmd.Flags().IntVar(&scrapeLimit, "limit", 0, "maximum records to process (0 = no cap)")
	scrapeCmd.Flags().BoolVar(&scrapeIncremental, "incremental", false, "only fetch records updated since the last run")
	scrapeCmd.Flags().DurationVar(&scrapeInterval, "interval", 0, "repeat the pass on this interval (0 = run once)")
}

func runScrape(cmd *cobra.Command, args []string) {
	e, err := setupEnv()
	if err != nil {
		fatal(setupLogger("info"), "setup failed", err)
	}
	defer e.Close()

	if cmd.Flags().Changed("limit") {
		e.cfg.Scrape.RecordLimit = scrapeLimit
	}
	if cmd.Flags().Changed("incremental") {
		e.cfg.Scrape.Incremental = scrapeIncremental
	}
	if cmd.Flags().Changed("interval") {
		e.cfg.Scrape.Interval = scrapeInterval
	}

	var pub service.Publisher
	if e.cfg.RabbitMQ.Enabled {
		rabbitMQ, err := publisher.NewRabbitMQ(publisher.Config{
			URL:        e.cfg.RabbitMQ.URL,
			Exchange:   e.cfg.RabbitMQ.Exchange,
			RoutingKey: e.cfg.RabbitMQ.RoutingKey,
			QueueName:  e.cfg.RabbitMQ.QueueName,
		}, e.logger)
		if err != nil {
			fatal(e.logger, "failed to connect to rabbitmq", err)
		}
		defer rabbitMQ.Close()
		pub = rabbitMQ
	}

	source := pubhub.New(pubhub.Config{
		BaseURL:        e.cfg.API.BaseURL,
		PageSize:       e.cfg.API.PageSize,
		Timeout:        e.cfg.API.Timeout,
		PageDelay:      e.cfg.API.PageDelay,
		MaxEmptyPages:  e.cfg.API.MaxEmptyPages,
		MaxAttempts:    e.cfg.API.Retry.MaxAttempts,
		InitialBackoff: e.cfg.API.Retry.InitialBackoff,
		MaxBackoff:     e.cfg.API.Retry.MaxBackoff,
	}, e.logger)

	svc := service.NewScrapeService(
		source,
		sqlite.NewVersionStore(e.db),
		sqlite.NewScrapeRunStore(e.db),
		pub,
		e.logger,
		e.cfg.API.BaseURL,
		e.cfg.Scrape,
	)

	ctx := cmd.Context()

	if e.cfg.Scrape.Interval > 0 {
		sched := scheduler.NewScheduler(svc, e.cfg.Scrape.Interval, e.logger)
		if err := sched.Start(ctx); err != nil && err != context.Canceled {
			fatal(e.logger, "scheduler error", err)
		}
		return
	}

	stats, err := svc.Run(ctx)
	if err != nil {
		fatal(e.logger, "scrape failed", err)
	}
	e.logger.Info("scrape finished",
		"fetched", stats.Fetched,
		"inserted", stats.Inserted,
		"updated", stats.Updated,
		"unchanged", stats.Unchanged,
		"errors", stats.Errors,
		"partial", stats.Partial,
	)
}
