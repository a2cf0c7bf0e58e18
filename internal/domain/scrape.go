package domain

import "time"

// ScrapeStats holds counters for one reconciliation pass.
type ScrapeStats struct {
	Fetched   int
	Inserted  int
	Updated   int
	Unchanged int
	Errors    int
	Published int
	Repaired  int
	Partial   bool
	Duration  time.Duration
}

// Processed is the number of records that made it through reconciliation.
func (s ScrapeStats) Processed() int {
	return s.Inserted + s.Updated + s.Unchanged
}
