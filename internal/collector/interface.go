// Package collector defines the contract every job-board collector
// implements, plus the crawl-wide session state they share.
package collector

import (
	"context"

	"jobharvest/pkg/models"
)

// Collector drives one job board end to end: pagination, extraction,
// deduplication and budget enforcement for a single crawl invocation.
type Collector interface {
	// Name is the source identifier stamped on every emitted record.
	Name() string

	// Collect crawls the board for the given options and returns the merged
	// rows in discovery order. It returns an error only when the crawl could
	// not start at all (browser acquisition failure); page-level problems
	// are absorbed by the pagination heuristics.
	Collect(ctx context.Context, opts models.CollectOptions) ([]models.JobRecord, error)

	// Cleanup releases any resources held between collections.
	Cleanup()
}
