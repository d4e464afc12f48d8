package match

import (
	"context"
	"log/slog"

	"github.com/arunsworld/nursery"

	"refrain/internal/catalog"
	"refrain/internal/logging"
)

// Batch classifies a slice of queries, optionally across a bounded worker
// pool. Queries are independent and the index is read-only, so the only
// ordering guarantee needed is that results line up with the input slice.
type Batch struct {
	classifier *Classifier
	workers    int
	logger     *slog.Logger
}

// NewBatch builds a batch runner. workers <= 1 runs serially.
func NewBatch(classifier *Classifier, workers int, logger *slog.Logger) *Batch {
	if workers < 1 {
		workers = 1
	}
	return &Batch{
		classifier: classifier,
		workers:    workers,
		logger:     logging.NewComponentLogger(logger, "batch"),
	}
}

// Run classifies every query and returns results in input order.
func (b *Batch) Run(ctx context.Context, queries []catalog.NameRecord) []Result {
	results := make([]Result, len(queries))
	if len(queries) == 0 {
		return results
	}

	if b.workers == 1 {
		for i, query := range queries {
			results[i] = b.classifier.Classify(ctx, query)
		}
		return results
	}

	jobs := make(chan int, len(queries))
	for i := range queries {
		jobs <- i
	}
	close(jobs)

	worker := func(ctx context.Context, _ chan error) {
		for i := range jobs {
			results[i] = b.classifier.Classify(ctx, queries[i])
		}
	}
	if err := nursery.RunMultipleCopiesConcurrentlyWithContext(ctx, b.workers, worker); err != nil {
		// Workers never report errors; per-record problems degrade inside
		// the scorer. Log and keep whatever completed.
		b.logger.Error("batch worker pool failed", logging.Error(err))
	}
	return results
}
