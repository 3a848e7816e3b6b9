// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"sync"

	"github.com/bgruening/nextclade/internal/input"
	"github.com/bgruening/nextclade/pkg/api"
)

// Config controls the per-query fan-out.
type Config struct {
	Threads  int    // worker goroutines (>=1)
	Progress func() // called once per finished query; may be nil
}

// ForEachReport builds a report for every record using cfg.Threads
// workers and calls visit in input order. Queries are independent; the
// dataset behind build is shared read-only, so no coordination beyond
// the job channel is needed. Returns the first error encountered
// (including context cancellation).
func ForEachReport(
	ctx context.Context,
	cfg Config,
	recs []input.Record,
	build func(input.Record) (api.ReportV1, error),
	visit func(api.ReportV1) error,
) error {
	if cfg.Threads < 1 {
		cfg.Threads = 1
	}

	jobs := make(chan int, cfg.Threads*2)
	reports := make([]api.ReportV1, len(recs))
	buildErrs := make([]error, len(recs))

	var wg sync.WaitGroup
	wg.Add(cfg.Threads)
	for w := 0; w < cfg.Threads; w++ {
		go func() {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case i, ok := <-jobs:
					if !ok {
						return
					}
					// Disjoint indices: no locking needed.
					reports[i], buildErrs[i] = build(recs[i])
					if cfg.Progress != nil {
						cfg.Progress()
					}
				}
			}
		}()
	}

feed:
	for i := range recs {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return err
	}
	for i := range recs {
		if buildErrs[i] != nil {
			return buildErrs[i]
		}
		if err := visit(reports[i]); err != nil {
			return err
		}
	}
	return nil
}
