package scan

import (
	"context"
	"sort"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/zsiec/cadence/internal/logger"
	"github.com/zsiec/cadence/internal/metrics"
)

// DefaultWorkers bounds the pool when the caller does not.
const DefaultWorkers = 8

// Scanner pulls every frame index of a stream through a bounded worker
// pool and folds the flagged indices into a sorted slice. The zero
// value scans with DefaultWorkers, no rate limit and no logging.
type Scanner struct {
	// Workers is the number of concurrent frame evaluations.
	// Non-positive selects DefaultWorkers.
	Workers int

	// Rate caps frame evaluations per second across all workers.
	// Non-positive means unlimited.
	Rate float64

	// Logger receives per-pass progress. Nil discards it.
	Logger logger.Logger
}

type result struct {
	n       int
	flagged bool
	err     error
}

// run evaluates pred for every index in [0, length) and returns the
// indices where it reported true, ascending. The first evaluation error
// cancels the remaining work and is returned; a cancelled context
// surfaces as its error.
func (sc *Scanner) run(ctx context.Context, pass string, length int, pred func(n int) (bool, error)) ([]int, error) {
	log := sc.Logger
	if log == nil {
		log = logger.NewNullLogger()
	}
	log = log.WithField("pass", pass)

	workers := sc.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	var limiter *rate.Limiter
	if sc.Rate > 0 {
		limiter = rate.NewLimiter(rate.Limit(sc.Rate), workers)
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := time.Now()
	jobs := make(chan int)
	results := make(chan result, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for n := range jobs {
				if limiter != nil {
					if err := limiter.Wait(ctx); err != nil {
						return
					}
				}
				flagged, err := pred(n)
				select {
				case results <- result{n: n, flagged: flagged, err: err}:
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	// Feed indices until done or cancelled
	go func() {
		defer close(jobs)
		for n := 0; n < length; n++ {
			select {
			case jobs <- n:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Close results once every worker has finished
	go func() {
		wg.Wait()
		close(results)
	}()

	var flagged []int
	var firstErr error
	for res := range results {
		if res.err != nil {
			if firstErr == nil {
				firstErr = res.err
				cancel()
			}
			continue
		}
		if res.flagged {
			flagged = append(flagged, res.n)
		}
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.Ints(flagged)

	duration := time.Since(start)
	metrics.RecordScanResult(pass, length, len(flagged))
	metrics.ObserveScanDuration(pass, duration.Seconds())
	log.WithFields(map[string]interface{}{
		"frames":   length,
		"flagged":  len(flagged),
		"duration": duration,
	}).Info("Scan pass complete")

	return flagged, nil
}
