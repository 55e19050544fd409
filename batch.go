package manucheck

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"
)

// Default batch settings.
const (
	DefaultWorkers = 4
	DefaultTimeout = 30 * time.Second
)

// BatchOptions configures CheckAll.
type BatchOptions struct {
	// Workers bounds the number of documents checked at once. Zero uses
	// DefaultWorkers.
	Workers int

	// Timeout is the budget of each document. Zero uses DefaultTimeout;
	// a negative value disables the budget.
	Timeout time.Duration
}

func (b BatchOptions) workers() int {
	if b.Workers > 0 {
		return b.Workers
	}
	return DefaultWorkers
}

func (b BatchOptions) timeout() time.Duration {
	if b.Timeout == 0 {
		return DefaultTimeout
	}
	return b.Timeout
}

// CheckAll checks every document in paths with the same options. Reports
// are returned in input order. A document that exceeds its time budget
// gets a report whose results are aborted with a timeout message; it does
// not stop the others. The only errors are configuration errors and
// cancellation of ctx.
func CheckAll(ctx context.Context, paths []string, opts Options, batch BatchOptions) ([]*Report, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	log := opts.logger()

	reports := make([]*Report, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(batch.workers())

	timeout := batch.timeout()
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			docCtx := gctx
			if timeout > 0 {
				var cancel context.CancelFunc
				docCtx, cancel = context.WithTimeout(gctx, timeout)
				defer cancel()
			}

			log.Debug("checking document", "document", path, "index", i)
			report, err := Open(path).WithOptions(opts).CheckContext(docCtx)
			if err != nil {
				return err
			}
			reports[i] = report
			log.Debug("document checked", "document", path,
				"found", report.Found(), "issues", report.IssueCount(), "duration", report.Duration)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return reports, nil
}
