package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"git.home.luguber.info/inful/blogbuilder/internal/build"
	"git.home.luguber.info/inful/blogbuilder/internal/logfields"
	"git.home.luguber.info/inful/blogbuilder/internal/metrics"
)

// Builder runs one full site build.
type Builder interface {
	BuildAll(ctx context.Context) (*build.Report, error)
}

// rebuilder is the single worker that runs builds. pending holds at most one
// queued request; requests made while one is already queued are coalesced.
type rebuilder struct {
	builder  Builder
	logger   *slog.Logger
	recorder metrics.Recorder
	stdout   io.Writer
	pending  chan struct{}
}

func newRebuilder(b Builder, logger *slog.Logger, recorder metrics.Recorder, stdout io.Writer) *rebuilder {
	return &rebuilder{
		builder:  b,
		logger:   logger,
		recorder: recorder,
		stdout:   stdout,
		pending:  make(chan struct{}, 1),
	}
}

// request queues a rebuild and reports whether it was queued rather than
// merged into one already waiting.
func (r *rebuilder) request() bool {
	select {
	case r.pending <- struct{}{}:
		return true
	default:
		r.recorder.IncRebuildCoalesced()
		return false
	}
}

func (r *rebuilder) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-r.pending:
			if ctx.Err() != nil {
				return
			}
			_, _ = fmt.Fprint(r.stdout, "\n📝 Changes detected, rebuilding...\n\n")
			r.build(ctx)
		}
	}
}

func (r *rebuilder) build(ctx context.Context) {
	report, err := r.builder.BuildAll(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return
		}
		r.logger.ErrorContext(ctx, "Rebuild failed, still watching", logfields.Error(err))
		return
	}
	r.logger.DebugContext(ctx, "Rebuild finished",
		logfields.BuildID(report.BuildID), logfields.Posts(report.Total()))
}
