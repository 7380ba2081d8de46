package abstraction

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/coder/quartz"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// forEachChunk runs fn over [0, n) split into chunks shared by the configured
// workers. Each call owns its range exclusively. The first error cancels the
// remaining work and is returned.
func (b *Builder) forEachChunk(ctx context.Context, table string, n uint64, fn func(worker int, lo, hi uint64) error) error {
	chunk := uint64(b.cfg.ChunkSize)
	var cursor atomic.Uint64

	p := newProgress(b.logger, b.clock, table, n)
	stop := p.start(ctx, b.cfg.ProgressEvery)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	for w := range b.cfg.Workers {
		g.Go(func() error {
			for {
				if err := ctx.Err(); err != nil {
					return err
				}
				lo := cursor.Add(chunk) - chunk
				if lo >= n {
					return nil
				}
				hi := min(lo+chunk, n)
				if err := fn(w, lo, hi); err != nil {
					return err
				}
				p.add(hi - lo)
			}
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	b.logger.Info().
		Str("table", table).
		Uint64("units", n).
		Dur("elapsed", p.elapsed()).
		Msg("table built")
	return nil
}

// progress counts completed units and logs them on a clock tick.
type progress struct {
	logger  zerolog.Logger
	clock   quartz.Clock
	table   string
	total   uint64
	done    atomic.Uint64
	started time.Time
}

func newProgress(logger zerolog.Logger, clock quartz.Clock, table string, total uint64) *progress {
	return &progress{
		logger:  logger,
		clock:   clock,
		table:   table,
		total:   total,
		started: clock.Now(),
	}
}

func (p *progress) add(n uint64) { p.done.Add(n) }

func (p *progress) elapsed() time.Duration { return p.clock.Since(p.started) }

// start begins periodic reporting; the returned func stops it and waits.
func (p *progress) start(ctx context.Context, every time.Duration) func() {
	if every <= 0 {
		return func() {}
	}
	ctx, cancel := context.WithCancel(ctx)
	waiter := p.clock.TickerFunc(ctx, every, func() error {
		p.report()
		return nil
	}, "progress", p.table)
	return func() {
		cancel()
		_ = waiter.Wait()
	}
}

func (p *progress) report() {
	done := p.done.Load()
	percent := 0.0
	if p.total > 0 {
		percent = float64(done) * 100 / float64(p.total)
	}
	p.logger.Info().
		Str("table", p.table).
		Uint64("done", done).
		Uint64("total", p.total).
		Float64("percent", percent).
		Dur("elapsed", p.elapsed()).
		Msg("progress")
}
