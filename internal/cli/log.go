package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// loggerCtxKey carries the command logger through context so helpers
// deep in a command never reach for a global.
type loggerCtxKey struct{}

// withLogger attaches l to ctx. RootCommand does this once in its
// PersistentPreRunE; commands read it back with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerCtxKey{}, l)
}

// loggerFromContext returns the logger attached by withLogger, or the
// package default when the context carries none, so a command run
// outside RootCommand still logs somewhere.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerCtxKey{}).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// progress times one computation and reports the duration as a
// structured field when done:
//
//	INFO Computed chart with 10 placements took=2ms
//
// Single-goroutine use only.
type progress struct {
	log   *log.Logger
	began time.Time
}

// newProgress starts timing immediately.
func newProgress(l *log.Logger) *progress {
	return &progress{log: l, began: time.Now()}
}

// done logs msg with the elapsed time rounded to a millisecond.
func (p *progress) done(msg string) {
	p.log.Info(msg, "took", time.Since(p.began).Round(time.Millisecond))
}
