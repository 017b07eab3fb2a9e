// Package cli implements the mazer command-line interface.
//
// Commands render snapshots to files, report display metrics, animate the
// solution reveal in the terminal, list palettes, validate snapshots,
// manage the local cache and serve the HTTP API. The CLI is built using
// cobra; settings come from an optional mazer.toml and flags.
//
// # Commands
//
//   - render: Generate SVG, PNG, PDF, JSON or DOT artifacts
//   - layout: Fit a snapshot to a display or plan grid dimensions
//   - reveal: Interactive solution reveal and generation playback
//   - palettes: List heat-map palettes and backgrounds
//   - validate: Check snapshot invariants
//   - cache: Manage the local cache
//   - serve: Run the HTTP API
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to the pipeline runner and server.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress times a batch operation and logs its outcome with the elapsed
// time as a structured field.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

func (p *progress) elapsed() time.Duration {
	return time.Since(p.start).Round(time.Millisecond)
}

// done logs msg at info level, e.g. `Validated snapshots count=3 elapsed=12ms`.
func (p *progress) done(msg string, keyvals ...any) {
	p.logger.Info(msg, append(keyvals, "elapsed", p.elapsed())...)
}

// fail logs msg at error level with err attached.
func (p *progress) fail(msg string, err error, keyvals ...any) {
	p.logger.Error(msg, append(keyvals, "err", err, "elapsed", p.elapsed())...)
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by withLogger, or
// log.Default() when there is none.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
