// Package cli implements the tracesplit command-line interface.
//
// This package provides commands for splitting figure data with declarative
// trace transforms, inspecting transform defaults and trace schemas,
// drawing the input-to-output fan-out, serving the pipeline over HTTP and
// managing the result cache. The CLI is built using cobra and logs through
// charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - split: Apply every trace's transforms and write the resulting figure
//   - defaults: Show the resolved options of a transform
//   - schema: List the declared attributes of a trace type or transform
//   - graph: Render the input-to-output fan-out as DOT, SVG or PNG
//   - browse: Pick through split output interactively
//   - serve: Expose the pipeline over HTTP
//   - cache: Manage the result cache
//
// # Configuration
//
// Settings are read from $XDG_CONFIG_HOME/tracesplit/config.toml when it
// exists. Command-line flags override file values.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created,
// e.g. "Split 3 traces into 7 (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none
// is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
