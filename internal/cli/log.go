// Package cli implements the shapescatter command-line interface.
//
// This package provides commands for rendering random figure scatters to
// files, filling in the parameters interactively, serving renders over HTTP,
// summarizing placement statistics and managing the artifact cache. The CLI
// is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - render: Draw a scatter and write it as PNG, SVG, PDF or JSON
//   - form: Edit the parameters in a terminal form, then render
//   - stats: Print placement statistics for a request
//   - serve: Serve renders over HTTP
//   - cache: Manage the artifact cache
//   - config: Show the effective configuration
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
// At debug level the pipeline, cache and HTTP events are logged as well.
//
// # Example
//
//	import "github.com/matzehuels/shapescatter/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().Execute(); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Rendered 3 outputs (12ms)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

// loggerKey is the context key for storing a logger.
const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline, cache and HTTP events at debug level.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) logHooks { return logHooks{logger: l} }

func (h logHooks) OnRenderStart(_ context.Context, seed uint64, count int, formats []string) {
	h.logger.Debug("render start", "seed", seed, "count", count, "formats", formats)
}

func (h logHooks) OnFigure(_ context.Context, kind string, size float64) {
	h.logger.Debug("figure", "kind", kind, "size", size)
}

func (h logHooks) OnRenderComplete(_ context.Context, formats []string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("render failed", "formats", formats, "elapsed", d, "error", err)
		return
	}
	h.logger.Debug("render complete", "formats", formats, "elapsed", d)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, path, requestID string) {
	h.logger.Debug("http request", "method", method, "path", path, "id", requestID)
}

func (h logHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "path", path, "status", status, "elapsed", d)
}
