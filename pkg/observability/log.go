package observability

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// LogHooks reports every event as a debug log line. It implements
// PipelineHooks, CacheHooks and HTTPHooks.
type LogHooks struct {
	logger *log.Logger
}

// NewLogHooks creates hooks that write to logger.
func NewLogHooks(logger *log.Logger) *LogHooks {
	if logger == nil {
		logger = log.Default()
	}
	return &LogHooks{logger: logger}
}

var (
	_ PipelineHooks = (*LogHooks)(nil)
	_ CacheHooks    = (*LogHooks)(nil)
	_ HTTPHooks     = (*LogHooks)(nil)
)

func (h *LogHooks) OnSplitStart(_ context.Context, traces int) {
	h.logger.Debug("split started", "traces", traces)
}

func (h *LogHooks) OnSplitComplete(_ context.Context, inputs, outputs int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("split failed", "inputs", inputs, "duration", d, "err", err)
		return
	}
	h.logger.Debug("split finished", "inputs", inputs, "outputs", outputs, "duration", d)
}

func (h *LogHooks) OnTransformStart(_ context.Context, transform string, traceIndex int) {
	h.logger.Debug("transform started", "transform", transform, "trace", traceIndex)
}

func (h *LogHooks) OnTransformComplete(_ context.Context, transform string, traceIndex, outputs int, d time.Duration) {
	h.logger.Debug("transform finished", "transform", transform, "trace", traceIndex, "outputs", outputs, "duration", d)
}

func (h *LogHooks) OnCacheHit(_ context.Context, backend string) {
	h.logger.Debug("cache hit", "backend", backend)
}

func (h *LogHooks) OnCacheMiss(_ context.Context, backend string) {
	h.logger.Debug("cache miss", "backend", backend)
}

func (h *LogHooks) OnCacheSet(_ context.Context, backend string, size int) {
	h.logger.Debug("cache set", "backend", backend, "bytes", size)
}

func (h *LogHooks) OnRequest(_ context.Context, method, path string) {
	h.logger.Debug("request", "method", method, "path", path)
}

func (h *LogHooks) OnResponse(_ context.Context, method, path string, status int, d time.Duration) {
	h.logger.Info("response", "method", method, "path", path, "status", status, "duration", d)
}

func (h *LogHooks) OnError(_ context.Context, method, path string, err error) {
	h.logger.Error("request failed", "method", method, "path", path, "err", err)
}
