package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/ghdash/pkg/observability"
)

// logHooks reports dashboard, cache and outbound HTTP events to a logger.
// Per-request chatter is logged at debug level; degraded sources are warnings.
type logHooks struct {
	logger *log.Logger
}

// registerLogHooks installs logHooks for every observability category.
func registerLogHooks(l *log.Logger) {
	h := logHooks{logger: l}
	observability.SetDashboardHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnBuildStart(_ context.Context, username string) {
	h.logger.Debug("build started", "username", username)
}

func (h logHooks) OnBuildComplete(_ context.Context, username string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("build failed", "username", username, "duration", d.Round(time.Millisecond), "err", err)
		return
	}
	h.logger.Debug("build complete", "username", username, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnSourceDegraded(_ context.Context, username, source string, err error) {
	h.logger.Warn("source degraded to empty", "username", username, "op", source, "err", err)
}

func (h logHooks) OnCacheHit(_ context.Context, kind string) {
	h.logger.Debug("cache hit", "kind", kind)
}

func (h logHooks) OnCacheMiss(_ context.Context, kind string) {
	h.logger.Debug("cache miss", "kind", kind)
}

func (h logHooks) OnCacheSet(_ context.Context, kind string, size int) {
	h.logger.Debug("cache set", "kind", kind, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("upstream request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("upstream response", "method", method, "host", host, "path", path, "status", status, "duration", d.Round(time.Millisecond))
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("upstream error", "method", method, "host", host, "path", path, "err", err)
}
