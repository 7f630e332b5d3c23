// Package metrics defines and registers the custom Prometheus metrics of the
// portfolio API: domain counters registered on the default registry, plus
// the echoprometheus request middleware.
package metrics

import (
	"strings"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "portfolio"

// ── Content metrics ───────────────────────────────────────────────────────────

// ContentWritesTotal counts successful admin writes.
// Labels:
//   - entity: "portfolio", "case_study", "message", "setting"
//   - op: "create", "update", "delete", "mark_read", "upsert"
var ContentWritesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "content_writes_total",
		Help:      "Total number of successful content mutations, by entity and operation.",
	},
	[]string{"entity", "op"},
)

// ContactMessagesTotal counts accepted contact form submissions.
// Label:
//   - attachment: "yes" or "no"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages received.",
	},
	[]string{"attachment"},
)

// ── Upload metrics ────────────────────────────────────────────────────────────

// UploadsTotal counts upload attempts.
// Labels:
//   - kind: "attachment", "portfolio", "case-study"
//   - result: "stored", "too_large", "rejected", "error"
var UploadsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "uploads_total",
		Help:      "Total number of file uploads, by kind and result.",
	},
	[]string{"kind", "result"},
)

// UploadSizeBytes observes the size of stored uploads.
var UploadSizeBytes = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upload_size_bytes",
		Help:      "Size of stored uploads in bytes.",
		Buckets:   prometheus.ExponentialBuckets(16<<10, 4, 6), // 16KiB .. 16MiB
	},
	[]string{"kind"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// LoginAttemptsTotal counts login attempts.
// Label:
//   - result: "success", "invalid_credentials", "error"
var LoginAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "login_attempts_total",
		Help:      "Total number of login attempts, by result.",
	},
	[]string{"result"},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTP returns the request metrics middleware and the /metrics handler.
// Request metrics live in a registry of their own so a router can be built
// more than once per process; the handler exposes it alongside the default
// registry holding the domain metrics above.
func HTTP() (echo.MiddlewareFunc, echo.HandlerFunc, error) {
	reg := prometheus.NewRegistry()
	mw, err := echoprometheus.MiddlewareConfig{
		Namespace:  namespace,
		Subsystem:  "http",
		Registerer: reg,
		Skipper: func(c echo.Context) bool {
			p := c.Path()
			return p == "/metrics" || strings.HasPrefix(p, "/health")
		},
	}.ToMiddleware()
	if err != nil {
		return nil, nil, err
	}

	handler := echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: prometheus.Gatherers{prometheus.DefaultGatherer, reg},
	})
	return mw, handler, nil
}
