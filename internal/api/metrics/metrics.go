// Package metrics defines the custom Prometheus metrics of the storefront
// backend. It is the single source of truth for metric names, labels and help
// strings. Metrics register with the default registry on package init and are
// exposed on GET /metrics together with the echoprometheus HTTP collectors.
package metrics

import (
	"sync"
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthAttemptsTotal counts register/login/logout outcomes.
// Labels:
//   - action: "register", "login" or "logout"
//   - result: "success", "invalid", "duplicate" or "error"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of authentication attempts, by action and result.",
	},
	[]string{"action", "result"},
)

// ── Catalog store metrics ─────────────────────────────────────────────────────

// CatalogStoreRequestsTotal counts calls made to the external catalog store.
// Labels:
//   - table: "products", "offres" or "users"
//   - operation: wrapper operation (e.g. "list", "get", "create", "ping")
//   - result: "ok" or "error"
var CatalogStoreRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "catalog_store_requests_total",
		Help:      "Total number of external catalog store calls, by table, operation and result.",
	},
	[]string{"table", "operation", "result"},
)

// CatalogStoreRequestDuration measures external catalog store round trips.
var CatalogStoreRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "catalog_store_request_duration_seconds",
		Help:      "Duration of external catalog store calls.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"table", "operation"},
)

// MirrorFailuresTotal counts accounts that could not be copied into the
// external users collection.
var MirrorFailuresTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "mirror_failures_total",
		Help:      "Total number of failed account mirror attempts.",
	},
)

// ObserveStoreCall records one catalog store call started at start.
func ObserveStoreCall(table, operation string, start time.Time, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	CatalogStoreRequestsTotal.WithLabelValues(table, operation, result).Inc()
	CatalogStoreRequestDuration.WithLabelValues(table, operation).Observe(time.Since(start).Seconds())
}

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// The echoprometheus collectors register once per process.
var httpMiddleware = sync.OnceValue(func() echo.MiddlewareFunc {
	return echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace: namespace,
		Subsystem: "http",
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	})
})

// HTTPMiddleware records request counts, latencies and sizes labelled by
// method, status code and matched route.
func HTTPMiddleware() echo.MiddlewareFunc {
	return httpMiddleware()
}

// Handler exposes the default registry.
func Handler() echo.HandlerFunc {
	return echoprometheus.NewHandler()
}
