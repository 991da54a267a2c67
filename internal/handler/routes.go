package handler

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"phedex-relay/internal/config"
	"phedex-relay/internal/metrics"
)

// RegisterRoutes wires all route handlers onto the Echo instance. Echo
// prefers static and longer-prefix routes over "/*", so any path not claimed
// below falls through to the file handler.
func RegisterRoutes(e *echo.Echo, files *FileHandler, relay *RelayHandler, health *HealthHandler) {
	e.GET("/healthz", health.Healthz)
	e.GET("/relay/status", health.Status)

	e.GET("/readfile", files.ReadFile)
	e.GET(RelayPrefix, relay.Handle)
	e.GET(RelayPrefix+"/*", relay.Handle)

	e.GET("/*", files.Default)
}

// RegisterMetrics exposes the Prometheus registry when metrics are enabled.
func RegisterMetrics(e *echo.Echo, cfg *config.Config, m *metrics.Metrics) {
	if !cfg.Metrics.Enabled {
		return
	}
	e.GET(cfg.Metrics.Path, echo.WrapHandler(promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})))
}
