package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"phedex-relay/internal/config"
	"phedex-relay/internal/metrics"
)

func TestNewLogger_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"WARN", slog.LevelWarn},
		{"error", slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			cfg := config.Default()
			cfg.Log.Level = tt.level
			logger := newLogger(cfg)

			if !logger.Enabled(context.Background(), tt.want) {
				t.Errorf("level %v not enabled for %q", tt.want, tt.level)
			}
			if tt.want > slog.LevelDebug && logger.Enabled(context.Background(), tt.want-4) {
				t.Errorf("level %v unexpectedly enabled for %q", tt.want-4, tt.level)
			}
		})
	}
}

func TestNewEcho_ErrorContractAndHeaders(t *testing.T) {
	cfg := config.Default()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newEcho(cfg, logger, metrics.New())
	e.GET("/broken", func(echo.Context) error { return errors.New("open broken: no such file") })

	req := httptest.NewRequest(http.MethodGet, "/broken", http.NoBody)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d, want %d", rec.Code, http.StatusInternalServerError)
	}
	if strings.Contains(rec.Body.String(), "no such file") {
		t.Errorf("body leaks internal error: %q", rec.Body.String())
	}
	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if rec.Header().Get(echo.HeaderXRequestID) == "" {
		t.Error("expected X-Request-ID header")
	}
}

func TestNewEcho_OptionalMiddleware(t *testing.T) {
	cfg := config.Default()
	cfg.Server.CORS = config.CORSConfig{Enabled: true, AllowedOrigins: []string{"https://cmsweb.cern.ch"}}
	cfg.Server.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerSecond: 1}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	e := newEcho(cfg, logger, metrics.New())
	e.GET("/healthz", func(c echo.Context) error { return c.String(http.StatusOK, "ok") })

	do := func() *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
		req.Header.Set("Origin", "https://cmsweb.cern.ch")
		req.Header.Set(echo.HeaderXRealIP, "10.0.0.9")
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		return rec
	}

	first := do()
	if first.Code != http.StatusOK {
		t.Fatalf("first request: status = %d, want %d", first.Code, http.StatusOK)
	}
	if got := first.Header().Get("Access-Control-Allow-Origin"); got != "https://cmsweb.cern.ch" {
		t.Errorf("Access-Control-Allow-Origin = %q, want the configured origin", got)
	}

	limited := false
	for i := 0; i < 10; i++ {
		if do().Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected rate limiter to reject a burst from one client")
	}
}
