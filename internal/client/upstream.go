// Package client provides the upstream HTTP client for the PhEDEx data service.
package client

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/hashicorp/go-cleanhttp"

	"phedex-relay/internal/config"
	"phedex-relay/internal/metrics"
	"phedex-relay/internal/model"
)

// StatusError is returned when the upstream answers with a non-2xx status.
// The upstream body is discarded.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream %s returned %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// UpstreamClient performs GET requests against the upstream data service.
type UpstreamClient struct {
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

// NewUpstreamClient creates an UpstreamClient on a pooled transport with the
// configured overall timeout. The metrics parameter is optional; pass nil to
// disable upstream metrics recording.
func NewUpstreamClient(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) *UpstreamClient {
	transport := cleanhttp.DefaultPooledTransport()
	if cfg.Upstream.IdleConnections > 0 {
		transport.MaxIdleConns = cfg.Upstream.IdleConnections
		transport.MaxIdleConnsPerHost = cfg.Upstream.IdleConnections
	}

	return &UpstreamClient{
		httpClient: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(cfg.Upstream.TimeoutSeconds) * time.Second,
		},
		logger:  logger.With("component", "upstream_client"),
		metrics: m,
	}
}

// Get issues a single GET to rawURL and reads the whole response body.
// Transport failures, body read failures and non-2xx statuses are all errors.
func (c *UpstreamClient) Get(ctx context.Context, rawURL string) (*model.RelayResponse, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build upstream request: %w", err)
	}

	c.logger.Debug("upstream request", "url", rawURL)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.observe(start, 0)
		return nil, fmt.Errorf("upstream request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		c.observe(start, resp.StatusCode)
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: rawURL}
	}

	body, err := io.ReadAll(resp.Body)
	c.observe(start, resp.StatusCode)
	if err != nil {
		return nil, fmt.Errorf("read upstream body: %w", err)
	}

	return &model.RelayResponse{
		StatusCode:  resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}

// observe records upstream latency and outcome. A zero status means no
// response was received.
func (c *UpstreamClient) observe(start time.Time, status int) {
	if c.metrics == nil {
		return
	}
	c.metrics.UpstreamDuration.Observe(time.Since(start).Seconds())
	if status == 0 {
		c.metrics.UpstreamErrors.Inc()
		return
	}
	c.metrics.UpstreamResponses.WithLabelValues(strconv.Itoa(status)).Inc()
}
