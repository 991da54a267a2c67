// Package service implements the relay forwarding and local file logic.
package service

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"phedex-relay/internal/client"
	"phedex-relay/internal/config"
	"phedex-relay/internal/model"
)

// RelayService forwards data-service calls to the fixed upstream base URL.
type RelayService struct {
	client  *client.UpstreamClient
	logger  *slog.Logger
	baseURL string
}

// NewRelayService creates a RelayService for cfg.Upstream.BaseURL.
func NewRelayService(c *client.UpstreamClient, cfg *config.Config, logger *slog.Logger) (*RelayService, error) {
	if _, err := url.Parse(cfg.Upstream.BaseURL); err != nil {
		return nil, fmt.Errorf("parse upstream base_url: %w", err)
	}

	return &RelayService{
		client:  c,
		logger:  logger.With("component", "relay_service"),
		baseURL: strings.TrimRight(cfg.Upstream.BaseURL, "/"),
	}, nil
}

// Forward performs exactly one GET against the upstream URL built from rr and
// returns the upstream body unmodified.
func (s *RelayService) Forward(rr *model.RelayRequest) (*model.RelayResponse, error) {
	target := s.UpstreamURL(rr.Segments, rr.Params)

	s.logger.Debug("forwarding request",
		"segments", len(rr.Segments),
		"params", len(rr.Params),
	)

	resp, err := s.client.Get(rr.Ctx, target)
	if err != nil {
		return nil, fmt.Errorf("relay to upstream: %w", err)
	}
	return resp, nil
}

// UpstreamURL returns <base>/<seg1>/<seg2>/...?<params>. Segments are joined
// with a literal "/" and escaped individually. The "?" is always present, so
// no segments and no params yields "<base>/?".
func (s *RelayService) UpstreamURL(segments []string, params url.Values) string {
	escaped := make([]string, len(segments))
	for i, seg := range segments {
		escaped[i] = url.PathEscape(seg)
	}

	var b strings.Builder
	b.WriteString(s.baseURL)
	b.WriteByte('/')
	b.WriteString(strings.Join(escaped, "/"))
	b.WriteByte('?')
	b.WriteString(params.Encode())
	return b.String()
}
