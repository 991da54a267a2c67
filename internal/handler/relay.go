package handler

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/labstack/echo/v4"

	"phedex-relay/internal/model"
	"phedex-relay/internal/service"
)

// RelayPrefix is the route prefix under which requests are relayed upstream.
const RelayPrefix = "/phedex"

// RelayHandler forwards data-service requests to the upstream.
type RelayHandler struct {
	service *service.RelayService
}

// NewRelayHandler creates a RelayHandler.
func NewRelayHandler(svc *service.RelayService) *RelayHandler {
	return &RelayHandler{service: svc}
}

// Handle relays the request's path segments and query parameters upstream and
// writes the upstream body back unchanged. Failures are returned to the
// central error handler.
func (h *RelayHandler) Handle(c echo.Context) error {
	req := c.Request()

	segments, err := relaySegments(req.URL.EscapedPath())
	if err != nil {
		return err
	}

	resp, err := h.service.Forward(&model.RelayRequest{
		Ctx:      req.Context(),
		Segments: segments,
		Params:   c.QueryParams(),
	})
	if err != nil {
		return err
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = http.DetectContentType(resp.Body)
	}
	return c.Blob(http.StatusOK, contentType, resp.Body)
}

// relaySegments splits the escaped request path after RelayPrefix into
// decoded segments. "/phedex" and "/phedex/" both yield no segments.
func relaySegments(escapedPath string) ([]string, error) {
	rest := strings.TrimPrefix(escapedPath, RelayPrefix)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return nil, nil
	}

	raw := strings.Split(rest, "/")
	segments := make([]string, len(raw))
	for i, s := range raw {
		seg, err := url.PathUnescape(s)
		if err != nil {
			return nil, fmt.Errorf("decode path segment %q: %w", s, err)
		}
		segments[i] = seg
	}
	return segments, nil
}
