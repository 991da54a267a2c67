package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
)

// ErrorHandler returns the central echo error handler. Errors already carrying
// an HTTP status (router 404/405, body limit, rate limit) keep it; every other
// error becomes a 500 with a generic body.
func ErrorHandler(e *echo.Echo, logger *slog.Logger) echo.HTTPErrorHandler {
	logger = logger.With("component", "error_handler")

	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		var he *echo.HTTPError
		if errors.As(err, &he) {
			e.DefaultHTTPErrorHandler(err, c)
			return
		}

		req := c.Request()
		logger.Error("request failed",
			"err", err,
			"method", req.Method,
			"path", req.URL.Path,
			"request_id", c.Response().Header().Get(echo.HeaderXRequestID),
		)

		var writeErr error
		if req.Method == http.MethodHead {
			writeErr = c.NoContent(http.StatusInternalServerError)
		} else {
			writeErr = c.JSON(http.StatusInternalServerError, map[string]string{
				"error": "internal server error",
			})
		}
		if writeErr != nil {
			logger.Error("writing error response", "err", writeErr)
		}
	}
}
