package middleware

import (
	"net/http"

	"github.com/go-chi/cors"
	"github.com/labstack/echo/v4"

	"phedex-relay/internal/config"
)

// CORS returns an Echo middleware that lets a browser client hosted on one of
// the allowed origins call the relay. Only read-only methods are exposed.
func CORS(cfg config.CORSConfig) echo.MiddlewareFunc {
	return echo.WrapMiddleware(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{echo.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	}))
}
