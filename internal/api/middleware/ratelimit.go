package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/medisys/hospital-api/internal/api/metrics"
)

// Limiter counts requests for a client within a fixed window.
type Limiter interface {
	Allow(ctx context.Context, scope, client string, limit int64, window time.Duration) (bool, error)
}

// RateLimit throttles requests per client IP. When the limiter itself fails
// (for example Redis is down) requests are allowed through so the store never
// becomes a hard dependency of the request path.
func RateLimit(limiter Limiter, scope string, limit int64, window time.Duration, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), scope, c.RealIP(), limit, window)
			if err != nil {
				log.Warn().Err(err).Str("scope", scope).Msg("rate limiter unavailable, allowing request")
				return next(c)
			}
			if !ok {
				metrics.RateLimitedTotal.WithLabelValues(scope).Inc()
				return echo.NewHTTPError(http.StatusTooManyRequests, "too many requests, please try again later")
			}
			return next(c)
		}
	}
}
