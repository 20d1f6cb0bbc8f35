package middleware

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"

	"task-tracker.com/task-tracker/internal/ratelimit"
)

// RateLimiter keys requests by client IP. A failing limiter lets the request
// through so a Redis outage does not take the pages down.
func RateLimiter(limiter ratelimit.Limiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			key := c.RealIP()

			ok, err := limiter.Allow(c.Request().Context(), key)
			if err != nil {
				log.Printf("rate limiter failed for %s: %v", key, err)
				return next(c)
			}

			if !ok {
				return echo.NewHTTPError(http.StatusTooManyRequests, "rate limit exceeded")
			}

			return next(c)
		}
	}
}
