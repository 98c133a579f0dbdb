package middleware

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
)

// RateLimiter rejects clients over their quota with 429. A failing limiter
// backend lets the request through.
func RateLimiter(limiter Limiter, log *zap.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ok, err := limiter.Allow(c.Request().Context(), c.RealIP())
			if err != nil {
				log.Warn("rate limiter unavailable", zap.Error(err))
				return next(c)
			}
			if !ok {
				return apperrors.ErrRateLimited
			}
			return next(c)
		}
	}
}
