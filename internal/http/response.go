package http

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	apperrors "github.com/oscar503sv/gestion-de-proyectos/internal/errors"
)

// Response is the envelope every endpoint answers with.
type Response struct {
	Success bool     `json:"success"`
	Data    any      `json:"data,omitempty"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

func respond(c echo.Context, status int, message string, data any) error {
	return c.JSON(status, Response{Success: true, Data: data, Message: message})
}

// ErrorHandler renders errors as the envelope. Exceptions keep their status
// and messages; anything else is logged and reported as a 500.
func ErrorHandler(log *zap.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		res := Response{Message: apperrors.ErrInternal.Message}
		status := apperrors.StatusCode(err)

		if ex, ok := apperrors.As(err); ok {
			res.Message = ex.Message
			res.Errors = ex.Errors
			res.Data = ex.Data
		} else if he, ok := err.(*echo.HTTPError); ok && he.Code != http.StatusInternalServerError {
			status = he.Code
			res.Message = http.StatusText(he.Code)
		} else {
			log.Error("unhandled error",
				zap.Error(err),
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
			)
		}

		var werr error
		if c.Request().Method == http.MethodHead {
			werr = c.NoContent(status)
		} else {
			werr = c.JSON(status, res)
		}
		if werr != nil {
			log.Error("write error response", zap.Error(werr))
		}
	}
}
